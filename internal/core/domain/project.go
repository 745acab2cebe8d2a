package domain

import (
	"errors"
	"time"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrForbidden       = errors.New("access forbidden")
)

// Project is a record owned by exactly one user. Ownership is fixed at
// creation time and the owning user's deletion cascades to its projects.
type Project struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedByID uint      `json:"-"`
	CreatedBy   User      `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}
