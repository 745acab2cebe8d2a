package domain

import (
	"errors"
	"time"
)

// Role is the access tier of a user. The set is closed: anything outside
// it behaves as read-only for write checks.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleWorker Role = "WORKER"
)

// Valid reports whether r is one of the recognized roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleWorker
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrValidation         = errors.New("validation failed")
)

// User models an authenticated actor in the system.
// IsStaff and IsSuperuser exist for the external admin console; the API
// surface never exposes them.
type User struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	IsStaff      bool      `json:"-"`
	IsSuperuser  bool      `json:"-"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}
