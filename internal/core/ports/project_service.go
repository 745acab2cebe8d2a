package ports

import (
	"context"

	"github.com/fullstacktime/project-tracker/internal/core/domain"
)

// Caller identifies the authenticated user on whose behalf an operation
// runs, as extracted from the access-token claims.
type Caller struct {
	UserID   uint
	Username string
	Role     domain.Role
}

// CreateProjectInput carries the client-settable project fields. The owner
// is always the caller; any client-supplied owner is ignored upstream.
type CreateProjectInput struct {
	Name        string
	Description string
}

// UpdateProjectInput carries a partial update. Nil fields are left
// untouched; only name and description are mutable.
type UpdateProjectInput struct {
	Name        *string
	Description *string
}

// ProjectService defines the project CRUD use cases. Every operation
// enforces the role/ownership policy before touching the repository.
type ProjectService interface {
	List(ctx context.Context, caller Caller) ([]*domain.Project, error)
	Get(ctx context.Context, caller Caller, id uint) (*domain.Project, error)
	Create(ctx context.Context, caller Caller, input CreateProjectInput) (*domain.Project, error)
	Update(ctx context.Context, caller Caller, id uint, input UpdateProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, caller Caller, id uint) error
}
