package ports

import (
	"context"

	"github.com/fullstacktime/project-tracker/internal/core/domain"
)

// ProjectRepository defines persistence operations for projects.
// All reads preload the owning user so responses can embed it.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	// FindByID retrieves a project by primary key regardless of owner;
	// scope checks are the service's responsibility.
	FindByID(ctx context.Context, id uint) (*domain.Project, error)
	// List returns projects ordered by insertion. When ownerID is non-zero
	// the result set is restricted to that owner.
	List(ctx context.Context, ownerID uint) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) (*domain.Project, error)
	Delete(ctx context.Context, id uint) error
}
