package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/fullstacktime/project-tracker/internal/core/domain"
	"github.com/fullstacktime/project-tracker/internal/core/ports"
)

// ProjectService implements the project CRUD use cases. Every write runs
// the role/ownership policy first; reads are scoped rather than gated.
type ProjectService struct {
	repo ports.ProjectRepository
	log  zerolog.Logger
}

func NewProjectService(repo ports.ProjectRepository, log zerolog.Logger) *ProjectService {
	return &ProjectService{repo: repo, log: log}
}

// List returns the caller's visible projects: all of them for admins,
// own-only for workers.
func (s *ProjectService) List(ctx context.Context, caller ports.Caller) ([]*domain.Project, error) {
	return s.repo.List(ctx, domain.VisibleScope(caller.Role, caller.UserID))
}

// Get returns a single project. A project that exists but is outside the
// caller's scope yields ErrForbidden rather than not-found, so existence
// of out-of-scope ids is observable to authenticated callers.
func (s *ProjectService) Get(ctx context.Context, caller ports.Caller, id uint) (*domain.Project, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.InScope(caller.Role, caller.UserID, p) {
		return nil, domain.ErrForbidden
	}
	return p, nil
}

// Create persists a new project owned by the caller. Only workers create;
// the owner is always the caller regardless of the request body.
func (s *ProjectService) Create(ctx context.Context, caller ports.Caller, input ports.CreateProjectInput) (*domain.Project, error) {
	if err := domain.CanCreateProject(caller.Role); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.Project{
		Name:        input.Name,
		Description: input.Description,
		CreatedByID: caller.UserID,
	})
	if err != nil {
		s.log.Error().Err(err).Str("username", caller.Username).Msg("failed to create project")
		return nil, err
	}

	s.log.Info().Uint("project_id", created.ID).Str("username", caller.Username).Msg("project created")
	return created, nil
}

// Update replaces the mutable fields of an owned project. Nil input fields
// are left untouched; owner and creation time are immutable.
func (s *ProjectService) Update(ctx context.Context, caller ports.Caller, id uint, input ports.UpdateProjectInput) (*domain.Project, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.CanModifyProject(caller.Role, caller.UserID, p, "update"); err != nil {
		return nil, err
	}

	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Description != nil {
		p.Description = *input.Description
	}

	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, err
	}

	s.log.Info().Uint("project_id", id).Str("username", caller.Username).Msg("project updated")
	return updated, nil
}

// Delete permanently removes an owned project.
func (s *ProjectService) Delete(ctx context.Context, caller ports.Caller, id uint) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := domain.CanModifyProject(caller.Role, caller.UserID, p, "delete"); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			// Deleted concurrently; the outcome the caller asked for.
			return nil
		}
		return err
	}

	s.log.Info().Uint("project_id", id).Str("username", caller.Username).Msg("project deleted")
	return nil
}
