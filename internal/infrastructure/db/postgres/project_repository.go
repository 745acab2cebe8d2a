package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/fullstacktime/project-tracker/internal/core/domain"
)

// ProjectRepository persists projects in Postgres via gorm. Reads preload
// the owning user so responses can embed it without a second query.
type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	row := projectModel{
		Name:        p.Name,
		Description: p.Description,
		CreatedByID: p.CreatedByID,
	}
	if err := r.db.WithContext(ctx).Omit("CreatedBy").Create(&row).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, row.ID)
}

func (r *ProjectRepository) FindByID(ctx context.Context, id uint) (*domain.Project, error) {
	var row projectModel
	err := r.db.WithContext(ctx).Preload("CreatedBy").First(&row, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *ProjectRepository) List(ctx context.Context, ownerID uint) ([]*domain.Project, error) {
	q := r.db.WithContext(ctx).Preload("CreatedBy").Order("id")
	if ownerID != 0 {
		q = q.Where("created_by_id = ?", ownerID)
	}

	var rows []projectModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	projects := make([]*domain.Project, 0, len(rows))
	for i := range rows {
		projects = append(projects, rows[i].toDomain())
	}
	return projects, nil
}

func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	result := r.db.WithContext(ctx).
		Model(&projectModel{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"name":        p.Name,
			"description": p.Description,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrProjectNotFound
	}
	return r.FindByID(ctx, p.ID)
}

func (r *ProjectRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&projectModel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}
