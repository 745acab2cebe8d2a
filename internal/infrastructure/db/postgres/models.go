package postgres

import (
	"time"

	"github.com/fullstacktime/project-tracker/internal/core/domain"
)

// Row models are kept separate from domain entities so the schema is not
// coupled to the API contract.

type userModel struct {
	ID           uint      `gorm:"primaryKey"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"not null;default:WORKER"`
	IsStaff      bool      `gorm:"not null;default:false"`
	IsSuperuser  bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userModel) TableName() string { return "users" }

type projectModel struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"not null"`
	Description string    `gorm:"not null;default:''"`
	CreatedByID uint      `gorm:"not null;index"`
	CreatedBy   userModel `gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
}

func (projectModel) TableName() string { return "projects" }

func (m *userModel) toDomain() *domain.User {
	return &domain.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         domain.Role(m.Role),
		IsStaff:      m.IsStaff,
		IsSuperuser:  m.IsSuperuser,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func userModelFromDomain(u *domain.User) userModel {
	return userModel{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		IsStaff:      u.IsStaff,
		IsSuperuser:  u.IsSuperuser,
	}
}

func (m *projectModel) toDomain() *domain.Project {
	return &domain.Project{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedByID: m.CreatedByID,
		CreatedBy:   *m.CreatedBy.toDomain(),
		CreatedAt:   m.CreatedAt,
	}
}
