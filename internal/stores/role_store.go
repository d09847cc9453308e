package stores

import (
	"context"

	"go-users/internal/models"

	"gorm.io/gorm"
)

// RoleStore resolves role titles. Roles are managed outside this service;
// EnsureRoles only seeds missing titles at startup.
type RoleStore interface {
	// FindByTitle returns the role with the given title, or ErrNotFound.
	FindByTitle(ctx context.Context, title string) (*models.Role, error)
	EnsureRoles(ctx context.Context, titles ...string) error
}

type GormRoleStore struct{ DB *gorm.DB }

func (s *GormRoleStore) FindByTitle(ctx context.Context, title string) (*models.Role, error) {
	var r models.Role
	if err := s.DB.WithContext(ctx).Where("title = ?", title).First(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *GormRoleStore) EnsureRoles(ctx context.Context, titles ...string) error {
	for _, title := range titles {
		if title == "" {
			continue
		}
		var r models.Role
		if err := s.DB.WithContext(ctx).Where(models.Role{Title: title}).FirstOrCreate(&r).Error; err != nil {
			return err
		}
	}
	return nil
}
