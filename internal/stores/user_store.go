package stores

import (
	"context"

	"go-users/internal/models"

	"gorm.io/gorm"
)

// UserUpdate carries the mutable user fields. The caller resolves
// defaults before calling UpdateUser; every field is written.
type UserUpdate struct {
	FirstName string
	LastName  string
	Password  string
}

// UserStore abstracts user persistence.
type UserStore interface {
	// FindByEmail returns a user (deleted or not) with the given email, or ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByID returns a user (deleted or not) by id, or ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// List returns every user sorted by first name, soft-deleted ones included.
	List(ctx context.Context) ([]models.User, error)
	// CreateUser persists a new user. A taken email yields ErrDuplicateEmail.
	CreateUser(ctx context.Context, u *models.User) error
	// UpdateUser writes fields on an active user and returns the new row.
	// Missing or soft-deleted users yield ErrNotFound and nothing is written.
	UpdateUser(ctx context.Context, id string, fields UserUpdate) (*models.User, error)
	// SoftDelete flags an active user as deleted and returns the new row.
	SoftDelete(ctx context.Context, id string) (*models.User, error)
}

// GormUserStore implements UserStore using GORM.
type GormUserStore struct{ DB *gorm.DB }

func (s *GormUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.DB.WithContext(ctx).Preload("Role").Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *GormUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *GormUserStore) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := s.DB.WithContext(ctx).Order("firstname asc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *GormUserStore) CreateUser(ctx context.Context, u *models.User) error {
	if err := s.DB.WithContext(ctx).Create(u).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (s *GormUserStore) UpdateUser(ctx context.Context, id string, fields UserUpdate) (*models.User, error) {
	return s.updateActive(ctx, id, map[string]any{
		"firstname": fields.FirstName,
		"lastname":  fields.LastName,
		"password":  fields.Password,
	})
}

func (s *GormUserStore) SoftDelete(ctx context.Context, id string) (*models.User, error) {
	return s.updateActive(ctx, id, map[string]any{"deleted": true})
}

// updateActive applies values only while the row is still active, so a
// concurrent delete can never be followed by a write.
func (s *GormUserStore) updateActive(ctx context.Context, id string, values map[string]any) (*models.User, error) {
	res := s.DB.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND deleted = ?", id, false).
		Updates(values)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetByID(ctx, id)
}
