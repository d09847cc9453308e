package mocks

import (
	"context"

	"go-users/internal/models"
	"go-users/internal/stores"

	"github.com/stretchr/testify/mock"
)

type UserStore struct{ mock.Mock }

func userOrNil(args mock.Arguments) (*models.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return userOrNil(m.Called(ctx, email))
}

func (m *UserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	return userOrNil(m.Called(ctx, id))
}

func (m *UserStore) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *UserStore) CreateUser(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *UserStore) UpdateUser(ctx context.Context, id string, fields stores.UserUpdate) (*models.User, error) {
	return userOrNil(m.Called(ctx, id, fields))
}

func (m *UserStore) SoftDelete(ctx context.Context, id string) (*models.User, error) {
	return userOrNil(m.Called(ctx, id))
}
