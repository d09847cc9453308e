package mocks

import (
	"context"

	"go-users/internal/models"

	"github.com/stretchr/testify/mock"
)

type RoleStore struct{ mock.Mock }

func (m *RoleStore) FindByTitle(ctx context.Context, title string) (*models.Role, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Role), args.Error(1)
}

func (m *RoleStore) EnsureRoles(ctx context.Context, titles ...string) error {
	return m.Called(ctx, titles).Error(0)
}
