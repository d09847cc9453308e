package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type RevokedTokenStore struct{ mock.Mock }

func (m *RevokedTokenStore) Revoke(ctx context.Context, jti, userID string, expiresAt time.Time) error {
	return m.Called(ctx, jti, userID, expiresAt).Error(0)
}

func (m *RevokedTokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

func (m *RevokedTokenStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}
