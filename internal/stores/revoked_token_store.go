package stores

import (
	"context"
	"time"

	"go-users/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RevokedTokenStore keeps the access-token deny-list.
type RevokedTokenStore interface {
	Revoke(ctx context.Context, jti, userID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	// PurgeExpired drops entries whose token has expired by now.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

type GormRevokedTokenStore struct{ DB *gorm.DB }

func (s *GormRevokedTokenStore) Revoke(ctx context.Context, jti, userID string, expiresAt time.Time) error {
	rt := models.RevokedToken{
		JTI:       jti,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}
	// Logging out twice with the same token is not an error.
	return s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rt).Error
}

func (s *GormRevokedTokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var n int64
	if err := s.DB.WithContext(ctx).
		Model(&models.RevokedToken{}).
		Where("jti = ?", jti).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *GormRevokedTokenStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res := s.DB.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&models.RevokedToken{})
	return res.RowsAffected, res.Error
}
