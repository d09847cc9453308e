package models

import (
	"time"
)

// RevokedToken is a deny-list entry for an access token. It is only
// needed until the token would have expired anyway.
type RevokedToken struct {
	JTI       string    `gorm:"primaryKey;size:36"`
	UserID    string    `gorm:"size:36;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time
}
