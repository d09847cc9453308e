package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents the users table in database.
// Rows are never removed; Deleted marks a soft-deleted account.
type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	FirstName string    `gorm:"column:firstname;not null" json:"firstname"`
	LastName  string    `gorm:"column:lastname;not null" json:"lastname"`
	Username  string    `gorm:"not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	RoleID    string    `gorm:"size:36;not null" json:"role"`
	Role      *Role     `gorm:"foreignKey:RoleID" json:"-"`
	Deleted   bool      `gorm:"not null" json:"deleted"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// RoleTitle returns the preloaded role title, or "" when the role was not loaded.
func (u *User) RoleTitle() string {
	if u.Role == nil {
		return ""
	}
	return u.Role.Title
}
