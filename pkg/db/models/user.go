package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/knightmeat/taste-backend/pkg/enums"
)

// User represents the canonical account entity.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Email        string         `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	FirstName    string         `gorm:"column:first_name;not null"`
	LastName     string         `gorm:"column:last_name;not null"`
	UserType     enums.UserType `gorm:"column:user_type;not null;default:1"`

	// EmailToken holds the pending verification token; nil once verified.
	EmailToken *string `gorm:"column:email_token"`
	IsVerified bool    `gorm:"column:is_verified;not null;default:false"`

	// PasswordResetToken is single use; cleared when a reset succeeds.
	PasswordResetToken *string `gorm:"column:password_reset_token"`

	PhoneNumber       *string `gorm:"column:phone_number"`
	Address1          *string `gorm:"column:address_1"`
	Address2          *string `gorm:"column:address_2"`
	City              *string `gorm:"column:city"`
	Country           *string `gorm:"column:country"`
	ProfilePictureURL *string `gorm:"column:profile_picture_url"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// FullName mirrors the display-name rule used in outgoing mail.
func (u User) FullName() string {
	if u.FirstName != "" && u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.Email
}
