package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/knightmeat/taste-backend/pkg/db/models"
	"github.com/knightmeat/taste-backend/pkg/enums"
)

// UserDTO is the transport shape that omits credentials and tokens.
type UserDTO struct {
	ID                uuid.UUID `json:"id"`
	Email             string    `json:"email"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	UserType          int16     `json:"user_type"`
	UserTypeDisplay   string    `json:"user_type_display"`
	IsVerified        bool      `json:"is_verified"`
	PhoneNumber       *string   `json:"phone_number"`
	Address1          *string   `json:"address_1"`
	Address2          *string   `json:"address_2"`
	City              *string   `json:"city"`
	Country           *string   `json:"country"`
	ProfilePictureURL *string   `json:"profile_picture_url"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	UserType     enums.UserType
	EmailToken   *string
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:                u.ID,
		Email:             u.Email,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		UserType:          int16(u.UserType),
		UserTypeDisplay:   u.UserType.String(),
		IsVerified:        u.IsVerified,
		PhoneNumber:       u.PhoneNumber,
		Address1:          u.Address1,
		Address2:          u.Address2,
		City:              u.City,
		Country:           u.Country,
		ProfilePictureURL: u.ProfilePictureURL,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	userType := c.UserType
	if !userType.IsValid() {
		userType = enums.UserTypeClient
	}

	return &models.User{
		ID:           uuid.New(),
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		UserType:     userType,
		EmailToken:   c.EmailToken,
	}
}
