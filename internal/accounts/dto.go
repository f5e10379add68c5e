package accounts

import (
	"github.com/knightmeat/taste-backend/internal/users"
)

// RegisterRequest is the validated payload for creating an account.
type RegisterRequest struct {
	FirstName string `json:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name" validate:"required,max=150"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password1 string `json:"password1" validate:"required"`
	Password2 string `json:"password2" validate:"required"`
}

// RegisterResponse confirms account creation; no session is issued here.
type RegisterResponse struct {
	Message string         `json:"message"`
	User    *users.UserDTO `json:"user"`
}

// LoginRequest carries the credentials for password authentication.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the token pair plus the public profile projection.
type LoginResponse struct {
	AccessToken  string         `json:"access"`
	RefreshToken string         `json:"refresh"`
	User         *users.UserDTO `json:"user"`
}

// LogoutRequest carries the refresh token to revoke.
type LogoutRequest struct {
	RefreshToken string `json:"refresh" validate:"required"`
}

// RefreshRequest exchanges an expired access token plus a live refresh token
// for a fresh pair.
type RefreshRequest struct {
	AccessToken  string `json:"access" validate:"required"`
	RefreshToken string `json:"refresh" validate:"required"`
}

// RefreshResponse returns the rotated token pair.
type RefreshResponse struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
}

// ForgotPasswordRequest starts the reset flow for the given address.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest completes the reset flow; the token arrives in the URL.
type ResetPasswordRequest struct {
	Password1 string `json:"password1" validate:"required"`
	Password2 string `json:"password2" validate:"required"`
}

// ChangePasswordRequest rotates the password for an authenticated user.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	Password1   string `json:"password1" validate:"required"`
	Password2   string `json:"password2" validate:"required"`
}

// ChangePhoneNumberRequest overwrites the phone number field.
type ChangePhoneNumberRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,max=31"`
}

// ChangeLocationRequest overwrites the address field set as a unit.
type ChangeLocationRequest struct {
	Address1 string `json:"address_1" validate:"required,max=255"`
	Address2 string `json:"address_2" validate:"max=255"`
	City     string `json:"city" validate:"required,max=255"`
	Country  string `json:"country" validate:"required,max=255"`
}

// ChangeNamesRequest overwrites both name fields as a unit.
type ChangeNamesRequest struct {
	FirstName string `json:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name" validate:"required,max=150"`
}

// ChangeProfilePictureRequest overwrites the stored profile picture reference.
type ChangeProfilePictureRequest struct {
	ProfilePictureURL string `json:"profile_picture" validate:"required,url,max=1024"`
}
