package accounts

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/knightmeat/taste-backend/internal/users"
	pkgerrors "github.com/knightmeat/taste-backend/pkg/errors"
)

// Profile updates overwrite their full field set; there is no partial merge.

func (s *service) ChangePhoneNumber(ctx context.Context, userID uuid.UUID, req ChangePhoneNumberRequest) (*users.UserDTO, error) {
	phone := strings.TrimSpace(req.PhoneNumber)
	if phone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone number is required")
	}
	if _, err := s.findUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.users.UpdatePhoneNumber(ctx, userID, phone); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update phone number")
	}
	return s.GetUserData(ctx, userID)
}

func (s *service) ChangeLocation(ctx context.Context, userID uuid.UUID, req ChangeLocationRequest) (*users.UserDTO, error) {
	address1 := strings.TrimSpace(req.Address1)
	city := strings.TrimSpace(req.City)
	country := strings.TrimSpace(req.Country)
	if address1 == "" || city == "" || country == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "address_1, city, and country are required")
	}
	if _, err := s.findUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.users.UpdateLocation(ctx, userID, address1, strings.TrimSpace(req.Address2), city, country); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update location")
	}
	return s.GetUserData(ctx, userID)
}

func (s *service) ChangeNames(ctx context.Context, userID uuid.UUID, req ChangeNamesRequest) (*users.UserDTO, error) {
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	if firstName == "" || lastName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "first name and last name are required")
	}
	if _, err := s.findUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.users.UpdateNames(ctx, userID, firstName, lastName); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update names")
	}
	return s.GetUserData(ctx, userID)
}

func (s *service) ChangeProfilePicture(ctx context.Context, userID uuid.UUID, req ChangeProfilePictureRequest) (*users.UserDTO, error) {
	url := strings.TrimSpace(req.ProfilePictureURL)
	if url == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "profile picture is required")
	}
	if _, err := s.findUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.users.UpdateProfilePicture(ctx, userID, url); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update profile picture")
	}
	return s.GetUserData(ctx, userID)
}
