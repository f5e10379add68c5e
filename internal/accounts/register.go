package accounts

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/knightmeat/taste-backend/internal/users"
	"github.com/knightmeat/taste-backend/pkg/db"
	"github.com/knightmeat/taste-backend/pkg/enums"
	pkgerrors "github.com/knightmeat/taste-backend/pkg/errors"
	"github.com/knightmeat/taste-backend/pkg/security"
)

func (s *service) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	email := strings.TrimSpace(req.Email)
	if firstName == "" || lastName == "" || email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "first name, last name, and email are required")
	}
	if err := s.validateNewPassword(req.Password1, req.Password2); err != nil {
		return nil, err
	}

	passwordHash, err := security.HashPassword(req.Password1, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	emailToken, err := security.GenerateRandomString(verificationTokenLength)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate verification token")
	}

	user, err := s.users.Create(ctx, users.CreateUserDTO{
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    firstName,
		LastName:     lastName,
		UserType:     enums.UserTypeClient,
		EmailToken:   &emailToken,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "user with this email already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}

	// Mail delivery is best effort; the account exists either way.
	if err := s.mailer.SendVerificationEmail(ctx, user.Email, user.FullName(), emailToken); err != nil {
		s.logg.Error(s.logg.WithUserID(ctx, user.ID.String()), "sending verification email failed", err)
	}

	return &RegisterResponse{
		Message: "account created, check your email to verify your address",
		User:    users.FromModel(user),
	}, nil
}

func (s *service) VerifyEmail(ctx context.Context, userID uuid.UUID, token string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	// Verified is terminal; repeating the call is a no-op.
	if user.IsVerified {
		return nil
	}

	if user.EmailToken == nil || token == "" || *user.EmailToken != token {
		return pkgerrors.New(pkgerrors.CodeBadRequest, "invalid or expired verification token")
	}

	if err := s.users.MarkVerified(ctx, user.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark verified")
	}
	return nil
}
