package accounts

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/knightmeat/taste-backend/pkg/errors"
	"github.com/knightmeat/taste-backend/pkg/security"
)

func (s *service) ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return pkgerrors.New(pkgerrors.CodeBadRequest, "email is required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeBadRequest, "user with this email does not exist")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	token, err := security.GenerateRandomString(resetTokenLength)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate reset token")
	}

	// Overwrites any previous token; only the latest one is honored.
	if err := s.users.SetResetToken(ctx, user.ID, &token); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store reset token")
	}

	if err := s.mailer.SendPasswordResetEmail(ctx, user.Email, user.FullName(), token); err != nil {
		s.logg.Error(s.logg.WithUserID(ctx, user.ID.String()), "sending password reset email failed", err)
	}
	return nil
}

func (s *service) ResetPassword(ctx context.Context, token string, req ResetPasswordRequest) error {
	if strings.TrimSpace(token) == "" {
		return pkgerrors.New(pkgerrors.CodeBadRequest, "reset token is required")
	}
	if err := s.validateNewPassword(req.Password1, req.Password2); err != nil {
		return err
	}

	user, err := s.users.FindByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeBadRequest, "invalid or already used reset token")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup reset token")
	}

	passwordHash, err := security.HashPassword(req.Password1, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	// UpdatePassword clears the reset token, making it single use.
	if err := s.users.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update password")
	}
	return nil
}

func (s *service) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	if err := s.validateNewPassword(req.Password1, req.Password2); err != nil {
		return err
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}

	valid, err := security.VerifyPassword(req.OldPassword, user.PasswordHash)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return pkgerrors.New(pkgerrors.CodeBadRequest, "old password is incorrect")
	}

	passwordHash, err := security.HashPassword(req.Password1, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	if err := s.users.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update password")
	}
	return nil
}
