package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/knightmeat/taste-backend/internal/users"
	pkgAuth "github.com/knightmeat/taste-backend/pkg/auth"
	"github.com/knightmeat/taste-backend/pkg/auth/session"
	"github.com/knightmeat/taste-backend/pkg/config"
	"github.com/knightmeat/taste-backend/pkg/db/models"
	pkgerrors "github.com/knightmeat/taste-backend/pkg/errors"
	"github.com/knightmeat/taste-backend/pkg/logger"
	"github.com/knightmeat/taste-backend/pkg/security"
)

const (
	invalidCredentialsMessage = "invalid credentials"
	verificationTokenLength   = 32
	resetTokenLength          = 32
)

// Service defines the account lifecycle behavior consumed by the controllers.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
	VerifyEmail(ctx context.Context, userID uuid.UUID, token string) error
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, accessID, refreshToken string) error
	Refresh(ctx context.Context, req RefreshRequest) (*RefreshResponse, error)
	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, token string, req ResetPasswordRequest) error
	ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error
	ChangePhoneNumber(ctx context.Context, userID uuid.UUID, req ChangePhoneNumberRequest) (*users.UserDTO, error)
	ChangeLocation(ctx context.Context, userID uuid.UUID, req ChangeLocationRequest) (*users.UserDTO, error)
	ChangeNames(ctx context.Context, userID uuid.UUID, req ChangeNamesRequest) (*users.UserDTO, error)
	ChangeProfilePicture(ctx context.Context, userID uuid.UUID, req ChangeProfilePictureRequest) (*users.UserDTO, error)
	GetUserData(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error)
}

type userRepository interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByResetToken(ctx context.Context, token string) (*models.User, error)
	MarkVerified(ctx context.Context, id uuid.UUID) error
	SetResetToken(ctx context.Context, id uuid.UUID, token *string) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdatePhoneNumber(ctx context.Context, id uuid.UUID, phoneNumber string) error
	UpdateLocation(ctx context.Context, id uuid.UUID, address1, address2, city, country string) error
	UpdateNames(ctx context.Context, id uuid.UUID, firstName, lastName string) error
	UpdateProfilePicture(ctx context.Context, id uuid.UUID, url string) error
}

type accountMailer interface {
	SendVerificationEmail(ctx context.Context, toEmail, toName, token string) error
	SendPasswordResetEmail(ctx context.Context, toEmail, toName, token string) error
}

type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	RevokeMatching(ctx context.Context, accessID, provided string) error
}

type service struct {
	users       userRepository
	mailer      accountMailer
	session     sessionManager
	logg        *logger.Logger
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
}

// ServiceParams bundles the dependencies required to build the account service.
type ServiceParams struct {
	UserRepo       userRepository
	Mailer         accountMailer
	SessionManager sessionManager
	Logger         *logger.Logger
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
}

// NewService constructs an account lifecycle service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.Mailer == nil {
		return nil, fmt.Errorf("mailer is required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{
		users:       params.UserRepo,
		mailer:      params.Mailer,
		session:     params.SessionManager,
		logg:        params.Logger,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordConfig,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeBadRequest, "email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	// Unverified accounts are rejected before the password check so the
	// caller knows verification is the blocker.
	if !user.IsVerified {
		return nil, pkgerrors.New(pkgerrors.CodeBadRequest, "email is not verified")
	}

	valid, err := security.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	accessID := session.NewAccessID()
	accessToken, err := pkgAuth.MintAccessToken(s.jwtCfg, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID:   user.ID,
		UserType: user.UserType,
		JTI:      accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	refreshToken, err := s.session.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store refresh token")
	}

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         users.FromModel(user),
	}, nil
}

func (s *service) Logout(ctx context.Context, accessID, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return pkgerrors.New(pkgerrors.CodeBadRequest, "refresh token is required")
	}
	if err := s.session.RevokeMatching(ctx, accessID, refreshToken); err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return pkgerrors.New(pkgerrors.CodeBadRequest, "invalid or expired token")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "revoke session")
	}
	return nil
}

func (s *service) Refresh(ctx context.Context, req RefreshRequest) (*RefreshResponse, error) {
	claims, err := pkgAuth.ParseAccessTokenAllowExpired(s.jwtCfg, req.AccessToken)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeBadRequest, "invalid or expired token")
	}

	newAccessID, newRefresh, err := s.session.Rotate(ctx, claims.ID, req.RefreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeBadRequest, "invalid or expired token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "rotate session")
	}

	accessToken, err := pkgAuth.MintAccessToken(s.jwtCfg, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID:   claims.UserID,
		UserType: claims.UserType,
		JTI:      newAccessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	return &RefreshResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
	}, nil
}

func (s *service) GetUserData(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return users.FromModel(user), nil
}

func (s *service) findUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	return user, nil
}

func (s *service) validateNewPassword(password1, password2 string) error {
	if password1 != password2 {
		return pkgerrors.New(pkgerrors.CodeValidation, "passwords do not match")
	}
	if err := security.ValidatePasswordStrength(password1, s.passwordCfg); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "password rejected")
	}
	return nil
}
