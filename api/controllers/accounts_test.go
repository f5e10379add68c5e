package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/knightmeat/taste-backend/api/middleware"
	"github.com/knightmeat/taste-backend/internal/accounts"
	"github.com/knightmeat/taste-backend/internal/users"
	pkgerrors "github.com/knightmeat/taste-backend/pkg/errors"
	"github.com/knightmeat/taste-backend/pkg/logger"
)

type stubAccountService struct {
	registerFn       func(ctx context.Context, req accounts.RegisterRequest) (*accounts.RegisterResponse, error)
	verifyEmailFn    func(ctx context.Context, userID uuid.UUID, token string) error
	loginFn          func(ctx context.Context, req accounts.LoginRequest) (*accounts.LoginResponse, error)
	logoutFn         func(ctx context.Context, accessID, refreshToken string) error
	refreshFn        func(ctx context.Context, req accounts.RefreshRequest) (*accounts.RefreshResponse, error)
	forgotPasswordFn func(ctx context.Context, req accounts.ForgotPasswordRequest) error
	resetPasswordFn  func(ctx context.Context, token string, req accounts.ResetPasswordRequest) error
	changePasswordFn func(ctx context.Context, userID uuid.UUID, req accounts.ChangePasswordRequest) error
	changePhoneFn    func(ctx context.Context, userID uuid.UUID, req accounts.ChangePhoneNumberRequest) (*users.UserDTO, error)
	changeLocationFn func(ctx context.Context, userID uuid.UUID, req accounts.ChangeLocationRequest) (*users.UserDTO, error)
	changeNamesFn    func(ctx context.Context, userID uuid.UUID, req accounts.ChangeNamesRequest) (*users.UserDTO, error)
	changePictureFn  func(ctx context.Context, userID uuid.UUID, req accounts.ChangeProfilePictureRequest) (*users.UserDTO, error)
	getUserDataFn    func(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error)
}

func (s *stubAccountService) Register(ctx context.Context, req accounts.RegisterRequest) (*accounts.RegisterResponse, error) {
	return s.registerFn(ctx, req)
}

func (s *stubAccountService) VerifyEmail(ctx context.Context, userID uuid.UUID, token string) error {
	return s.verifyEmailFn(ctx, userID, token)
}

func (s *stubAccountService) Login(ctx context.Context, req accounts.LoginRequest) (*accounts.LoginResponse, error) {
	return s.loginFn(ctx, req)
}

func (s *stubAccountService) Logout(ctx context.Context, accessID, refreshToken string) error {
	return s.logoutFn(ctx, accessID, refreshToken)
}

func (s *stubAccountService) Refresh(ctx context.Context, req accounts.RefreshRequest) (*accounts.RefreshResponse, error) {
	return s.refreshFn(ctx, req)
}

func (s *stubAccountService) ForgotPassword(ctx context.Context, req accounts.ForgotPasswordRequest) error {
	return s.forgotPasswordFn(ctx, req)
}

func (s *stubAccountService) ResetPassword(ctx context.Context, token string, req accounts.ResetPasswordRequest) error {
	return s.resetPasswordFn(ctx, token, req)
}

func (s *stubAccountService) ChangePassword(ctx context.Context, userID uuid.UUID, req accounts.ChangePasswordRequest) error {
	return s.changePasswordFn(ctx, userID, req)
}

func (s *stubAccountService) ChangePhoneNumber(ctx context.Context, userID uuid.UUID, req accounts.ChangePhoneNumberRequest) (*users.UserDTO, error) {
	return s.changePhoneFn(ctx, userID, req)
}

func (s *stubAccountService) ChangeLocation(ctx context.Context, userID uuid.UUID, req accounts.ChangeLocationRequest) (*users.UserDTO, error) {
	return s.changeLocationFn(ctx, userID, req)
}

func (s *stubAccountService) ChangeNames(ctx context.Context, userID uuid.UUID, req accounts.ChangeNamesRequest) (*users.UserDTO, error) {
	return s.changeNamesFn(ctx, userID, req)
}

func (s *stubAccountService) ChangeProfilePicture(ctx context.Context, userID uuid.UUID, req accounts.ChangeProfilePictureRequest) (*users.UserDTO, error) {
	return s.changePictureFn(ctx, userID, req)
}

func (s *stubAccountService) GetUserData(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	return s.getUserDataFn(ctx, userID)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{Level: zerolog.Disabled})
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var env errorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return env
}

func TestAccountRegisterCreated(t *testing.T) {
	svc := &stubAccountService{
		registerFn: func(_ context.Context, req accounts.RegisterRequest) (*accounts.RegisterResponse, error) {
			return &accounts.RegisterResponse{
				Message: "verification email sent",
				User:    &users.UserDTO{Email: req.Email},
			}, nil
		},
	}

	body := `{"first_name":"Ada","last_name":"Laine","email":"ada@example.com","password1":"s3cret-pass","password2":"s3cret-pass"}`
	req := httptest.NewRequest(http.MethodPost, "/api/account/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	AccountRegister(svc, testLogger())(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var env struct {
		Data accounts.RegisterResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if env.Data.User == nil || env.Data.User.Email != "ada@example.com" {
		t.Fatalf("unexpected user payload: %+v", env.Data.User)
	}
}

func TestAccountRegisterRejectsInvalidBody(t *testing.T) {
	called := false
	svc := &stubAccountService{
		registerFn: func(context.Context, accounts.RegisterRequest) (*accounts.RegisterResponse, error) {
			called = true
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/account/register", strings.NewReader(`{"email":"not-an-email"}`))
	rec := httptest.NewRecorder()

	AccountRegister(svc, testLogger())(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if called {
		t.Fatal("service should not run for an invalid body")
	}
	if env := decodeErrorBody(t, rec); env.Error.Code != string(pkgerrors.CodeValidation) {
		t.Fatalf("error code = %q", env.Error.Code)
	}
}

func TestAccountVerifyEmailRejectsMalformedID(t *testing.T) {
	svc := &stubAccountService{
		verifyEmailFn: func(context.Context, uuid.UUID, string) error {
			t.Fatal("service should not run for a malformed id")
			return nil
		},
	}

	r := chi.NewRouter()
	r.Post("/api/account/verify-email/{id}/{token}", AccountVerifyEmail(svc, testLogger()))

	req := httptest.NewRequest(http.MethodPost, "/api/account/verify-email/not-a-uuid/sometoken", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestAccountVerifyEmailPassesParams(t *testing.T) {
	userID := uuid.New()
	var gotID uuid.UUID
	var gotToken string
	svc := &stubAccountService{
		verifyEmailFn: func(_ context.Context, id uuid.UUID, token string) error {
			gotID, gotToken = id, token
			return nil
		},
	}

	r := chi.NewRouter()
	r.Post("/api/account/verify-email/{id}/{token}", AccountVerifyEmail(svc, testLogger()))

	req := httptest.NewRequest(http.MethodPost, "/api/account/verify-email/"+userID.String()+"/tok123", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotID != userID || gotToken != "tok123" {
		t.Fatalf("service got (%s, %q)", gotID, gotToken)
	}
}

func TestAccountLoginMapsUnauthorized(t *testing.T) {
	svc := &stubAccountService{
		loginFn: func(context.Context, accounts.LoginRequest) (*accounts.LoginResponse, error) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
		},
	}

	body := `{"email":"ada@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/account/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	AccountLogin(svc, testLogger())(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if env := decodeErrorBody(t, rec); env.Error.Message != "invalid email or password" {
		t.Fatalf("message = %q", env.Error.Message)
	}
}

func TestAccountLogoutForwardsAccessID(t *testing.T) {
	var gotAccessID, gotRefresh string
	svc := &stubAccountService{
		logoutFn: func(_ context.Context, accessID, refreshToken string) error {
			gotAccessID, gotRefresh = accessID, refreshToken
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/account/logout", strings.NewReader(`{"refresh":"rt-1"}`))
	req = req.WithContext(middleware.WithAccessID(req.Context(), "jti-1"))
	rec := httptest.NewRecorder()

	AccountLogout(svc, testLogger())(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotAccessID != "jti-1" || gotRefresh != "rt-1" {
		t.Fatalf("service got (%q, %q)", gotAccessID, gotRefresh)
	}
}

func TestAccountResetPasswordUsesURLToken(t *testing.T) {
	var gotToken string
	svc := &stubAccountService{
		resetPasswordFn: func(_ context.Context, token string, _ accounts.ResetPasswordRequest) error {
			gotToken = token
			return nil
		},
	}

	r := chi.NewRouter()
	r.Post("/api/account/reset-password/{token}", AccountResetPassword(svc, testLogger()))

	body := `{"password1":"new-pass-9","password2":"new-pass-9"}`
	req := httptest.NewRequest(http.MethodPost, "/api/account/reset-password/reset-tok", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotToken != "reset-tok" {
		t.Fatalf("token = %q", gotToken)
	}
}

func TestAccountUserDetailsRequiresIdentity(t *testing.T) {
	svc := &stubAccountService{
		getUserDataFn: func(context.Context, uuid.UUID) (*users.UserDTO, error) {
			t.Fatal("service should not run without an identity")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/account/user-details", nil)
	rec := httptest.NewRecorder()

	AccountUserDetails(svc, testLogger())(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAccountUserDetailsReturnsProjection(t *testing.T) {
	userID := uuid.New()
	svc := &stubAccountService{
		getUserDataFn: func(_ context.Context, id uuid.UUID) (*users.UserDTO, error) {
			if id != userID {
				t.Fatalf("unexpected user id %s", id)
			}
			return &users.UserDTO{ID: id, Email: "ada@example.com", IsVerified: true}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/account/user-details", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
	rec := httptest.NewRecorder()

	AccountUserDetails(svc, testLogger())(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var env struct {
		Data users.UserDTO `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if env.Data.Email != "ada@example.com" || !env.Data.IsVerified {
		t.Fatalf("unexpected projection: %+v", env.Data)
	}
}

func TestAccountChangePhoneNumberReturnsUpdatedUser(t *testing.T) {
	userID := uuid.New()
	phone := "+358401234567"
	svc := &stubAccountService{
		changePhoneFn: func(_ context.Context, id uuid.UUID, req accounts.ChangePhoneNumberRequest) (*users.UserDTO, error) {
			return &users.UserDTO{ID: id, PhoneNumber: &req.PhoneNumber}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPatch, "/api/account/change-phone-number", strings.NewReader(`{"phone_number":"`+phone+`"}`))
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
	rec := httptest.NewRecorder()

	AccountChangePhoneNumber(svc, testLogger())(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var env struct {
		Data users.UserDTO `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if env.Data.PhoneNumber == nil || *env.Data.PhoneNumber != phone {
		t.Fatalf("phone = %v", env.Data.PhoneNumber)
	}
}

func TestAccountChangeLocationRejectsPartialBody(t *testing.T) {
	svc := &stubAccountService{
		changeLocationFn: func(context.Context, uuid.UUID, accounts.ChangeLocationRequest) (*users.UserDTO, error) {
			t.Fatal("service should not run for a partial body")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodPut, "/api/account/change-location", strings.NewReader(`{"address_1":"Mannerheimintie 1"}`))
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))
	rec := httptest.NewRecorder()

	AccountChangeLocation(svc, testLogger())(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestNilServiceGuard(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/account/login", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	AccountLogin(nil, testLogger())(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}
