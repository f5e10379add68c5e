package accounts

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	pkgerrors "github.com/knightmeat/taste-backend/pkg/errors"
)

func TestRegisterMismatchedPasswordsCreatesNoUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Register(context.Background(), RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password1: "str0ng-pass",
		Password2: "different",
	})
	assertCode(t, err, pkgerrors.CodeValidation)

	if len(env.repo.byID) != 0 {
		t.Fatal("no user should be created on validation failure")
	}
	if len(env.mailer.sent) != 0 {
		t.Fatal("no mail should be sent on validation failure")
	}
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	env := newTestEnv(t)

	// All-numeric passwords fail the strength policy.
	_, err := env.svc.Register(context.Background(), RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password1: "12345678",
		Password2: "12345678",
	})
	assertCode(t, err, pkgerrors.CodeValidation)

	_, err = env.svc.Register(context.Background(), RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password1: "short1",
		Password2: "short1",
	})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	req := RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password1: "str0ng-pass",
		Password2: "str0ng-pass",
	}
	if _, err := env.svc.Register(ctx, req); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := env.svc.Register(ctx, req)
	assertCode(t, err, pkgerrors.CodeValidation)
	if len(env.repo.byID) != 1 {
		t.Fatalf("expected a single user, got %d", len(env.repo.byID))
	}
}

func TestRegisterSendsVerificationEmail(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.svc.Register(context.Background(), RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password1: "str0ng-pass",
		Password2: "str0ng-pass",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.User == nil || resp.User.IsVerified {
		t.Fatal("expected unverified user in response")
	}

	if len(env.mailer.sent) != 1 {
		t.Fatalf("expected one verification email, got %d", len(env.mailer.sent))
	}
	mail := env.mailer.sent[0]
	if mail.kind != "verification" || mail.to != "ada@example.com" {
		t.Fatalf("unexpected mail %+v", mail)
	}
	if len(mail.token) != verificationTokenLength {
		t.Fatalf("expected %d-char token, got %d", verificationTokenLength, len(mail.token))
	}

	stored, err := env.repo.FindByEmail(context.Background(), "ada@example.com")
	if err != nil {
		t.Fatalf("find user: %v", err)
	}
	if stored.EmailToken == nil || *stored.EmailToken != mail.token {
		t.Fatal("emailed token must match the persisted one")
	}
}

func TestRegisterSurvivesMailFailure(t *testing.T) {
	env := newTestEnv(t)
	env.mailer.err = errors.New("smtp down")

	resp, err := env.svc.Register(context.Background(), RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password1: "str0ng-pass",
		Password2: "str0ng-pass",
	})
	if err != nil {
		t.Fatalf("register must not fail on mail errors: %v", err)
	}
	if resp.User == nil {
		t.Fatal("expected created user despite mail failure")
	}
}

func TestVerifyEmailTransitions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.svc.Register(ctx, RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password1: "str0ng-pass",
		Password2: "str0ng-pass",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	userID := resp.User.ID
	token := env.mailer.sent[0].token

	// Unknown user id is NotFound.
	err = env.svc.VerifyEmail(ctx, uuid.New(), token)
	assertCode(t, err, pkgerrors.CodeNotFound)

	// Wrong token is rejected.
	err = env.svc.VerifyEmail(ctx, userID, "wrong-token")
	assertCode(t, err, pkgerrors.CodeBadRequest)

	// Correct token verifies and clears the token.
	if err := env.svc.VerifyEmail(ctx, userID, token); err != nil {
		t.Fatalf("verify: %v", err)
	}
	stored, _ := env.repo.FindByID(ctx, userID)
	if !stored.IsVerified || stored.EmailToken != nil {
		t.Fatalf("expected verified user with cleared token, got %+v", stored)
	}

	// Verified is terminal; repeating returns OK without mutation, even
	// with a stale token.
	if err := env.svc.VerifyEmail(ctx, userID, token); err != nil {
		t.Fatalf("re-verify should be a no-op: %v", err)
	}
	if err := env.svc.VerifyEmail(ctx, userID, "anything"); err != nil {
		t.Fatalf("re-verify ignores the token once verified: %v", err)
	}
}
