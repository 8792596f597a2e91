package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/devlink/devlink-api/internal/core/domain"
	"github.com/devlink/devlink-api/internal/core/ports"
)

func newAuthService(users ports.UserRepository, throttle ports.LoginThrottle) *AuthService {
	vault := NewPasswordVault(4)
	tokens := NewTokenService("test-secret", time.Hour)
	return NewAuthService(users, vault, tokens, throttle, zerolog.Nop())
}

func TestAuthService_Register(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, nil)

	token, user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "pass123",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a credential to be issued")
	}
	if user.PasswordHash == "pass123" || user.PasswordHash == "" {
		t.Fatalf("password not hashed: %q", user.PasswordHash)
	}
	if user.AvatarURL == "" {
		t.Fatalf("expected derived avatar URL")
	}

	// The issued credential resolves back to the created account.
	actor, err := NewTokenService("test-secret", time.Hour).Verify(token)
	if err != nil {
		t.Fatalf("issued credential invalid: %v", err)
	}
	if actor.SubjectID != user.ID {
		t.Fatalf("credential subject %q, want %q", actor.SubjectID, user.ID)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, nil)

	input := ports.RegisterInput{Name: "Bob", Email: "bob@example.com", Password: "pass123"}
	if _, _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), input); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	repo := newStubUserRepo()
	throttle := newStubThrottle(3)
	svc := newAuthService(repo, throttle)

	if _, _, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Carol", Email: "carol@example.com", Password: "s3cret",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if token == "" || user == nil || user.Name != "Carol" {
		t.Fatalf("unexpected login result: token=%q user=%+v", token, user)
	}
}

func TestAuthService_Login_IndistinguishableFailures(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, nil)

	if _, _, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Dave", Email: "dave@example.com", Password: "goodpass",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, _, wrongPw := svc.Login(context.Background(), "dave@example.com", "badpass")
	_, _, unknown := svc.Login(context.Background(), "ghost@example.com", "whatever")

	// Unknown email and wrong password must produce the same error so
	// login cannot be used to enumerate accounts.
	if !errors.Is(wrongPw, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPw)
	}
	if !errors.Is(unknown, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknown)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newStubUserRepo()
	throttle := newStubThrottle(2)
	svc := newAuthService(repo, throttle)

	if _, _, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Eve", Email: "eve@example.com", Password: "rightpass",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, _, err := svc.Login(context.Background(), "eve@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i, err)
		}
	}

	// Limit reached: even the correct password is refused.
	if _, _, err := svc.Login(context.Background(), "eve@example.com", "rightpass"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Login_ResetsThrottle(t *testing.T) {
	repo := newStubUserRepo()
	throttle := newStubThrottle(3)
	svc := newAuthService(repo, throttle)

	if _, _, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Frank", Email: "frank@example.com", Password: "rightpass",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, _, _ = svc.Login(context.Background(), "frank@example.com", "wrong")
	if _, _, err := svc.Login(context.Background(), "frank@example.com", "rightpass"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if throttle.failures["frank@example.com"] != 0 {
		t.Fatalf("successful login did not reset the failure counter")
	}
}

func TestAuthService_CurrentUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, nil)

	_, user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Grace", Email: "grace@example.com", Password: "pass123",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	got, err := svc.CurrentUser(context.Background(), domain.Actor{SubjectID: user.ID})
	if err != nil {
		t.Fatalf("CurrentUser failed: %v", err)
	}
	if got.Email != "grace@example.com" {
		t.Fatalf("unexpected user: %+v", got)
	}

	if _, err := svc.CurrentUser(context.Background(), domain.Actor{SubjectID: "missing"}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
