package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/devlink/devlink-api/internal/core/domain"
	"github.com/devlink/devlink-api/internal/core/ports"
	"github.com/devlink/devlink-api/pkg/gravatar"
)

// AuthService implements registration, login and current-user lookup.
type AuthService struct {
	users    ports.UserRepository
	vault    *PasswordVault
	tokens   ports.TokenService
	throttle ports.LoginThrottle
	log      zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	vault *PasswordVault,
	tokens ports.TokenService,
	throttle ports.LoginThrottle,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{users: users, vault: vault, tokens: tokens, throttle: throttle, log: log}
}

var _ ports.AuthService = (*AuthService)(nil)

// Register creates an account, hashes the password and issues a
// credential so the client is logged in immediately.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (string, *domain.User, error) {
	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return "", nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, err
	}

	hash, err := s.vault.Hash(input.Password)
	if err != nil {
		return "", nil, err
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		AvatarURL:    gravatar.URL(input.Email),
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(created.ID)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return token, created, nil
}

// Login verifies the plaintext credentials and issues a new signed
// credential. Unknown email and wrong password are indistinguishable to
// the caller so login cannot be used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if s.throttle != nil {
		allowed, err := s.throttle.Allow(ctx, email)
		if err != nil {
			// The throttle is advisory: a broken counter must not lock
			// everyone out.
			s.log.Warn().Err(err).Msg("login throttle unavailable, allowing attempt")
		} else if !allowed {
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, email)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !s.vault.Verify(password, user.PasswordHash) {
		s.recordFailure(ctx, email)
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("failed to reset login throttle")
		}
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return token, user, nil
}

// CurrentUser returns the account behind the acting identity, password
// hash excluded by the User serialization.
func (s *AuthService) CurrentUser(ctx context.Context, actor domain.Actor) (*domain.User, error) {
	return s.users.FindByID(ctx, actor.SubjectID)
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("failed to record login failure")
	}
}
