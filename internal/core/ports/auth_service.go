package ports

import (
	"context"

	"github.com/devlink/devlink-api/internal/core/domain"
)

// RegisterInput carries the fields needed to create an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthService implements registration, login and current-user lookup.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	CurrentUser(ctx context.Context, actor domain.Actor) (*domain.User, error)
}

// LoginThrottle limits consecutive failed logins per key. It is advisory:
// implementations fail open when the backing store is unavailable.
type LoginThrottle interface {
	Allow(ctx context.Context, key string) (bool, error)
	RecordFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}
