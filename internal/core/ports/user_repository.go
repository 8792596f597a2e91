package ports

import (
	"context"

	"github.com/devlink/devlink-api/internal/core/domain"
)

// UserRepository defines persistence for registered accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
