package ports

import (
	"context"

	"github.com/devlink/devlink-api/internal/core/domain"
)

// PostRepository defines persistence for post aggregates. Replace carries
// the same compare-and-swap contract as ProfileRepository.Replace.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	Replace(ctx context.Context, post *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	FindAll(ctx context.Context) ([]domain.Post, error)
	Delete(ctx context.Context, id string) error
	DeleteByOwner(ctx context.Context, ownerID string) error
}

// ActivityRepository appends entries to the activity trail.
type ActivityRepository interface {
	Insert(ctx context.Context, activity *domain.Activity) error
}
