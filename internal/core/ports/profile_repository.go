package ports

import (
	"context"

	"github.com/devlink/devlink-api/internal/core/domain"
)

// ProfileRepository defines persistence for profile aggregates.
//
// Replace is a compare-and-swap on the document version captured at load
// time: it fails with domain.ErrVersionConflict when the stored version
// has moved, so interleaved read-modify-write cycles cannot silently
// overwrite each other.
type ProfileRepository interface {
	Upsert(ctx context.Context, profile *domain.Profile) (*domain.Profile, error)
	Replace(ctx context.Context, profile *domain.Profile) (*domain.Profile, error)
	FindByOwner(ctx context.Context, ownerID string) (*domain.Profile, error)
	FindAll(ctx context.Context) ([]domain.Profile, error)
	DeleteByOwner(ctx context.Context, ownerID string) error
}
