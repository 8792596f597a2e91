package ports

import (
	"context"

	"github.com/devlink/devlink-api/internal/core/domain"
)

// PostService defines use-case operations on post aggregates and their
// embedded like and comment collections.
type PostService interface {
	Create(ctx context.Context, actor domain.Actor, text string) (*domain.Post, error)
	Get(ctx context.Context, id string) (*domain.Post, error)
	List(ctx context.Context) ([]domain.Post, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error

	Like(ctx context.Context, actor domain.Actor, postID string) ([]domain.Like, error)
	Unlike(ctx context.Context, actor domain.Actor, postID string) ([]domain.Like, error)
	AddComment(ctx context.Context, actor domain.Actor, postID, text string) ([]domain.Comment, error)
	RemoveComment(ctx context.Context, actor domain.Actor, postID, commentID string) ([]domain.Comment, error)
}

// ActivityRecorder accepts activity entries for asynchronous persistence.
// Recording is fire-and-forget from the request's point of view.
type ActivityRecorder interface {
	Record(activity domain.Activity)
}
