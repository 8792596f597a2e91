package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/devlink/devlink-api/internal/core/domain"
	"github.com/devlink/devlink-api/internal/core/ports"
)

// PostService implements post aggregate operations and the like/comment
// collection mutations.
type PostService struct {
	posts    ports.PostRepository
	users    ports.UserRepository
	activity ports.ActivityRecorder
	log      zerolog.Logger
}

func NewPostService(
	posts ports.PostRepository,
	users ports.UserRepository,
	activity ports.ActivityRecorder,
	log zerolog.Logger,
) *PostService {
	return &PostService{posts: posts, users: users, activity: activity, log: log}
}

var _ ports.PostService = (*PostService)(nil)

// Create stores a new post owned by the actor, with a snapshot of the
// author's name and avatar so the feed needs no user join.
func (s *PostService) Create(ctx context.Context, actor domain.Actor, text string) (*domain.Post, error) {
	author, err := s.users.FindByID(ctx, actor.SubjectID)
	if err != nil {
		return nil, err
	}

	post := &domain.Post{
		OwnerID:    actor.SubjectID,
		AuthorName: author.Name,
		AvatarURL:  author.AvatarURL,
		Text:       text,
		Likes:      []domain.Like{},
		Comments:   []domain.Comment{},
		CreatedAt:  time.Now().UTC(),
	}

	created, err := s.posts.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	s.record(domain.Activity{Kind: domain.ActivityPostCreated, PostID: created.ID, ActorID: actor.SubjectID})
	s.log.Info().Str("post_id", created.ID).Str("owner_id", actor.SubjectID).Msg("post created")
	return created, nil
}

func (s *PostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	return s.posts.FindByID(ctx, id)
}

func (s *PostService) List(ctx context.Context) ([]domain.Post, error) {
	return s.posts.FindAll(ctx)
}

// Delete removes a post. Owner only.
func (s *PostService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if d := domain.PermitAggregateMutation(actor, post.OwnerID, true); d != domain.Allow {
		return domain.DecisionErr(d, domain.ErrPostNotFound)
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("post_id", id).Str("owner_id", actor.SubjectID).Msg("post deleted")
	return nil
}

// Like records the actor's like on a post. Any authenticated actor may
// like any post, but at most once.
func (s *PostService) Like(ctx context.Context, actor domain.Actor, postID string) ([]domain.Like, error) {
	post, err := s.mutate(ctx, postID, func(p *domain.Post) error {
		likes, err := domain.AppendLike(p.Likes, actor.SubjectID, time.Now().UTC())
		if err != nil {
			return err
		}
		p.Likes = likes
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.record(domain.Activity{Kind: domain.ActivityPostLiked, PostID: postID, ActorID: actor.SubjectID})
	return post.Likes, nil
}

// Unlike removes the actor's like. The effect is actor-scoped: only the
// actor's own like can be removed.
func (s *PostService) Unlike(ctx context.Context, actor domain.Actor, postID string) ([]domain.Like, error) {
	post, err := s.mutate(ctx, postID, func(p *domain.Post) error {
		likes, err := domain.RemoveLike(p.Likes, actor.SubjectID)
		if err != nil {
			return err
		}
		p.Likes = likes
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.record(domain.Activity{Kind: domain.ActivityPostUnliked, PostID: postID, ActorID: actor.SubjectID})
	return post.Likes, nil
}

// AddComment appends a comment authored by the actor. Commenting does
// not require post ownership.
func (s *PostService) AddComment(ctx context.Context, actor domain.Actor, postID, text string) ([]domain.Comment, error) {
	author, err := s.users.FindByID(ctx, actor.SubjectID)
	if err != nil {
		return nil, err
	}

	comment := domain.Comment{
		ID:         uuid.NewString(),
		AuthorID:   actor.SubjectID,
		AuthorName: author.Name,
		AvatarURL:  author.AvatarURL,
		Text:       text,
		CreatedAt:  time.Now().UTC(),
	}

	post, err := s.mutate(ctx, postID, func(p *domain.Post) error {
		p.Comments = append(p.Comments, comment)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.record(domain.Activity{Kind: domain.ActivityCommentAdded, PostID: postID, ActorID: actor.SubjectID, SubItemID: comment.ID})
	return post.Comments, nil
}

// RemoveComment removes a comment: the post owner moderates any comment,
// the author retracts their own. An absent comment is reported before
// ownership is evaluated.
func (s *PostService) RemoveComment(ctx context.Context, actor domain.Actor, postID, commentID string) ([]domain.Comment, error) {
	post, err := s.mutate(ctx, postID, func(p *domain.Post) error {
		if d := domain.PermitCommentRemoval(actor, p.OwnerID, p.CommentByID(commentID)); d != domain.Allow {
			return domain.DecisionErr(d, domain.ErrItemNotFound)
		}
		rest, err := domain.RemoveByID(p.Comments, commentID)
		if err != nil {
			return err
		}
		p.Comments = rest
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.record(domain.Activity{Kind: domain.ActivityCommentRemoved, PostID: postID, ActorID: actor.SubjectID, SubItemID: commentID})
	return post.Comments, nil
}

// mutate loads the post, applies the pure collection change, and
// persists with a compare-and-swap on the loaded version. A lost race
// surfaces as domain.ErrVersionConflict rather than overwriting a
// concurrent mutation.
func (s *PostService) mutate(ctx context.Context, postID string, apply func(*domain.Post) error) (*domain.Post, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := apply(post); err != nil {
		return nil, err
	}
	return s.posts.Replace(ctx, post)
}

func (s *PostService) record(activity domain.Activity) {
	if s.activity == nil {
		return
	}
	activity.At = time.Now().UTC()
	s.activity.Record(activity)
}
