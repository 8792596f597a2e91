package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/devlink/devlink-api/internal/core/domain"
)

type postFixture struct {
	svc      *PostService
	posts    *stubPostRepo
	recorder *stubRecorder
	owner    domain.Actor
	other    domain.Actor
	third    domain.Actor
	postID   string
}

func newPostFixture(t *testing.T) *postFixture {
	t.Helper()
	users := newStubUserRepo()
	posts := newStubPostRepo()
	recorder := &stubRecorder{}
	svc := NewPostService(posts, users, recorder, zerolog.Nop())

	var actors []domain.Actor
	for _, name := range []string{"Alice", "Bob", "Carol"} {
		u, err := users.Create(context.Background(), &domain.User{Name: name, Email: name + "@example.com"})
		if err != nil {
			t.Fatalf("user setup failed: %v", err)
		}
		actors = append(actors, domain.Actor{SubjectID: u.ID})
	}

	post, err := svc.Create(context.Background(), actors[0], "hello world")
	if err != nil {
		t.Fatalf("post setup failed: %v", err)
	}

	return &postFixture{
		svc:      svc,
		posts:    posts,
		recorder: recorder,
		owner:    actors[0],
		other:    actors[1],
		third:    actors[2],
		postID:   post.ID,
	}
}

func TestPostService_Create(t *testing.T) {
	f := newPostFixture(t)

	post, err := f.svc.Get(context.Background(), f.postID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if post.OwnerID != f.owner.SubjectID {
		t.Fatalf("owner %q, want %q", post.OwnerID, f.owner.SubjectID)
	}
	if post.AuthorName != "Alice" {
		t.Fatalf("author snapshot missing: %+v", post)
	}
	if kinds := f.recorder.kinds(); len(kinds) != 1 || kinds[0] != domain.ActivityPostCreated {
		t.Fatalf("unexpected activity trail: %v", kinds)
	}
}

func TestPostService_Delete_OwnerOnly(t *testing.T) {
	f := newPostFixture(t)

	if err := f.svc.Delete(context.Background(), f.other, f.postID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("non-owner delete: expected ErrForbidden, got %v", err)
	}
	if _, err := f.svc.Get(context.Background(), f.postID); err != nil {
		t.Fatalf("post vanished after forbidden delete: %v", err)
	}

	if err := f.svc.Delete(context.Background(), f.owner, f.postID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if _, err := f.svc.Get(context.Background(), f.postID); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound after delete, got %v", err)
	}
}

func TestPostService_Like_Twice(t *testing.T) {
	f := newPostFixture(t)

	likes, err := f.svc.Like(context.Background(), f.other, f.postID)
	if err != nil {
		t.Fatalf("first like failed: %v", err)
	}
	if len(likes) != 1 || likes[0].ActorID != f.other.SubjectID {
		t.Fatalf("unexpected likes: %+v", likes)
	}

	if _, err := f.svc.Like(context.Background(), f.other, f.postID); !errors.Is(err, domain.ErrAlreadyLiked) {
		t.Fatalf("second like: expected ErrAlreadyLiked, got %v", err)
	}

	post, err := f.svc.Get(context.Background(), f.postID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(post.Likes) != 1 {
		t.Fatalf("conflict mutated the likes collection: %+v", post.Likes)
	}
}

func TestPostService_Unlike_NeverLiked(t *testing.T) {
	f := newPostFixture(t)

	if _, err := f.svc.Unlike(context.Background(), f.other, f.postID); !errors.Is(err, domain.ErrNotLiked) {
		t.Fatalf("expected ErrNotLiked, got %v", err)
	}

	post, err := f.svc.Get(context.Background(), f.postID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(post.Likes) != 0 {
		t.Fatalf("failed unlike changed the likes collection: %+v", post.Likes)
	}
}

func TestPostService_LikeUnlike_ActorScoped(t *testing.T) {
	f := newPostFixture(t)

	if _, err := f.svc.Like(context.Background(), f.owner, f.postID); err != nil {
		t.Fatalf("owner like failed: %v", err)
	}
	if _, err := f.svc.Like(context.Background(), f.other, f.postID); err != nil {
		t.Fatalf("second actor like failed: %v", err)
	}

	likes, err := f.svc.Unlike(context.Background(), f.other, f.postID)
	if err != nil {
		t.Fatalf("Unlike failed: %v", err)
	}
	if len(likes) != 1 || likes[0].ActorID != f.owner.SubjectID {
		t.Fatalf("unlike removed the wrong actor's like: %+v", likes)
	}
}

func TestPostService_Comment_AnyAuthenticatedActor(t *testing.T) {
	f := newPostFixture(t)

	comments, err := f.svc.AddComment(context.Background(), f.other, f.postID, "nice post")
	if err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	if len(comments) != 1 {
		t.Fatalf("expected one comment, got %d", len(comments))
	}
	c := comments[0]
	if c.ID == "" {
		t.Fatalf("comment missing generated id")
	}
	if c.AuthorID != f.other.SubjectID || c.AuthorName != "Bob" {
		t.Fatalf("author not stamped: %+v", c)
	}
}

func TestPostService_RemoveComment_OwnershipMatrix(t *testing.T) {
	f := newPostFixture(t)

	add := func(actor domain.Actor) string {
		t.Helper()
		comments, err := f.svc.AddComment(context.Background(), actor, f.postID, "text")
		if err != nil {
			t.Fatalf("AddComment failed: %v", err)
		}
		return comments[len(comments)-1].ID
	}

	// Post owner removes someone else's comment.
	id := add(f.other)
	if _, err := f.svc.RemoveComment(context.Background(), f.owner, f.postID, id); err != nil {
		t.Fatalf("post owner moderation failed: %v", err)
	}

	// Author retracts their own comment on someone else's post.
	id = add(f.other)
	if _, err := f.svc.RemoveComment(context.Background(), f.other, f.postID, id); err != nil {
		t.Fatalf("author retraction failed: %v", err)
	}

	// A third actor may do neither.
	id = add(f.other)
	if _, err := f.svc.RemoveComment(context.Background(), f.third, f.postID, id); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	post, err := f.svc.Get(context.Background(), f.postID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(post.Comments) != 1 {
		t.Fatalf("forbidden removal changed the collection: %+v", post.Comments)
	}
}

func TestPostService_RemoveComment_UnknownID(t *testing.T) {
	f := newPostFixture(t)

	// Owner comments, another actor's comment appears, owner removes
	// it, then a third actor probes a nonexistent id.
	comments, err := f.svc.AddComment(context.Background(), f.other, f.postID, "from bob")
	if err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	if _, err := f.svc.RemoveComment(context.Background(), f.owner, f.postID, comments[0].ID); err != nil {
		t.Fatalf("owner removal failed: %v", err)
	}

	if _, err := f.svc.RemoveComment(context.Background(), f.third, f.postID, "does-not-exist"); !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}

	post, err := f.svc.Get(context.Background(), f.postID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(post.Comments) != 0 {
		t.Fatalf("comment collection changed: %+v", post.Comments)
	}
}

func TestPostService_MissingPost(t *testing.T) {
	f := newPostFixture(t)

	if _, err := f.svc.Like(context.Background(), f.other, "missing"); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
	if _, err := f.svc.AddComment(context.Background(), f.other, "missing", "text"); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}
