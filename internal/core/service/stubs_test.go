package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/devlink/devlink-api/internal/core/domain"
)

// In-memory stand-ins for the mongo repositories. Find operations hand
// out clones and Replace enforces the version compare-and-swap, so the
// stubs exhibit the same load-mutate-store behavior as the real store.

type stubUserRepo struct {
	seq   int
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	clone := *user
	clone.ID = fmt.Sprintf("u%d", r.seq)
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

type stubThrottle struct {
	failures map[string]int
	max      int
}

func newStubThrottle(max int) *stubThrottle {
	return &stubThrottle{failures: make(map[string]int), max: max}
}

func (t *stubThrottle) Allow(_ context.Context, key string) (bool, error) {
	return t.failures[key] < t.max, nil
}

func (t *stubThrottle) RecordFailure(_ context.Context, key string) error {
	t.failures[key]++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, key string) error {
	delete(t.failures, key)
	return nil
}

type stubProfileRepo struct {
	seq      int
	profiles map[string]*domain.Profile // keyed by owner id
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{profiles: make(map[string]*domain.Profile)}
}

func cloneProfile(p *domain.Profile) *domain.Profile {
	clone := *p
	clone.Experience = append([]domain.Experience(nil), p.Experience...)
	clone.Education = append([]domain.Education(nil), p.Education...)
	return &clone
}

func (r *stubProfileRepo) Upsert(_ context.Context, profile *domain.Profile) (*domain.Profile, error) {
	existing, ok := r.profiles[profile.OwnerID]
	if !ok {
		r.seq++
		stored := cloneProfile(profile)
		stored.ID = fmt.Sprintf("prof%d", r.seq)
		stored.Experience = []domain.Experience{}
		stored.Education = []domain.Education{}
		r.profiles[profile.OwnerID] = stored
		return cloneProfile(stored), nil
	}

	existing.Status = profile.Status
	existing.Skills = profile.Skills
	existing.Company = profile.Company
	existing.Website = profile.Website
	existing.Location = profile.Location
	existing.Bio = profile.Bio
	existing.GithubUsername = profile.GithubUsername
	existing.Social = profile.Social
	existing.UpdatedAt = profile.UpdatedAt
	return cloneProfile(existing), nil
}

func (r *stubProfileRepo) Replace(_ context.Context, profile *domain.Profile) (*domain.Profile, error) {
	stored, ok := r.profiles[profile.OwnerID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	if stored.Version != profile.Version {
		return nil, domain.ErrVersionConflict
	}
	updated := cloneProfile(profile)
	updated.Version++
	r.profiles[profile.OwnerID] = updated
	return cloneProfile(updated), nil
}

func (r *stubProfileRepo) FindByOwner(_ context.Context, ownerID string) (*domain.Profile, error) {
	p, ok := r.profiles[ownerID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return cloneProfile(p), nil
}

func (r *stubProfileRepo) FindAll(_ context.Context) ([]domain.Profile, error) {
	out := make([]domain.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, *cloneProfile(p))
	}
	return out, nil
}

func (r *stubProfileRepo) DeleteByOwner(_ context.Context, ownerID string) error {
	delete(r.profiles, ownerID)
	return nil
}

type stubPostRepo struct {
	seq   int
	posts map[string]*domain.Post
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: make(map[string]*domain.Post)}
}

func clonePost(p *domain.Post) *domain.Post {
	clone := *p
	clone.Likes = append([]domain.Like(nil), p.Likes...)
	clone.Comments = append([]domain.Comment(nil), p.Comments...)
	return &clone
}

func (r *stubPostRepo) Create(_ context.Context, post *domain.Post) (*domain.Post, error) {
	r.seq++
	stored := clonePost(post)
	stored.ID = fmt.Sprintf("post%d", r.seq)
	r.posts[stored.ID] = stored
	return clonePost(stored), nil
}

func (r *stubPostRepo) Replace(_ context.Context, post *domain.Post) (*domain.Post, error) {
	stored, ok := r.posts[post.ID]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	if stored.Version != post.Version {
		return nil, domain.ErrVersionConflict
	}
	updated := clonePost(post)
	updated.Version++
	r.posts[post.ID] = updated
	return clonePost(updated), nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return clonePost(p), nil
}

func (r *stubPostRepo) FindAll(_ context.Context) ([]domain.Post, error) {
	out := make([]domain.Post, 0, len(r.posts))
	for _, p := range r.posts {
		out = append(out, *clonePost(p))
	}
	return out, nil
}

func (r *stubPostRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *stubPostRepo) DeleteByOwner(_ context.Context, ownerID string) error {
	for id, p := range r.posts {
		if p.OwnerID == ownerID {
			delete(r.posts, id)
		}
	}
	return nil
}

type stubRecorder struct {
	mu       sync.Mutex
	recorded []domain.Activity
}

func (r *stubRecorder) Record(activity domain.Activity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recorded = append(r.recorded, activity)
}

func (r *stubRecorder) kinds() []domain.ActivityKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.ActivityKind, 0, len(r.recorded))
	for _, a := range r.recorded {
		out = append(out, a.Kind)
	}
	return out
}
