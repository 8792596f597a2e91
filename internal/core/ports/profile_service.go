package ports

import (
	"context"
	"time"

	"github.com/devlink/devlink-api/internal/core/domain"
)

// UpdateProfileInput carries the mutable profile fields for the
// create-or-update operation. OwnerID is taken from the actor, never from
// the payload.
type UpdateProfileInput struct {
	Status         string
	Skills         []string
	Company        string
	Website        string
	Location       string
	Bio            string
	GithubUsername string
	Social         domain.SocialLinks
}

// AddExperienceInput carries a new work history entry.
type AddExperienceInput struct {
	Title       string
	Company     string
	Location    string
	From        time.Time
	To          *time.Time
	Current     bool
	Description string
}

// AddEducationInput carries a new study history entry.
type AddEducationInput struct {
	School       string
	Degree       string
	FieldOfStudy string
	From         time.Time
	To           *time.Time
	Current      bool
	Description  string
}

// ProfileService defines use-case operations on profile aggregates.
type ProfileService interface {
	GetOwn(ctx context.Context, actor domain.Actor) (*domain.Profile, error)
	GetByOwner(ctx context.Context, ownerID string) (*domain.Profile, error)
	List(ctx context.Context) ([]domain.Profile, error)
	Update(ctx context.Context, actor domain.Actor, input UpdateProfileInput) (*domain.Profile, error)
	DeleteOwn(ctx context.Context, actor domain.Actor) error

	AddExperience(ctx context.Context, actor domain.Actor, input AddExperienceInput) (*domain.Profile, error)
	RemoveExperience(ctx context.Context, actor domain.Actor, entryID string) (*domain.Profile, error)
	AddEducation(ctx context.Context, actor domain.Actor, input AddEducationInput) (*domain.Profile, error)
	RemoveEducation(ctx context.Context, actor domain.Actor, entryID string) (*domain.Profile, error)
}
