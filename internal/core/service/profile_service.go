package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/devlink/devlink-api/internal/core/domain"
	"github.com/devlink/devlink-api/internal/core/ports"
)

// ProfileService implements profile aggregate operations and the
// owner-only experience/education collection mutations.
type ProfileService struct {
	profiles ports.ProfileRepository
	posts    ports.PostRepository
	users    ports.UserRepository
	log      zerolog.Logger
}

func NewProfileService(
	profiles ports.ProfileRepository,
	posts ports.PostRepository,
	users ports.UserRepository,
	log zerolog.Logger,
) *ProfileService {
	return &ProfileService{profiles: profiles, posts: posts, users: users, log: log}
}

var _ ports.ProfileService = (*ProfileService)(nil)

func (s *ProfileService) GetOwn(ctx context.Context, actor domain.Actor) (*domain.Profile, error) {
	return s.profiles.FindByOwner(ctx, actor.SubjectID)
}

func (s *ProfileService) GetByOwner(ctx context.Context, ownerID string) (*domain.Profile, error) {
	return s.profiles.FindByOwner(ctx, ownerID)
}

func (s *ProfileService) List(ctx context.Context) ([]domain.Profile, error) {
	return s.profiles.FindAll(ctx)
}

// Update creates the actor's profile or overwrites its scalar fields.
// The owner id comes from the actor, never from the payload, and is
// immutable once the aggregate exists. The embedded collections are not
// touched by this operation.
func (s *ProfileService) Update(ctx context.Context, actor domain.Actor, input ports.UpdateProfileInput) (*domain.Profile, error) {
	now := time.Now().UTC()
	profile := &domain.Profile{
		OwnerID:        actor.SubjectID,
		Status:         input.Status,
		Skills:         input.Skills,
		Company:        input.Company,
		Website:        input.Website,
		Location:       input.Location,
		Bio:            input.Bio,
		GithubUsername: input.GithubUsername,
		Social:         input.Social,
		UpdatedAt:      now,
		CreatedAt:      now,
	}

	updated, err := s.profiles.Upsert(ctx, profile)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("owner_id", actor.SubjectID).Msg("profile updated")
	return updated, nil
}

// DeleteOwn removes the actor's profile, posts and account.
func (s *ProfileService) DeleteOwn(ctx context.Context, actor domain.Actor) error {
	if err := s.profiles.DeleteByOwner(ctx, actor.SubjectID); err != nil {
		return err
	}
	if err := s.posts.DeleteByOwner(ctx, actor.SubjectID); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, actor.SubjectID); err != nil {
		return err
	}
	s.log.Info().Str("owner_id", actor.SubjectID).Msg("account deleted")
	return nil
}

// AddExperience prepends a work history entry to the actor's profile:
// newest entries sort first without a separate timestamp sort.
func (s *ProfileService) AddExperience(ctx context.Context, actor domain.Actor, input ports.AddExperienceInput) (*domain.Profile, error) {
	return s.mutate(ctx, actor, func(p *domain.Profile) error {
		p.Experience = domain.Prepend(p.Experience, domain.Experience{
			ID:          uuid.NewString(),
			Title:       input.Title,
			Company:     input.Company,
			Location:    input.Location,
			From:        input.From,
			To:          input.To,
			Current:     input.Current,
			Description: input.Description,
		})
		return nil
	})
}

func (s *ProfileService) RemoveExperience(ctx context.Context, actor domain.Actor, entryID string) (*domain.Profile, error) {
	return s.mutate(ctx, actor, func(p *domain.Profile) error {
		rest, err := domain.RemoveByID(p.Experience, entryID)
		if err != nil {
			return err
		}
		p.Experience = rest
		return nil
	})
}

func (s *ProfileService) AddEducation(ctx context.Context, actor domain.Actor, input ports.AddEducationInput) (*domain.Profile, error) {
	return s.mutate(ctx, actor, func(p *domain.Profile) error {
		p.Education = domain.Prepend(p.Education, domain.Education{
			ID:           uuid.NewString(),
			School:       input.School,
			Degree:       input.Degree,
			FieldOfStudy: input.FieldOfStudy,
			From:         input.From,
			To:           input.To,
			Current:      input.Current,
			Description:  input.Description,
		})
		return nil
	})
}

func (s *ProfileService) RemoveEducation(ctx context.Context, actor domain.Actor, entryID string) (*domain.Profile, error) {
	return s.mutate(ctx, actor, func(p *domain.Profile) error {
		rest, err := domain.RemoveByID(p.Education, entryID)
		if err != nil {
			return err
		}
		p.Education = rest
		return nil
	})
}

// mutate loads the actor's profile, checks the ownership policy, applies
// the pure collection change, and persists with a compare-and-swap on
// the loaded version.
func (s *ProfileService) mutate(ctx context.Context, actor domain.Actor, apply func(*domain.Profile) error) (*domain.Profile, error) {
	profile, err := s.profiles.FindByOwner(ctx, actor.SubjectID)
	if err != nil {
		return nil, err
	}

	if d := domain.PermitEntryMutation(actor, profile.OwnerID, true); d != domain.Allow {
		return nil, domain.DecisionErr(d, domain.ErrProfileNotFound)
	}

	if err := apply(profile); err != nil {
		return nil, err
	}
	profile.UpdatedAt = time.Now().UTC()

	return s.profiles.Replace(ctx, profile)
}
