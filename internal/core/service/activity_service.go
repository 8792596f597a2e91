package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/devlink/devlink-api/internal/core/domain"
	"github.com/devlink/devlink-api/internal/core/ports"
)

type activityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

// NewActivityService returns the persistence step of the activity
// pipeline; it runs on the dispatcher workers, off the request path.
func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) *activityService {
	return &activityService{repo: repo, log: log}
}

// Process writes one activity entry to the trail.
func (s *activityService) Process(ctx context.Context, activity domain.Activity) error {
	if err := s.repo.Insert(ctx, &activity); err != nil {
		return fmt.Errorf("record activity: %w", err)
	}
	s.log.Debug().
		Str("kind", string(activity.Kind)).
		Str("post_id", activity.PostID).
		Str("actor_id", activity.ActorID).
		Msg("activity recorded")
	return nil
}
