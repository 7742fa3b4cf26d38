package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/nextgen-lms/backend/internal/core/domain"
	"github.com/nextgen-lms/backend/internal/core/ports"
)

type activityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

// NewActivityService returns the ActivityService backing the dashboard feed.
func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, log: log}
}

func (s *activityService) Record(ctx context.Context, event domain.ActivityEvent) error {
	if err := s.repo.Append(ctx, &event); err != nil {
		s.log.Error().Err(err).Str("type", event.Type).Msg("failed to record activity event")
		return err
	}
	return nil
}

func (s *activityService) Recent(ctx context.Context, limit int) ([]*domain.ActivityEvent, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	return s.repo.ListRecent(ctx, limit)
}
