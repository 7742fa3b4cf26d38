package service

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/nextgen-lms/backend/internal/core/domain"
	"github.com/nextgen-lms/backend/internal/core/ports"
)

// NoticeCache abstracts the read-through cache (Redis) in front of the
// public notice board.
type NoticeCache interface {
	GetNotices(ctx context.Context) ([]*domain.Notice, bool, error)
	SetNotices(ctx context.Context, notices []*domain.Notice) error
	InvalidateNotices(ctx context.Context) error
}

// NoticeService implements the announcement board.
type NoticeService struct {
	repo  ports.NoticeRepository
	cache NoticeCache
	log   zerolog.Logger
}

func NewNoticeService(repo ports.NoticeRepository, cache NoticeCache, log zerolog.Logger) *NoticeService {
	return &NoticeService{repo: repo, cache: cache, log: log}
}

// ListPublic returns active notices, highest priority first, ties broken by
// recency. The sort happens in memory, mirroring the store's lack of a
// compound order on these fields. The sorted list is served cache-aside;
// cache failures degrade to a store read.
func (s *NoticeService) ListPublic(ctx context.Context) ([]*domain.Notice, error) {
	if s.cache != nil {
		notices, hit, err := s.cache.GetNotices(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("notice cache read failed, falling back to store")
		} else if hit {
			return notices, nil
		}
	}

	notices, err := s.repo.List(ctx, true)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(notices, func(i, j int) bool {
		if notices[i].Priority != notices[j].Priority {
			return notices[i].Priority > notices[j].Priority
		}
		return notices[i].CreatedAt.After(notices[j].CreatedAt)
	})

	if s.cache != nil {
		if err := s.cache.SetNotices(ctx, notices); err != nil {
			s.log.Warn().Err(err).Msg("notice cache write failed")
		}
	}
	return notices, nil
}

// ListAll returns every notice for the admin panel, newest first.
func (s *NoticeService) ListAll(ctx context.Context) ([]*domain.Notice, error) {
	notices, err := s.repo.List(ctx, false)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(notices, func(i, j int) bool {
		return notices[i].CreatedAt.After(notices[j].CreatedAt)
	})
	return notices, nil
}

func (s *NoticeService) Get(ctx context.Context, id string) (*domain.Notice, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *NoticeService) Create(ctx context.Context, actor domain.Principal, in ports.CreateNoticeInput) (*domain.Notice, error) {
	noticeType := in.Type
	if noticeType == "" {
		noticeType = domain.NoticeInfo
	}
	priority := 0
	if in.Priority != nil {
		priority = *in.Priority
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	now := time.Now().UTC()
	notice := &domain.Notice{
		Title:         in.Title,
		Content:       in.Content,
		Type:          noticeType,
		Priority:      priority,
		IsActive:      active,
		CreatedBy:     actor.ID,
		CreatedByName: actor.Name,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.repo.Create(ctx, notice)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.log.Info().Str("notice_id", created.ID).Msg("notice created")
	return created, nil
}

func (s *NoticeService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateNotices(ctx); err != nil {
		s.log.Warn().Err(err).Msg("notice cache invalidation failed")
	}
}

func (s *NoticeService) Update(ctx context.Context, actor domain.Principal, id string, upd ports.NoticeUpdate) (*domain.Notice, error) {
	upd.UpdatedBy = actor.ID
	upd.UpdatedByName = actor.Name

	updated, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.log.Info().Str("notice_id", id).Msg("notice updated")
	return updated, nil
}

func (s *NoticeService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	s.log.Info().Str("notice_id", id).Msg("notice deleted")
	return nil
}
