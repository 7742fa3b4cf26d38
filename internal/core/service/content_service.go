package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/nextgen-lms/backend/internal/core/domain"
	"github.com/nextgen-lms/backend/internal/core/ports"
)

// ContentService implements curriculum management. Content documents live
// independently of their catalog entry.
type ContentService struct {
	repo ports.ContentRepository
	log  zerolog.Logger
}

func NewContentService(repo ports.ContentRepository, log zerolog.Logger) *ContentService {
	return &ContentService{repo: repo, log: log}
}

func (s *ContentService) Create(ctx context.Context, in ports.CreateContentInput) (*domain.CourseContent, error) {
	sections := in.Sections
	if sections == nil {
		sections = []domain.Section{}
	}

	now := time.Now().UTC()
	content := &domain.CourseContent{
		CourseID:  in.CourseID,
		Title:     in.Title,
		Sections:  sections,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, content)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("content_id", created.ID).Str("course_id", created.CourseID).Msg("course content created")
	return created, nil
}

func (s *ContentService) Get(ctx context.Context, id string) (*domain.CourseContent, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ContentService) GetByCourse(ctx context.Context, courseID string) (*domain.CourseContent, error) {
	return s.repo.FindByCourseID(ctx, courseID)
}

func (s *ContentService) Update(ctx context.Context, id string, upd ports.ContentUpdate) (*domain.CourseContent, error) {
	updated, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("content_id", id).Msg("course content updated")
	return updated, nil
}

func (s *ContentService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("content_id", id).Msg("course content deleted")
	return nil
}
