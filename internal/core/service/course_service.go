package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nextgen-lms/backend/internal/api/metrics"
	"github.com/nextgen-lms/backend/internal/core/domain"
	"github.com/nextgen-lms/backend/internal/core/ports"
)

// CatalogCache abstracts the read-through cache (Redis) in front of the
// public course list.
type CatalogCache interface {
	GetCourses(ctx context.Context) ([]*domain.Course, bool, error)
	SetCourses(ctx context.Context, courses []*domain.Course) error
	InvalidateCourses(ctx context.Context) error
}

const defaultRating = 5.0

// CourseService implements the catalog operations.
type CourseService struct {
	repo       ports.CourseRepository
	cache      CatalogCache
	activities ports.ActivitySink
	log        zerolog.Logger
}

func NewCourseService(repo ports.CourseRepository, cache CatalogCache, activities ports.ActivitySink, log zerolog.Logger) *CourseService {
	return &CourseService{repo: repo, cache: cache, activities: activities, log: log}
}

// List returns catalog entries. The unfiltered list is served cache-aside;
// cache failures degrade to a store read.
func (s *CourseService) List(ctx context.Context, filter ports.ListCoursesFilter) ([]*domain.Course, error) {
	unfiltered := filter == (ports.ListCoursesFilter{})

	if unfiltered && s.cache != nil {
		courses, hit, err := s.cache.GetCourses(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("course cache read failed, falling back to store")
		} else if hit {
			metrics.CatalogCacheTotal.WithLabelValues("hit").Inc()
			return courses, nil
		} else {
			metrics.CatalogCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	courses, err := s.repo.List(ctx, ports.ListCoursesFilter{
		Level:      filter.Level,
		Instructor: filter.Instructor,
	})
	if err != nil {
		return nil, err
	}

	if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
		matched := courses[:0]
		for _, c := range courses {
			if strings.Contains(strings.ToLower(c.Title), search) ||
				strings.Contains(strings.ToLower(c.Description), search) ||
				strings.Contains(strings.ToLower(c.Instructor), search) {
				matched = append(matched, c)
			}
		}
		courses = matched
	}

	if unfiltered && s.cache != nil {
		if err := s.cache.SetCourses(ctx, courses); err != nil {
			s.log.Warn().Err(err).Msg("course cache write failed")
		}
	}

	return courses, nil
}

func (s *CourseService) Get(ctx context.Context, id string) (*domain.Course, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CourseService) Create(ctx context.Context, actor domain.Principal, in ports.CreateCourseInput) (*domain.Course, error) {
	now := time.Now().UTC()

	rating := defaultRating
	if in.Rating != nil {
		rating = *in.Rating
	}
	students := 0
	if in.Students != nil {
		students = *in.Students
	}

	course := &domain.Course{
		Title:       in.Title,
		Description: in.Description,
		Instructor:  in.Instructor,
		Duration:    in.Duration,
		Level:       in.Level,
		Price:       in.Price,
		Rating:      rating,
		Students:    students,
		Image:       in.Image,
		Skills:      in.Skills,
		Curriculum:  in.Curriculum,
		IsActive:    true,
		CreatedBy:   actor.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, course)
	if err != nil {
		s.log.Error().Err(err).Str("title", in.Title).Msg("failed to create course")
		return nil, err
	}

	s.invalidate(ctx)
	metrics.CoursesCreatedTotal.WithLabelValues(created.Level).Inc()
	if s.activities != nil {
		s.activities.Enqueue(domain.ActivityEvent{
			Type:       domain.ActivityCourseCreated,
			ActorID:    actor.ID,
			ActorName:  actor.Name,
			Subject:    created.ID,
			OccurredAt: now,
		})
	}
	s.log.Info().Str("course_id", created.ID).Str("title", created.Title).Msg("course created")

	return created, nil
}

func (s *CourseService) Update(ctx context.Context, id string, upd ports.CourseUpdate) (*domain.Course, error) {
	updated, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.log.Info().Str("course_id", id).Msg("course updated")
	return updated, nil
}

func (s *CourseService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	s.log.Info().Str("course_id", id).Msg("course deleted")
	return nil
}

func (s *CourseService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateCourses(ctx); err != nil {
		s.log.Warn().Err(err).Msg("course cache invalidation failed")
	}
}
