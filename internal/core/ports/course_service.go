package ports

import (
	"context"

	"github.com/nextgen-lms/backend/internal/core/domain"
)

// CreateCourseInput carries a new catalog entry. Students and Rating fall
// back to 0 and 5.0 when unset.
type CreateCourseInput struct {
	Title       string
	Description string
	Instructor  string
	Duration    string
	Level       string
	Price       float64
	Rating      *float64
	Students    *int
	Image       string
	Skills      []string
	Curriculum  []string
}

type CourseService interface {
	List(ctx context.Context, filter ListCoursesFilter) ([]*domain.Course, error)
	Get(ctx context.Context, id string) (*domain.Course, error)
	Create(ctx context.Context, actor domain.Principal, in CreateCourseInput) (*domain.Course, error)
	Update(ctx context.Context, id string, upd CourseUpdate) (*domain.Course, error)
	Delete(ctx context.Context, id string) error
}
