package ports

import (
	"context"

	"github.com/nextgen-lms/backend/internal/core/domain"
)

// ListCoursesFilter carries the query parameters for listing catalog entries.
// Level and Instructor filter at the store; Search is applied in memory by the
// service over title, description and instructor.
type ListCoursesFilter struct {
	Level      string
	Instructor string
	Search     string
}

// CourseUpdate is a field mask for partial course updates.
type CourseUpdate struct {
	Title       *string
	Description *string
	Instructor  *string
	Duration    *string
	Level       *string
	Price       *float64
	Rating      *float64
	Students    *int
	Image       *string
	Skills      []string
	Curriculum  []string
	IsActive    *bool
}

// CourseRepository defines persistence operations on the courses collection.
type CourseRepository interface {
	Create(ctx context.Context, course *domain.Course) (*domain.Course, error)
	FindByID(ctx context.Context, id string) (*domain.Course, error)
	List(ctx context.Context, filter ListCoursesFilter) ([]*domain.Course, error)
	Update(ctx context.Context, id string, upd CourseUpdate) (*domain.Course, error)
	Delete(ctx context.Context, id string) error

	Count(ctx context.Context) (int64, error)
	// SumStudents totals the denormalized enrollment counters across the catalog.
	SumStudents(ctx context.Context) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.Course, error)
}
