package ports

import (
	"context"

	"github.com/nextgen-lms/backend/internal/core/domain"
)

// ContentUpdate is a field mask for partial curriculum updates. Sections, when
// non-nil, replaces the whole section list.
type ContentUpdate struct {
	Title    *string
	Sections []domain.Section
}

// ContentRepository defines persistence operations on the courseContent
// collection.
type ContentRepository interface {
	Create(ctx context.Context, content *domain.CourseContent) (*domain.CourseContent, error)
	FindByID(ctx context.Context, id string) (*domain.CourseContent, error)
	FindByCourseID(ctx context.Context, courseID string) (*domain.CourseContent, error)
	Update(ctx context.Context, id string, upd ContentUpdate) (*domain.CourseContent, error)
	Delete(ctx context.Context, id string) error
}
