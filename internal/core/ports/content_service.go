package ports

import (
	"context"

	"github.com/nextgen-lms/backend/internal/core/domain"
)

// CreateContentInput carries a new curriculum document.
type CreateContentInput struct {
	CourseID string
	Title    string
	Sections []domain.Section
}

type ContentService interface {
	Create(ctx context.Context, in CreateContentInput) (*domain.CourseContent, error)
	Get(ctx context.Context, id string) (*domain.CourseContent, error)
	GetByCourse(ctx context.Context, courseID string) (*domain.CourseContent, error)
	Update(ctx context.Context, id string, upd ContentUpdate) (*domain.CourseContent, error)
	Delete(ctx context.Context, id string) error
}
