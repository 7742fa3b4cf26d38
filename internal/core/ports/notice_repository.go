package ports

import (
	"context"

	"github.com/nextgen-lms/backend/internal/core/domain"
)

// NoticeUpdate is a field mask for partial notice updates.
type NoticeUpdate struct {
	Title         *string
	Content       *string
	Type          *string
	Priority      *int
	IsActive      *bool
	UpdatedBy     string
	UpdatedByName string
}

// NoticeRepository defines persistence operations on the notices collection.
type NoticeRepository interface {
	Create(ctx context.Context, notice *domain.Notice) (*domain.Notice, error)
	FindByID(ctx context.Context, id string) (*domain.Notice, error)
	// List returns notices; when activeOnly is set, inactive notices are
	// filtered out at the store.
	List(ctx context.Context, activeOnly bool) ([]*domain.Notice, error)
	Update(ctx context.Context, id string, upd NoticeUpdate) (*domain.Notice, error)
	Delete(ctx context.Context, id string) error
}
