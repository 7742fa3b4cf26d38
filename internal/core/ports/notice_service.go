package ports

import (
	"context"

	"github.com/nextgen-lms/backend/internal/core/domain"
)

// CreateNoticeInput carries a new announcement. Type defaults to info,
// Priority to 0, IsActive to true.
type CreateNoticeInput struct {
	Title    string
	Content  string
	Type     string
	Priority *int
	IsActive *bool
}

type NoticeService interface {
	// ListPublic returns active notices ordered by priority desc, then
	// creation time desc.
	ListPublic(ctx context.Context) ([]*domain.Notice, error)
	// ListAll returns every notice, newest first, for the admin panel.
	ListAll(ctx context.Context) ([]*domain.Notice, error)
	Get(ctx context.Context, id string) (*domain.Notice, error)
	Create(ctx context.Context, actor domain.Principal, in CreateNoticeInput) (*domain.Notice, error)
	Update(ctx context.Context, actor domain.Principal, id string, upd NoticeUpdate) (*domain.Notice, error)
	Delete(ctx context.Context, id string) error
}
