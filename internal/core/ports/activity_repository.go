package ports

import (
	"context"

	"github.com/nextgen-lms/backend/internal/core/domain"
)

// ActivityRepository is the append-only activity log behind the admin
// dashboard feed.
type ActivityRepository interface {
	Append(ctx context.Context, event *domain.ActivityEvent) error
	ListRecent(ctx context.Context, limit int) ([]*domain.ActivityEvent, error)
}
