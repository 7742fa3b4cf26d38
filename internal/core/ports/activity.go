package ports

import (
	"context"

	"github.com/nextgen-lms/backend/internal/core/domain"
)

// ActivitySink accepts dashboard events for asynchronous recording. Services
// fire and forget; delivery is best effort.
type ActivitySink interface {
	Enqueue(event domain.ActivityEvent)
}

// ActivityService persists and reads back dashboard events.
type ActivityService interface {
	Record(ctx context.Context, event domain.ActivityEvent) error
	Recent(ctx context.Context, limit int) ([]*domain.ActivityEvent, error)
}
