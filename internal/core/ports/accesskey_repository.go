package ports

import (
	"context"
	"time"

	"github.com/nextgen-lms/backend/internal/core/domain"
)

// AccessKeyUpdate is a field mask for partial key updates. CurrentUses is
// deliberately absent: the usage counter only moves through ConsumeUse.
type AccessKeyUpdate struct {
	Key          *string
	CourseID     *string
	ExpiryDate   *time.Time
	ClearExpiry  bool
	MaxUses      *int
	ClearMaxUses bool
	IsActive     *bool
}

// AccessKeyRepository defines persistence operations on the accessKeys
// collection.
type AccessKeyRepository interface {
	Create(ctx context.Context, key *domain.AccessKey) (*domain.AccessKey, error)
	FindByID(ctx context.Context, id string) (*domain.AccessKey, error)
	// FindByKeyAndCourse matches on both the key string and the bound course;
	// a key scoped to another course must not be returned.
	FindByKeyAndCourse(ctx context.Context, key, courseID string) (*domain.AccessKey, error)
	ExistsByKey(ctx context.Context, key string) (bool, error)
	// List returns keys sorted by creation time descending, optionally
	// filtered by course.
	List(ctx context.Context, courseID string) ([]*domain.AccessKey, error)
	Update(ctx context.Context, id string, upd AccessKeyUpdate) (*domain.AccessKey, error)
	Delete(ctx context.Context, id string) error

	// ConsumeUse increments current_uses by exactly one and stamps
	// last_used_at/last_used_by, guarded so the counter never passes max_uses
	// even under concurrent redemptions. Returns domain.ErrKeyUsageExceeded
	// when the guard rejects the write.
	ConsumeUse(ctx context.Context, id, usedBy string, now time.Time) error
}

// GrantRepository is the append-only audit log of successful redemptions.
type GrantRepository interface {
	Append(ctx context.Context, grant *domain.AccessGrant) error
}
