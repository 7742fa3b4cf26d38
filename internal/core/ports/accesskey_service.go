package ports

import (
	"context"
	"time"

	"github.com/nextgen-lms/backend/internal/core/domain"
)

// CreateAccessKeyInput carries a new redeemable key. Nil ExpiryDate and
// MaxUses mean no expiry and unlimited uses. IsActive defaults to true.
type CreateAccessKeyInput struct {
	Key        string
	CourseID   string
	ExpiryDate *time.Time
	MaxUses    *int
	IsActive   *bool
}

// RedeemInput is a redemption request. UserID is empty for anonymous
// validation, which consumes a use but records no grant or enrollment.
type RedeemInput struct {
	Key      string
	CourseID string
	UserID   string
}

// RedeemResult confirms a successful redemption.
type RedeemResult struct {
	CourseID      string
	AccessGranted bool
}

type AccessKeyService interface {
	Create(ctx context.Context, in CreateAccessKeyInput) (*domain.AccessKey, error)
	List(ctx context.Context, courseID string) ([]*domain.AccessKey, error)
	Get(ctx context.Context, id string) (*domain.AccessKey, error)
	Update(ctx context.Context, id string, upd AccessKeyUpdate) (*domain.AccessKey, error)
	Delete(ctx context.Context, id string) error

	// Redeem validates the key against its business rules, consumes one use,
	// and when a user is identified records the grant and enrolls them.
	Redeem(ctx context.Context, in RedeemInput) (*RedeemResult, error)
}
