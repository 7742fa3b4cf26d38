package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/nextgen-lms/backend/internal/api/metrics"
	"github.com/nextgen-lms/backend/internal/core/domain"
	"github.com/nextgen-lms/backend/internal/core/ports"
)

type accessKeyService struct {
	keys       ports.AccessKeyRepository
	grants     ports.GrantRepository
	users      ports.UserRepository
	tx         ports.TxRunner
	activities ports.ActivitySink
	log        zerolog.Logger
}

// NewAccessKeyService returns an AccessKeyService implementation.
func NewAccessKeyService(
	keys ports.AccessKeyRepository,
	grants ports.GrantRepository,
	users ports.UserRepository,
	tx ports.TxRunner,
	activities ports.ActivitySink,
	log zerolog.Logger,
) ports.AccessKeyService {
	if tx == nil {
		tx = ports.NoTx{}
	}
	return &accessKeyService{
		keys:       keys,
		grants:     grants,
		users:      users,
		tx:         tx,
		activities: activities,
		log:        log,
	}
}

// Create registers a new key. The key string must be unique across all
// courses; the check-then-insert here is backed by a unique index, so a
// racing duplicate surfaces as the same conflict error.
func (s *accessKeyService) Create(ctx context.Context, in ports.CreateAccessKeyInput) (*domain.AccessKey, error) {
	if in.Key == "" || in.CourseID == "" {
		return nil, fmt.Errorf("%w: key and courseId are required", domain.ErrKeyNotFound)
	}

	exists, err := s.keys.ExistsByKey(ctx, in.Key)
	if err != nil {
		return nil, fmt.Errorf("check key uniqueness: %w", err)
	}
	if exists {
		return nil, domain.ErrKeyExists
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	now := time.Now().UTC()
	key := &domain.AccessKey{
		Key:         in.Key,
		CourseID:    in.CourseID,
		ExpiryDate:  in.ExpiryDate,
		MaxUses:     in.MaxUses,
		CurrentUses: 0,
		IsActive:    active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.keys.Create(ctx, key)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("access_key_id", created.ID).Str("course_id", created.CourseID).Msg("access key created")
	return created, nil
}

func (s *accessKeyService) List(ctx context.Context, courseID string) ([]*domain.AccessKey, error) {
	return s.keys.List(ctx, courseID)
}

func (s *accessKeyService) Get(ctx context.Context, id string) (*domain.AccessKey, error) {
	return s.keys.FindByID(ctx, id)
}

func (s *accessKeyService) Update(ctx context.Context, id string, upd ports.AccessKeyUpdate) (*domain.AccessKey, error) {
	updated, err := s.keys.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("access_key_id", id).Msg("access key updated")
	return updated, nil
}

func (s *accessKeyService) Delete(ctx context.Context, id string) error {
	if _, err := s.keys.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.keys.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("access_key_id", id).Msg("access key deleted")
	return nil
}

// Redeem validates a key and consumes one use.
//
// The key's grant append and the user's enrollment update are separate
// document writes. They run inside a store transaction when the deployment
// supports one; otherwise the sequence is best effort and a crash between
// writes can leave the counter and the grant log out of step. Callers must
// not assume atomicity across the three writes.
func (s *accessKeyService) Redeem(ctx context.Context, in ports.RedeemInput) (*ports.RedeemResult, error) {
	// 1. Look up by key AND course: a key bound to another course is invalid
	//    here even if the key string exists.
	key, err := s.keys.FindByKeyAndCourse(ctx, in.Key, in.CourseID)
	if err != nil {
		metrics.KeyRedemptionsTotal.WithLabelValues("not_found").Inc()
		return nil, err
	}

	// 2.-4. Business rules on the record fetched once: active, expiry, cap.
	now := time.Now().UTC()
	if err := key.Redeemable(now); err != nil {
		metrics.KeyRedemptionsTotal.WithLabelValues(redemptionReason(err)).Inc()
		return nil, err
	}

	// 5. Consume one use. The repository guards the increment so the counter
	//    cannot pass max_uses under concurrent redemptions.
	usedBy := in.UserID
	if usedBy == "" {
		usedBy = domain.AnonymousUser
	}
	if err := s.keys.ConsumeUse(ctx, key.ID, usedBy, now); err != nil {
		metrics.KeyRedemptionsTotal.WithLabelValues(redemptionReason(err)).Inc()
		return nil, err
	}

	// 6. Anonymous validation mutates nothing beyond the key itself.
	if in.UserID != "" {
		err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			grant := &domain.AccessGrant{
				UserID:      in.UserID,
				CourseID:    in.CourseID,
				AccessKeyID: key.ID,
				AccessKey:   key.Key,
				GrantedAt:   now,
			}
			if err := s.grants.Append(ctx, grant); err != nil {
				return fmt.Errorf("append grant: %w", err)
			}
			return s.enroll(ctx, in.UserID, in.CourseID)
		})
		if err != nil {
			metrics.KeyRedemptionsTotal.WithLabelValues("grant_failed").Inc()
			return nil, fmt.Errorf("redeem key: %w", err)
		}
	}

	metrics.KeyRedemptionsTotal.WithLabelValues("success").Inc()
	if s.activities != nil && in.UserID != "" {
		s.activities.Enqueue(domain.ActivityEvent{
			Type:       domain.ActivityKeyRedeemed,
			ActorID:    in.UserID,
			Subject:    in.CourseID,
			OccurredAt: now,
		})
	}
	s.log.Info().Str("key", in.Key).Str("course_id", in.CourseID).Msg("access key validated")

	return &ports.RedeemResult{CourseID: key.CourseID, AccessGranted: true}, nil
}

// enroll adds courseID to the user's enrolledCourses with set semantics:
// an already-enrolled course leaves the list untouched.
func (s *accessKeyService) enroll(ctx context.Context, userID, courseID string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		// A redemption by a vanished user still counts as a use; skip the
		// enrollment rather than failing the whole request.
		s.log.Warn().Str("user_id", userID).Msg("redeeming user not found, skipping enrollment")
		return nil
	}

	if user.Enrolled(courseID) {
		return nil
	}

	courses := append(user.EnrolledCourses, courseID)
	if err := s.users.SetEnrolledCourses(ctx, userID, courses); err != nil {
		return fmt.Errorf("update enrollment: %w", err)
	}
	return nil
}

func redemptionReason(err error) string {
	switch err {
	case domain.ErrKeyNotFound:
		return "not_found"
	case domain.ErrKeyInactive:
		return "inactive"
	case domain.ErrKeyExpired:
		return "expired"
	case domain.ErrKeyUsageExceeded:
		return "usage_exceeded"
	default:
		return "error"
	}
}
