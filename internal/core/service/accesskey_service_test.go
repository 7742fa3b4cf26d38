package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/nextgen-lms/backend/internal/core/domain"
	"github.com/nextgen-lms/backend/internal/core/ports"
)

func newKeyService(keys *stubKeyRepo, grants *stubGrantRepo, users *stubUserRepo) ports.AccessKeyService {
	return NewAccessKeyService(keys, grants, users, nil, &stubSink{}, zerolog.Nop())
}

func seedKey(t *testing.T, svc ports.AccessKeyService, in ports.CreateAccessKeyInput) *domain.AccessKey {
	t.Helper()
	key, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("seed key: %v", err)
	}
	return key
}

func seedUser(t *testing.T, users *stubUserRepo, name string) *domain.User {
	t.Helper()
	user, err := users.Create(context.Background(), &domain.User{
		Name:  name,
		Email: name + "@example.com",
		Role:  domain.RoleStudent,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestAccessKeyService_Create_DuplicateKey(t *testing.T) {
	keys := newStubKeyRepo()
	svc := newKeyService(keys, &stubGrantRepo{}, newStubUserRepo())

	seedKey(t, svc, ports.CreateAccessKeyInput{Key: "WEBDESIGN-2024-A1B2", CourseID: "course-1"})

	_, err := svc.Create(context.Background(), ports.CreateAccessKeyInput{Key: "WEBDESIGN-2024-A1B2", CourseID: "course-2"})
	if !errors.Is(err, domain.ErrKeyExists) {
		t.Fatalf("expected ErrKeyExists, got %v", err)
	}
}

func TestAccessKeyService_Redeem_GrantsAndEnrolls(t *testing.T) {
	keys := newStubKeyRepo()
	grants := &stubGrantRepo{}
	users := newStubUserRepo()
	svc := newKeyService(keys, grants, users)

	user := seedUser(t, users, "alice")
	key := seedKey(t, svc, ports.CreateAccessKeyInput{Key: "WEBDESIGN-2024-A1B2", CourseID: "course-1"})

	result, err := svc.Redeem(context.Background(), ports.RedeemInput{
		Key:      "WEBDESIGN-2024-A1B2",
		CourseID: "course-1",
		UserID:   user.ID,
	})
	if err != nil {
		t.Fatalf("Redeem returned error: %v", err)
	}
	if !result.AccessGranted || result.CourseID != "course-1" {
		t.Fatalf("unexpected result: %+v", result)
	}

	if len(grants.grants) != 1 {
		t.Fatalf("expected 1 grant, got %d", len(grants.grants))
	}
	grant := grants.grants[0]
	if grant.UserID != user.ID || grant.CourseID != "course-1" || grant.AccessKeyID != key.ID {
		t.Fatalf("unexpected grant: %+v", grant)
	}

	stored, _ := keys.FindByID(context.Background(), key.ID)
	if stored.CurrentUses != 1 {
		t.Fatalf("expected currentUses 1, got %d", stored.CurrentUses)
	}
	if stored.LastUsedBy != user.ID {
		t.Fatalf("expected lastUsedBy %q, got %q", user.ID, stored.LastUsedBy)
	}

	enrolled, _ := users.FindByID(context.Background(), user.ID)
	if !enrolled.Enrolled("course-1") {
		t.Fatalf("user not enrolled: %+v", enrolled.EnrolledCourses)
	}
}

func TestAccessKeyService_Redeem_WrongCourse(t *testing.T) {
	keys := newStubKeyRepo()
	svc := newKeyService(keys, &stubGrantRepo{}, newStubUserRepo())

	seedKey(t, svc, ports.CreateAccessKeyInput{Key: "WEBDESIGN-2024-A1B2", CourseID: "course-1"})

	_, err := svc.Redeem(context.Background(), ports.RedeemInput{Key: "WEBDESIGN-2024-A1B2", CourseID: "course-2"})
	if !errors.Is(err, domain.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound for wrong course, got %v", err)
	}
}

func TestAccessKeyService_Redeem_Inactive(t *testing.T) {
	keys := newStubKeyRepo()
	svc := newKeyService(keys, &stubGrantRepo{}, newStubUserRepo())

	inactive := false
	// An inactive key that is also expired must still report inactive first.
	past := time.Now().Add(-time.Hour)
	seedKey(t, svc, ports.CreateAccessKeyInput{
		Key:        "OLD-KEY",
		CourseID:   "course-1",
		IsActive:   &inactive,
		ExpiryDate: &past,
	})

	_, err := svc.Redeem(context.Background(), ports.RedeemInput{Key: "OLD-KEY", CourseID: "course-1"})
	if !errors.Is(err, domain.ErrKeyInactive) {
		t.Fatalf("expected ErrKeyInactive, got %v", err)
	}
}

func TestAccessKeyService_Redeem_Expired(t *testing.T) {
	keys := newStubKeyRepo()
	svc := newKeyService(keys, &stubGrantRepo{}, newStubUserRepo())

	past := time.Now().Add(-time.Minute)
	key := seedKey(t, svc, ports.CreateAccessKeyInput{Key: "EXPIRED", CourseID: "course-1", ExpiryDate: &past})

	_, err := svc.Redeem(context.Background(), ports.RedeemInput{Key: "EXPIRED", CourseID: "course-1"})
	if !errors.Is(err, domain.ErrKeyExpired) {
		t.Fatalf("expected ErrKeyExpired, got %v", err)
	}

	stored, _ := keys.FindByID(context.Background(), key.ID)
	if stored.CurrentUses != 0 {
		t.Fatalf("failed redemption must not consume a use, got %d", stored.CurrentUses)
	}
}

func TestAccessKeyService_Redeem_UsageCap(t *testing.T) {
	keys := newStubKeyRepo()
	grants := &stubGrantRepo{}
	users := newStubUserRepo()
	svc := newKeyService(keys, grants, users)

	max := 2
	key := seedKey(t, svc, ports.CreateAccessKeyInput{Key: "LIMITED", CourseID: "course-1", MaxUses: &max})

	for i := 0; i < 2; i++ {
		if _, err := svc.Redeem(context.Background(), ports.RedeemInput{Key: "LIMITED", CourseID: "course-1"}); err != nil {
			t.Fatalf("redemption %d failed: %v", i+1, err)
		}
	}

	_, err := svc.Redeem(context.Background(), ports.RedeemInput{Key: "LIMITED", CourseID: "course-1"})
	if !errors.Is(err, domain.ErrKeyUsageExceeded) {
		t.Fatalf("expected ErrKeyUsageExceeded, got %v", err)
	}

	stored, _ := keys.FindByID(context.Background(), key.ID)
	if stored.CurrentUses != 2 {
		t.Fatalf("counter must stop at the cap, got %d", stored.CurrentUses)
	}
}

func TestAccessKeyService_Redeem_Anonymous(t *testing.T) {
	keys := newStubKeyRepo()
	grants := &stubGrantRepo{}
	users := newStubUserRepo()
	svc := newKeyService(keys, grants, users)

	key := seedKey(t, svc, ports.CreateAccessKeyInput{Key: "OPEN", CourseID: "course-1"})

	result, err := svc.Redeem(context.Background(), ports.RedeemInput{Key: "OPEN", CourseID: "course-1"})
	if err != nil {
		t.Fatalf("Redeem returned error: %v", err)
	}
	if !result.AccessGranted {
		t.Fatalf("expected access granted")
	}

	if len(grants.grants) != 0 {
		t.Fatalf("anonymous redemption must not record a grant, got %d", len(grants.grants))
	}

	stored, _ := keys.FindByID(context.Background(), key.ID)
	if stored.CurrentUses != 1 {
		t.Fatalf("expected currentUses 1, got %d", stored.CurrentUses)
	}
	if stored.LastUsedBy != domain.AnonymousUser {
		t.Fatalf("expected lastUsedBy %q, got %q", domain.AnonymousUser, stored.LastUsedBy)
	}
}

func TestAccessKeyService_Redeem_EnrollmentIsIdempotent(t *testing.T) {
	keys := newStubKeyRepo()
	grants := &stubGrantRepo{}
	users := newStubUserRepo()
	svc := newKeyService(keys, grants, users)

	user := seedUser(t, users, "bob")
	seedKey(t, svc, ports.CreateAccessKeyInput{Key: "REPEAT", CourseID: "course-1"})

	for i := 0; i < 2; i++ {
		if _, err := svc.Redeem(context.Background(), ports.RedeemInput{
			Key:      "REPEAT",
			CourseID: "course-1",
			UserID:   user.ID,
		}); err != nil {
			t.Fatalf("redemption %d failed: %v", i+1, err)
		}
	}

	// Every successful redemption appends a grant, but the enrollment list
	// behaves as a set.
	if len(grants.grants) != 2 {
		t.Fatalf("expected 2 grants, got %d", len(grants.grants))
	}
	enrolled, _ := users.FindByID(context.Background(), user.ID)
	if len(enrolled.EnrolledCourses) != 1 {
		t.Fatalf("expected a single enrollment, got %v", enrolled.EnrolledCourses)
	}
}

func TestAccessKeyService_Redeem_MissingUserSkipsEnrollment(t *testing.T) {
	keys := newStubKeyRepo()
	grants := &stubGrantRepo{}
	users := newStubUserRepo()
	svc := newKeyService(keys, grants, users)

	seedKey(t, svc, ports.CreateAccessKeyInput{Key: "GHOST", CourseID: "course-1"})

	result, err := svc.Redeem(context.Background(), ports.RedeemInput{
		Key:      "GHOST",
		CourseID: "course-1",
		UserID:   "no-such-user",
	})
	if err != nil {
		t.Fatalf("Redeem returned error: %v", err)
	}
	if !result.AccessGranted {
		t.Fatalf("expected access granted despite missing user")
	}
	if len(grants.grants) != 1 {
		t.Fatalf("expected the grant to be recorded, got %d", len(grants.grants))
	}
}

func TestAccessKeyService_Update_ClearsLimits(t *testing.T) {
	keys := newStubKeyRepo()
	svc := newKeyService(keys, &stubGrantRepo{}, newStubUserRepo())

	max := 5
	future := time.Now().Add(24 * time.Hour)
	key := seedKey(t, svc, ports.CreateAccessKeyInput{
		Key:        "TRIMMED",
		CourseID:   "course-1",
		MaxUses:    &max,
		ExpiryDate: &future,
	})

	updated, err := svc.Update(context.Background(), key.ID, ports.AccessKeyUpdate{
		ClearExpiry:  true,
		ClearMaxUses: true,
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.ExpiryDate != nil || updated.MaxUses != nil {
		t.Fatalf("limits not cleared: %+v", updated)
	}
}

func TestAccessKeyService_Delete_NotFound(t *testing.T) {
	svc := newKeyService(newStubKeyRepo(), &stubGrantRepo{}, newStubUserRepo())

	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, domain.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
}
