package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/nextgen-lms/backend/internal/core/domain"
)

type stubActivityRepo struct {
	events []*domain.ActivityEvent
	err    error
}

func (r *stubActivityRepo) Append(_ context.Context, event *domain.ActivityEvent) error {
	if r.err != nil {
		return r.err
	}
	clone := *event
	r.events = append(r.events, &clone)
	return nil
}

func (r *stubActivityRepo) ListRecent(_ context.Context, limit int) ([]*domain.ActivityEvent, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := r.events
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func TestAdminService_DashboardStats(t *testing.T) {
	users := newStubUserRepo()
	courses := newStubCourseRepo()
	svc := NewAdminService(users, courses, &stubActivityRepo{}, zerolog.Nop())

	_, _ = users.Create(context.Background(), &domain.User{Name: "s1", Email: "s1@example.com", Role: domain.RoleStudent})
	_, _ = users.Create(context.Background(), &domain.User{Name: "s2", Email: "s2@example.com", Role: domain.RoleStudent})
	_, _ = users.Create(context.Background(), &domain.User{Name: "i1", Email: "i1@example.com", Role: domain.RoleInstructor})
	_, _ = users.Create(context.Background(), &domain.User{Name: "a1", Email: "a1@example.com", Role: domain.RoleAdmin})

	_, _ = courses.Create(context.Background(), &domain.Course{Title: "A", Students: 10})
	_, _ = courses.Create(context.Background(), &domain.Course{Title: "B", Students: 5})

	stats, err := svc.DashboardStats(context.Background())
	if err != nil {
		t.Fatalf("DashboardStats returned error: %v", err)
	}
	if stats.TotalUsers != 4 || stats.Students != 2 || stats.Instructors != 1 || stats.Admins != 1 {
		t.Fatalf("unexpected user counts: %+v", stats)
	}
	if stats.TotalCourses != 2 {
		t.Fatalf("expected 2 courses, got %d", stats.TotalCourses)
	}
	if stats.TotalEnrollments != 15 {
		t.Fatalf("expected 15 enrollments, got %d", stats.TotalEnrollments)
	}
}

func TestAdminService_RecentActivities_FeedFailureIsNonFatal(t *testing.T) {
	users := newStubUserRepo()
	courses := newStubCourseRepo()
	activities := &stubActivityRepo{err: errors.New("store down")}
	svc := NewAdminService(users, courses, activities, zerolog.Nop())

	_, _ = users.Create(context.Background(), &domain.User{Name: "s1", Email: "s1@example.com", Role: domain.RoleStudent})
	_, _ = courses.Create(context.Background(), &domain.Course{Title: "A"})

	recent, err := svc.RecentActivities(context.Background(), 10)
	if err != nil {
		t.Fatalf("RecentActivities returned error: %v", err)
	}
	if len(recent.RecentUsers) != 1 || len(recent.RecentCourses) != 1 {
		t.Fatalf("unexpected feeds: %+v", recent)
	}
	if recent.RecentEvents != nil {
		t.Fatalf("expected nil events when the log is unreadable, got %+v", recent.RecentEvents)
	}
}

func TestActivityService_RecordAndRecent(t *testing.T) {
	repo := &stubActivityRepo{}
	svc := NewActivityService(repo, zerolog.Nop())

	event := domain.ActivityEvent{Type: domain.ActivityKeyRedeemed, ActorID: "user-1", Subject: "course-1"}
	if err := svc.Record(context.Background(), event); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}

	recent, err := svc.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(recent) != 1 || recent[0].Type != domain.ActivityKeyRedeemed {
		t.Fatalf("unexpected feed: %+v", recent)
	}
}
