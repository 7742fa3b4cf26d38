package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/nextgen-lms/backend/internal/core/domain"
	"github.com/nextgen-lms/backend/internal/core/ports"
)

type stubNoticeRepo struct {
	seq     int
	notices map[string]*domain.Notice
}

func newStubNoticeRepo() *stubNoticeRepo {
	return &stubNoticeRepo{notices: make(map[string]*domain.Notice)}
}

func cloneNotice(n *domain.Notice) *domain.Notice {
	clone := *n
	return &clone
}

func (r *stubNoticeRepo) Create(_ context.Context, notice *domain.Notice) (*domain.Notice, error) {
	r.seq++
	clone := cloneNotice(notice)
	clone.ID = fmt.Sprintf("notice-%d", r.seq)
	r.notices[clone.ID] = cloneNotice(clone)
	return clone, nil
}

func (r *stubNoticeRepo) FindByID(_ context.Context, id string) (*domain.Notice, error) {
	n, ok := r.notices[id]
	if !ok {
		return nil, domain.ErrNoticeNotFound
	}
	return cloneNotice(n), nil
}

func (r *stubNoticeRepo) List(_ context.Context, activeOnly bool) ([]*domain.Notice, error) {
	out := make([]*domain.Notice, 0, len(r.notices))
	for _, n := range r.notices {
		if activeOnly && !n.IsActive {
			continue
		}
		out = append(out, cloneNotice(n))
	}
	return out, nil
}

func (r *stubNoticeRepo) Update(_ context.Context, id string, upd ports.NoticeUpdate) (*domain.Notice, error) {
	n, ok := r.notices[id]
	if !ok {
		return nil, domain.ErrNoticeNotFound
	}
	if upd.Title != nil {
		n.Title = *upd.Title
	}
	if upd.Content != nil {
		n.Content = *upd.Content
	}
	if upd.Type != nil {
		n.Type = *upd.Type
	}
	if upd.Priority != nil {
		n.Priority = *upd.Priority
	}
	if upd.IsActive != nil {
		n.IsActive = *upd.IsActive
	}
	n.UpdatedBy = upd.UpdatedBy
	n.UpdatedByName = upd.UpdatedByName
	return cloneNotice(n), nil
}

func (r *stubNoticeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.notices[id]; !ok {
		return domain.ErrNoticeNotFound
	}
	delete(r.notices, id)
	return nil
}

type stubNoticeCache struct {
	notices       []*domain.Notice
	hits          int
	sets          int
	invalidations int
}

func (c *stubNoticeCache) GetNotices(_ context.Context) ([]*domain.Notice, bool, error) {
	if c.notices == nil {
		return nil, false, nil
	}
	c.hits++
	return c.notices, true, nil
}

func (c *stubNoticeCache) SetNotices(_ context.Context, notices []*domain.Notice) error {
	c.sets++
	c.notices = notices
	return nil
}

func (c *stubNoticeCache) InvalidateNotices(_ context.Context) error {
	c.invalidations++
	c.notices = nil
	return nil
}

func TestNoticeService_ListPublic_Ordering(t *testing.T) {
	repo := newStubNoticeRepo()
	svc := NewNoticeService(repo, nil, zerolog.Nop())

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seed := func(title string, priority int, createdAt time.Time, active bool) {
		_, _ = repo.Create(context.Background(), &domain.Notice{
			Title:     title,
			Priority:  priority,
			IsActive:  active,
			CreatedAt: createdAt,
		})
	}

	seed("old low", 0, base, true)
	seed("new low", 0, base.Add(time.Hour), true)
	seed("high", 5, base, true)
	seed("hidden", 9, base, false)

	notices, err := svc.ListPublic(context.Background())
	if err != nil {
		t.Fatalf("ListPublic returned error: %v", err)
	}

	got := make([]string, len(notices))
	for i, n := range notices {
		got[i] = n.Title
	}
	want := []string{"high", "new low", "old low"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestNoticeService_ListPublic_CacheAside(t *testing.T) {
	repo := newStubNoticeRepo()
	cache := &stubNoticeCache{}
	svc := NewNoticeService(repo, cache, zerolog.Nop())

	_, _ = repo.Create(context.Background(), &domain.Notice{Title: "a", IsActive: true})

	if _, err := svc.ListPublic(context.Background()); err != nil {
		t.Fatalf("ListPublic returned error: %v", err)
	}
	if cache.sets != 1 || cache.hits != 0 {
		t.Fatalf("expected cache fill on miss: sets=%d hits=%d", cache.sets, cache.hits)
	}

	if _, err := svc.ListPublic(context.Background()); err != nil {
		t.Fatalf("ListPublic returned error: %v", err)
	}
	if cache.hits != 1 {
		t.Fatalf("expected a cache hit, got %d", cache.hits)
	}
}

func TestNoticeService_Create_Defaults(t *testing.T) {
	repo := newStubNoticeRepo()
	cache := &stubNoticeCache{}
	svc := NewNoticeService(repo, cache, zerolog.Nop())

	actor := domain.Principal{ID: "admin-1", Name: "Root", Role: domain.RoleAdmin}
	notice, err := svc.Create(context.Background(), actor, ports.CreateNoticeInput{
		Title:   "Maintenance",
		Content: "Sunday downtime",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if notice.Type != domain.NoticeInfo {
		t.Fatalf("expected default type info, got %s", notice.Type)
	}
	if !notice.IsActive || notice.Priority != 0 {
		t.Fatalf("unexpected defaults: %+v", notice)
	}
	if notice.CreatedBy != actor.ID || notice.CreatedByName != actor.Name {
		t.Fatalf("missing creator attribution: %+v", notice)
	}
	if cache.invalidations != 1 {
		t.Fatalf("expected cache invalidation on create, got %d", cache.invalidations)
	}
}

func TestNoticeService_Update_StampsEditor(t *testing.T) {
	repo := newStubNoticeRepo()
	svc := NewNoticeService(repo, nil, zerolog.Nop())

	creator := domain.Principal{ID: "admin-1", Name: "Root", Role: domain.RoleAdmin}
	notice, err := svc.Create(context.Background(), creator, ports.CreateNoticeInput{Title: "t", Content: "c"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	editor := domain.Principal{ID: "admin-2", Name: "Second", Role: domain.RoleAdmin}
	title := "t2"
	updated, err := svc.Update(context.Background(), editor, notice.ID, ports.NoticeUpdate{Title: &title})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.UpdatedBy != editor.ID || updated.UpdatedByName != editor.Name {
		t.Fatalf("missing editor attribution: %+v", updated)
	}
}

func TestNoticeService_Delete_NotFound(t *testing.T) {
	svc := NewNoticeService(newStubNoticeRepo(), nil, zerolog.Nop())

	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, domain.ErrNoticeNotFound) {
		t.Fatalf("expected ErrNoticeNotFound, got %v", err)
	}
}
