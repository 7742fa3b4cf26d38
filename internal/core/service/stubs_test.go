package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/nextgen-lms/backend/internal/core/domain"
	"github.com/nextgen-lms/backend/internal/core/ports"
)

// In-memory repository stubs. They clone on the way in and out so tests
// observe only what the service wrote back through the interface.

type stubUserRepo struct {
	seq   int
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	if u.Cart != nil {
		clone.Cart = append([]domain.CartItem{}, u.Cart...)
	}
	if u.EnrolledCourses != nil {
		clone.EnrolledCourses = append([]string{}, u.EnrolledCourses...)
	}
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailExists
		}
	}
	r.seq++
	clone := cloneUser(user)
	clone.ID = fmt.Sprintf("user-%d", r.seq)
	r.users[clone.ID] = cloneUser(clone)
	return clone, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, role string) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		if role == "" || u.Role == role {
			out = append(out, cloneUser(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, upd ports.UserUpdate) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	if upd.Bio != nil {
		u.Bio = *upd.Bio
	}
	if upd.Image != nil {
		u.Image = *upd.Image
	}
	u.UpdatedAt = time.Now().UTC()
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) SetCart(_ context.Context, id string, cart []domain.CartItem) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Cart = append([]domain.CartItem(nil), cart...)
	return nil
}

func (r *stubUserRepo) SetEnrolledCourses(_ context.Context, id string, courses []string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.EnrolledCourses = append([]string(nil), courses...)
	return nil
}

func (r *stubUserRepo) CountByRole(_ context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, u := range r.users {
		counts[u.Role]++
	}
	return counts, nil
}

func (r *stubUserRepo) ListRecent(_ context.Context, limit int) ([]*domain.User, error) {
	out, _ := r.List(context.Background(), "")
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type stubKeyRepo struct {
	seq  int
	keys map[string]*domain.AccessKey
}

func newStubKeyRepo() *stubKeyRepo {
	return &stubKeyRepo{keys: make(map[string]*domain.AccessKey)}
}

func cloneKey(k *domain.AccessKey) *domain.AccessKey {
	clone := *k
	return &clone
}

func (r *stubKeyRepo) Create(_ context.Context, key *domain.AccessKey) (*domain.AccessKey, error) {
	r.seq++
	clone := cloneKey(key)
	clone.ID = fmt.Sprintf("key-%d", r.seq)
	r.keys[clone.ID] = cloneKey(clone)
	return clone, nil
}

func (r *stubKeyRepo) FindByID(_ context.Context, id string) (*domain.AccessKey, error) {
	k, ok := r.keys[id]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	return cloneKey(k), nil
}

func (r *stubKeyRepo) FindByKeyAndCourse(_ context.Context, key, courseID string) (*domain.AccessKey, error) {
	for _, k := range r.keys {
		if k.Key == key && k.CourseID == courseID {
			return cloneKey(k), nil
		}
	}
	return nil, domain.ErrKeyNotFound
}

func (r *stubKeyRepo) ExistsByKey(_ context.Context, key string) (bool, error) {
	for _, k := range r.keys {
		if k.Key == key {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubKeyRepo) List(_ context.Context, courseID string) ([]*domain.AccessKey, error) {
	out := make([]*domain.AccessKey, 0, len(r.keys))
	for _, k := range r.keys {
		if courseID == "" || k.CourseID == courseID {
			out = append(out, cloneKey(k))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubKeyRepo) Update(_ context.Context, id string, upd ports.AccessKeyUpdate) (*domain.AccessKey, error) {
	k, ok := r.keys[id]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	if upd.Key != nil {
		k.Key = *upd.Key
	}
	if upd.CourseID != nil {
		k.CourseID = *upd.CourseID
	}
	if upd.ExpiryDate != nil {
		k.ExpiryDate = upd.ExpiryDate
	}
	if upd.ClearExpiry {
		k.ExpiryDate = nil
	}
	if upd.MaxUses != nil {
		k.MaxUses = upd.MaxUses
	}
	if upd.ClearMaxUses {
		k.MaxUses = nil
	}
	if upd.IsActive != nil {
		k.IsActive = *upd.IsActive
	}
	return cloneKey(k), nil
}

func (r *stubKeyRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.keys[id]; !ok {
		return domain.ErrKeyNotFound
	}
	delete(r.keys, id)
	return nil
}

func (r *stubKeyRepo) ConsumeUse(_ context.Context, id, usedBy string, now time.Time) error {
	k, ok := r.keys[id]
	if !ok {
		return domain.ErrKeyNotFound
	}
	if k.MaxUses != nil && k.CurrentUses >= *k.MaxUses {
		return domain.ErrKeyUsageExceeded
	}
	k.CurrentUses++
	k.LastUsedAt = &now
	k.LastUsedBy = usedBy
	k.UpdatedAt = now
	return nil
}

type stubGrantRepo struct {
	grants []*domain.AccessGrant
}

func (r *stubGrantRepo) Append(_ context.Context, grant *domain.AccessGrant) error {
	clone := *grant
	clone.ID = fmt.Sprintf("grant-%d", len(r.grants)+1)
	r.grants = append(r.grants, &clone)
	return nil
}

type stubSink struct {
	events []domain.ActivityEvent
}

func (s *stubSink) Enqueue(event domain.ActivityEvent) {
	s.events = append(s.events, event)
}
