package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/nextgen-lms/backend/internal/core/domain"
	"github.com/nextgen-lms/backend/internal/core/ports"
)

func TestCartService_Add(t *testing.T) {
	users := newStubUserRepo()
	svc := NewCartService(users, zerolog.Nop())
	user := seedUser(t, users, "alice")

	cart, err := svc.Add(context.Background(), user.ID, ports.AddCartItemInput{
		CourseID: "course-1",
		Title:    "Web Design",
		Price:    49.99,
	})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if len(cart) != 1 {
		t.Fatalf("expected 1 item, got %d", len(cart))
	}

	item := cart[0]
	if item.Instructor != "Course Instructor" {
		t.Fatalf("expected instructor default, got %q", item.Instructor)
	}
	if item.Duration != "N/A" {
		t.Fatalf("expected duration default, got %q", item.Duration)
	}
	if item.Level != "All levels" {
		t.Fatalf("expected level default, got %q", item.Level)
	}
	if item.AddedAt.IsZero() {
		t.Fatalf("expected addedAt to be stamped")
	}
}

func TestCartService_Add_Duplicate(t *testing.T) {
	users := newStubUserRepo()
	svc := NewCartService(users, zerolog.Nop())
	user := seedUser(t, users, "bob")

	in := ports.AddCartItemInput{CourseID: "course-1", Title: "Web Design", Price: 49.99}
	if _, err := svc.Add(context.Background(), user.ID, in); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if _, err := svc.Add(context.Background(), user.ID, in); !errors.Is(err, domain.ErrCourseInCart) {
		t.Fatalf("expected ErrCourseInCart, got %v", err)
	}

	stored, _ := users.FindByID(context.Background(), user.ID)
	if len(stored.Cart) != 1 {
		t.Fatalf("duplicate add must not change the stored cart, got %d items", len(stored.Cart))
	}
}

func TestCartService_Remove_AbsentIsNoop(t *testing.T) {
	users := newStubUserRepo()
	svc := NewCartService(users, zerolog.Nop())
	user := seedUser(t, users, "carol")

	if _, err := svc.Add(context.Background(), user.ID, ports.AddCartItemInput{CourseID: "course-1", Title: "A"}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	cart, err := svc.Remove(context.Background(), user.ID, "course-2")
	if err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if len(cart) != 1 {
		t.Fatalf("removing an absent course must keep the cart, got %d items", len(cart))
	}

	cart, err = svc.Remove(context.Background(), user.ID, "course-1")
	if err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if len(cart) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(cart))
	}
}

func TestCartService_Clear(t *testing.T) {
	users := newStubUserRepo()
	svc := NewCartService(users, zerolog.Nop())
	user := seedUser(t, users, "dave")

	_, _ = svc.Add(context.Background(), user.ID, ports.AddCartItemInput{CourseID: "course-1", Title: "A"})
	_, _ = svc.Add(context.Background(), user.ID, ports.AddCartItemInput{CourseID: "course-2", Title: "B"})

	cart, err := svc.Clear(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if len(cart) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(cart))
	}
}

func TestCartService_Get_UnknownUser(t *testing.T) {
	svc := NewCartService(newStubUserRepo(), zerolog.Nop())

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
