package ports

import (
	"context"

	"github.com/nextgen-lms/backend/internal/core/domain"
)

// AddCartItemInput is the course snapshot captured at add time.
type AddCartItemInput struct {
	CourseID   string
	Title      string
	Instructor string
	Price      float64
	Image      string
	Duration   string
	Level      string
}

// CartService operates on the cart embedded in the user document. Every
// operation returns the resulting cart.
type CartService interface {
	Get(ctx context.Context, userID string) ([]domain.CartItem, error)
	Add(ctx context.Context, userID string, in AddCartItemInput) ([]domain.CartItem, error)
	// Remove filters the course out of the cart; removing an absent course is
	// a no-op returning the unchanged cart.
	Remove(ctx context.Context, userID, courseID string) ([]domain.CartItem, error)
	Clear(ctx context.Context, userID string) ([]domain.CartItem, error)
}
