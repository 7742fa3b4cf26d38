package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/nextgen-lms/backend/internal/core/domain"
	"github.com/nextgen-lms/backend/internal/core/ports"
)

// CartService operates on the cart list embedded in the user document. The
// mutation model is read whole document, change the list in memory, write the
// list back.
type CartService struct {
	users ports.UserRepository
	log   zerolog.Logger
}

func NewCartService(users ports.UserRepository, log zerolog.Logger) *CartService {
	return &CartService{users: users, log: log}
}

func (s *CartService) Get(ctx context.Context, userID string) ([]domain.CartItem, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return cartOrEmpty(user.Cart), nil
}

// Add snapshots the course into the cart. A course already present is
// rejected without touching the stored cart.
func (s *CartService) Add(ctx context.Context, userID string, in ports.AddCartItemInput) ([]domain.CartItem, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart := cartOrEmpty(user.Cart)
	for _, item := range cart {
		if item.ID == in.CourseID {
			return nil, domain.ErrCourseInCart
		}
	}

	instructor := in.Instructor
	if instructor == "" {
		instructor = "Course Instructor"
	}
	duration := in.Duration
	if duration == "" {
		duration = "N/A"
	}
	level := in.Level
	if level == "" {
		level = "All levels"
	}

	cart = append(cart, domain.CartItem{
		ID:         in.CourseID,
		Title:      in.Title,
		Instructor: instructor,
		Price:      in.Price,
		Image:      in.Image,
		Duration:   duration,
		Level:      level,
		AddedAt:    time.Now().UTC(),
	})

	if err := s.users.SetCart(ctx, userID, cart); err != nil {
		return nil, err
	}

	s.log.Info().Str("course_id", in.CourseID).Str("user_id", userID).Msg("course added to cart")
	return cart, nil
}

// Remove filters the course out. Removing an absent course still writes the
// (unchanged) cart back and succeeds.
func (s *CartService) Remove(ctx context.Context, userID, courseID string) ([]domain.CartItem, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart := make([]domain.CartItem, 0, len(user.Cart))
	for _, item := range user.Cart {
		if item.ID != courseID {
			cart = append(cart, item)
		}
	}

	if err := s.users.SetCart(ctx, userID, cart); err != nil {
		return nil, err
	}

	s.log.Info().Str("course_id", courseID).Str("user_id", userID).Msg("course removed from cart")
	return cart, nil
}

func (s *CartService) Clear(ctx context.Context, userID string) ([]domain.CartItem, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	empty := []domain.CartItem{}
	if err := s.users.SetCart(ctx, userID, empty); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", userID).Msg("cart cleared")
	return empty, nil
}

func cartOrEmpty(cart []domain.CartItem) []domain.CartItem {
	if cart == nil {
		return []domain.CartItem{}
	}
	return cart
}
