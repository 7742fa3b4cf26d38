package ports

import (
	"context"

	"github.com/nextgen-lms/backend/internal/core/domain"
)

// UserUpdate is a field mask for partial user updates; nil fields are left
// untouched.
type UserUpdate struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Role         *string
	Bio          *string
	Image        *string
}

// UserRepository defines persistence operations on the users collection.
// SetCart and SetEnrolledCourses rewrite the embedded list wholesale, which is
// the only mutation model the document store offers for array fields here.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// List returns all users, optionally filtered by role.
	List(ctx context.Context, role string) ([]*domain.User, error)
	Update(ctx context.Context, id string, upd UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id string) error

	SetCart(ctx context.Context, id string, cart []domain.CartItem) error
	SetEnrolledCourses(ctx context.Context, id string, courses []string) error

	// CountByRole returns the number of users per role.
	CountByRole(ctx context.Context) (map[string]int64, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.User, error)
}
