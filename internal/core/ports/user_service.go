package ports

import (
	"context"

	"github.com/nextgen-lms/backend/internal/core/domain"
)

// UpdateUserInput carries a partial user update. Role changes are honoured
// only when the acting principal is an admin.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
	Role     *string
	Bio      *string
	Image    *string
}

type UserService interface {
	List(ctx context.Context, role string) ([]*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, actor domain.Principal, id string, in UpdateUserInput) (*domain.User, error)
	// Delete removes a user; actors cannot delete themselves.
	Delete(ctx context.Context, actor domain.Principal, id string) error
}
