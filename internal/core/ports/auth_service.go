package ports

import (
	"context"

	"github.com/nextgen-lms/backend/internal/core/domain"
)

// RegisterInput carries a registration request. Role defaults to student; an
// admin role request is downgraded to student by the service.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// AuthResult pairs a signed bearer token with the user it identifies.
type AuthResult struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
}
