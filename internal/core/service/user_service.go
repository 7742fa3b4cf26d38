package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/nextgen-lms/backend/internal/core/domain"
	"github.com/nextgen-lms/backend/internal/core/ports"
)

// UserService implements account management on top of the user repository.
type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

func (s *UserService) List(ctx context.Context, role string) ([]*domain.User, error) {
	return s.repo.List(ctx, role)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// Update applies a partial update. Only admins may change roles; a role
// supplied by anyone else is ignored rather than rejected, matching the
// original API behaviour.
func (s *UserService) Update(ctx context.Context, actor domain.Principal, id string, in ports.UpdateUserInput) (*domain.User, error) {
	upd := ports.UserUpdate{
		Name:  in.Name,
		Email: in.Email,
		Bio:   in.Bio,
		Image: in.Image,
	}

	if in.Role != nil && actor.Role == domain.RoleAdmin {
		if !domain.ValidRole(*in.Role) {
			return nil, fmt.Errorf("%w: unknown role %q", domain.ErrForbidden, *in.Role)
		}
		upd.Role = in.Role
	}

	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		hashed := string(hash)
		upd.PasswordHash = &hashed
	}

	updated, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", id).Msg("user updated")
	return updated, nil
}

// Delete removes an account. Self-deletion is forbidden so an admin cannot
// lock themselves out mid-session.
func (s *UserService) Delete(ctx context.Context, actor domain.Principal, id string) error {
	if id == actor.ID {
		return domain.ErrSelfDeletion
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("user_id", id).Str("deleted_by", actor.ID).Msg("user deleted")
	return nil
}
