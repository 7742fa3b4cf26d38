package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/nextgen-lms/backend/internal/api/metrics"
	"github.com/nextgen-lms/backend/internal/core/domain"
	"github.com/nextgen-lms/backend/internal/core/ports"
)

const bcryptCost = 12

// AuthService implements registration, login and profile lookup.
type AuthService struct {
	repo       ports.UserRepository
	activities ports.ActivitySink
	jwtSecret  string
	tokenTTL   time.Duration
	log        zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, activities ports.ActivitySink, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 7 * 24 * time.Hour
	}
	return &AuthService{repo: repo, activities: activities, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

// Register creates a new account. Admin accounts cannot be created through
// the public API: a requested admin role is downgraded to student.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	role := in.Role
	if role == "" || role == domain.RoleAdmin || !domain.ValidRole(role) {
		role = domain.RoleStudent
	}

	if existing, err := s.repo.FindByEmail(ctx, in.Email); err == nil && existing != nil {
		return nil, domain.ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:            in.Name,
		Email:           in.Email,
		PasswordHash:    string(hash),
		Role:            role,
		Cart:            []domain.CartItem{},
		EnrolledCourses: []string{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.generateToken(created)
	if err != nil {
		return nil, err
	}

	metrics.UsersRegisteredTotal.WithLabelValues(created.Role).Inc()
	if s.activities != nil {
		s.activities.Enqueue(domain.ActivityEvent{
			Type:       domain.ActivityUserRegistered,
			ActorID:    created.ID,
			ActorName:  created.Name,
			OccurredAt: now,
		})
	}
	s.log.Info().Str("email", created.Email).Str("role", created.Role).Msg("new user registered")

	return &ports.AuthResult{Token: token, User: created}, nil
}

// Login verifies credentials and issues a bearer token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("email", email).Msg("user logged in")
	return &ports.AuthResult{Token: token, User: user}, nil
}

// Profile returns the account behind a token's uid claim.
func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"uid":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"name":  user.Name,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
