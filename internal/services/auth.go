package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventbooking/internal/domain"
)

type authService struct {
	userRepo domain.UserRepository
	hasher   domain.PasswordHasher
	issuer   domain.TokenIssuer
}

// NewAuthService creates an AuthService with the given repository, hasher and token issuer.
func NewAuthService(userRepo domain.UserRepository, hasher domain.PasswordHasher, issuer domain.TokenIssuer) domain.AuthService {
	return &authService{
		userRepo: userRepo,
		hasher:   hasher,
		issuer:   issuer,
	}
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

// Register creates a USER account. Admin accounts are only created by the seed command.
func (s *authService) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	now := time.Now()
	user := domain.NewUser(normalizeEmail(email), strings.TrimSpace(name), domain.RoleUser, now, now)
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("get user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("check password: %w", err)
	}
	token, err := s.issuer.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// SeedAdmin creates a verified ADMIN account. It returns ErrDuplicateEmail when the
// account already exists.
func SeedAdmin(ctx context.Context, userRepo domain.UserRepository, hasher domain.PasswordHasher, email, password string) (*domain.User, error) {
	hash, err := hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	admin := domain.NewUser(normalizeEmail(email), "Admin", domain.RoleAdmin, now, now)
	admin.PasswordHash = hash
	admin.IsEmailVerified = true
	if err := userRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return admin, nil
}
