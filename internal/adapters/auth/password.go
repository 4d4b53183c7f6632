package auth

import (
	"errors"
	"fmt"

	"eventbooking/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost matches the cost used when seeding the admin account.
const DefaultBcryptCost = 10

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a PasswordHasher backed by bcrypt. A cost outside bcrypt's range uses DefaultBcryptCost.
func NewBcryptHasher(cost int) domain.PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: password is empty", domain.ErrInvalidInput)
	}
	if len(password) > MaxPasswordBytes {
		return "", fmt.Errorf("%w: password longer than %d bytes", domain.ErrInvalidInput, MaxPasswordBytes)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Compare returns ErrInvalidCredentials on mismatch. A malformed hash is reported as a plain error.
func (h *bcryptHasher) Compare(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return domain.ErrInvalidCredentials
	default:
		return fmt.Errorf("compare password: %w", err)
	}
}
