// Package auth holds the credential and token primitives of the todo service.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"todo-service/internal/domain"
)

// MaxPasswordBytes is the longest password bcrypt accepts, measured in bytes.
const MaxPasswordBytes = 72

// PasswordHasher hashes and checks user passwords.
type PasswordHasher interface {
	// Hash returns a salted hash; two calls with the same input differ.
	Hash(password string) (string, error)
	// Verify reports whether password matches hash. A malformed hash never matches.
	Verify(password, hash string) bool
}

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a bcrypt based hasher. A non-positive cost selects bcrypt.DefaultCost.
func NewBcryptHasher(cost int) PasswordHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: password exceeds %d bytes", domain.ErrInvalidInput, MaxPasswordBytes)
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (h *bcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
