// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"atelier/internal/domain/entity"
)

// ErrVerificationTokenNotFound is returned when a verification token is not found.
var ErrVerificationTokenNotFound = errors.New("verification token not found")

// VerificationTokenRepository defines the operations for email verification
// token persistence. Token creation is last-writer-wins: issuing a new token
// deletes any prior one for the same user.
type VerificationTokenRepository interface {
	// Create persists a new verification token.
	Create(ctx context.Context, token *entity.EmailVerificationToken) error

	// FindByToken retrieves a token record by its raw token value.
	FindByToken(ctx context.Context, token string) (*entity.EmailVerificationToken, error)

	// DeleteByUserID removes all tokens for a user.
	DeleteByUserID(ctx context.Context, userID uint) error

	// Delete removes a single token record by ID.
	Delete(ctx context.Context, id uint) error
}
