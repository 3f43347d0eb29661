// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"atelier/internal/domain/entity"
)

// Domain-specific errors for session persistence.
var (
	// ErrSessionNotFound is returned when a session is not found.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired is returned when a session exists but has passed its expiry.
	ErrSessionExpired = errors.New("session has expired")
)

// SessionRepository defines the operations for server-side session persistence.
// Sessions are looked up by the SHA-256 hash of the opaque cookie token; the
// raw token is never stored.
type SessionRepository interface {
	// Create persists a new session.
	Create(ctx context.Context, session *entity.Session) error

	// FindByTokenHash retrieves a live session by its token hash.
	// Expired sessions yield ErrSessionExpired.
	FindByTokenHash(ctx context.Context, tokenHash string) (*entity.Session, error)

	// DeleteByTokenHash removes a session by its token hash. Deleting an
	// absent session is not an error, which keeps logout idempotent.
	DeleteByTokenHash(ctx context.Context, tokenHash string) error

	// DeleteByUserID removes all sessions for a user.
	DeleteByUserID(ctx context.Context, userID uint) error

	// DeleteExpired removes all expired sessions. Intended for periodic cleanup.
	DeleteExpired(ctx context.Context) error
}
