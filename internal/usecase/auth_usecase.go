// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"atelier/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Username string
	Password string
}

// ChangePasswordInput carries the current and replacement passwords.
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

// UpdateProfileInput carries the editable profile fields. Username and Email
// are required even when unchanged.
type UpdateProfileInput struct {
	Username string
	Email    string
	Name     string
	Bio      string
}

// --- Output DTOs ---

// AuthOutput returns the authenticated user together with the raw session
// token to hand back in the cookie.
type AuthOutput struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

// AuthUsecase defines the interface for account and session operations.
// This is the contract that the delivery layer depends on.
type AuthUsecase interface {
	// Register creates an account and opens a session for it.
	Register(ctx context.Context, input RegisterInput) (*AuthOutput, error)

	// Login verifies credentials and opens a session.
	Login(ctx context.Context, input LoginInput) (*AuthOutput, error)

	// Logout deletes the session behind the token. Idempotent.
	Logout(ctx context.Context, token string) error

	// CurrentUser resolves the user behind a session token.
	CurrentUser(ctx context.Context, token string) (*entity.User, error)

	// ChangePassword verifies the current password and stores a new hash.
	ChangePassword(ctx context.Context, userID uint, input ChangePasswordInput) error

	// UpdateProfile modifies the caller's own profile fields.
	UpdateProfile(ctx context.Context, userID uint, input UpdateProfileInput) (*entity.User, error)

	// RequestEmailVerification issues a fresh verification token, replacing
	// any previous one.
	RequestEmailVerification(ctx context.Context, userID uint) (string, error)

	// VerifyEmail consumes a verification token and marks the user verified.
	VerifyEmail(ctx context.Context, token string) error

	// CleanupExpiredSessions removes expired session rows. Meant for
	// periodic background runs.
	CleanupExpiredSessions(ctx context.Context) error
}
