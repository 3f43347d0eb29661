// Package entity contains the core business objects of the project.
package entity

import "time"

// EmailVerificationToken is an ephemeral credential binding a random token to
// a user. At most one live token exists per user: requesting a new one deletes
// any prior token (last-writer-wins). A token is consumed on successful
// verification or on a found-but-expired lookup; it is never reused.
type EmailVerificationToken struct {
	ID        uint      // Numeric primary key.
	UserID    uint      // The user this token verifies.
	Token     string    // Random 32-byte hex value handed to the user by mail.
	ExpiresAt time.Time // 24-hour expiry set at creation.
	CreatedAt time.Time
}

// Expired reports whether the token has passed its expiry.
func (t *EmailVerificationToken) Expired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}
