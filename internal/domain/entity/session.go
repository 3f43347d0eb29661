// Package entity contains the core business objects of the project.
package entity

import "time"

// Session represents a server-held authenticated session. The client carries
// an opaque random token in a cookie; storage holds only its SHA-256 hash.
type Session struct {
	ID        uint      // Numeric primary key for this session record.
	UserID    uint      // Links the session to the user it authenticates.
	TokenHash string    // SHA-256 hex digest of the raw session token.
	ExpiresAt time.Time // Fixed TTL set at login or registration.
	CreatedAt time.Time // Timestamp of when the session was established.
}

// Expired reports whether the session has passed its expiry.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}
