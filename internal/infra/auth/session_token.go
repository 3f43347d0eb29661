// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"

	"atelier/internal/domain/service"

	"github.com/pkg/errors"
)

// sessionTokenBytes is 256 bits of entropy per session token.
const sessionTokenBytes = 32

// sessionTokenService issues opaque session tokens. The raw token goes to the
// client cookie; storage only ever sees the SHA-256 hex digest.
type sessionTokenService struct{}

// NewSessionTokenService is the constructor for sessionTokenService.
func NewSessionTokenService() service.SessionTokenService {
	return &sessionTokenService{}
}

// Generate returns a fresh random token and its storage hash.
func (s *sessionTokenService) Generate() (string, string, error) {
	raw := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", "", errors.Wrap(err, "failed to generate session token")
	}

	token := base64.RawURLEncoding.EncodeToString(raw)

	return token, s.HashToken(token), nil
}

// HashToken recomputes the storage hash for a raw token.
func (s *sessionTokenService) HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}

// verificationTokenBytes is the entropy of one email verification token.
const verificationTokenBytes = 32

// verificationTokenSource issues the random hex tokens embedded in email
// verification links.
type verificationTokenSource struct{}

// NewVerificationTokenSource is the constructor for verificationTokenSource.
func NewVerificationTokenSource() service.VerificationTokenSource {
	return &verificationTokenSource{}
}

// Generate returns a fresh 32-byte random token in hex encoding.
func (s *verificationTokenSource) Generate() (string, error) {
	raw := make([]byte, verificationTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", errors.Wrap(err, "failed to generate verification token")
	}

	return hex.EncodeToString(raw), nil
}
