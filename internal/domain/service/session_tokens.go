package service

// SessionTokenService generates and hashes the opaque tokens carried in the
// session cookie. Only the hash is ever persisted.
type SessionTokenService interface {
	// Generate returns a fresh random token and its storage hash.
	Generate() (token string, tokenHash string, err error)

	// HashToken recomputes the storage hash for a raw token.
	HashToken(token string) string
}

// VerificationTokenSource generates the random hex tokens used for email
// verification links.
type VerificationTokenSource interface {
	// Generate returns a fresh 32-byte random token in hex encoding.
	Generate() (string, error)
}
