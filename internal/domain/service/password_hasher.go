// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying key-derivation function, keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash record from a plaintext password.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a stored record. Malformed
	// records report false; they never panic. The comparison is constant-time
	// so verification leaks nothing about how much of the key matched.
	Check(password, record string) bool

	// ValidatePasswordStrength enforces the registration password policy.
	// Each violated rule is reported with its own specific message.
	ValidatePasswordStrength(password string) error
}
