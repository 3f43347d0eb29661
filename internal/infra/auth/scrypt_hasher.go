// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"

	"atelier/config"
	domainerrors "atelier/internal/domain/errors"
	"atelier/internal/domain/service"

	"github.com/pkg/errors"
	"golang.org/x/crypto/scrypt"
)

// scrypt parameters. N=32768 keeps derivation slow and memory-hard while
// staying within interactive-login latency budgets.
const (
	scryptN       = 32768
	scryptR       = 8
	scryptP       = 1
	scryptKeyLen  = 32
	scryptSaltLen = 16

	recordSeparator = ":"
)

// scryptHasher is a concrete implementation of the PasswordHasher interface
// using scrypt with a per-record random salt. The stored record encodes both
// the derived key and the salt as hex, separated by a colon.
type scryptHasher struct {
	strength *config.PasswordStrengthConfig
}

// NewScryptHasher is the constructor for scryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewScryptHasher(cfg *config.Config) service.PasswordHasher {
	strength := cfg.PasswordStrength
	if strength == nil {
		strength = &config.PasswordStrengthConfig{
			MinLength:        8,
			RequireUppercase: true,
			RequireLowercase: true,
			RequireNumbers:   true,
			RequireSpecial:   true,
		}
	}

	return &scryptHasher{strength: strength}
}

// Hash derives a key from the password and a fresh random salt and encodes
// hex(key):hex(salt). Output differs across calls because the salt is always fresh.
func (h *scryptHasher) Hash(password string) (string, error) {
	salt := make([]byte, scryptSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.Wrap(err, "failed to generate salt")
	}

	key, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return "", errors.Wrap(err, "failed to derive key")
	}

	return hex.EncodeToString(key) + recordSeparator + hex.EncodeToString(salt), nil
}

// Check re-derives a key from the supplied password and the record's salt and
// compares the two keys in constant time. Any malformed record reports false;
// a missing record is the caller's error path, not this one.
func (h *scryptHasher) Check(password, record string) bool {
	storedKeyHex, saltHex, ok := strings.Cut(record, recordSeparator)
	if !ok {
		return false
	}

	storedKey, err := hex.DecodeString(storedKeyHex)
	if err != nil || len(storedKey) != scryptKeyLen {
		return false
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil || len(salt) == 0 {
		return false
	}

	key, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, len(storedKey))
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare(key, storedKey) == 1
}

// ValidatePasswordStrength enforces the registration password policy. Rules
// are checked in a fixed order so each weakness surfaces its own message.
func (h *scryptHasher) ValidatePasswordStrength(password string) error {
	if len(password) < h.strength.MinLength {
		return domainerrors.ErrValidationFailed.WithMessage(
			fmt.Sprintf("Password must be at least %d characters long", h.strength.MinLength))
	}
	if h.strength.RequireUppercase && !containsClass(password, unicode.IsUpper) {
		return domainerrors.ErrValidationFailed.WithMessage("Password must contain at least one uppercase letter")
	}
	if h.strength.RequireLowercase && !containsClass(password, unicode.IsLower) {
		return domainerrors.ErrValidationFailed.WithMessage("Password must contain at least one lowercase letter")
	}
	if h.strength.RequireNumbers && !containsClass(password, unicode.IsDigit) {
		return domainerrors.ErrValidationFailed.WithMessage("Password must contain at least one number")
	}
	if h.strength.RequireSpecial && !containsClass(password, isSpecial) {
		return domainerrors.ErrValidationFailed.WithMessage("Password must contain at least one special character")
	}

	return nil
}

func containsClass(s string, class func(rune) bool) bool {
	for _, r := range s {
		if class(r) {
			return true
		}
	}

	return false
}

func isSpecial(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
