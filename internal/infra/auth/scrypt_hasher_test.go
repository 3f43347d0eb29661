package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier/config"
)

func newHasher() *scryptHasher {
	return NewScryptHasher(&config.Config{}).(*scryptHasher)
}

func TestScryptHasher_RoundTrip(t *testing.T) {
	hasher := newHasher()

	record, err := hasher.Hash("Sturdy-Pass1")
	require.NoError(t, err)

	assert.True(t, hasher.Check("Sturdy-Pass1", record))
	assert.False(t, hasher.Check("sturdy-pass1", record))
}

// Every hash uses a fresh salt, so the same password yields distinct records
// that both verify.
func TestScryptHasher_FreshSaltPerRecord(t *testing.T) {
	hasher := newHasher()

	first, err := hasher.Hash("Sturdy-Pass1")
	require.NoError(t, err)
	second, err := hasher.Hash("Sturdy-Pass1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check("Sturdy-Pass1", second))
}

func TestScryptHasher_RecordFormat(t *testing.T) {
	hasher := newHasher()

	record, err := hasher.Hash("Sturdy-Pass1")
	require.NoError(t, err)

	keyHex, saltHex, ok := strings.Cut(record, ":")
	require.True(t, ok)
	assert.Len(t, keyHex, 2*scryptKeyLen)
	assert.Len(t, saltHex, 2*scryptSaltLen)
}

// Malformed records fail verification, they never panic.
func TestScryptHasher_MalformedRecord(t *testing.T) {
	hasher := newHasher()

	for _, record := range []string{
		"",
		"no-separator",
		"zz:zz",
		"abcd:not-hex",
		":",
	} {
		assert.False(t, hasher.Check("Sturdy-Pass1", record), "record %q", record)
	}
}

// A record with an empty or truncated key part must reject every password.
// Deriving against a zero-length stored key would compare two empty slices
// as equal, so the key length is pinned before derivation.
func TestScryptHasher_EmptyKeyRecordRejectsAll(t *testing.T) {
	hasher := newHasher()

	for _, record := range []string{
		":",
		":0123456789abcdef0123456789abcdef",
		"abcd:0123456789abcdef0123456789abcdef",
		strings.Repeat("ab", scryptKeyLen) + ":",
	} {
		assert.False(t, hasher.Check("anything-at-all", record), "record %q", record)
		assert.False(t, hasher.Check("", record), "record %q", record)
	}
}

// Each violated rule surfaces its own message, checked in a fixed order.
func TestScryptHasher_ValidatePasswordStrength(t *testing.T) {
	hasher := newHasher()

	cases := []struct {
		password string
		message  string
	}{
		{"Ab1!", "Password must be at least 8 characters long"},
		{"lower-case1!", "Password must contain at least one uppercase letter"},
		{"UPPER-CASE1!", "Password must contain at least one lowercase letter"},
		{"NoNumbers!", "Password must contain at least one number"},
		{"NoSpecial1x", "Password must contain at least one special character"},
	}
	for _, tc := range cases {
		err := hasher.ValidatePasswordStrength(tc.password)
		require.Error(t, err, "password %q", tc.password)
		assert.Contains(t, err.Error(), tc.message)
	}

	assert.NoError(t, hasher.ValidatePasswordStrength("Sturdy-Pass1"))
}

// A relaxed policy from config disables individual rules.
func TestScryptHasher_RelaxedPolicy(t *testing.T) {
	hasher := NewScryptHasher(&config.Config{
		PasswordStrength: &config.PasswordStrengthConfig{MinLength: 4},
	})

	assert.NoError(t, hasher.ValidatePasswordStrength("plain"))
}

// The length message follows the configured minimum.
func TestScryptHasher_ConfiguredMinLengthMessage(t *testing.T) {
	hasher := NewScryptHasher(&config.Config{
		PasswordStrength: &config.PasswordStrengthConfig{MinLength: 12},
	})

	err := hasher.ValidatePasswordStrength("Short-Pw1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Password must be at least 12 characters long")
}
