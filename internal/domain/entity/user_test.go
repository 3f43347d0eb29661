package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_Sanitized(t *testing.T) {
	user := &User{ID: 1, Username: "mila", PasswordHash: "secret-record"}

	clean := user.Sanitized()

	assert.Empty(t, clean.PasswordHash)
	assert.Equal(t, "mila", clean.Username)
	// The original is untouched.
	assert.Equal(t, "secret-record", user.PasswordHash)

	assert.Nil(t, (*User)(nil).Sanitized())
}

// The password hash field is stripped from serialized output entirely, not
// just blanked, and the wire names follow the API's camelCase convention.
func TestUser_SerializesWithoutPasswordHash(t *testing.T) {
	user := &User{ID: 1, Username: "mila", PasswordHash: "secret-record", IsEmailVerified: true}

	raw, err := json.Marshal(user)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))

	assert.NotContains(t, fields, "PasswordHash")
	assert.NotContains(t, fields, "passwordHash")
	assert.NotContains(t, string(raw), "secret-record")
	assert.Contains(t, fields, "username")
	assert.Contains(t, fields, "isEmailVerified")
}

func TestRole_CanManageProducts(t *testing.T) {
	assert.False(t, RoleUser.CanManageProducts())
	assert.True(t, RoleDesigner.CanManageProducts())
	assert.True(t, RoleAdmin.CanManageProducts())
	assert.False(t, Role("ghost").CanManageProducts())
}

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleUser.IsValid())
	assert.True(t, RoleDesigner.IsValid())
	assert.True(t, RoleAdmin.IsValid())
	assert.False(t, Role("superuser").IsValid())
	assert.False(t, Role("").IsValid())
}
