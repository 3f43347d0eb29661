// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is the core identity record in the system, representing a single
// customer, designer or administrator account.
type User struct {
	ID              uint      `json:"id"`              // Numeric primary key, assigned at creation and immutable.
	Username        string    `json:"username"`        // Globally unique login name, mutable via profile update.
	Email           string    `json:"email"`           // Globally unique contact email, restricted to allowed domains at registration.
	PasswordHash    string    `json:"-"`               // Salted scrypt record. Write-only: never serialized into any response.
	Role            Role      `json:"role"`            // One of user/designer/admin. Defaults to user.
	Name            string    `json:"name"`            // Optional display name.
	Bio             string    `json:"bio"`             // Optional free-form profile text.
	IsEmailVerified bool      `json:"isEmailVerified"` // Set once an email verification token is consumed.
	CreatedAt       time.Time `json:"createdAt"`       // Timestamp of account creation.
	UpdatedAt       time.Time `json:"updatedAt"`       // Timestamp of the last modification.
}

// Sanitized returns a copy of the user that is safe to serialize to clients.
// The password hash never leaves the server in any response.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}

	clean := *u
	clean.PasswordHash = ""

	return &clean
}
