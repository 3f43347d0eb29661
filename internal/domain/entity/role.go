// Package entity contains the core business objects of the project.
package entity

// Role represents the type of role a user can have in the system.
type Role string

const (
	// RoleUser indicates a regular customer account.
	RoleUser Role = "user"
	// RoleDesigner indicates an account that may publish and manage products.
	RoleDesigner Role = "designer"
	// RoleAdmin indicates a back-office administrator account.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleDesigner, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanManageProducts reports whether the role may create or modify catalog products.
func (r Role) CanManageProducts() bool {
	return r == RoleDesigner || r == RoleAdmin
}
