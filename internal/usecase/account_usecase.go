package usecase

import (
	"context"

	"atelier/internal/domain/entity"
)

// AdminUpdateUserInput carries the admin-editable user fields. Role changes
// are only possible through this path.
type AdminUpdateUserInput struct {
	Username string
	Email    string
	Name     string
	Bio      string
	Role     entity.Role
}

// AccountUsecase defines the interface for admin user management.
type AccountUsecase interface {
	// ListUsers retrieves all user accounts.
	ListUsers(ctx context.Context) ([]*entity.User, error)

	// GetUser retrieves a single user account.
	GetUser(ctx context.Context, id uint) (*entity.User, error)

	// UpdateUser modifies a user account, including its role.
	UpdateUser(ctx context.Context, id uint, input AdminUpdateUserInput) (*entity.User, error)

	// ForceDeleteUser removes a user and everything it owns: cart, reviews,
	// order items, orders, sessions and verification tokens, in one
	// transaction.
	ForceDeleteUser(ctx context.Context, id uint) error
}
