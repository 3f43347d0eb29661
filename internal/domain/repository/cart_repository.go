// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"atelier/internal/domain/entity"
)

// ErrCartNotFound is returned when a user has no cart.
var ErrCartNotFound = errors.New("cart not found")

// CartRepository defines the operations for cart persistence. A user has at
// most one cart; Replace overwrites the whole item document (no merging).
type CartRepository interface {
	// FindByUserID retrieves the user's cart.
	FindByUserID(ctx context.Context, userID uint) (*entity.Cart, error)

	// Replace upserts the user's cart with the given items.
	Replace(ctx context.Context, cart *entity.Cart) error

	// DeleteByUserID removes the user's cart. Absence is not an error.
	DeleteByUserID(ctx context.Context, userID uint) error
}
