package usecase

import (
	"context"

	"atelier/internal/domain/entity"
)

// CartUsecase defines the interface for cart operations. A user has at most
// one cart; every write replaces the whole item document.
type CartUsecase interface {
	// GetCart retrieves the user's cart. A missing cart comes back empty,
	// not as an error.
	GetCart(ctx context.Context, userID uint) (*entity.Cart, error)

	// ReplaceCart overwrites the user's cart with the given items.
	ReplaceCart(ctx context.Context, userID uint, items []entity.CartItem) (*entity.Cart, error)

	// ClearCart removes the user's cart. Idempotent.
	ClearCart(ctx context.Context, userID uint) error
}
