// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"atelier/internal/domain/entity"
)

// ErrOrderNotFound is a domain-specific error returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the standard operations for order persistence.
type OrderRepository interface {
	// FindByID retrieves a single order with its items.
	FindByID(ctx context.Context, id uint) (*entity.Order, error)

	// FindByUserID retrieves all orders for a user, newest first, with items.
	// Orders whose items were deleted out-of-band come back with an empty
	// items list, not an error.
	FindByUserID(ctx context.Context, userID uint) ([]*entity.Order, error)

	// List retrieves all orders, newest first, with items.
	List(ctx context.Context) ([]*entity.Order, error)

	// ExistsByCode reports whether an order with the given order code exists.
	ExistsByCode(ctx context.Context, code string) (bool, error)

	// Create persists an order row. Items are persisted separately via
	// CreateItems so the usecase controls the sequencing inside one transaction.
	Create(ctx context.Context, order *entity.Order) error

	// CreateItems persists the line items of an order.
	CreateItems(ctx context.Context, items []*entity.OrderItem) error

	// Update modifies an existing order row.
	Update(ctx context.Context, order *entity.Order) error

	// DeleteItemsByOrderID removes all line items of an order.
	DeleteItemsByOrderID(ctx context.Context, orderID uint) error

	// DeleteItemsByUserID removes the line items of every order owned by the user.
	DeleteItemsByUserID(ctx context.Context, userID uint) error

	// Delete removes an order row. Its items must be deleted first.
	Delete(ctx context.Context, id uint) error

	// DeleteByUserID removes all order rows owned by the user.
	DeleteByUserID(ctx context.Context, userID uint) error
}
