package usecase

import (
	"context"

	"atelier/internal/domain/entity"
)

// CheckoutItem is one requested line of a checkout. The unit price is always
// read from the product row, never from the client.
type CheckoutItem struct {
	ProductID uint
	Quantity  int
}

// CheckoutInput defines the data required to place an order.
type CheckoutInput struct {
	Items          []CheckoutItem
	BillingName    string
	BillingEmail   string
	BillingAddress string
	Notes          string
}

// OrderUsecase defines the interface for order lifecycle operations.
type OrderUsecase interface {
	// Checkout creates an order with snapshotted item prices and a unique
	// order code, clearing the user's cart in the same transaction.
	Checkout(ctx context.Context, userID uint, input CheckoutInput) (*entity.Order, error)

	// GetOrder retrieves a single order.
	GetOrder(ctx context.Context, orderID uint) (*entity.Order, error)

	// ListOrders retrieves all orders. Admin surface.
	ListOrders(ctx context.Context) ([]*entity.Order, error)

	// ListUserOrders retrieves the orders owned by a user.
	ListUserOrders(ctx context.Context, userID uint) ([]*entity.Order, error)

	// UpdateStatus moves the fulfilment axis of an order.
	UpdateStatus(ctx context.Context, orderID uint, status entity.OrderStatus) (*entity.Order, error)

	// UpdatePaymentStatus moves the payment axis of an order. A non-empty
	// paymentIntentID is stored alongside.
	UpdatePaymentStatus(ctx context.Context, orderID uint, status entity.PaymentStatus, paymentIntentID string) (*entity.Order, error)

	// DeleteOrder removes an order and its items in one transaction.
	DeleteOrder(ctx context.Context, orderID uint) error

	// HandlePaymentSucceeded marks an order paid and processing together.
	// Driven by the payment webhook.
	HandlePaymentSucceeded(ctx context.Context, orderID uint, paymentIntentID string) error
}
