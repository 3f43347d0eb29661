// Package entity contains the core business objects of the project.
package entity

import "time"

// OrderStatus tracks the fulfilment axis of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// PaymentStatus tracks the payment axis of an order, independent of OrderStatus.
// An order can legitimately be processing/unpaid.
type PaymentStatus string

const (
	PaymentStatusUnpaid   PaymentStatus = "unpaid"
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// String returns the string representation of the OrderStatus.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the OrderStatus is a valid value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether moving to next follows a legal edge:
// pending -> processing -> completed, with cancelled reachable from pending
// or processing. Only consulted when strict transitions are enabled.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusProcessing || next == OrderStatusCancelled
	case OrderStatusProcessing:
		return next == OrderStatusCompleted || next == OrderStatusCancelled
	default:
		return false
	}
}

// String returns the string representation of the PaymentStatus.
func (s PaymentStatus) String() string {
	return string(s)
}

// IsValid checks if the PaymentStatus is a valid value.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusUnpaid, PaymentStatusPending, PaymentStatusPaid, PaymentStatusRefunded:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether moving to next follows a legal edge:
// unpaid/pending -> paid -> refunded. Only consulted when strict transitions
// are enabled.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	switch s {
	case PaymentStatusUnpaid, PaymentStatusPending:
		return next == PaymentStatusPaid || (s == PaymentStatusUnpaid && next == PaymentStatusPending)
	case PaymentStatusPaid:
		return next == PaymentStatusRefunded
	default:
		return false
	}
}

// Order is a purchase record owned by a single user.
type Order struct {
	ID              uint          `json:"id"`              // Internal numeric primary key.
	UserID          uint          `json:"userId"`          // Owner, immutable after creation.
	OrderCode       string        `json:"orderCode"`       // Unique human-facing 8-digit numeric code.
	TotalAmount     float64       `json:"totalAmount"`     // Sum of item snapshot prices at creation time.
	Status          OrderStatus   `json:"status"`          // Fulfilment axis.
	PaymentStatus   PaymentStatus `json:"paymentStatus"`   // Payment axis, independent of Status.
	PaymentIntentID string        `json:"paymentIntentId"` // Set by the payment-provider integration; empty until then.
	TransactionID   string        `json:"transactionId"`
	BillingName     string        `json:"billingName"`
	BillingEmail    string        `json:"billingEmail"`
	BillingAddress  string        `json:"billingAddress"`
	Notes           string        `json:"notes"`
	Items           []*OrderItem  `json:"items"` // Line items, created alongside the order.
	CreatedAt       time.Time     `json:"createdAt"`
}

// OrderItem is a line item on an order. Price is a snapshot of the product
// price at purchase time, never resynchronized with later price changes.
type OrderItem struct {
	ID        uint    `json:"id"`
	OrderID   uint    `json:"orderId"`
	ProductID uint    `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}
