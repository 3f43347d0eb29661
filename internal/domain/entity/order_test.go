package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	legal := []struct{ from, to OrderStatus }{
		{OrderStatusPending, OrderStatusProcessing},
		{OrderStatusPending, OrderStatusCancelled},
		{OrderStatusProcessing, OrderStatusCompleted},
		{OrderStatusProcessing, OrderStatusCancelled},
	}
	for _, edge := range legal {
		assert.True(t, edge.from.CanTransitionTo(edge.to), "%s -> %s", edge.from, edge.to)
	}

	illegal := []struct{ from, to OrderStatus }{
		{OrderStatusPending, OrderStatusCompleted},
		{OrderStatusProcessing, OrderStatusPending},
		{OrderStatusCompleted, OrderStatusPending},
		{OrderStatusCompleted, OrderStatusCancelled},
		{OrderStatusCancelled, OrderStatusPending},
		{OrderStatusCancelled, OrderStatusProcessing},
	}
	for _, edge := range illegal {
		assert.False(t, edge.from.CanTransitionTo(edge.to), "%s -> %s", edge.from, edge.to)
	}
}

func TestPaymentStatus_CanTransitionTo(t *testing.T) {
	legal := []struct{ from, to PaymentStatus }{
		{PaymentStatusUnpaid, PaymentStatusPending},
		{PaymentStatusUnpaid, PaymentStatusPaid},
		{PaymentStatusPending, PaymentStatusPaid},
		{PaymentStatusPaid, PaymentStatusRefunded},
	}
	for _, edge := range legal {
		assert.True(t, edge.from.CanTransitionTo(edge.to), "%s -> %s", edge.from, edge.to)
	}

	illegal := []struct{ from, to PaymentStatus }{
		{PaymentStatusPending, PaymentStatusUnpaid},
		{PaymentStatusPaid, PaymentStatusUnpaid},
		{PaymentStatusRefunded, PaymentStatusPaid},
		{PaymentStatusUnpaid, PaymentStatusRefunded},
	}
	for _, edge := range illegal {
		assert.False(t, edge.from.CanTransitionTo(edge.to), "%s -> %s", edge.from, edge.to)
	}
}

func TestOrderStatus_IsValid(t *testing.T) {
	assert.True(t, OrderStatusPending.IsValid())
	assert.False(t, OrderStatus("shipped").IsValid())
	assert.False(t, OrderStatus("").IsValid())

	assert.True(t, PaymentStatusRefunded.IsValid())
	assert.False(t, PaymentStatus("void").IsValid())
}
