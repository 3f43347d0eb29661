package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "atelier/internal/delivery/context"
	"atelier/internal/delivery/http/response"
	"atelier/internal/domain/entity"
	domainerrors "atelier/internal/domain/errors"
	"atelier/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler holds dependencies for order handlers.
type OrderHandler struct {
	uc     usecase.OrderUsecase
	logger *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderUsecase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, logger: logger}
}

type checkoutRequest struct {
	Items []struct {
		ProductID uint `json:"productId"`
		Quantity  int  `json:"quantity"`
	} `json:"items"`
	BillingName    string `json:"billingName"`
	BillingEmail   string `json:"billingEmail"`
	BillingAddress string `json:"billingAddress"`
	Notes          string `json:"notes"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type paymentStatusRequest struct {
	PaymentStatus   string `json:"paymentStatus"`
	PaymentIntentID string `json:"paymentIntentId"`
}

// Checkout places an order for the caller.
func (h *OrderHandler) Checkout(c echo.Context) error {
	user := deliverycontext.GetCurrentUser(c)
	if user == nil {
		return domainerrors.ErrUnauthorized
	}

	var input checkoutRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid checkout input")
	}

	items := make([]usecase.CheckoutItem, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, usecase.CheckoutItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.uc.Checkout(c.Request().Context(), user.ID, usecase.CheckoutInput{
		Items:          items,
		BillingName:    input.BillingName,
		BillingEmail:   input.BillingEmail,
		BillingAddress: input.BillingAddress,
		Notes:          input.Notes,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, order, "Order created successfully")
}

// ListOwnOrders returns the caller's orders.
func (h *OrderHandler) ListOwnOrders(c echo.Context) error {
	user := deliverycontext.GetCurrentUser(c)
	if user == nil {
		return domainerrors.ErrUnauthorized
	}

	orders, err := h.uc.ListUserOrders(c.Request().Context(), user.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "")
}

// ListAllOrders returns every order. Admin surface.
func (h *OrderHandler) ListAllOrders(c echo.Context) error {
	orders, err := h.uc.ListOrders(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "")
}

// UpdateStatus moves the fulfilment axis of an order. Admin surface.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var input statusRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}

	order, err := h.uc.UpdateStatus(c.Request().Context(), id, entity.OrderStatus(input.Status))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order status updated successfully")
}

// UpdatePaymentStatus moves the payment axis of an order. Admin surface.
func (h *OrderHandler) UpdatePaymentStatus(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var input paymentStatusRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid payment status input")
	}

	order, err := h.uc.UpdatePaymentStatus(c.Request().Context(), id,
		entity.PaymentStatus(input.PaymentStatus), input.PaymentIntentID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Payment status updated successfully")
}

// DeleteOrder removes an order and its items. Admin surface.
func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteOrder(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Order deleted successfully")
}
