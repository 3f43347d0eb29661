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

// CartHandler holds dependencies for cart handlers.
type CartHandler struct {
	uc     usecase.CartUsecase
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler, injected by Fx.
func NewCartHandler(uc usecase.CartUsecase, logger *slog.Logger) *CartHandler {
	return &CartHandler{uc: uc, logger: logger}
}

type cartRequest struct {
	Items []entity.CartItem `json:"items"`
}

// GetCart returns the caller's cart.
func (h *CartHandler) GetCart(c echo.Context) error {
	user := deliverycontext.GetCurrentUser(c)
	if user == nil {
		return domainerrors.ErrUnauthorized
	}

	cart, err := h.uc.GetCart(c.Request().Context(), user.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart, "")
}

// ReplaceCart overwrites the caller's cart with the submitted items.
func (h *CartHandler) ReplaceCart(c echo.Context) error {
	user := deliverycontext.GetCurrentUser(c)
	if user == nil {
		return domainerrors.ErrUnauthorized
	}

	var input cartRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart input")
	}

	cart, err := h.uc.ReplaceCart(c.Request().Context(), user.ID, input.Items)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart, "Cart updated successfully")
}

// ClearCart removes the caller's cart.
func (h *CartHandler) ClearCart(c echo.Context) error {
	user := deliverycontext.GetCurrentUser(c)
	if user == nil {
		return domainerrors.ErrUnauthorized
	}

	if err := h.uc.ClearCart(c.Request().Context(), user.ID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Cart cleared successfully")
}
