package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"atelier/internal/delivery/http/response"
	domainerrors "atelier/internal/domain/errors"
	"atelier/internal/domain/service"
	"atelier/internal/infra/payment"
	"atelier/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// HeaderWebhookSignature carries the provider's HMAC signature over the body.
const HeaderWebhookSignature = "X-Webhook-Signature"

// WebhookHandler receives payment-provider callbacks.
type WebhookHandler struct {
	verifier service.WebhookVerifier
	orderUC  usecase.OrderUsecase
	logger   *slog.Logger
}

// NewWebhookHandler is the constructor for WebhookHandler, injected by Fx.
func NewWebhookHandler(verifier service.WebhookVerifier, orderUC usecase.OrderUsecase, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		verifier: verifier,
		orderUC:  orderUC,
		logger:   logger,
	}
}

// HandlePaymentEvent authenticates and dispatches a provider event. Unknown
// event types are acknowledged so the provider stops retrying them.
func (h *WebhookHandler) HandlePaymentEvent(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Failed to read webhook body")
	}

	signature := c.Request().Header.Get(HeaderWebhookSignature)
	if !h.verifier.Verify(body, signature) {
		return domainerrors.ErrWebhookSignature
	}

	var event payment.Event
	if err := json.Unmarshal(body, &event); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid webhook payload")
	}

	switch event.Type {
	case payment.EventPaymentSucceeded:
		err := h.orderUC.HandlePaymentSucceeded(c.Request().Context(),
			event.Data.Metadata.OrderID, event.Data.PaymentIntentID)
		if err != nil {
			return errors.WithStack(err)
		}
	default:
		h.logger.Info("Ignoring webhook event", slog.String("type", event.Type))
	}

	return response.Success(c, http.StatusOK, nil, "Event received")
}
