// Package payment provides the payment-provider integration pieces: webhook
// signature verification and event payload types.
package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"atelier/config"
	"atelier/internal/domain/service"
)

// EventPaymentSucceeded is the provider event type that completes a payment.
const EventPaymentSucceeded = "payment_intent.succeeded"

// Event is the decoded webhook payload. The order id travels in metadata so
// the provider round-trips it untouched.
type Event struct {
	Type string `json:"type"`
	Data struct {
		PaymentIntentID string `json:"paymentIntentId"`
		Metadata        struct {
			OrderID uint `json:"orderId,string"`
		} `json:"metadata"`
	} `json:"data"`
}

// hmacVerifier checks provider signatures: HMAC-SHA256 over the raw body,
// hex-encoded, compared in constant time.
type hmacVerifier struct {
	secret []byte
}

// NewHMACVerifier is the constructor for hmacVerifier.
func NewHMACVerifier(cfg *config.Config) service.WebhookVerifier {
	secret := ""
	if cfg.Payment != nil {
		secret = cfg.Payment.WebhookSecret
	}

	return &hmacVerifier{secret: []byte(secret)}
}

// Verify reports whether signature is a valid signature over body.
func (v *hmacVerifier) Verify(body []byte, signature string) bool {
	if len(v.secret) == 0 {
		return false
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
