package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier/config"
)

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)

	return hex.EncodeToString(mac.Sum(nil))
}

func newVerifier(secret string) *hmacVerifier {
	return NewHMACVerifier(&config.Config{
		Payment: &config.PaymentConfig{WebhookSecret: secret},
	}).(*hmacVerifier)
}

func TestHMACVerifier_ValidSignature(t *testing.T) {
	verifier := newVerifier("shared-secret")
	body := []byte(`{"type":"payment_intent.succeeded"}`)

	assert.True(t, verifier.Verify(body, sign("shared-secret", body)))
}

func TestHMACVerifier_RejectsTampering(t *testing.T) {
	verifier := newVerifier("shared-secret")
	body := []byte(`{"type":"payment_intent.succeeded"}`)
	signature := sign("shared-secret", body)

	assert.False(t, verifier.Verify([]byte(`{"type":"tampered"}`), signature))
	assert.False(t, verifier.Verify(body, sign("wrong-secret", body)))
	assert.False(t, verifier.Verify(body, "not-a-signature"))
	assert.False(t, verifier.Verify(body, ""))
}

// An unconfigured secret fails closed: nothing verifies.
func TestHMACVerifier_EmptySecret(t *testing.T) {
	verifier := NewHMACVerifier(&config.Config{})
	body := []byte(`{}`)

	assert.False(t, verifier.Verify(body, sign("", body)))
}

// The provider serializes the order id as a JSON string inside metadata.
func TestEvent_Decode(t *testing.T) {
	payload := []byte(`{
		"type": "payment_intent.succeeded",
		"data": {
			"paymentIntentId": "pi_123",
			"metadata": {"orderId": "42"}
		}
	}`)

	var event Event
	require.NoError(t, json.Unmarshal(payload, &event))

	assert.Equal(t, EventPaymentSucceeded, event.Type)
	assert.Equal(t, "pi_123", event.Data.PaymentIntentID)
	assert.Equal(t, uint(42), event.Data.Metadata.OrderID)
}
