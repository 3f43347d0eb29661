package service

// WebhookVerifier authenticates payment-provider callbacks. The provider
// signs the raw request body; verification is constant-time against the
// configured shared secret.
type WebhookVerifier interface {
	// Verify reports whether signature is a valid signature over body.
	Verify(body []byte, signature string) bool
}
