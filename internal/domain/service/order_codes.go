package service

// OrderCodeSource draws candidate human-facing order codes. Uniqueness is the
// caller's concern: the order usecase checks each draw against storage and
// retries a bounded number of times.
type OrderCodeSource interface {
	// Next returns a candidate 8-digit numeric code.
	Next() (string, error)
}
