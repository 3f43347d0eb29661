// Package orders provides infrastructure services for the order lifecycle.
package orders

import (
	"crypto/rand"
	"math/big"
	"strconv"

	"atelier/internal/domain/service"

	"github.com/pkg/errors"
)

// 8-digit codes: 10000000..99999999, 90 million possible values.
const (
	codeMin  = 10_000_000
	codeSpan = 90_000_000
)

// randomCodeSource draws uniformly random 8-digit order codes from crypto/rand.
type randomCodeSource struct{}

// NewRandomCodeSource is the constructor for randomCodeSource.
func NewRandomCodeSource() service.OrderCodeSource {
	return &randomCodeSource{}
}

// Next returns a candidate 8-digit numeric code.
func (s *randomCodeSource) Next() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", errors.Wrap(err, "failed to draw order code")
	}

	return strconv.FormatInt(codeMin+n.Int64(), 10), nil
}
