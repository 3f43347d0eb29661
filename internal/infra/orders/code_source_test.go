package orders

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomCodeSource_Next(t *testing.T) {
	source := NewRandomCodeSource()

	for i := 0; i < 256; i++ {
		code, err := source.Next()
		require.NoError(t, err)

		assert.Len(t, code, 8)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 10_000_000)
		assert.LessOrEqual(t, n, 99_999_999)
	}
}
