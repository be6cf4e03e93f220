package currency

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingService(t *testing.T) {
	var buf bytes.Buffer
	s := NewLoggingService(log.NewLogfmtLogger(&buf), &mock{currencies: currencies()})

	got, err := s.Currencies(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.True(t, strings.Contains(buf.String(), "method=currencies count=3"), buf.String())

	buf.Reset()
	c, found, err := s.Currency(context.Background(), "usd")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "USD", c.Code())
	assert.True(t, strings.Contains(buf.String(), "method=currency code=usd found=true"), buf.String())
}
