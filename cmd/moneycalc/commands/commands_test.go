package commands

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"money-calculator/domain"
)

// fakeAPI serves /codes and EUR/USD pairs the way exchangerate-api.com does
func fakeAPI(t *testing.T) (*httptest.Server, *int32) {
	var pairCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		switch req.URL.Path {
		case "/test-key/codes":
			_, _ = rw.Write([]byte(`{"result":"success","supported_codes":[["EUR","Euro"],["USD","United States Dollar"]]}`))
		case "/test-key/pair/EUR/USD":
			atomic.AddInt32(&pairCalls, 1)
			_, _ = rw.Write([]byte(`{"result":"success","base_code":"EUR","target_code":"USD","conversion_rate":1.1}`))
		default:
			rw.WriteHeader(http.StatusNotFound)
			_, _ = rw.Write([]byte(`{"result":"error","error-type":"unsupported-code"}`))
		}
	}))
	t.Cleanup(server.Close)

	t.Setenv("EXCHANGE_API_KEY", "test-key")
	t.Setenv("EXCHANGE_API_URL", server.URL)
	return server, &pairCalls
}

func run(t *testing.T, ctx context.Context, args ...string) (string, error) {
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	return out.String(), err
}

func TestConvert(t *testing.T) {
	_, pairCalls := fakeAPI(t)

	out, err := run(t, context.Background(), "convert", "10", "eur", "usd")

	require.NoError(t, err)
	assert.Equal(t, "10.00 EUR = 11.00 USD (United States Dollar)\n", out)
	assert.Equal(t, int32(1), atomic.LoadInt32(pairCalls))
}

func TestConvert_Errors(t *testing.T) {
	fakeAPI(t)

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"unknown currency", []string{"convert", "10", "EUR", "XYZ"}, domain.ErrCurrencyNotFound},
		{"negative amount", []string{"convert", "-5", "EUR", "USD"}, domain.ErrNegativeAmount},
		{"unsupported pair", []string{"convert", "5", "USD", "EUR"}, nil},
		{"missing args", []string{"convert", "5", "USD"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, context.Background(), tt.args...)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			}
		})
	}
}

func TestCurrencies(t *testing.T) {
	fakeAPI(t)

	out, err := run(t, context.Background(), "currencies")

	require.NoError(t, err)
	assert.Equal(t, "EUR\tEuro\nUSD\tUnited States Dollar\n", out)
}

func TestRoot_BadLogLevel(t *testing.T) {
	fakeAPI(t)

	_, err := run(t, context.Background(), "--log-level", "loud", "currencies")

	assert.Error(t, err)
}

func TestRoot_MissingKey(t *testing.T) {
	t.Setenv("EXCHANGE_API_KEY", "")

	_, err := run(t, context.Background(), "currencies")

	assert.Error(t, err)
}

func TestServe_Shutdown(t *testing.T) {
	fakeAPI(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := run(t, ctx, "serve", "--addr", "127.0.0.1:0")
		done <- err
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("serve did not stop")
	}
}

func TestNewLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "logfmt", "warn")

	_ = logger.Log("msg", "no level passes")
	assert.True(t, strings.Contains(buf.String(), "no level passes"))

	buf.Reset()
	logger = newLogger(&buf, "json", "info")
	_ = logger.Log("msg", "hello")
	assert.True(t, strings.HasPrefix(buf.String(), "{"), buf.String())
}
