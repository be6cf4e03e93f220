package rates

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"money-calculator/clock"
	"money-calculator/domain"
	"money-calculator/metrics"
)

var (
	eur = domain.MustCurrency("EUR", "Euro")
	usd = domain.MustCurrency("USD", "US Dollar")
	gbp = domain.MustCurrency("GBP", "Pound Sterling")
)

// calendar a clock tests can move forward
type calendar struct {
	lock sync.Mutex
	now  time.Time
}

func (c *calendar) Now() time.Time {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.now
}

func (c *calendar) set(t time.Time) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.now = t
}

// mock a provider counting its calls, rates are dated with the clock's today
type mock struct {
	count int32
	clock clock.Clock
	rate  string
	err   error
}

func (m *mock) Rate(_ context.Context, from domain.Currency, to domain.Currency) (domain.ExchangeRate, error) {
	atomic.AddInt32(&m.count, 1)
	if m.err != nil {
		return domain.ExchangeRate{}, m.err
	}
	return domain.NewExchangeRate(m.clock.Now(), from, to, decimal.RequireFromString(m.rate))
}

func (m *mock) calls() int32 {
	return atomic.LoadInt32(&m.count)
}

func TestCache_SameDay(t *testing.T) {
	cal := &calendar{now: time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)}
	provider := &mock{clock: cal, rate: "1.1"}
	c := NewCache(provider, WithClock(cal))

	first, err := c.Rate(context.Background(), eur, usd)
	require.NoError(t, err)
	assert.Equal(t, int32(1), provider.calls())

	cal.set(time.Date(2024, time.March, 1, 18, 0, 0, 0, time.UTC))
	second, err := c.Rate(context.Background(), eur, usd)
	require.NoError(t, err)
	assert.Equal(t, int32(1), provider.calls(), "same day must be served from cache")
	assert.Equal(t, first, second)
}

func TestCache_DayRollover(t *testing.T) {
	cal := &calendar{now: time.Date(2024, time.March, 1, 23, 59, 0, 0, time.UTC)}
	provider := &mock{clock: cal, rate: "1.1"}
	c := NewCache(provider, WithClock(cal))

	_, err := c.Rate(context.Background(), eur, usd)
	require.NoError(t, err)

	// one minute later is a new calendar day
	cal.set(time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC))
	provider.rate = "1.2"
	rate, err := c.Rate(context.Background(), eur, usd)
	require.NoError(t, err)
	assert.Equal(t, int32(2), provider.calls())
	assert.Equal(t, "1.2", rate.Rate().String())
	assert.True(t, rate.ObservedOn(cal.Now()))

	_, err = c.Rate(context.Background(), eur, usd)
	require.NoError(t, err)
	assert.Equal(t, int32(2), provider.calls(), "the refreshed rate is cached again")
	assert.Equal(t, 1, c.Len(), "stale entry is overwritten")
}

func TestCache_PairsAreDirectional(t *testing.T) {
	cal := &calendar{now: time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)}
	provider := &mock{clock: cal, rate: "1.1"}
	c := NewCache(provider, WithClock(cal))

	_, _ = c.Rate(context.Background(), eur, usd)
	_, _ = c.Rate(context.Background(), usd, eur)
	_, _ = c.Rate(context.Background(), eur, usd)

	assert.Equal(t, int32(2), provider.calls())
	assert.Equal(t, 2, c.Len())
}

func TestCache_Clear(t *testing.T) {
	cal := &calendar{now: time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)}
	provider := &mock{clock: cal, rate: "1.1"}
	c := NewCache(provider, WithClock(cal))

	_, _ = c.Rate(context.Background(), eur, usd)
	c.Clear()
	assert.Equal(t, 0, c.Len())

	_, _ = c.Rate(context.Background(), eur, usd)
	assert.Equal(t, int32(2), provider.calls())
}

func TestCache_ProviderFailure(t *testing.T) {
	cal := &calendar{now: time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)}
	provider := &mock{clock: cal, rate: "1.1"}
	c := NewCache(provider, WithClock(cal))

	stale, err := c.Rate(context.Background(), eur, usd)
	require.NoError(t, err)
	_, err = c.Rate(context.Background(), gbp, usd)
	require.NoError(t, err)

	cal.set(time.Date(2024, time.March, 2, 9, 0, 0, 0, time.UTC))
	boom := errors.New("upstream down")
	provider.err = boom

	_, err = c.Rate(context.Background(), eur, usd)
	assert.True(t, errors.Is(err, boom))
	var providerErr *domain.ProviderError
	assert.True(t, errors.As(err, &providerErr))
	assert.Equal(t, "rate EUR-USD", providerErr.Op)

	_, err = c.Rate(context.Background(), eur, gbp)
	assert.Error(t, err)

	assert.Equal(t, 2, c.Len(), "nothing stored, nothing evicted")
	c.lock.RLock()
	assert.Equal(t, stale, c.cache[Pair{From: "EUR", To: "USD"}])
	c.lock.RUnlock()

	// provider recovers, the stale entry is replaced
	provider.err = nil
	fresh, err := c.Rate(context.Background(), eur, usd)
	require.NoError(t, err)
	assert.True(t, fresh.ObservedOn(cal.Now()))
}

func TestCache_ConcurrentMisses(t *testing.T) {
	release := make(chan struct{})
	var count int32
	provider := ProviderFunc(func(ctx context.Context, from domain.Currency, to domain.Currency) (domain.ExchangeRate, error) {
		atomic.AddInt32(&count, 1)
		<-release
		return domain.NewExchangeRate(time.Now(), from, to, decimal.RequireFromString("1.1"))
	})
	c := NewCache(provider)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Rate(context.Background(), eur, usd)
			assert.NoError(t, err)
		}()
	}
	time.Sleep(10 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&count))
}

func TestCache_Metrics(t *testing.T) {
	cal := &calendar{now: time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)}
	provider := &mock{clock: cal, rate: "1.1"}
	m := metrics.NewCache(prometheus.NewRegistry())
	c := NewCache(provider, WithClock(cal), WithMetrics(m))

	_, _ = c.Rate(context.Background(), eur, usd)
	_, _ = c.Rate(context.Background(), eur, usd)
	_, _ = c.Rate(context.Background(), eur, usd)
	provider.err = errors.New("boom")
	_, _ = c.Rate(context.Background(), usd, eur)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Lookups.WithLabelValues("rates", metrics.Miss)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Lookups.WithLabelValues("rates", metrics.Hit)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Lookups.WithLabelValues("rates", metrics.Error)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Entries.WithLabelValues("rates")))
}
