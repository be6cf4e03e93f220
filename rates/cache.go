package rates

import (
	"context"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/sync/singleflight"

	"money-calculator/clock"
	"money-calculator/domain"
	"money-calculator/metrics"
)

// metricsName labels this cache in metrics
const metricsName = "rates"

// Cache decorates a Provider with a cache of exchange rates.
// A cached rate is served only on the calendar day it was observed, from the next day on
// it is stale and the pair is fetched again. Cache is concurrency safe.
type Cache struct {
	// next the provider being decorated with a cache
	next Provider

	// cache the cached rates by pair
	cache map[Pair]domain.ExchangeRate

	// lock synchronizes access to cache
	lock sync.RWMutex

	// inflight collapses concurrent misses for the same pair into one provider call
	inflight singleflight.Group

	clock   clock.Clock
	logger  log.Logger
	metrics *metrics.Cache
}

// Option configures a Cache
type Option func(*Cache)

// WithClock sets where the cache reads today's date from
func WithClock(c clock.Clock) Option {
	return func(cache *Cache) {
		cache.clock = c
	}
}

func WithLogger(logger log.Logger) Option {
	return func(cache *Cache) {
		cache.logger = logger
	}
}

func WithMetrics(m *metrics.Cache) Option {
	return func(cache *Cache) {
		cache.metrics = m
	}
}

// NewCache returns an empty cache in front of next
func NewCache(next Provider, opts ...Option) *Cache {
	c := &Cache{
		next:   next,
		cache:  map[Pair]domain.ExchangeRate{},
		clock:  clock.System,
		logger: log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Rate returns today's cached rate for the pair, or fetches and caches a fresh one.
// A failed fetch stores nothing, whatever was cached before stays as it was.
func (c *Cache) Rate(ctx context.Context, from domain.Currency, to domain.Currency) (domain.ExchangeRate, error) {
	key := PairOf(from, to)

	if rate, ok := c.fresh(key); ok {
		level.Debug(c.logger).Log("msg", "cache hit", "pair", key, "date", rate.Date().Format("2006-01-02"))
		c.metrics.Lookup(metricsName, metrics.Hit)
		return rate, nil
	}

	v, err, shared := c.inflight.Do(key.String(), func() (interface{}, error) {
		// another caller may have refreshed the pair while we waited
		if rate, ok := c.fresh(key); ok {
			return rate, nil
		}
		return c.refreshNow(ctx, key, from, to)
	})
	if err != nil {
		level.Warn(c.logger).Log("msg", "refresh failed", "pair", key, "err", err)
		c.metrics.Lookup(metricsName, metrics.Error)
		return domain.ExchangeRate{}, err
	}

	level.Debug(c.logger).Log("msg", "cache miss", "pair", key, "shared", shared)
	c.metrics.Lookup(metricsName, metrics.Miss)
	return v.(domain.ExchangeRate), nil
}

// fresh returns the cached rate for key if it was observed today
func (c *Cache) fresh(key Pair) (domain.ExchangeRate, bool) {
	c.lock.RLock()
	defer c.lock.RUnlock()
	rate, ok := c.cache[key]
	if !ok || !rate.ObservedOn(c.clock.Now()) {
		return domain.ExchangeRate{}, false
	}
	return rate, true
}

// refreshNow fetches the pair from the provider and replaces any cached entry
func (c *Cache) refreshNow(ctx context.Context, key Pair, from domain.Currency, to domain.Currency) (domain.ExchangeRate, error) {
	begin := time.Now()
	rate, err := c.next.Rate(ctx, from, to)
	c.metrics.ObserveProvider(metricsName, begin)
	if err != nil {
		return domain.ExchangeRate{}, &domain.ProviderError{Op: "rate " + key.String(), Err: err}
	}

	c.lock.Lock()
	defer c.lock.Unlock()
	c.cache[key] = rate
	c.metrics.SetEntries(metricsName, len(c.cache))
	return rate, nil
}

// Clear drops every cached rate
func (c *Cache) Clear() {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.cache = map[Pair]domain.ExchangeRate{}
	c.metrics.SetEntries(metricsName, 0)
	level.Info(c.logger).Log("msg", "cache cleared")
}

// Len number of cached pairs, stale ones included
func (c *Cache) Len() int {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return len(c.cache)
}
