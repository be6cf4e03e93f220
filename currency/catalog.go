package currency

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/sync/singleflight"

	"money-calculator/domain"
	"money-calculator/metrics"
)

const metricsName = "currencies"

// Catalog caches the full currency list of a Provider.
// The list is fetched on first use and kept until Refresh. Catalog is concurrency safe.
type Catalog struct {
	provider Provider

	// currencies the cached list, only meaningful when loaded
	currencies []domain.Currency
	loaded     bool

	// lock synchronizes access to currencies and loaded
	lock sync.RWMutex

	inflight singleflight.Group

	logger  log.Logger
	metrics *metrics.Cache
}

// NewCatalog returns an empty catalog. logger and m may be nil.
func NewCatalog(p Provider, logger log.Logger, m *metrics.Cache) *Catalog {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Catalog{
		provider: p,
		logger:   logger,
		metrics:  m,
	}
}

// All returns every currency in provider order, fetching the list if it is not cached.
// The returned slice is the caller's to keep.
func (c *Catalog) All(ctx context.Context) ([]domain.Currency, error) {
	if currencies, ok := c.cached(); ok {
		c.metrics.Lookup(metricsName, metrics.Hit)
		return currencies, nil
	}

	v, err, _ := c.inflight.Do("all", func() (interface{}, error) {
		if currencies, ok := c.cached(); ok {
			return currencies, nil
		}
		return c.load(ctx)
	})
	if err != nil {
		level.Warn(c.logger).Log("msg", "loading currencies failed", "err", err)
		c.metrics.Lookup(metricsName, metrics.Error)
		return nil, err
	}

	c.metrics.Lookup(metricsName, metrics.Miss)
	// callers sharing a load each get their own copy
	shared := v.([]domain.Currency)
	currencies := make([]domain.Currency, len(shared))
	copy(currencies, shared)
	return currencies, nil
}

// Lookup finds a currency by code, ignoring case.
// Fails with a *domain.CurrencyNotFoundError when the catalog has no such code.
func (c *Catalog) Lookup(ctx context.Context, code string) (domain.Currency, error) {
	currencies, err := c.All(ctx)
	if err != nil {
		return domain.Currency{}, err
	}
	for _, currency := range currencies {
		if strings.EqualFold(currency.Code(), code) {
			return currency, nil
		}
	}
	return domain.Currency{}, &domain.CurrencyNotFoundError{Code: code}
}

// Refresh drops the cached list, the next call to All fetches it again
func (c *Catalog) Refresh() {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.currencies = nil
	c.loaded = false
	c.metrics.SetEntries(metricsName, 0)
	level.Info(c.logger).Log("msg", "currency catalog dropped")
}

// cached a copy of the cached list
func (c *Catalog) cached() ([]domain.Currency, bool) {
	c.lock.RLock()
	defer c.lock.RUnlock()
	if !c.loaded {
		return nil, false
	}
	currencies := make([]domain.Currency, len(c.currencies))
	copy(currencies, c.currencies)
	return currencies, true
}

// load fetches the list from the provider and replaces the cached one
func (c *Catalog) load(ctx context.Context) ([]domain.Currency, error) {
	level.Debug(c.logger).Log("msg", "loading currencies")
	begin := time.Now()
	currencies, err := c.provider.Currencies(ctx)
	c.metrics.ObserveProvider(metricsName, begin)
	if err != nil {
		return nil, &domain.ProviderError{Op: "currencies", Err: err}
	}

	c.lock.Lock()
	defer c.lock.Unlock()
	c.currencies = append([]domain.Currency(nil), currencies...)
	c.loaded = true
	c.metrics.SetEntries(metricsName, len(currencies))
	level.Debug(c.logger).Log("msg", "currencies loaded", "count", len(currencies))
	return currencies, nil
}
