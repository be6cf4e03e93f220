package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Lookup results
const (
	Hit   = "hit"
	Miss  = "miss"
	Error = "error"
)

// Cache metrics shared by the currency catalog and the exchange rate cache.
// Every method is safe on a nil *Cache, so caches can run without metrics.
type Cache struct {
	// Lookups counts cache lookups by cache name and result
	Lookups *prometheus.CounterVec

	// Entries number of entries currently held
	Entries *prometheus.GaugeVec

	// ProviderDuration time spent waiting on the provider behind a cache
	ProviderDuration *prometheus.HistogramVec
}

// NewCache registers the cache metrics with reg
func NewCache(reg prometheus.Registerer) *Cache {
	factory := promauto.With(reg)
	return &Cache{
		Lookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "moneycalc",
				Name:      "cache_lookups_total",
				Help:      "Cache lookups by result (hit, miss, error).",
			},
			[]string{"cache", "result"},
		),
		Entries: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "moneycalc",
				Name:      "cache_entries",
				Help:      "Entries currently held by a cache.",
			},
			[]string{"cache"},
		),
		ProviderDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "moneycalc",
				Name:      "provider_request_duration_seconds",
				Help:      "Time spent fetching from the provider on a cache miss.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"cache"},
		),
	}
}

func (m *Cache) Lookup(cache string, result string) {
	if m == nil {
		return
	}
	m.Lookups.WithLabelValues(cache, result).Inc()
}

func (m *Cache) SetEntries(cache string, n int) {
	if m == nil {
		return
	}
	m.Entries.WithLabelValues(cache).Set(float64(n))
}

func (m *Cache) ObserveProvider(cache string, begin time.Time) {
	if m == nil {
		return
	}
	m.ProviderDuration.WithLabelValues(cache).Observe(time.Since(begin).Seconds())
}
