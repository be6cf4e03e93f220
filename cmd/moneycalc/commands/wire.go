package commands

import (
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"money-calculator/config"
	"money-calculator/currency"
	"money-calculator/exchange"
	"money-calculator/exchangerateapi"
	"money-calculator/metrics"
	"money-calculator/rates"
)

// app the wired object graph shared by the commands
type app struct {
	cfg      *config.Config
	logger   log.Logger
	registry *prometheus.Registry

	catalog  *currency.Catalog
	rates    *rates.Cache
	exchange exchange.Service
}

func newApp(cfg *config.Config, logger log.Logger) *app {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	cacheMetrics := metrics.NewCache(registry)

	client := exchangerateapi.NewService(
		cfg.APIKey,
		exchangerateapi.WithBaseURL(cfg.APIURL),
		exchangerateapi.WithTimeout(cfg.APITimeout),
	)

	// call logs are debug level, the caches log their own hits and failures
	var rateProvider rates.Provider = client
	rateProvider = rates.NewLoggingService(level.Debug(log.With(logger, "component", "exchangerate_api")), rateProvider)
	rateCache := rates.NewCache(rateProvider,
		rates.WithLogger(log.With(logger, "component", "rate_cache")),
		rates.WithMetrics(cacheMetrics),
	)
	rateProvider = rates.NewLoggingService(level.Debug(log.With(logger, "component", "rate_cache")), rateCache)

	exchangeService := exchange.NewService(rateProvider)
	exchangeService = exchange.NewLoggingService(level.Debug(log.With(logger, "component", "exchange")), exchangeService)

	var currencyProvider currency.Provider = client
	currencyProvider = currency.NewLoggingService(level.Debug(log.With(logger, "component", "exchangerate_api")), currencyProvider)
	catalog := currency.NewCatalog(currencyProvider, log.With(logger, "component", "currency_catalog"), cacheMetrics)

	return &app{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		catalog:  catalog,
		rates:    rateCache,
		exchange: exchangeService,
	}
}
