package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/shopspring/decimal"

	"money-calculator/domain"
	"money-calculator/exchange"
)

// Catalog resolves currency codes, normally a *currency.Catalog
type Catalog interface {
	All(ctx context.Context) ([]domain.Currency, error)
	Lookup(ctx context.Context, code string) (domain.Currency, error)
}

// Server dependencies for HTTP Server functions
type Server struct {
	Catalog Catalog
	Service exchange.Service
	Logger  log.Logger

	// refreshers drop cached state on POST /api/refresh
	refreshers []func()

	router http.ServeMux
}

// NewServer wires the routes. refreshers are called, in order, on every refresh request.
func NewServer(c Catalog, s exchange.Service, logger log.Logger, refreshers ...func()) *Server {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	server := &Server{
		Catalog:    c,
		Service:    s,
		Logger:     logger,
		refreshers: refreshers,
	}
	server.routes()
	return server
}

func (s *Server) routes() {
	s.router.Handle("POST /api/convert", s.convert())
	s.router.Handle("GET /api/currencies", s.currencies())
	s.router.Handle("POST /api/refresh", s.refresh())
}

func (s *Server) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(rw, r)
}

// convert produces HTTP handler for currency conversions
func (s *Server) convert() http.HandlerFunc {

	// request for unmarshalling JSON requests posted by clients
	type request struct {
		FromCurrency string          `json:"fromCurrency"`
		ToCurrency   string          `json:"toCurrency"`
		Amount       decimal.Decimal `json:"amount"`
	}

	// response for marshalling JSON responses to return to clients
	type response struct {
		Amount           string `json:"amount"`
		Currency         string `json:"currency"`
		Name             string `json:"name"`
		Original         string `json:"original"`
		OriginalCurrency string `json:"originalCurrency"`
	}

	return func(rw http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		var request request
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			s.writeError(rw, http.StatusBadRequest, "invalid json", err)
			return
		}

		ctx := r.Context()
		from, err := s.Catalog.Lookup(ctx, request.FromCurrency)
		if err != nil {
			s.fail(rw, err)
			return
		}
		to, err := s.Catalog.Lookup(ctx, request.ToCurrency)
		if err != nil {
			s.fail(rw, err)
			return
		}

		money, err := domain.NewMoney(request.Amount, from)
		if err != nil {
			s.fail(rw, err)
			return
		}

		result, err := s.Service.Convert(ctx, money, to)
		if err != nil {
			s.fail(rw, err)
			return
		}

		s.encode(rw, response{
			Amount:           result.Amount().StringFixed(2),
			Currency:         result.Currency().Code(),
			Name:             result.Currency().Name(),
			Original:         money.Amount().StringFixed(2),
			OriginalCurrency: money.Currency().Code(),
		})
	}
}

// currencies produces HTTP handler listing the currency catalog
func (s *Server) currencies() http.HandlerFunc {
	type currency struct {
		Code string `json:"code"`
		Name string `json:"name"`
	}

	return func(rw http.ResponseWriter, r *http.Request) {
		all, err := s.Catalog.All(r.Context())
		if err != nil {
			s.fail(rw, err)
			return
		}

		response := make([]currency, 0, len(all))
		for _, c := range all {
			response = append(response, currency{Code: c.Code(), Name: c.Name()})
		}
		s.encode(rw, response)
	}
}

// refresh produces HTTP handler dropping cached currencies and rates
func (s *Server) refresh() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		for _, refresh := range s.refreshers {
			refresh()
		}
		rw.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) encode(rw http.ResponseWriter, v interface{}) {
	rw.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(rw).Encode(v); err != nil {
		level.Error(s.Logger).Log("msg", "failed json encoding", "err", err)
	}
}

// fail maps domain and provider errors to a status
func (s *Server) fail(rw http.ResponseWriter, err error) {
	var providerErr *domain.ProviderError
	switch {
	case errors.As(err, &providerErr):
		s.writeError(rw, http.StatusBadGateway, "rate provider unavailable", err)
	case errors.Is(err, domain.ErrCurrencyNotFound):
		s.writeError(rw, http.StatusNotFound, err.Error(), err)
	default:
		s.writeError(rw, http.StatusBadRequest, err.Error(), err)
	}
}

func (s *Server) writeError(rw http.ResponseWriter, status int, message string, err error) {
	level.Debug(s.Logger).Log("msg", "request failed", "status", status, "err", err)

	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	_ = json.NewEncoder(rw).Encode(struct {
		Error string `json:"error"`
	}{message})
}
