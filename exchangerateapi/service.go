package exchangerateapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"money-calculator/clock"
	"money-calculator/domain"
)

// ApiUrlBase exchangerate-api.com v6 endpoint, the API key goes right after it
const ApiUrlBase = "https://v6.exchangerate-api.com/v6"

// DefaultTimeout for HTTP requests
const DefaultTimeout = 5 * time.Second

// Service wraps the exchangerate-api.com REST API.
// It is both the rates.Provider and the currency.Provider of the application.
type Service interface {
	// Rate today's conversion rate for a pair
	Rate(ctx context.Context, from domain.Currency, to domain.Currency) (domain.ExchangeRate, error)

	// Currencies every supported currency, in the order the API lists them
	Currencies(ctx context.Context) ([]domain.Currency, error)

	// Currency a supported currency by code, ignoring case
	Currency(ctx context.Context, code string) (domain.Currency, bool, error)
}

// APIError the API refused a request, either with a non-200 status or a result other than "success"
type APIError struct {
	// Status HTTP status code
	Status int

	// Type the API's "error-type", e.g. "unsupported-code" or "invalid-key"
	Type string
}

func (e *APIError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("exchangerate-api: status %v", e.Status)
	}
	return fmt.Sprintf("exchangerate-api: status %v: %v", e.Status, e.Type)
}

// service exchangerate-api.com client
type service struct {
	// url base API url
	url string

	// key API key, part of every request path
	key string

	// client for HTTP requests
	client http.Client

	// clock dates the rates returned
	clock clock.Clock
}

// Option configures a Service
type Option func(*service)

func WithBaseURL(url string) Option {
	return func(s *service) {
		s.url = strings.TrimRight(url, "/")
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(s *service) {
		s.client.Timeout = timeout
	}
}

func WithClock(c clock.Clock) Option {
	return func(s *service) {
		s.clock = c
	}
}

// NewService constructs a valid exchangerate-api Service.
func NewService(apiKey string, opts ...Option) Service {
	s := &service{
		url: ApiUrlBase,
		key: apiKey,
		client: http.Client{
			Timeout: DefaultTimeout,
		},
		clock: clock.System,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// envelope fields every response carries
type envelope struct {
	Result    string `json:"result"`
	ErrorType string `json:"error-type"`
}

// Rate loads the current rate for a pair. The API updates rates once a day,
// the rate is dated with today's date.
func (s *service) Rate(ctx context.Context, from domain.Currency, to domain.Currency) (domain.ExchangeRate, error) {
	type Response struct {
		envelope
		BaseCode          string          `json:"base_code"`
		TargetCode        string          `json:"target_code"`
		ConversionRate    decimal.Decimal `json:"conversion_rate"`
		TimeLastUpdateUTC string          `json:"time_last_update_utc"`
	}

	url := fmt.Sprintf("%v/%v/pair/%v/%v", s.url, s.key, from.Code(), to.Code())

	var response Response
	if err := s.get(ctx, url, &response, &response.envelope); err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("pair [%v-%v]: %w", from.Code(), to.Code(), err)
	}

	rate, err := domain.NewExchangeRate(s.clock.Now(), from, to, response.ConversionRate)
	if err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("pair [%v-%v]: %w", from.Code(), to.Code(), err)
	}
	return rate, nil
}

// Currencies loads the supported currency codes and names
func (s *service) Currencies(ctx context.Context) ([]domain.Currency, error) {
	type Response struct {
		envelope
		SupportedCodes [][]string `json:"supported_codes"` // [code, name] tuples
	}

	url := fmt.Sprintf("%v/%v/codes", s.url, s.key)

	var response Response
	if err := s.get(ctx, url, &response, &response.envelope); err != nil {
		return nil, fmt.Errorf("codes: %w", err)
	}

	currencies := make([]domain.Currency, 0, len(response.SupportedCodes))
	for _, tuple := range response.SupportedCodes {
		if len(tuple) != 2 {
			return nil, fmt.Errorf("bad supported code: %v", tuple)
		}
		currency, err := domain.NewCurrency(tuple[0], tuple[1])
		if err != nil {
			return nil, fmt.Errorf("bad supported code: %w", err)
		}
		currencies = append(currencies, currency)
	}
	return currencies, nil
}

// Currency filters Currencies, the API has no single currency endpoint
func (s *service) Currency(ctx context.Context, code string) (domain.Currency, bool, error) {
	currencies, err := s.Currencies(ctx)
	if err != nil {
		return domain.Currency{}, false, err
	}
	for _, currency := range currencies {
		if strings.EqualFold(currency.Code(), code) {
			return currency, true, nil
		}
	}
	return domain.Currency{}, false, nil
}

// get decodes the JSON at url into response and checks env, the envelope embedded in response
func (s *service) get(ctx context.Context, url string, response interface{}, env *envelope) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building http request: %w", err)
	}
	httpResponse, err := s.client.Do(request)
	if err != nil {
		return fmt.Errorf("http get: %w", err)
	}
	defer httpResponse.Body.Close()

	bytes, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return fmt.Errorf("reading json: %w", err)
	}

	if httpResponse.StatusCode != http.StatusOK {
		// error bodies carry an error-type, when they are JSON at all
		var e envelope
		_ = json.Unmarshal(bytes, &e)
		return &APIError{Status: httpResponse.StatusCode, Type: e.ErrorType}
	}

	err = json.Unmarshal(bytes, response)
	if err != nil {
		return fmt.Errorf("decoding json: %w", err)
	}

	if env.Result != "success" {
		return &APIError{Status: httpResponse.StatusCode, Type: env.ErrorType}
	}
	return nil
}
