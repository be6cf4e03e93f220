package currency

import (
	"context"

	"money-calculator/domain"
)

// Provider supplies the list of supported currencies
type Provider interface {
	// Currencies every supported currency, in the provider's order
	Currencies(ctx context.Context) ([]domain.Currency, error)

	// Currency looks up a single currency by code, ignoring case.
	// The bool is false when the provider has no such currency.
	Currency(ctx context.Context, code string) (domain.Currency, bool, error)
}
