package rates

import (
	"context"

	"money-calculator/domain"
)

// Provider looks up the current exchange rate from one currency to another.
// Implementations must be concurrency-safe.
type Provider interface {
	Rate(ctx context.Context, from domain.Currency, to domain.Currency) (domain.ExchangeRate, error)
}

// ProviderFunc adapts a function to a Provider
type ProviderFunc func(ctx context.Context, from domain.Currency, to domain.Currency) (domain.ExchangeRate, error)

func (f ProviderFunc) Rate(ctx context.Context, from domain.Currency, to domain.Currency) (domain.ExchangeRate, error) {
	return f(ctx, from, to)
}

// Pair cache key, the ordered (from, to) currency codes. EUR-USD and USD-EUR are different pairs.
type Pair struct {
	From string
	To   string
}

// PairOf the key for a conversion from -> to
func PairOf(from domain.Currency, to domain.Currency) Pair {
	return Pair{From: from.Code(), To: to.Code()}
}

func (p Pair) String() string {
	return p.From + "-" + p.To
}
