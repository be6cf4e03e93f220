package exchange

import (
	"context"
	"fmt"

	"money-calculator/domain"
	"money-calculator/rates"
)

// Service converts money from one currency to another
type Service interface {
	Convert(ctx context.Context, money domain.Money, target domain.Currency) (domain.Money, error)
}

// service converts with rates looked up from a rates.Provider, normally a rates.Cache
type service struct {
	rates rates.Provider
}

// NewService constructs a valid Service
func NewService(r rates.Provider) Service {
	return &service{
		rates: r,
	}
}

// Convert exchanges money into target at today's rate.
// As a side-effect the cache of exchange rates might be updated.
// Converting a currency into itself still looks the pair up like any other.
func (s *service) Convert(ctx context.Context, money domain.Money, target domain.Currency) (domain.Money, error) {
	from := money.Currency()

	rate, err := s.rates.Rate(ctx, from, target)
	if err != nil {
		return domain.Money{}, fmt.Errorf("convert [%v -> %v]: %w", from.Code(), target.Code(), err)
	}

	result, err := money.Exchange(rate)
	if err != nil {
		return domain.Money{}, fmt.Errorf("convert [%v -> %v]: %w", from.Code(), target.Code(), err)
	}
	return result, nil
}
