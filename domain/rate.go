package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate 1 unit of From is worth Rate units of To, as observed on Date.
// Rates are directional, the inverse is never derived.
type ExchangeRate struct {
	date time.Time
	from Currency
	to   Currency
	rate decimal.Decimal
}

// NewExchangeRate truncates date to its calendar day in date's location.
func NewExchangeRate(date time.Time, from Currency, to Currency, rate decimal.Decimal) (ExchangeRate, error) {
	if !rate.IsPositive() {
		return ExchangeRate{}, fmt.Errorf("%w: %v -> %v = %v", ErrInvalidRate, from.Code(), to.Code(), rate)
	}
	return ExchangeRate{
		date: Day(date),
		from: from,
		to:   to,
		rate: rate,
	}, nil
}

func (r ExchangeRate) Date() time.Time { return r.date }

func (r ExchangeRate) From() Currency { return r.from }

func (r ExchangeRate) To() Currency { return r.to }

func (r ExchangeRate) Rate() decimal.Decimal { return r.rate }

// ObservedOn reports whether t is on the same calendar day the rate was observed,
// with t read in the rate's location.
func (r ExchangeRate) ObservedOn(t time.Time) bool {
	return Day(t.In(r.date.Location())).Equal(r.date)
}

func (r ExchangeRate) String() string {
	return fmt.Sprintf("%v 1 %v = %v %v", r.date.Format("2006-01-02"), r.from.Code(), r.rate, r.to.Code())
}

// Day midnight of t's calendar day, in t's location
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
