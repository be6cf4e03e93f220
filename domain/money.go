package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// places every Money amount is kept with
const places = 2

// Money an amount of a currency. Money is immutable, operations return new values.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoney rounds amount half-up to two decimal places.
func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if amount.IsNegative() {
		return Money{}, fmt.Errorf("%w: %v", ErrNegativeAmount, amount)
	}
	if currency.IsZero() {
		return Money{}, fmt.Errorf("%w: money needs a currency", ErrInvalidCurrencyCode)
	}
	// Round is half away from zero, which is half-up for non-negative amounts.
	return Money{amount: amount.Round(places), currency: currency}, nil
}

// ParseMoney reads amount as a decimal string, "1.005" is exactly 1.005 and becomes 1.01.
func ParseMoney(amount string, currency Currency) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("parsing amount %q: %w", amount, err)
	}
	return NewMoney(d, currency)
}

// NewMoneyFromFloat converts amount through its shortest decimal representation,
// so 1.005 is read as "1.005" rather than its binary approximation.
func NewMoneyFromFloat(amount float64, currency Currency) (Money, error) {
	return NewMoney(decimal.NewFromFloat(amount), currency)
}

func (m Money) Amount() decimal.Decimal { return m.amount }

func (m Money) Currency() Currency { return m.currency }

// Exchange converts m with rate. rate must be from m's currency.
func (m Money) Exchange(rate ExchangeRate) (Money, error) {
	if !m.currency.Equal(rate.From()) {
		return Money{}, fmt.Errorf("%w: money in %v, rate from %v", ErrCurrencyMismatch, m.currency.Code(), rate.From().Code())
	}
	return NewMoney(m.amount.Mul(rate.Rate()), rate.To())
}

// Equal compares amount and currency code
func (m Money) Equal(other Money) bool {
	return m.currency.Equal(other.currency) && m.amount.Equal(other.amount)
}

func (m Money) String() string {
	return m.amount.StringFixed(places) + " " + m.currency.Code()
}
