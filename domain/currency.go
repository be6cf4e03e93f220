package domain

import (
	"fmt"
	"strings"
)

// Currency a currency identified by its three letter code.
// Two currencies are the same currency when their codes match, whatever their names.
type Currency struct {
	code string
	name string
}

// NewCurrency validates code and name. The code is upper-cased.
func NewCurrency(code string, name string) (Currency, error) {
	if len(code) != 3 {
		return Currency{}, fmt.Errorf("%w: %q", ErrInvalidCurrencyCode, code)
	}
	for _, r := range code {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return Currency{}, fmt.Errorf("%w: %q", ErrInvalidCurrencyCode, code)
		}
	}
	if name == "" {
		return Currency{}, fmt.Errorf("%w: %v", ErrEmptyCurrencyName, code)
	}
	return Currency{code: strings.ToUpper(code), name: name}, nil
}

// MustCurrency is NewCurrency for well known currencies, it panics on invalid input.
func MustCurrency(code string, name string) Currency {
	c, err := NewCurrency(code, name)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Currency) Code() string { return c.code }

func (c Currency) Name() string { return c.name }

// Equal compares by code only
func (c Currency) Equal(other Currency) bool {
	return c.code == other.code
}

// IsZero reports whether c was never constructed
func (c Currency) IsZero() bool {
	return c.code == ""
}

func (c Currency) String() string {
	return c.code + " - " + c.name
}
