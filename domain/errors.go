package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCurrencyCode a currency code is not exactly three letters
	ErrInvalidCurrencyCode = errors.New("invalid currency code")

	// ErrEmptyCurrencyName a currency was given no display name
	ErrEmptyCurrencyName = errors.New("empty currency name")

	// ErrNegativeAmount money cannot hold a negative amount
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidRate exchange rates must be positive
	ErrInvalidRate = errors.New("exchange rate must be positive")

	// ErrCurrencyMismatch money was exchanged with a rate for another currency
	ErrCurrencyMismatch = errors.New("currency mismatch")

	// ErrCurrencyNotFound no currency in the catalog has the requested code
	ErrCurrencyNotFound = errors.New("currency not found")
)

// CurrencyNotFoundError reports the code that could not be found, as the caller gave it.
type CurrencyNotFoundError struct {
	Code string
}

func (e *CurrencyNotFoundError) Error() string {
	return fmt.Sprintf("%v: %v", ErrCurrencyNotFound, e.Code)
}

// Is makes errors.Is(err, ErrCurrencyNotFound) hold.
func (e *CurrencyNotFoundError) Is(target error) bool {
	return target == ErrCurrencyNotFound
}

// ProviderError wraps any failure coming from a currency or rate provider.
// The provider's error is kept as is and available through errors.Unwrap.
type ProviderError struct {
	// Op what was asked of the provider, e.g. "rate EUR-USD"
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %v: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
