package money

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

var (
	ErrInvalidCurrency = errors.New("money: invalid currency code")
	ErrInvalidMicros   = errors.New("money: invalid micro amount")
)

// MicrosPerUnit is the upstream scaling factor: amounts arrive in
// micro-currency-units and are exposed in whole units.
const MicrosPerUnit = 1_000_000

// Money keeps whole currency units as integers to avoid floating point issues.
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// New constructs a Money value validating minimal invariants.
func New(amount int64, currency string) (Money, error) {
	if len(currency) != 3 {
		return Money{}, ErrInvalidCurrency
	}
	return Money{Amount: amount, Currency: strings.ToUpper(currency)}, nil
}

// Must creates Money and panics if validation fails; useful in tests and fixtures.
func Must(amount int64, currency string) Money {
	m, err := New(amount, currency)
	if err != nil {
		panic(err)
	}
	return m
}

// FromMicros converts a micro-unit amount into whole units by integer division.
func FromMicros(micros int64, currency string) (Money, error) {
	return New(micros/MicrosPerUnit, currency)
}

// ParseMicros reads a micro-unit amount from a decoded JSON value. Upstream
// serializes amounts as strings, but numbers are accepted too.
func ParseMicros(v any) (int64, error) {
	switch raw := v.(type) {
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return 0, ErrInvalidMicros
		}
		return n, nil
	case json.Number:
		n, err := raw.Int64()
		if err != nil {
			return 0, ErrInvalidMicros
		}
		return n, nil
	case float64:
		return int64(raw), nil
	default:
		return 0, ErrInvalidMicros
	}
}

// Add adds two money values ensuring currencies match.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency == "" || other.Currency == "" || m.Currency != other.Currency {
		return Money{}, ErrInvalidCurrency
	}
	return Money{Amount: m.Amount + other.Amount, Currency: m.Currency}, nil
}

// IsZero returns true if the amount equals zero.
func (m Money) IsZero() bool {
	return m.Amount == 0
}
