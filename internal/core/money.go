// Package core holds the record entities and the parsing rules applied to
// inbound field values before anything reaches storage.
//
// Amounts are decimals, stored and summed exactly; odometer readings are
// plain integers. Parsing is the only validation performed on numeric
// fields, matching the coercion-only contract of the repository.
package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a monetary value. It wraps decimal.Decimal to marshal as a
// bare JSON number; the wire format for monto and costo is numeric, not
// a quoted string.
type Amount struct {
	decimal.Decimal
}

func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts both numbers and quoted decimal strings.
func (a *Amount) UnmarshalJSON(data []byte) error {
	return a.Decimal.UnmarshalJSON(data)
}

// ParseAmount parses a monetary field value (monto, costo).
//
// Both dot and comma decimal separators are accepted. Negative values are
// not rejected: the domain expects non-negative amounts but does not
// enforce them.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}, fmt.Errorf("%w: empty value", ErrInvalidAmount)
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return NewAmount(d), nil
}

// ParseOdometer parses a required odometer reading.
func ParseOdometer(s string) (int64, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidOdometer, s)
	}
	return v, nil
}

// ParseOptionalOdometer parses an odometer field that may be absent.
// An empty value yields nil, stored as NULL rather than zero.
func ParseOptionalOdometer(s string) (*int64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	v, err := ParseOdometer(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// OptionalString returns nil for empty values, a pointer otherwise.
// Used for nullable pass-through columns (proxima_fecha, archivo).
func OptionalString(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
