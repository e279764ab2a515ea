package models

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a decimal amount that tolerates malformed input.
// Legacy records occasionally carry unparsable amount fields; those decode
// to zero instead of failing the whole collection.
type Money struct {
	decimal.Decimal
}

// NewMoney creates a Money from a decimal.
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

// MoneyFromString parses a decimal string, returning zero on failure.
func MoneyFromString(s string) Money {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Money{}
	}
	return Money{Decimal: d}
}

// MoneyFromFloat creates a Money from a float64.
func MoneyFromFloat(f float64) Money {
	return Money{Decimal: decimal.NewFromFloat(f)}
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
// Anything unparsable decodes to zero.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		m.Decimal = decimal.Zero
		return nil
	}
	s = strings.Trim(s, `"`)

	d, err := decimal.NewFromString(s)
	if err != nil {
		m.Decimal = decimal.Zero
		return nil
	}
	m.Decimal = d
	return nil
}

// MarshalJSON encodes the amount as a JSON string to avoid float rounding.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Decimal.String())
}
