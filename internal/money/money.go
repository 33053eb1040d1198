// Package money provides exact minor-unit (kopeck) arithmetic for fiscal
// documents. Amounts are stored as integer minor units to avoid floating
// rounding; the gateway wire format exposes them as decimal major units
// with two fractional digits.
package money

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// ToMinor converts a major-unit amount to minor units, rounding to 2 places.
func ToMinor(major decimal.Decimal) int64 {
	return major.Round(2).Shift(2).IntPart()
}

// ToMajor converts minor units back to a major-unit decimal.
func ToMajor(minor int64) decimal.Decimal {
	return decimal.New(minor, -2)
}

// Amount is a monetary value held in minor units. It marshals as a plain
// JSON number with exactly two fractional digits ("20.00", not "20").
type Amount int64

// FromMajor builds an Amount from a major-unit decimal.
func FromMajor(major decimal.Decimal) Amount {
	return Amount(ToMinor(major))
}

// Major returns the amount as a major-unit decimal.
func (a Amount) Major() decimal.Decimal {
	return ToMajor(int64(a))
}

// Minor returns the raw minor-unit count.
func (a Amount) Minor() int64 {
	return int64(a)
}

func (a Amount) String() string {
	m := int64(a)
	sign := ""
	if m < 0 {
		sign = "-"
		m = -m
	}
	return fmt.Sprintf("%s%d.%02d", sign, m/100, m%100)
}

// MarshalJSON emits the amount as an unquoted decimal number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts a JSON number (or numeric string) with up to two
// fractional digits.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		s = string(data)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", s, err)
	}
	*a = FromMajor(d)
	return nil
}

// Quantity is a count held in thousandths. It marshals as a JSON number
// with exactly three fractional digits ("2.000").
type Quantity int64

// QuantityFromDecimal builds a Quantity, rounding to 3 places.
func QuantityFromDecimal(d decimal.Decimal) Quantity {
	return Quantity(d.Round(3).Shift(3).IntPart())
}

// Decimal returns the quantity as a decimal.
func (q Quantity) Decimal() decimal.Decimal {
	return decimal.New(int64(q), -3)
}

// Thousandths returns the raw thousandth-unit count.
func (q Quantity) Thousandths() int64 {
	return int64(q)
}

func (q Quantity) String() string {
	m := int64(q)
	sign := ""
	if m < 0 {
		sign = "-"
		m = -m
	}
	return fmt.Sprintf("%s%d.%03d", sign, m/1000, m%1000)
}

// MarshalJSON emits the quantity as an unquoted decimal number.
func (q Quantity) MarshalJSON() ([]byte, error) {
	return []byte(q.String()), nil
}

// UnmarshalJSON accepts a JSON number (or numeric string) with up to three
// fractional digits.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		s = string(data)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid quantity %q: %w", s, err)
	}
	*q = QuantityFromDecimal(d)
	return nil
}
