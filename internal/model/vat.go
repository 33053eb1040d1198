package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/fiscaldoc/fiscaldoc/internal/money"
)

// Vat is a single VAT entry: a rate tag plus the base amount it applies to.
// The tax amount is always computed from the two and is never settable on
// its own (FFD tags 1199, 1102-1107).
type Vat struct {
	vatType   VatType
	baseMinor int64
}

// NewVat creates a VAT entry and computes its tax amount.
func NewVat(vatType VatType, baseSum decimal.Decimal) (*Vat, error) {
	v := &Vat{}
	if err := v.SetType(vatType); err != nil {
		return nil, err
	}
	if err := v.SetBaseSum(baseSum); err != nil {
		return nil, err
	}
	return v, nil
}

// Type returns the rate tag.
func (v *Vat) Type() VatType {
	return v.vatType
}

// SetType replaces the rate tag, rejecting values outside the closed table.
func (v *Vat) SetType(vatType VatType) error {
	if !vatType.Valid() {
		return NewFormatError("vat type", string(vatType), "a rate tag from the closed table")
	}
	v.vatType = vatType
	return nil
}

// BaseSum returns the base amount the rate applies to.
func (v *Vat) BaseSum() decimal.Decimal {
	return money.ToMajor(v.baseMinor)
}

// SetBaseSum replaces the base amount. The tax amount follows implicitly.
func (v *Vat) SetBaseSum(baseSum decimal.Decimal) error {
	m := money.ToMinor(baseSum)
	if m < 0 {
		return NewFormatError("vat base sum", baseSum.String(), "a non-negative amount")
	}
	if m > maxSumMinor {
		return NewTooHighError("vat base sum", money.ToMajor(maxSumMinor).String(), baseSum.String())
	}
	v.baseMinor = m
	return nil
}

// AddBaseSum adds to the base amount; used when same-type entries merge
// inside a Vats collection.
func (v *Vat) AddBaseSum(delta decimal.Decimal) error {
	return v.SetBaseSum(money.ToMajor(v.baseMinor).Add(delta))
}

// setBaseMinor overwrites the base without range checks. Reserved for the
// document aggregate forcing every entry's base to the document total.
func (v *Vat) setBaseMinor(m int64) {
	v.baseMinor = m
}

func (v *Vat) computedMinor() int64 {
	rate := vatRates[v.vatType]
	if rate.num == 0 {
		return 0
	}
	// Division happens in minor units with half-up rounding to match the
	// fiscal rate rules bit-for-bit.
	return (v.baseMinor*rate.num + rate.den/2) / rate.den
}

// ComputedSum returns the tax amount for the current type and base.
func (v *Vat) ComputedSum() decimal.Decimal {
	return money.ToMajor(v.computedMinor())
}

type vatPayload struct {
	Type VatType      `json:"type"`
	Sum  money.Amount `json:"sum"`
}

// MarshalJSON emits the rate tag and the computed tax amount.
func (v *Vat) MarshalJSON() ([]byte, error) {
	return json.Marshal(vatPayload{
		Type: v.vatType,
		Sum:  money.Amount(v.computedMinor()),
	})
}
