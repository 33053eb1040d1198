package model

import (
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/fiscaldoc/fiscaldoc/internal/money"
)

// Payment is a typed settlement amount (FFD tags 1031, 1081, 1215-1217).
type Payment struct {
	paymentType PaymentType
	sumMinor    int64
}

// NewPayment creates a payment with a validated form code and amount.
func NewPayment(paymentType PaymentType, sum decimal.Decimal) (*Payment, error) {
	p := &Payment{}
	if err := p.SetType(paymentType); err != nil {
		return nil, err
	}
	if err := p.SetSum(sum); err != nil {
		return nil, err
	}
	return p, nil
}

// Type returns the payment form code.
func (p *Payment) Type() PaymentType {
	return p.paymentType
}

// SetType replaces the payment form code.
func (p *Payment) SetType(paymentType PaymentType) error {
	if !paymentType.Valid() {
		return NewFormatError("payment type", strconv.Itoa(int(paymentType)), "a code between 0 and 9")
	}
	p.paymentType = paymentType
	return nil
}

// Sum returns the settled amount in major units.
func (p *Payment) Sum() decimal.Decimal {
	return money.ToMajor(p.sumMinor)
}

// SetSum replaces the settled amount. Negative amounts are rejected.
func (p *Payment) SetSum(sum decimal.Decimal) error {
	m := money.ToMinor(sum)
	if m < 0 {
		return NewFormatError("payment sum", sum.String(), "a non-negative amount")
	}
	if m > maxSumMinor {
		return NewTooHighError("payment sum", money.ToMajor(maxSumMinor).String(), sum.String())
	}
	p.sumMinor = m
	return nil
}

type paymentPayload struct {
	Type PaymentType  `json:"type"`
	Sum  money.Amount `json:"sum"`
}

// MarshalJSON emits the ordered wire projection of the payment.
func (p *Payment) MarshalJSON() ([]byte, error) {
	return json.Marshal(paymentPayload{
		Type: p.paymentType,
		Sum:  money.Amount(p.sumMinor),
	})
}
