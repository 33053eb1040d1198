package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/fiscaldoc/fiscaldoc/internal/money"
)

// Numeric bounds for money-bearing fields.
const (
	// maxSumMinor bounds price, sum, vat base, and payment sum at
	// 42,949,672.95 in major units (FFD tags 1079, 1043).
	maxSumMinor int64 = 4294967295

	// maxQuantityThousandths bounds quantity at 99,999.999 (FFD tag 1023).
	maxQuantityThousandths int64 = 99999999
)

// Item is a receipt line: a priced position with quantity, derived sum,
// and optional taxation.
type Item struct {
	name            string
	priceMinor      int64
	qtyThousandths  int64
	sumMinor        int64
	measurementUnit string
	paymentMethod   PaymentMethod
	paymentObject   PaymentObject
	userData        string
	vat             *Vat
}

// NewItem creates a line item. Name, price, and quantity are validated in
// that order; the sum is derived immediately.
func NewItem(name string, price, quantity decimal.Decimal) (*Item, error) {
	it := &Item{}
	if err := it.SetName(name); err != nil {
		return nil, err
	}
	if err := it.SetPrice(price); err != nil {
		return nil, err
	}
	if err := it.SetQuantity(quantity); err != nil {
		return nil, err
	}
	return it, nil
}

// Name returns the item name.
func (it *Item) Name() string {
	return it.name
}

// SetName replaces the item name (FFD tag 1030, at most 128 characters).
func (it *Item) SetName(name string) error {
	s, err := checkRequired("item name", name, maxItemNameLen)
	if err != nil {
		return err
	}
	it.name = s
	return nil
}

// Price returns the unit price in major units.
func (it *Item) Price() decimal.Decimal {
	return money.ToMajor(it.priceMinor)
}

// SetPrice replaces the unit price (FFD tag 1079) and recomputes the sum.
// On any failure the stored price and sum are left untouched.
func (it *Item) SetPrice(price decimal.Decimal) error {
	m := money.ToMinor(price)
	if m < 0 {
		return NewFormatError("item price", price.String(), "a non-negative amount")
	}
	if m > maxSumMinor {
		return NewTooHighError("item price", money.ToMajor(maxSumMinor).String(), price.String())
	}
	sum, err := calcSum(m, it.qtyThousandths)
	if err != nil {
		return err
	}
	it.priceMinor = m
	it.applySum(sum)
	return nil
}

// Quantity returns the quantity rounded to three decimals.
func (it *Item) Quantity() decimal.Decimal {
	return money.Quantity(it.qtyThousandths).Decimal()
}

// SetQuantity replaces the quantity (FFD tag 1023), rounding to three
// decimals, and recomputes the sum. On any failure the stored quantity and
// sum are left untouched.
func (it *Item) SetQuantity(quantity decimal.Decimal) error {
	q := int64(money.QuantityFromDecimal(quantity))
	if q < 0 {
		return NewFormatError("item quantity", quantity.String(), "a non-negative quantity")
	}
	if q > maxQuantityThousandths {
		return NewTooHighError("item quantity",
			money.Quantity(maxQuantityThousandths).String(), quantity.String())
	}
	sum, err := calcSum(it.priceMinor, q)
	if err != nil {
		return err
	}
	it.qtyThousandths = q
	it.applySum(sum)
	return nil
}

// Sum returns the derived position sum (price times quantity, FFD tag 1043).
func (it *Item) Sum() decimal.Decimal {
	return money.ToMajor(it.sumMinor)
}

// MeasurementUnit returns the measurement unit, if set.
func (it *Item) MeasurementUnit() string {
	return it.measurementUnit
}

// SetMeasurementUnit replaces the measurement unit (FFD tag 1197, at most
// 16 characters). Blank input clears it.
func (it *Item) SetMeasurementUnit(unit string) error {
	s, err := checkOptional("item measurement unit", unit, maxMeasurementUnitLen)
	if err != nil {
		return err
	}
	it.measurementUnit = s
	return nil
}

// PaymentMethod returns the settlement method attribute, if set.
func (it *Item) PaymentMethod() PaymentMethod {
	return it.paymentMethod
}

// SetPaymentMethod replaces the settlement method attribute (FFD tag 1214).
func (it *Item) SetPaymentMethod(m PaymentMethod) error {
	if m != "" && !m.Valid() {
		return NewFormatError("item payment method", string(m), "a settlement method tag")
	}
	it.paymentMethod = m
	return nil
}

// PaymentObject returns the settlement subject attribute, if set.
func (it *Item) PaymentObject() PaymentObject {
	return it.paymentObject
}

// SetPaymentObject replaces the settlement subject attribute (FFD tag 1212).
func (it *Item) SetPaymentObject(o PaymentObject) error {
	if o != "" && !o.Valid() {
		return NewFormatError("item payment object", string(o), "a settlement subject tag")
	}
	it.paymentObject = o
	return nil
}

// UserData returns the additional item attribute, if set.
func (it *Item) UserData() string {
	return it.userData
}

// SetUserData replaces the additional item attribute (FFD tag 1191, at most
// 64 characters). Blank input clears it.
func (it *Item) SetUserData(data string) error {
	s, err := checkOptional("item user data", data, maxUserDataLen)
	if err != nil {
		return err
	}
	it.userData = s
	return nil
}

// Vat returns the attached VAT entry, or nil.
func (it *Item) Vat() *Vat {
	return it.vat
}

// SetVat attaches a VAT entry, seeding its base with the current sum.
// Passing nil detaches taxation without affecting the sum.
func (it *Item) SetVat(v *Vat) {
	it.vat = v
	if v != nil {
		v.setBaseMinor(it.sumMinor)
	}
}

// calcSum derives the position sum in minor units, rejecting results over
// the representable maximum before any state changes.
func calcSum(priceMinor, qtyThousandths int64) (int64, error) {
	sum := (priceMinor*qtyThousandths + 500) / 1000
	if sum > maxSumMinor {
		return 0, NewTooHighError("item sum",
			money.ToMajor(maxSumMinor).String(), money.ToMajor(sum).String())
	}
	return sum, nil
}

// applySum stores a derived sum and propagates it into the attached VAT base.
func (it *Item) applySum(sumMinor int64) {
	it.sumMinor = sumMinor
	if it.vat != nil {
		it.vat.setBaseMinor(sumMinor)
	}
}

type itemPayload struct {
	Name            string         `json:"name"`
	Price           money.Amount   `json:"price"`
	Quantity        money.Quantity `json:"quantity"`
	Sum             money.Amount   `json:"sum"`
	MeasurementUnit string         `json:"measurement_unit,omitempty"`
	PaymentMethod   PaymentMethod  `json:"payment_method,omitempty"`
	PaymentObject   PaymentObject  `json:"payment_object,omitempty"`
	Vat             *Vat           `json:"vat,omitempty"`
	UserData        string         `json:"user_data,omitempty"`
}

// MarshalJSON emits the ordered wire projection of the line item.
func (it *Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(itemPayload{
		Name:            it.name,
		Price:           money.Amount(it.priceMinor),
		Quantity:        money.Quantity(it.qtyThousandths),
		Sum:             money.Amount(it.sumMinor),
		MeasurementUnit: it.measurementUnit,
		PaymentMethod:   it.paymentMethod,
		PaymentObject:   it.paymentObject,
		Vat:             it.vat,
		UserData:        it.userData,
	})
}
