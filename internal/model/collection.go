package model

import (
	"encoding/json"

	"github.com/fiscaldoc/fiscaldoc/internal/money"
)

// Capacity limits for the bounded document collections.
const (
	MaxItems    = 100
	MaxPayments = 10
	MaxVats     = 6
)

// collection is a bounded ordered sequence. Every mutation first computes
// the resulting size; exceeding the capacity rejects the whole transition
// with no elements added.
type collection[T any] struct {
	name  string
	limit int
	elems []T
}

// Len returns the element count.
func (c *collection[T]) Len() int {
	return len(c.elems)
}

// Elements returns a copy of the element slice in order.
func (c *collection[T]) Elements() []T {
	out := make([]T, len(c.elems))
	copy(out, c.elems)
	return out
}

func (c *collection[T]) checkRoom(adding int) error {
	if len(c.elems)+adding > c.limit {
		return NewTooManyError(c.name, c.limit, len(c.elems)+adding)
	}
	return nil
}

func (c *collection[T]) append(elems ...T) error {
	if err := c.checkRoom(len(elems)); err != nil {
		return err
	}
	c.elems = append(c.elems, elems...)
	return nil
}

func (c *collection[T]) prepend(elem T) error {
	if err := c.checkRoom(1); err != nil {
		return err
	}
	c.elems = append([]T{elem}, c.elems...)
	return nil
}

func (c *collection[T]) marshal() ([]byte, error) {
	if c.elems == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.elems)
}

// Items is the bounded line-item collection of a receipt (at most 100).
type Items struct {
	collection[*Item]
}

// NewItems creates an item collection seeded with the given elements.
func NewItems(items ...*Item) (*Items, error) {
	c := &Items{collection[*Item]{name: "items", limit: MaxItems}}
	if err := c.Append(items...); err != nil {
		return nil, err
	}
	return c, nil
}

// Append adds items at the tail, atomically.
func (c *Items) Append(items ...*Item) error {
	for _, it := range items {
		if it == nil {
			return NewElementTypeError("items", "*model.Item", nil)
		}
	}
	return c.append(items...)
}

// Prepend adds an item at the head.
func (c *Items) Prepend(item *Item) error {
	if item == nil {
		return NewElementTypeError("items", "*model.Item", nil)
	}
	return c.prepend(item)
}

// Merge appends every element of other, atomically.
func (c *Items) Merge(other *Items) error {
	if other == nil {
		return nil
	}
	return c.Append(other.elems...)
}

// MarshalJSON emits the elements in order.
func (c *Items) MarshalJSON() ([]byte, error) {
	return c.marshal()
}

// Payments is the bounded payment collection of a document (at most 10).
type Payments struct {
	collection[*Payment]
}

// NewPayments creates a payment collection seeded with the given elements.
func NewPayments(payments ...*Payment) (*Payments, error) {
	c := &Payments{collection[*Payment]{name: "payments", limit: MaxPayments}}
	if err := c.Append(payments...); err != nil {
		return nil, err
	}
	return c, nil
}

// Append adds payments at the tail, atomically.
func (c *Payments) Append(payments ...*Payment) error {
	for _, p := range payments {
		if p == nil {
			return NewElementTypeError("payments", "*model.Payment", nil)
		}
	}
	return c.append(payments...)
}

// Prepend adds a payment at the head.
func (c *Payments) Prepend(payment *Payment) error {
	if payment == nil {
		return NewElementTypeError("payments", "*model.Payment", nil)
	}
	return c.prepend(payment)
}

// Merge appends every element of other, atomically.
func (c *Payments) Merge(other *Payments) error {
	if other == nil {
		return nil
	}
	return c.Append(other.elems...)
}

// MarshalJSON emits the elements in order.
func (c *Payments) MarshalJSON() ([]byte, error) {
	return c.marshal()
}

// Vats is the bounded VAT collection of a document (at most 6). Insertion
// merges by rate tag: an incoming entry whose type already exists adds its
// base sum to the existing entry instead of growing the collection.
type Vats struct {
	collection[*Vat]
}

// NewVats creates a VAT collection seeded with the given entries.
func NewVats(vats ...*Vat) (*Vats, error) {
	c := &Vats{collection[*Vat]{name: "vats", limit: MaxVats}}
	if err := c.Append(vats...); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Vats) findType(t VatType) *Vat {
	for _, v := range c.elems {
		if v.Type() == t {
			return v
		}
	}
	return nil
}

// Append inserts entries, merging same-type ones into existing entries.
// The whole batch is resolved before any state changes so a capacity
// failure leaves the collection untouched.
func (c *Vats) Append(vats ...*Vat) error {
	type merge struct {
		target *Vat
		delta  int64
	}
	var merges []merge
	var fresh []*Vat
	for _, v := range vats {
		if v == nil {
			return NewElementTypeError("vats", "*model.Vat", nil)
		}
		if target := c.findType(v.Type()); target != nil {
			merges = append(merges, merge{target: target, delta: v.baseMinor})
			continue
		}
		folded := false
		for _, f := range fresh {
			if f.Type() == v.Type() {
				merges = append(merges, merge{target: f, delta: v.baseMinor})
				folded = true
				break
			}
		}
		if !folded {
			fresh = append(fresh, v)
		}
	}
	// Merged bases stay subject to the same bound as SetBaseSum; checked
	// per target before any mutation so the batch stays atomic.
	accum := make(map[*Vat]int64)
	for _, m := range merges {
		accum[m.target] += m.delta
	}
	for target, delta := range accum {
		if merged := target.baseMinor + delta; merged > maxSumMinor {
			return NewTooHighError("vat base sum",
				money.ToMajor(maxSumMinor).String(), money.ToMajor(merged).String())
		}
	}
	if err := c.checkRoom(len(fresh)); err != nil {
		return err
	}
	c.elems = append(c.elems, fresh...)
	for _, m := range merges {
		m.target.setBaseMinor(m.target.baseMinor + m.delta)
	}
	return nil
}

// Prepend inserts an entry at the head, merging by type like Append.
func (c *Vats) Prepend(vat *Vat) error {
	if vat == nil {
		return NewElementTypeError("vats", "*model.Vat", nil)
	}
	if target := c.findType(vat.Type()); target != nil {
		return target.AddBaseSum(vat.BaseSum())
	}
	return c.prepend(vat)
}

// Merge inserts every entry of other, merging by type.
func (c *Vats) Merge(other *Vats) error {
	if other == nil {
		return nil
	}
	return c.Append(other.elems...)
}

// MarshalJSON emits the entries in order.
func (c *Vats) MarshalJSON() ([]byte, error) {
	return c.marshal()
}
