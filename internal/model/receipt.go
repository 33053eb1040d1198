package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/fiscaldoc/fiscaldoc/internal/money"
)

// Receipt is a sale or refund document: buyer, seller, line items,
// payments, and a total derived from the items. Construction fails fast on
// invalid collections; fields that are only mandatory at serialization
// time (the seller block) are checked lazily when the document is
// serialized.
type Receipt struct {
	client               *Client
	company              *Company
	items                *Items
	payments             *Payments
	vats                 *Vats
	totalMinor           int64
	cashier              string
	agentInfo            *AgentInfo
	supplier             *Supplier
	additionalCheckProps string
	additionalUserProps  *AdditionalUserProps
}

// NewReceipt assembles a receipt from its required parts. Items and
// payments must be non-empty; client and company may still be incomplete.
func NewReceipt(client *Client, company *Company, items *Items, payments *Payments) (*Receipt, error) {
	if client == nil {
		client = &Client{}
	}
	if company == nil {
		company = &Company{}
	}
	r := &Receipt{client: client, company: company}
	if err := r.SetItems(items); err != nil {
		return nil, err
	}
	if err := r.SetPayments(payments); err != nil {
		return nil, err
	}
	return r, nil
}

// Client returns the buyer.
func (r *Receipt) Client() *Client {
	return r.client
}

// SetClient replaces the buyer. A nil buyer becomes an empty one.
func (r *Receipt) SetClient(client *Client) {
	if client == nil {
		client = &Client{}
	}
	r.client = client
}

// Company returns the seller.
func (r *Receipt) Company() *Company {
	return r.company
}

// SetCompany replaces the seller. A nil seller becomes an empty one whose
// mandatory fields fail at serialization time.
func (r *Receipt) SetCompany(company *Company) {
	if company == nil {
		company = &Company{}
	}
	r.company = company
}

// Items returns the line items.
func (r *Receipt) Items() *Items {
	return r.items
}

// SetItems replaces the line items and synchronously recomputes the total.
// An empty collection is rejected and the previous items stay in place.
// VAT entries already attached to the document are re-based on the new
// total.
func (r *Receipt) SetItems(items *Items) error {
	if items == nil || items.Len() == 0 {
		return NewEmptyError("receipt items")
	}
	total := int64(0)
	for _, it := range items.Elements() {
		total += it.sumMinor
	}
	r.items = items
	r.totalMinor = total
	r.rebaseVats()
	return nil
}

// Payments returns the payments.
func (r *Receipt) Payments() *Payments {
	return r.payments
}

// SetPayments replaces the payments. An empty collection is rejected.
func (r *Receipt) SetPayments(payments *Payments) error {
	if payments == nil || payments.Len() == 0 {
		return NewEmptyError("receipt payments")
	}
	r.payments = payments
	return nil
}

// Vats returns the document-level VAT entries, or nil.
func (r *Receipt) Vats() *Vats {
	return r.vats
}

// SetVats replaces the document-level VAT entries. Every entry's base sum
// is forced to the current total: VAT entries describe the whole document,
// not individual items. Passing nil removes the block.
func (r *Receipt) SetVats(vats *Vats) {
	r.vats = vats
	r.rebaseVats()
}

func (r *Receipt) rebaseVats() {
	if r.vats == nil {
		return
	}
	for _, v := range r.vats.elems {
		v.setBaseMinor(r.totalMinor)
	}
}

// Total returns the derived document total: the rounded sum of all item
// sums, recomputed on every SetItems.
func (r *Receipt) Total() decimal.Decimal {
	return money.ToMajor(r.totalMinor)
}

// Cashier returns the cashier name, or "" when absent.
func (r *Receipt) Cashier() string {
	return r.cashier
}

// SetCashier replaces the cashier name (FFD tag 1021). Blank input clears it.
func (r *Receipt) SetCashier(cashier string) error {
	s, err := checkOptional("cashier", cashier, maxCashierLen)
	if err != nil {
		return err
	}
	r.cashier = s
	return nil
}

// AgentInfo returns the agent block, or nil.
func (r *Receipt) AgentInfo() *AgentInfo {
	return r.agentInfo
}

// SetAgentInfo replaces the agent block. Nil removes it.
func (r *Receipt) SetAgentInfo(a *AgentInfo) {
	r.agentInfo = a
}

// Supplier returns the supplier block, or nil.
func (r *Receipt) Supplier() *Supplier {
	return r.supplier
}

// SetSupplier replaces the supplier block. Nil removes it.
func (r *Receipt) SetSupplier(s *Supplier) {
	r.supplier = s
}

// AdditionalCheckProps returns the additional check attribute, or "".
func (r *Receipt) AdditionalCheckProps() string {
	return r.additionalCheckProps
}

// SetAdditionalCheckProps replaces the additional check attribute
// (FFD tag 1192). Blank input clears it.
func (r *Receipt) SetAdditionalCheckProps(props string) error {
	s, err := checkOptional("additional check props", props, maxCheckPropsLen)
	if err != nil {
		return err
	}
	r.additionalCheckProps = s
	return nil
}

// AdditionalUserProps returns the additional user attribute, or nil.
func (r *Receipt) AdditionalUserProps() *AdditionalUserProps {
	return r.additionalUserProps
}

// SetAdditionalUserProps replaces the additional user attribute. Nil
// removes it.
func (r *Receipt) SetAdditionalUserProps(p *AdditionalUserProps) {
	r.additionalUserProps = p
}

type receiptPayload struct {
	Client               *Client              `json:"client"`
	Company              *Company             `json:"company"`
	Items                *Items               `json:"items"`
	Total                money.Amount         `json:"total"`
	Payments             *Payments            `json:"payments"`
	AgentInfo            *AgentInfo           `json:"agent_info,omitempty"`
	SupplierInfo         *Supplier            `json:"supplier_info,omitempty"`
	Vats                 *Vats                `json:"vats,omitempty"`
	AdditionalCheckProps string               `json:"additional_check_props,omitempty"`
	Cashier              string               `json:"cashier,omitempty"`
	AdditionalUserProps  *AdditionalUserProps `json:"additional_user_props,omitempty"`
}

// MarshalJSON emits the ordered wire projection of the receipt. Mandatory
// sub-entities and seller fields are checked here; optional blocks that are
// absent or empty are omitted.
func (r *Receipt) MarshalJSON() ([]byte, error) {
	if r.company == nil {
		return nil, NewMissingError("receipt", "company")
	}
	if r.items == nil || r.items.Len() == 0 {
		return nil, NewMissingError("receipt", "items")
	}
	if r.payments == nil || r.payments.Len() == 0 {
		return nil, NewMissingError("receipt", "payments")
	}
	client := r.client
	if client == nil {
		client = &Client{}
	}
	p := receiptPayload{
		Client:               client,
		Company:              r.company,
		Items:                r.items,
		Total:                money.Amount(r.totalMinor),
		Payments:             r.payments,
		AgentInfo:            r.agentInfo,
		SupplierInfo:         r.supplier,
		AdditionalCheckProps: r.additionalCheckProps,
		Cashier:              r.cashier,
		AdditionalUserProps:  r.additionalUserProps,
	}
	if r.vats != nil && r.vats.Len() > 0 {
		p.Vats = r.vats
	}
	return json.Marshal(p)
}

// Serialize produces the JSON body handed to the transport layer.
func (r *Receipt) Serialize() ([]byte, error) {
	return json.Marshal(r)
}
