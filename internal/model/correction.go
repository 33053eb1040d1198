package model

import (
	"encoding/json"
	"time"
)

// baseDateLayout is the wire format of the correction base date
// (FFD tag 1178).
const baseDateLayout = "02.01.2006"

// CorrectionInfo is the ground for a correction document: why, when, and
// under which document number the correction is made (FFD tags 1173, 1178,
// 1179).
type CorrectionInfo struct {
	correctionType CorrectionType
	baseDate       time.Time
	baseNumber     string
}

// NewCorrectionInfo creates a validated correction ground.
func NewCorrectionInfo(correctionType CorrectionType, baseDate time.Time, baseNumber string) (*CorrectionInfo, error) {
	ci := &CorrectionInfo{}
	if err := ci.SetType(correctionType); err != nil {
		return nil, err
	}
	if err := ci.SetBaseDate(baseDate); err != nil {
		return nil, err
	}
	if err := ci.SetBaseNumber(baseNumber); err != nil {
		return nil, err
	}
	return ci, nil
}

// Type returns the correction ground.
func (ci *CorrectionInfo) Type() CorrectionType {
	return ci.correctionType
}

// SetType replaces the correction ground.
func (ci *CorrectionInfo) SetType(t CorrectionType) error {
	if !t.Valid() {
		return NewFormatError("correction type", string(t), "self or instruction")
	}
	ci.correctionType = t
	return nil
}

// BaseDate returns the base document date.
func (ci *CorrectionInfo) BaseDate() time.Time {
	return ci.baseDate
}

// SetBaseDate replaces the base document date. A zero date is rejected.
func (ci *CorrectionInfo) SetBaseDate(d time.Time) error {
	if d.IsZero() {
		return NewEmptyError("correction base date")
	}
	ci.baseDate = d
	return nil
}

// BaseNumber returns the base document number.
func (ci *CorrectionInfo) BaseNumber() string {
	return ci.baseNumber
}

// SetBaseNumber replaces the base document number.
func (ci *CorrectionInfo) SetBaseNumber(n string) error {
	s, err := checkRequired("correction base number", n, maxUserPropValueLen)
	if err != nil {
		return err
	}
	ci.baseNumber = s
	return nil
}

type correctionInfoPayload struct {
	Type       CorrectionType `json:"type"`
	BaseDate   string         `json:"base_date"`
	BaseNumber string         `json:"base_number"`
}

// MarshalJSON emits the ordered wire projection of the correction ground.
func (ci *CorrectionInfo) MarshalJSON() ([]byte, error) {
	return json.Marshal(correctionInfoPayload{
		Type:       ci.correctionType,
		BaseDate:   ci.baseDate.Format(baseDateLayout),
		BaseNumber: ci.baseNumber,
	})
}

// Correction is a correction document. Its required set is structurally
// different from a receipt: seller, correction ground, and payments are
// mandatory, and the type exposes no buyer, items, or total at all.
type Correction struct {
	company        *Company
	correctionInfo *CorrectionInfo
	payments       *Payments
	vats           *Vats
	cashier        string
}

// NewCorrection assembles a correction from its required parts.
func NewCorrection(company *Company, info *CorrectionInfo, payments *Payments) (*Correction, error) {
	if company == nil {
		company = &Company{}
	}
	c := &Correction{company: company}
	if err := c.SetCorrectionInfo(info); err != nil {
		return nil, err
	}
	if err := c.SetPayments(payments); err != nil {
		return nil, err
	}
	return c, nil
}

// Company returns the seller.
func (c *Correction) Company() *Company {
	return c.company
}

// SetCompany replaces the seller. A nil seller becomes an empty one whose
// mandatory fields fail at serialization time.
func (c *Correction) SetCompany(company *Company) {
	if company == nil {
		company = &Company{}
	}
	c.company = company
}

// CorrectionInfo returns the correction ground.
func (c *Correction) CorrectionInfo() *CorrectionInfo {
	return c.correctionInfo
}

// SetCorrectionInfo replaces the correction ground. Nil is rejected.
func (c *Correction) SetCorrectionInfo(info *CorrectionInfo) error {
	if info == nil {
		return NewMissingError("correction", "correction_info")
	}
	c.correctionInfo = info
	return nil
}

// Payments returns the payments.
func (c *Correction) Payments() *Payments {
	return c.payments
}

// SetPayments replaces the payments. An empty collection is rejected.
func (c *Correction) SetPayments(payments *Payments) error {
	if payments == nil || payments.Len() == 0 {
		return NewEmptyError("correction payments")
	}
	c.payments = payments
	return nil
}

// Vats returns the VAT entries, or nil.
func (c *Correction) Vats() *Vats {
	return c.vats
}

// SetVats replaces the VAT entries. Nil removes the block.
func (c *Correction) SetVats(vats *Vats) {
	c.vats = vats
}

// Cashier returns the cashier name, or "" when absent.
func (c *Correction) Cashier() string {
	return c.cashier
}

// SetCashier replaces the cashier name (FFD tag 1021). Blank input clears it.
func (c *Correction) SetCashier(cashier string) error {
	s, err := checkOptional("cashier", cashier, maxCashierLen)
	if err != nil {
		return err
	}
	c.cashier = s
	return nil
}

type correctionPayload struct {
	Company        *Company        `json:"company"`
	CorrectionInfo *CorrectionInfo `json:"correction_info"`
	Payments       *Payments       `json:"payments"`
	Vats           *Vats           `json:"vats,omitempty"`
	Cashier        string          `json:"cashier,omitempty"`
}

// MarshalJSON emits the ordered wire projection of the correction. There
// is no client, items, or total field.
func (c *Correction) MarshalJSON() ([]byte, error) {
	if c.company == nil {
		return nil, NewMissingError("correction", "company")
	}
	if c.correctionInfo == nil {
		return nil, NewMissingError("correction", "correction_info")
	}
	if c.payments == nil || c.payments.Len() == 0 {
		return nil, NewMissingError("correction", "payments")
	}
	p := correctionPayload{
		Company:        c.company,
		CorrectionInfo: c.correctionInfo,
		Payments:       c.payments,
		Cashier:        c.cashier,
	}
	if c.vats != nil && c.vats.Len() > 0 {
		p.Vats = c.vats
	}
	return json.Marshal(p)
}

// Serialize produces the JSON body handed to the transport layer.
func (c *Correction) Serialize() ([]byte, error) {
	return json.Marshal(c)
}
