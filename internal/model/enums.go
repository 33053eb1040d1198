package model

import (
	"fmt"
	"strings"
)

// VatType is a VAT rate tag from the closed fiscal rate table.
// The vat10/vat18/vat20 family is a percentage added on top of the base;
// the vat110/vat118/vat120 family is a percentage already included in the
// base. The two families are intentionally distinct and must not be
// unified.
type VatType string

const (
	VatTypeNone   VatType = "none"
	VatTypeVat0   VatType = "vat0"
	VatTypeVat10  VatType = "vat10"
	VatTypeVat18  VatType = "vat18"
	VatTypeVat20  VatType = "vat20"
	VatTypeVat110 VatType = "vat110"
	VatTypeVat118 VatType = "vat118"
	VatTypeVat120 VatType = "vat120"
)

// vatRates maps each rate tag to its numerator/denominator. The computed
// tax is round(base_minor * num / den), performed in minor units.
var vatRates = map[VatType]struct{ num, den int64 }{
	VatTypeNone:   {0, 1},
	VatTypeVat0:   {0, 1},
	VatTypeVat10:  {10, 100},
	VatTypeVat18:  {18, 100},
	VatTypeVat20:  {20, 100},
	VatTypeVat110: {10, 110},
	VatTypeVat118: {18, 118},
	VatTypeVat120: {20, 120},
}

// Valid reports whether the rate tag is a member of the closed table.
func (t VatType) Valid() bool {
	_, ok := vatRates[t]
	return ok
}

// ParseVatType validates an untyped rate tag from the parse boundary.
func ParseVatType(s string) (VatType, error) {
	t := VatType(strings.TrimSpace(s))
	if !t.Valid() {
		return "", NewFormatError("vat type", s, "one of none, vat0, vat10, vat18, vat20, vat110, vat118, vat120")
	}
	return t, nil
}

// Sno is the seller's tax regime code (FFD tag 1055).
type Sno string

const (
	SnoOsn              Sno = "osn"
	SnoUsnIncome        Sno = "usn_income"
	SnoUsnIncomeOutcome Sno = "usn_income_outcome"
	SnoEnvd             Sno = "envd"
	SnoEsn              Sno = "esn"
	SnoPatent           Sno = "patent"
)

var snoValues = map[Sno]struct{}{
	SnoOsn: {}, SnoUsnIncome: {}, SnoUsnIncomeOutcome: {},
	SnoEnvd: {}, SnoEsn: {}, SnoPatent: {},
}

// Valid reports whether the tax regime code is known.
func (s Sno) Valid() bool {
	_, ok := snoValues[s]
	return ok
}

// ParseSno validates an untyped tax regime code from the parse boundary.
func ParseSno(s string) (Sno, error) {
	v := Sno(strings.TrimSpace(s))
	if !v.Valid() {
		return "", NewFormatError("sno", s, "one of osn, usn_income, usn_income_outcome, envd, esn, patent")
	}
	return v, nil
}

// PaymentType is the payment form code (FFD tag 1031/1081/1215-1217).
// Codes 5-9 are reserved extended forms accepted by the gateway.
type PaymentType int

const (
	PaymentTypeCash     PaymentType = 0
	PaymentTypeElectron PaymentType = 1
	PaymentTypePrePaid  PaymentType = 2
	PaymentTypeCredit   PaymentType = 3
	PaymentTypeOther    PaymentType = 4
)

// Valid reports whether the payment form code is in range.
func (t PaymentType) Valid() bool {
	return t >= 0 && t <= 9
}

// ParsePaymentType validates an untyped payment form code.
func ParsePaymentType(v int) (PaymentType, error) {
	t := PaymentType(v)
	if !t.Valid() {
		return 0, NewFormatError("payment type", fmt.Sprintf("%d", v), "a code between 0 and 9")
	}
	return t, nil
}

// PaymentMethod is the settlement method attribute (FFD tag 1214).
type PaymentMethod string

const (
	PaymentMethodFullPrepayment PaymentMethod = "full_prepayment"
	PaymentMethodPrepayment     PaymentMethod = "prepayment"
	PaymentMethodAdvance        PaymentMethod = "advance"
	PaymentMethodFullPayment    PaymentMethod = "full_payment"
	PaymentMethodPartialPayment PaymentMethod = "partial_payment"
	PaymentMethodCredit         PaymentMethod = "credit"
	PaymentMethodCreditPayment  PaymentMethod = "credit_payment"
)

var paymentMethods = map[PaymentMethod]struct{}{
	PaymentMethodFullPrepayment: {}, PaymentMethodPrepayment: {},
	PaymentMethodAdvance: {}, PaymentMethodFullPayment: {},
	PaymentMethodPartialPayment: {}, PaymentMethodCredit: {},
	PaymentMethodCreditPayment: {},
}

// Valid reports whether the settlement method is known.
func (m PaymentMethod) Valid() bool {
	_, ok := paymentMethods[m]
	return ok
}

// ParsePaymentMethod validates an untyped settlement method.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(strings.TrimSpace(s))
	if !m.Valid() {
		return "", NewFormatError("payment method", s, "a settlement method tag")
	}
	return m, nil
}

// PaymentObject is the settlement subject attribute (FFD tag 1212).
type PaymentObject string

const (
	PaymentObjectCommodity            PaymentObject = "commodity"
	PaymentObjectExcise               PaymentObject = "excise"
	PaymentObjectJob                  PaymentObject = "job"
	PaymentObjectService              PaymentObject = "service"
	PaymentObjectGamblingBet          PaymentObject = "gambling_bet"
	PaymentObjectGamblingPrize        PaymentObject = "gambling_prize"
	PaymentObjectLottery              PaymentObject = "lottery"
	PaymentObjectLotteryPrize         PaymentObject = "lottery_prize"
	PaymentObjectIntellectualActivity PaymentObject = "intellectual_activity"
	PaymentObjectPayment              PaymentObject = "payment"
	PaymentObjectAgentCommission      PaymentObject = "agent_commission"
	PaymentObjectComposite            PaymentObject = "composite"
	PaymentObjectAnother              PaymentObject = "another"
)

var paymentObjects = map[PaymentObject]struct{}{
	PaymentObjectCommodity: {}, PaymentObjectExcise: {}, PaymentObjectJob: {},
	PaymentObjectService: {}, PaymentObjectGamblingBet: {}, PaymentObjectGamblingPrize: {},
	PaymentObjectLottery: {}, PaymentObjectLotteryPrize: {}, PaymentObjectIntellectualActivity: {},
	PaymentObjectPayment: {}, PaymentObjectAgentCommission: {}, PaymentObjectComposite: {},
	PaymentObjectAnother: {},
}

// Valid reports whether the settlement subject is known.
func (o PaymentObject) Valid() bool {
	_, ok := paymentObjects[o]
	return ok
}

// ParsePaymentObject validates an untyped settlement subject.
func ParsePaymentObject(s string) (PaymentObject, error) {
	o := PaymentObject(strings.TrimSpace(s))
	if !o.Valid() {
		return "", NewFormatError("payment object", s, "a settlement subject tag")
	}
	return o, nil
}

// AgentType is the agent attribute of a settlement (FFD tag 1057).
type AgentType string

const (
	AgentTypeBankPayingAgent    AgentType = "bank_paying_agent"
	AgentTypeBankPayingSubagent AgentType = "bank_paying_subagent"
	AgentTypePayingAgent        AgentType = "paying_agent"
	AgentTypePayingSubagent     AgentType = "paying_subagent"
	AgentTypeAttorney           AgentType = "attorney"
	AgentTypeCommissionAgent    AgentType = "commission_agent"
	AgentTypeAnother            AgentType = "another"
)

var agentTypes = map[AgentType]struct{}{
	AgentTypeBankPayingAgent: {}, AgentTypeBankPayingSubagent: {},
	AgentTypePayingAgent: {}, AgentTypePayingSubagent: {},
	AgentTypeAttorney: {}, AgentTypeCommissionAgent: {}, AgentTypeAnother: {},
}

// Valid reports whether the agent attribute is known.
func (t AgentType) Valid() bool {
	_, ok := agentTypes[t]
	return ok
}

// ParseAgentType validates an untyped agent attribute.
func ParseAgentType(s string) (AgentType, error) {
	t := AgentType(strings.TrimSpace(s))
	if !t.Valid() {
		return "", NewFormatError("agent type", s, "an agent attribute tag")
	}
	return t, nil
}

// CorrectionType is the correction ground (FFD tag 1173): a correction made
// by the seller on its own or one ordered by the tax authority.
type CorrectionType string

const (
	CorrectionTypeSelf        CorrectionType = "self"
	CorrectionTypeInstruction CorrectionType = "instruction"
)

// Valid reports whether the correction ground is known.
func (t CorrectionType) Valid() bool {
	return t == CorrectionTypeSelf || t == CorrectionTypeInstruction
}

// ParseCorrectionType validates an untyped correction ground.
func ParseCorrectionType(s string) (CorrectionType, error) {
	t := CorrectionType(strings.TrimSpace(s))
	if !t.Valid() {
		return "", NewFormatError("correction type", s, "self or instruction")
	}
	return t, nil
}
