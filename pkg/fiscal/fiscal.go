// Package fiscal provides a public API for building, validating, and
// serializing fiscal documents.
//
// Receipts and corrections are assembled through validating setters,
// so an assembled document is structurally valid by construction.
//
// Example usage:
//
//	item, err := fiscal.NewItem("widget", decimal.RequireFromString("10.00"), decimal.NewFromInt(2))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	items, _ := fiscal.NewItems(item)
//	payment, _ := fiscal.NewPayment(fiscal.PaymentTypeElectron, decimal.RequireFromString("20.00"))
//	payments, _ := fiscal.NewPayments(payment)
//	receipt, err := fiscal.NewReceipt(client, company, items, payments)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data, err := receipt.Serialize()
package fiscal

import "github.com/fiscaldoc/fiscaldoc/internal/model"

// Re-export core types for public API
type (
	Receipt        = model.Receipt
	Correction     = model.Correction
	CorrectionInfo = model.CorrectionInfo
	Client         = model.Client
	Company        = model.Company
	Item           = model.Item
	Payment        = model.Payment
	Vat            = model.Vat
	Items          = model.Items
	Payments       = model.Payments
	Vats           = model.Vats

	AgentInfo               = model.AgentInfo
	Supplier                = model.Supplier
	PayingAgent             = model.PayingAgent
	ReceivePaymentsOperator = model.ReceivePaymentsOperator
	MoneyTransferOperator   = model.MoneyTransferOperator
	AdditionalUserProps     = model.AdditionalUserProps

	Document     = model.Document
	Serializable = model.Serializable
)

// Re-export enums
type (
	VatType        = model.VatType
	Sno            = model.Sno
	PaymentType    = model.PaymentType
	PaymentMethod  = model.PaymentMethod
	PaymentObject  = model.PaymentObject
	AgentType      = model.AgentType
	CorrectionType = model.CorrectionType
)

// Re-export VAT rates
const (
	VatTypeNone   = model.VatTypeNone
	VatTypeVat0   = model.VatTypeVat0
	VatTypeVat10  = model.VatTypeVat10
	VatTypeVat18  = model.VatTypeVat18
	VatTypeVat20  = model.VatTypeVat20
	VatTypeVat110 = model.VatTypeVat110
	VatTypeVat118 = model.VatTypeVat118
	VatTypeVat120 = model.VatTypeVat120
)

// Re-export taxation systems
const (
	SnoOsn              = model.SnoOsn
	SnoUsnIncome        = model.SnoUsnIncome
	SnoUsnIncomeOutcome = model.SnoUsnIncomeOutcome
	SnoEnvd             = model.SnoEnvd
	SnoEsn              = model.SnoEsn
	SnoPatent           = model.SnoPatent
)

// Re-export payment types
const (
	PaymentTypeCash     = model.PaymentTypeCash
	PaymentTypeElectron = model.PaymentTypeElectron
	PaymentTypePrePaid  = model.PaymentTypePrePaid
	PaymentTypeCredit   = model.PaymentTypeCredit
	PaymentTypeOther    = model.PaymentTypeOther
)

// Re-export correction types
const (
	CorrectionTypeSelf        = model.CorrectionTypeSelf
	CorrectionTypeInstruction = model.CorrectionTypeInstruction
)

// Re-export agent types
const (
	AgentTypeBankPayingAgent    = model.AgentTypeBankPayingAgent
	AgentTypeBankPayingSubagent = model.AgentTypeBankPayingSubagent
	AgentTypePayingAgent        = model.AgentTypePayingAgent
	AgentTypePayingSubagent     = model.AgentTypePayingSubagent
	AgentTypeAttorney           = model.AgentTypeAttorney
	AgentTypeCommissionAgent    = model.AgentTypeCommissionAgent
	AgentTypeAnother            = model.AgentTypeAnother
)

// Re-export error types
type (
	EmptyError       = model.EmptyError
	TooLongError     = model.TooLongError
	TooHighError     = model.TooHighError
	TooManyError     = model.TooManyError
	FormatError      = model.FormatError
	MissingError     = model.MissingError
	ElementTypeError = model.ElementTypeError
)

// Re-export constructors
var (
	NewReceipt             = model.NewReceipt
	NewCorrection          = model.NewCorrection
	NewCorrectionInfo      = model.NewCorrectionInfo
	NewClient              = model.NewClient
	NewCompany             = model.NewCompany
	NewItem                = model.NewItem
	NewPayment             = model.NewPayment
	NewVat                 = model.NewVat
	NewItems               = model.NewItems
	NewPayments            = model.NewPayments
	NewVats                = model.NewVats
	NewAgentInfo           = model.NewAgentInfo
	NewSupplier            = model.NewSupplier
	NewAdditionalUserProps = model.NewAdditionalUserProps

	ParseVatType        = model.ParseVatType
	ParseSno            = model.ParseSno
	ParsePaymentType    = model.ParsePaymentType
	ParsePaymentMethod  = model.ParsePaymentMethod
	ParsePaymentObject  = model.ParsePaymentObject
	ParseAgentType      = model.ParseAgentType
	ParseCorrectionType = model.ParseCorrectionType
)
