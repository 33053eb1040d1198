// Package parser reconstructs fiscal documents from raw JSON using the
// same field names the documents serialize to. Entities are rebuilt
// field-by-field through their validating setters, so a parsed document
// carries exactly the guarantees of a hand-built one.
package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fiscaldoc/fiscaldoc/internal/model"
	"github.com/fiscaldoc/fiscaldoc/internal/money"
)

// Kind identifies the document shape found in raw JSON.
type Kind string

const (
	KindReceipt    Kind = "receipt"
	KindCorrection Kind = "correction"
	KindUnknown    Kind = "unknown"
)

// ParseError reports a document that could not be reconstructed.
type ParseError struct {
	Kind    Kind
	Field   string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (%v)", e.Kind, e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Kind, e.Field, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NewParseError creates a new parse error
func NewParseError(kind Kind, field, message string, cause error) *ParseError {
	return &ParseError{Kind: kind, Field: field, Message: message, Cause: cause}
}

// Detect identifies the document kind from the field shape: a
// correction_info key marks a correction, an items key marks a receipt.
func Detect(data []byte) Kind {
	var probe struct {
		CorrectionInfo json.RawMessage `json:"correction_info"`
		Items          json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return KindUnknown
	}
	switch {
	case probe.CorrectionInfo != nil:
		return KindCorrection
	case probe.Items != nil:
		return KindReceipt
	default:
		return KindUnknown
	}
}

type companyDTO struct {
	Email          string `json:"email"`
	Sno            string `json:"sno"`
	INN            string `json:"inn"`
	PaymentAddress string `json:"payment_address"`
}

type clientDTO struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	INN   string `json:"inn"`
}

type vatDTO struct {
	Type string           `json:"type"`
	Sum  *decimal.Decimal `json:"sum"`
}

type itemDTO struct {
	Name            string           `json:"name"`
	Price           decimal.Decimal  `json:"price"`
	Quantity        decimal.Decimal  `json:"quantity"`
	Sum             *decimal.Decimal `json:"sum"`
	MeasurementUnit string           `json:"measurement_unit"`
	PaymentMethod   string           `json:"payment_method"`
	PaymentObject   string           `json:"payment_object"`
	Vat             *vatDTO          `json:"vat"`
	UserData        string           `json:"user_data"`
}

type paymentDTO struct {
	Type int             `json:"type"`
	Sum  decimal.Decimal `json:"sum"`
}

type userPropsDTO struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type supplierDTO struct {
	Phones []string `json:"phones"`
	Name   string   `json:"name"`
	INN    string   `json:"inn"`
}

type payingAgentDTO struct {
	Operation string   `json:"operation"`
	Phones    []string `json:"phones"`
}

type operatorDTO struct {
	Name    string   `json:"name"`
	INN     string   `json:"inn"`
	Address string   `json:"address"`
	Phones  []string `json:"phones"`
}

type agentInfoDTO struct {
	Type                    string          `json:"type"`
	PayingAgent             *payingAgentDTO `json:"paying_agent"`
	ReceivePaymentsOperator *operatorDTO    `json:"receive_payments_operator"`
	MoneyTransferOperator   *operatorDTO    `json:"money_transfer_operator"`
}

type receiptDTO struct {
	Client               *clientDTO        `json:"client"`
	Company              *companyDTO       `json:"company"`
	Items                []json.RawMessage `json:"items"`
	Total                *decimal.Decimal  `json:"total"`
	Payments             []json.RawMessage `json:"payments"`
	AgentInfo            *agentInfoDTO     `json:"agent_info"`
	SupplierInfo         *supplierDTO      `json:"supplier_info"`
	Vats                 []json.RawMessage `json:"vats"`
	AdditionalCheckProps string            `json:"additional_check_props"`
	Cashier              string            `json:"cashier"`
	AdditionalUserProps  *userPropsDTO     `json:"additional_user_props"`
}

type correctionInfoDTO struct {
	Type       string `json:"type"`
	BaseDate   string `json:"base_date"`
	BaseNumber string `json:"base_number"`
}

type correctionDTO struct {
	Company        *companyDTO        `json:"company"`
	CorrectionInfo *correctionInfoDTO `json:"correction_info"`
	Payments       []json.RawMessage  `json:"payments"`
	Vats           []json.RawMessage  `json:"vats"`
	Cashier        string             `json:"cashier"`
}

func decodeStrict(kind Kind, data []byte, into interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(into); err != nil {
		return NewParseError(kind, "document", "malformed JSON", err)
	}
	return nil
}

// decodeElement unmarshals one collection element, translating a JSON type
// mismatch into the collection's wrong-element-type error.
func decodeElement(collection, expected string, raw json.RawMessage, into interface{}) error {
	if err := json.Unmarshal(raw, into); err != nil {
		if _, ok := err.(*json.UnmarshalTypeError); ok {
			return model.NewElementTypeError(collection, expected, string(raw))
		}
		return err
	}
	return nil
}

func buildCompany(dto *companyDTO) (*model.Company, error) {
	if dto == nil {
		return &model.Company{}, nil
	}
	var sno model.Sno
	if dto.Sno != "" {
		parsed, err := model.ParseSno(dto.Sno)
		if err != nil {
			return nil, err
		}
		sno = parsed
	}
	return model.NewCompany(dto.Email, sno, dto.INN, dto.PaymentAddress)
}

func buildClient(dto *clientDTO) (*model.Client, error) {
	if dto == nil {
		return &model.Client{}, nil
	}
	return model.NewClient(dto.Name, dto.Email, dto.Phone, dto.INN)
}

func buildVat(dto *vatDTO) (*model.Vat, error) {
	t, err := model.ParseVatType(dto.Type)
	if err != nil {
		return nil, err
	}
	base := decimal.Zero
	if dto.Sum != nil {
		base = *dto.Sum
	}
	return model.NewVat(t, base)
}

func buildSupplier(dto *supplierDTO) (*model.Supplier, error) {
	return model.NewSupplier(dto.Name, dto.INN, dto.Phones...)
}

func buildAgentInfo(dto *agentInfoDTO) (*model.AgentInfo, error) {
	agentType, err := model.ParseAgentType(dto.Type)
	if err != nil {
		return nil, err
	}
	a, err := model.NewAgentInfo(agentType)
	if err != nil {
		return nil, err
	}
	if dto.PayingAgent != nil {
		pa := a.PayingAgent()
		if err := pa.SetOperation(dto.PayingAgent.Operation); err != nil {
			return nil, err
		}
		for _, phone := range dto.PayingAgent.Phones {
			if err := pa.AddPhone(phone); err != nil {
				return nil, err
			}
		}
	}
	if dto.ReceivePaymentsOperator != nil {
		for _, phone := range dto.ReceivePaymentsOperator.Phones {
			if err := a.ReceivePaymentsOperator().AddPhone(phone); err != nil {
				return nil, err
			}
		}
	}
	if dto.MoneyTransferOperator != nil {
		op := a.MoneyTransferOperator()
		if err := op.SetName(dto.MoneyTransferOperator.Name); err != nil {
			return nil, err
		}
		if dto.MoneyTransferOperator.INN != "" {
			if err := op.SetINN(dto.MoneyTransferOperator.INN); err != nil {
				return nil, err
			}
		}
		if err := op.SetAddress(dto.MoneyTransferOperator.Address); err != nil {
			return nil, err
		}
		for _, phone := range dto.MoneyTransferOperator.Phones {
			if err := op.AddPhone(phone); err != nil {
				return nil, err
			}
		}
	}
	return a, nil
}

func buildItem(dto *itemDTO) (*model.Item, error) {
	it, err := model.NewItem(dto.Name, dto.Price, dto.Quantity)
	if err != nil {
		return nil, err
	}
	if err := it.SetMeasurementUnit(dto.MeasurementUnit); err != nil {
		return nil, err
	}
	if dto.PaymentMethod != "" {
		m, err := model.ParsePaymentMethod(dto.PaymentMethod)
		if err != nil {
			return nil, err
		}
		if err := it.SetPaymentMethod(m); err != nil {
			return nil, err
		}
	}
	if dto.PaymentObject != "" {
		o, err := model.ParsePaymentObject(dto.PaymentObject)
		if err != nil {
			return nil, err
		}
		if err := it.SetPaymentObject(o); err != nil {
			return nil, err
		}
	}
	if err := it.SetUserData(dto.UserData); err != nil {
		return nil, err
	}
	if dto.Vat != nil {
		t, err := model.ParseVatType(dto.Vat.Type)
		if err != nil {
			return nil, err
		}
		v, err := model.NewVat(t, decimal.Zero)
		if err != nil {
			return nil, err
		}
		// Base follows the item sum once attached
		it.SetVat(v)
	}
	return it, nil
}

func buildItems(kind Kind, raws []json.RawMessage) (*model.Items, error) {
	items := make([]*model.Item, 0, len(raws))
	for i, raw := range raws {
		var dto itemDTO
		if err := decodeElement("items", "*model.Item", raw, &dto); err != nil {
			return nil, err
		}
		it, err := buildItem(&dto)
		if err != nil {
			return nil, NewParseError(kind, fmt.Sprintf("items[%d]", i), "invalid item", err)
		}
		items = append(items, it)
	}
	return model.NewItems(items...)
}

func buildPayments(kind Kind, raws []json.RawMessage) (*model.Payments, error) {
	payments := make([]*model.Payment, 0, len(raws))
	for i, raw := range raws {
		var dto paymentDTO
		if err := decodeElement("payments", "*model.Payment", raw, &dto); err != nil {
			return nil, err
		}
		t, err := model.ParsePaymentType(dto.Type)
		if err != nil {
			return nil, NewParseError(kind, fmt.Sprintf("payments[%d]", i), "invalid payment", err)
		}
		p, err := model.NewPayment(t, dto.Sum)
		if err != nil {
			return nil, NewParseError(kind, fmt.Sprintf("payments[%d]", i), "invalid payment", err)
		}
		payments = append(payments, p)
	}
	return model.NewPayments(payments...)
}

func buildVats(kind Kind, raws []json.RawMessage) (*model.Vats, error) {
	if len(raws) == 0 {
		return nil, nil
	}
	vats := make([]*model.Vat, 0, len(raws))
	for i, raw := range raws {
		var dto vatDTO
		if err := decodeElement("vats", "*model.Vat", raw, &dto); err != nil {
			return nil, err
		}
		v, err := buildVat(&dto)
		if err != nil {
			return nil, NewParseError(kind, fmt.Sprintf("vats[%d]", i), "invalid vat", err)
		}
		vats = append(vats, v)
	}
	return model.NewVats(vats...)
}

// ParseReceipt reconstructs a receipt from raw JSON. Missing optional keys
// are tolerated; a present total must equal the recomputed total.
func ParseReceipt(data []byte) (*model.Receipt, error) {
	var dto receiptDTO
	if err := decodeStrict(KindReceipt, data, &dto); err != nil {
		return nil, err
	}

	client, err := buildClient(dto.Client)
	if err != nil {
		return nil, NewParseError(KindReceipt, "client", "invalid client", err)
	}
	company, err := buildCompany(dto.Company)
	if err != nil {
		return nil, NewParseError(KindReceipt, "company", "invalid company", err)
	}
	items, err := buildItems(KindReceipt, dto.Items)
	if err != nil {
		return nil, err
	}
	payments, err := buildPayments(KindReceipt, dto.Payments)
	if err != nil {
		return nil, err
	}

	r, err := model.NewReceipt(client, company, items, payments)
	if err != nil {
		return nil, err
	}

	if dto.Total != nil && money.ToMinor(*dto.Total) != money.ToMinor(r.Total()) {
		return nil, NewParseError(KindReceipt, "total",
			fmt.Sprintf("declared total %s does not match recomputed total %s",
				dto.Total.StringFixed(2), r.Total().StringFixed(2)), nil)
	}

	if dto.AgentInfo != nil {
		a, err := buildAgentInfo(dto.AgentInfo)
		if err != nil {
			return nil, NewParseError(KindReceipt, "agent_info", "invalid agent info", err)
		}
		r.SetAgentInfo(a)
	}
	if dto.SupplierInfo != nil {
		s, err := buildSupplier(dto.SupplierInfo)
		if err != nil {
			return nil, NewParseError(KindReceipt, "supplier_info", "invalid supplier", err)
		}
		r.SetSupplier(s)
	}
	vats, err := buildVats(KindReceipt, dto.Vats)
	if err != nil {
		return nil, err
	}
	if vats != nil {
		r.SetVats(vats)
	}
	if err := r.SetCashier(dto.Cashier); err != nil {
		return nil, err
	}
	if err := r.SetAdditionalCheckProps(dto.AdditionalCheckProps); err != nil {
		return nil, err
	}
	if dto.AdditionalUserProps != nil {
		props, err := model.NewAdditionalUserProps(dto.AdditionalUserProps.Name, dto.AdditionalUserProps.Value)
		if err != nil {
			return nil, err
		}
		r.SetAdditionalUserProps(props)
	}
	return r, nil
}

// ParseCorrection reconstructs a correction document from raw JSON.
func ParseCorrection(data []byte) (*model.Correction, error) {
	var dto correctionDTO
	if err := decodeStrict(KindCorrection, data, &dto); err != nil {
		return nil, err
	}
	if dto.CorrectionInfo == nil {
		return nil, NewParseError(KindCorrection, "correction_info", "missing correction_info", nil)
	}

	company, err := buildCompany(dto.Company)
	if err != nil {
		return nil, NewParseError(KindCorrection, "company", "invalid company", err)
	}

	ctype, err := model.ParseCorrectionType(dto.CorrectionInfo.Type)
	if err != nil {
		return nil, err
	}
	baseDate, err := time.Parse("02.01.2006", dto.CorrectionInfo.BaseDate)
	if err != nil {
		return nil, NewParseError(KindCorrection, "correction_info.base_date",
			"expected a DD.MM.YYYY date", err)
	}
	info, err := model.NewCorrectionInfo(ctype, baseDate, dto.CorrectionInfo.BaseNumber)
	if err != nil {
		return nil, err
	}

	payments, err := buildPayments(KindCorrection, dto.Payments)
	if err != nil {
		return nil, err
	}

	c, err := model.NewCorrection(company, info, payments)
	if err != nil {
		return nil, err
	}

	vats, err := buildVats(KindCorrection, dto.Vats)
	if err != nil {
		return nil, err
	}
	if vats != nil {
		c.SetVats(vats)
	}
	if err := c.SetCashier(dto.Cashier); err != nil {
		return nil, err
	}
	return c, nil
}

// Parse auto-detects the document kind and reconstructs it.
func Parse(data []byte) (model.Document, Kind, error) {
	switch Detect(data) {
	case KindCorrection:
		c, err := ParseCorrection(data)
		return c, KindCorrection, err
	case KindReceipt:
		r, err := ParseReceipt(data)
		return r, KindReceipt, err
	default:
		return nil, KindUnknown, NewParseError(KindUnknown, "document",
			"neither an items nor a correction_info key present", nil)
	}
}
