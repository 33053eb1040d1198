package model

import "encoding/json"

// Supplier identifies the goods supplier on agent-mediated settlements
// (FFD tags 1224, 1225, 1226).
type Supplier struct {
	name   string
	inn    string
	phones []string
}

// NewSupplier creates a supplier. Any argument may be blank.
func NewSupplier(name, inn string, phones ...string) (*Supplier, error) {
	s := &Supplier{}
	if err := s.SetName(name); err != nil {
		return nil, err
	}
	if err := s.SetINN(inn); err != nil {
		return nil, err
	}
	for _, p := range phones {
		if err := s.AddPhone(p); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Name returns the supplier name, or "" when absent.
func (s *Supplier) Name() string {
	return s.name
}

// SetName replaces the supplier name. Blank input clears it.
func (s *Supplier) SetName(name string) error {
	v, err := checkOptional("supplier name", name, maxSupplierNameLen)
	if err != nil {
		return err
	}
	s.name = v
	return nil
}

// INN returns the supplier INN, or "" when absent.
func (s *Supplier) INN() string {
	return s.inn
}

// SetINN replaces the supplier INN. Blank input clears it.
func (s *Supplier) SetINN(inn string) error {
	raw := cleanString(inn)
	if raw == "" {
		s.inn = ""
		return nil
	}
	v, err := checkINN("supplier inn", raw)
	if err != nil {
		return err
	}
	s.inn = v
	return nil
}

// Phones returns the supplier phones.
func (s *Supplier) Phones() []string {
	out := make([]string, len(s.phones))
	copy(out, s.phones)
	return out
}

// AddPhone appends a normalized supplier phone. Blank input is ignored.
func (s *Supplier) AddPhone(phone string) error {
	v, err := normalizePhone("supplier phone", phone)
	if err != nil {
		return err
	}
	if v != "" {
		s.phones = append(s.phones, v)
	}
	return nil
}

type supplierPayload struct {
	Phones []string `json:"phones,omitempty"`
	Name   string   `json:"name,omitempty"`
	INN    string   `json:"inn,omitempty"`
}

// MarshalJSON emits only the fields that are present.
func (s *Supplier) MarshalJSON() ([]byte, error) {
	return json.Marshal(supplierPayload{
		Phones: s.phones,
		Name:   s.name,
		INN:    s.inn,
	})
}

// PayingAgent describes the paying agent's operation and phones
// (FFD tags 1044, 1073).
type PayingAgent struct {
	operation string
	phones    []string
}

// SetOperation replaces the agent operation (at most 24 characters).
// Blank input clears it.
func (a *PayingAgent) SetOperation(op string) error {
	v, err := checkOptional("paying agent operation", op, maxOperationLen)
	if err != nil {
		return err
	}
	a.operation = v
	return nil
}

// Operation returns the agent operation, or "" when absent.
func (a *PayingAgent) Operation() string {
	return a.operation
}

// AddPhone appends a normalized agent phone. Blank input is ignored.
func (a *PayingAgent) AddPhone(phone string) error {
	v, err := normalizePhone("paying agent phone", phone)
	if err != nil {
		return err
	}
	if v != "" {
		a.phones = append(a.phones, v)
	}
	return nil
}

type payingAgentPayload struct {
	Operation string   `json:"operation,omitempty"`
	Phones    []string `json:"phones,omitempty"`
}

// MarshalJSON emits only the fields that are present.
func (a *PayingAgent) MarshalJSON() ([]byte, error) {
	return json.Marshal(payingAgentPayload{Operation: a.operation, Phones: a.phones})
}

func (a *PayingAgent) empty() bool {
	return a.operation == "" && len(a.phones) == 0
}

// ReceivePaymentsOperator holds the payments-receiving operator phones
// (FFD tag 1074).
type ReceivePaymentsOperator struct {
	phones []string
}

// AddPhone appends a normalized operator phone. Blank input is ignored.
func (o *ReceivePaymentsOperator) AddPhone(phone string) error {
	v, err := normalizePhone("receive payments operator phone", phone)
	if err != nil {
		return err
	}
	if v != "" {
		o.phones = append(o.phones, v)
	}
	return nil
}

// MarshalJSON emits only the fields that are present.
func (o *ReceivePaymentsOperator) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Phones []string `json:"phones,omitempty"`
	}{Phones: o.phones})
}

func (o *ReceivePaymentsOperator) empty() bool {
	return len(o.phones) == 0
}

// MoneyTransferOperator identifies the money transfer operator
// (FFD tags 1026, 1016, 1005, 1075).
type MoneyTransferOperator struct {
	name    string
	inn     string
	address string
	phones  []string
}

// SetName replaces the operator name. Blank input clears it.
func (o *MoneyTransferOperator) SetName(name string) error {
	v, err := checkOptional("money transfer operator name", name, maxSupplierNameLen)
	if err != nil {
		return err
	}
	o.name = v
	return nil
}

// SetINN replaces the operator INN. Blank input clears it.
func (o *MoneyTransferOperator) SetINN(inn string) error {
	raw := cleanString(inn)
	if raw == "" {
		o.inn = ""
		return nil
	}
	v, err := checkINN("money transfer operator inn", raw)
	if err != nil {
		return err
	}
	o.inn = v
	return nil
}

// SetAddress replaces the operator address. Blank input clears it.
func (o *MoneyTransferOperator) SetAddress(addr string) error {
	v, err := checkOptional("money transfer operator address", addr, maxPaymentAddressLen)
	if err != nil {
		return err
	}
	o.address = v
	return nil
}

// AddPhone appends a normalized operator phone. Blank input is ignored.
func (o *MoneyTransferOperator) AddPhone(phone string) error {
	v, err := normalizePhone("money transfer operator phone", phone)
	if err != nil {
		return err
	}
	if v != "" {
		o.phones = append(o.phones, v)
	}
	return nil
}

type moneyTransferOperatorPayload struct {
	Name    string   `json:"name,omitempty"`
	INN     string   `json:"inn,omitempty"`
	Address string   `json:"address,omitempty"`
	Phones  []string `json:"phones,omitempty"`
}

// MarshalJSON emits only the fields that are present.
func (o *MoneyTransferOperator) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyTransferOperatorPayload{
		Name:    o.name,
		INN:     o.inn,
		Address: o.address,
		Phones:  o.phones,
	})
}

func (o *MoneyTransferOperator) empty() bool {
	return o.name == "" && o.inn == "" && o.address == "" && len(o.phones) == 0
}

// AgentInfo is the agent attribute block of a settlement (FFD tag 1057
// plus the operator sub-blocks).
type AgentInfo struct {
	agentType               AgentType
	payingAgent             PayingAgent
	receivePaymentsOperator ReceivePaymentsOperator
	moneyTransferOperator   MoneyTransferOperator
}

// NewAgentInfo creates an agent block with a validated agent attribute.
func NewAgentInfo(agentType AgentType) (*AgentInfo, error) {
	a := &AgentInfo{}
	if err := a.SetType(agentType); err != nil {
		return nil, err
	}
	return a, nil
}

// Type returns the agent attribute.
func (a *AgentInfo) Type() AgentType {
	return a.agentType
}

// SetType replaces the agent attribute.
func (a *AgentInfo) SetType(agentType AgentType) error {
	if !agentType.Valid() {
		return NewFormatError("agent type", string(agentType), "an agent attribute tag")
	}
	a.agentType = agentType
	return nil
}

// PayingAgent returns the mutable paying agent sub-block.
func (a *AgentInfo) PayingAgent() *PayingAgent {
	return &a.payingAgent
}

// ReceivePaymentsOperator returns the mutable operator sub-block.
func (a *AgentInfo) ReceivePaymentsOperator() *ReceivePaymentsOperator {
	return &a.receivePaymentsOperator
}

// MoneyTransferOperator returns the mutable operator sub-block.
func (a *AgentInfo) MoneyTransferOperator() *MoneyTransferOperator {
	return &a.moneyTransferOperator
}

type agentInfoPayload struct {
	Type                    AgentType                `json:"type"`
	PayingAgent             *PayingAgent             `json:"paying_agent,omitempty"`
	ReceivePaymentsOperator *ReceivePaymentsOperator `json:"receive_payments_operator,omitempty"`
	MoneyTransferOperator   *MoneyTransferOperator   `json:"money_transfer_operator,omitempty"`
}

// MarshalJSON emits the agent attribute plus any non-empty sub-blocks.
func (a *AgentInfo) MarshalJSON() ([]byte, error) {
	p := agentInfoPayload{Type: a.agentType}
	if !a.payingAgent.empty() {
		p.PayingAgent = &a.payingAgent
	}
	if !a.receivePaymentsOperator.empty() {
		p.ReceivePaymentsOperator = &a.receivePaymentsOperator
	}
	if !a.moneyTransferOperator.empty() {
		p.MoneyTransferOperator = &a.moneyTransferOperator
	}
	return json.Marshal(p)
}

// AdditionalUserProps is the additional user attribute of a document
// (FFD tags 1084-1086): a single name/value pair.
type AdditionalUserProps struct {
	name  string
	value string
}

// NewAdditionalUserProps creates a validated name/value attribute.
func NewAdditionalUserProps(name, value string) (*AdditionalUserProps, error) {
	n, err := checkRequired("additional user props name", name, maxUserPropNameLen)
	if err != nil {
		return nil, err
	}
	v, err := checkRequired("additional user props value", value, maxUserPropValueLen)
	if err != nil {
		return nil, err
	}
	return &AdditionalUserProps{name: n, value: v}, nil
}

// Name returns the attribute name.
func (p *AdditionalUserProps) Name() string { return p.name }

// Value returns the attribute value.
func (p *AdditionalUserProps) Value() string { return p.value }

// MarshalJSON emits the ordered name/value pair.
func (p *AdditionalUserProps) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}{Name: p.name, Value: p.value})
}
