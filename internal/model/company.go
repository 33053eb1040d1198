package model

import "encoding/json"

// Company is the seller. Email, tax regime, INN, and payment address are
// all mandatory at serialization time but may be unset transiently while
// a document is being assembled.
type Company struct {
	email          string
	sno            Sno
	inn            string
	paymentAddress string
}

// NewCompany creates a seller. Blank arguments are allowed and validated
// lazily at serialization time; non-blank ones are validated immediately.
func NewCompany(email string, sno Sno, inn, paymentAddress string) (*Company, error) {
	c := &Company{}
	if cleanString(email) != "" {
		if err := c.SetEmail(email); err != nil {
			return nil, err
		}
	}
	if sno != "" {
		if err := c.SetSno(sno); err != nil {
			return nil, err
		}
	}
	if cleanString(inn) != "" {
		if err := c.SetINN(inn); err != nil {
			return nil, err
		}
	}
	if cleanString(paymentAddress) != "" {
		if err := c.SetPaymentAddress(paymentAddress); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Email returns the seller email.
func (c *Company) Email() string {
	return c.email
}

// SetEmail replaces the seller email (FFD tag 1117).
func (c *Company) SetEmail(email string) error {
	s, err := checkEmail("company email", email)
	if err != nil {
		return err
	}
	c.email = s
	return nil
}

// Sno returns the tax regime code.
func (c *Company) Sno() Sno {
	return c.sno
}

// SetSno replaces the tax regime code (FFD tag 1055).
func (c *Company) SetSno(sno Sno) error {
	if !sno.Valid() {
		return NewFormatError("company sno", string(sno), "a tax regime code")
	}
	c.sno = sno
	return nil
}

// INN returns the seller INN.
func (c *Company) INN() string {
	return c.inn
}

// SetINN replaces the seller INN (FFD tag 1018).
func (c *Company) SetINN(inn string) error {
	s, err := checkINN("company inn", inn)
	if err != nil {
		return err
	}
	c.inn = s
	return nil
}

// PaymentAddress returns the payment address.
func (c *Company) PaymentAddress() string {
	return c.paymentAddress
}

// SetPaymentAddress replaces the payment address (FFD tag 1187, at most
// 256 characters, non-empty).
func (c *Company) SetPaymentAddress(addr string) error {
	s, err := checkRequired("company payment address", addr, maxPaymentAddressLen)
	if err != nil {
		return err
	}
	c.paymentAddress = s
	return nil
}

// validate runs the serialization-time mandatory checks, one error per
// missing field.
func (c *Company) validate() error {
	if c.email == "" {
		return NewMissingError("company", "email")
	}
	if c.sno == "" {
		return NewMissingError("company", "sno")
	}
	if c.inn == "" {
		return NewMissingError("company", "inn")
	}
	if c.paymentAddress == "" {
		return NewMissingError("company", "payment_address")
	}
	return nil
}

type companyPayload struct {
	Email          string `json:"email"`
	Sno            Sno    `json:"sno"`
	INN            string `json:"inn"`
	PaymentAddress string `json:"payment_address"`
}

// MarshalJSON emits the ordered wire projection of the seller, failing if
// any mandatory field is still unset.
func (c *Company) MarshalJSON() ([]byte, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	return json.Marshal(companyPayload{
		Email:          c.email,
		Sno:            c.sno,
		INN:            c.inn,
		PaymentAddress: c.paymentAddress,
	})
}
