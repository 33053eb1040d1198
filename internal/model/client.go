package model

import "encoding/json"

// Client is the buyer. Every field is optional; blank input collapses to
// absent and absent fields are omitted from serialization.
type Client struct {
	name  string
	email string
	phone string
	inn   string
}

// NewClient creates a buyer. Any argument may be blank.
func NewClient(name, email, phone, inn string) (*Client, error) {
	c := &Client{}
	if err := c.SetName(name); err != nil {
		return nil, err
	}
	if err := c.SetEmail(email); err != nil {
		return nil, err
	}
	if err := c.SetPhone(phone); err != nil {
		return nil, err
	}
	if err := c.SetINN(inn); err != nil {
		return nil, err
	}
	return c, nil
}

// Name returns the buyer name, or "" when absent.
func (c *Client) Name() string {
	return c.name
}

// SetName replaces the buyer name (FFD tag 1227). Blank input clears it.
func (c *Client) SetName(name string) error {
	s, err := checkOptional("client name", name, maxClientNameLen)
	if err != nil {
		return err
	}
	c.name = s
	return nil
}

// Email returns the buyer email, or "" when absent.
func (c *Client) Email() string {
	return c.email
}

// SetEmail replaces the buyer email (FFD tag 1008). Blank input clears it.
func (c *Client) SetEmail(email string) error {
	s := cleanString(email)
	if s == "" {
		c.email = ""
		return nil
	}
	v, err := checkEmail("client email", s)
	if err != nil {
		return err
	}
	c.email = v
	return nil
}

// Phone returns the normalized buyer phone, or "" when absent.
func (c *Client) Phone() string {
	return c.phone
}

// SetPhone replaces the buyer phone (FFD tag 1008), normalizing it to a
// leading "+" followed by digits only. Blank input clears it.
func (c *Client) SetPhone(phone string) error {
	s, err := normalizePhone("client phone", phone)
	if err != nil {
		return err
	}
	c.phone = s
	return nil
}

// INN returns the buyer INN, or "" when absent.
func (c *Client) INN() string {
	return c.inn
}

// SetINN replaces the buyer INN (FFD tag 1228). Blank input clears it.
func (c *Client) SetINN(inn string) error {
	s := cleanString(inn)
	if s == "" {
		c.inn = ""
		return nil
	}
	v, err := checkINN("client inn", s)
	if err != nil {
		return err
	}
	c.inn = v
	return nil
}

type clientPayload struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	INN   string `json:"inn,omitempty"`
}

// MarshalJSON emits only the fields that are present.
func (c *Client) MarshalJSON() ([]byte, error) {
	return json.Marshal(clientPayload{
		Name:  c.name,
		Email: c.email,
		Phone: c.phone,
		INN:   c.inn,
	})
}
