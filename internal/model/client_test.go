package model_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiscaldoc/fiscaldoc/internal/model"
)

func TestClient_PhoneNormalization(t *testing.T) {
	c, err := model.NewClient("", "", "+1 (22) 99-73 654 56", "")
	require.NoError(t, err)
	assert.Equal(t, "+122997365456", c.Phone())
}

func TestClient_PhoneWithoutPlusGainsOne(t *testing.T) {
	c := &model.Client{}
	require.NoError(t, c.SetPhone("8 (999) 123-45-67"))
	assert.Equal(t, "+89991234567", c.Phone())
}

func TestClient_BlankFieldsCollapseToAbsent(t *testing.T) {
	c, err := model.NewClient("   ", "", " \t ", "")
	require.NoError(t, err)

	assert.Empty(t, c.Name())
	assert.Empty(t, c.Phone())

	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}

func TestClient_PresentFieldsValidated(t *testing.T) {
	c := &model.Client{}
	require.Error(t, c.SetEmail("not-an-email"))
	require.Error(t, c.SetINN("12345"))
	require.NoError(t, c.SetINN("123456789012"))
	assert.Equal(t, "123456789012", c.INN())
}

func TestClient_NameTooLong(t *testing.T) {
	c := &model.Client{}
	err := c.SetName(strings.Repeat("a", 257))

	var tooLong *model.TooLongError
	require.ErrorAs(t, err, &tooLong)
	assert.Equal(t, 256, tooLong.Max)
	assert.Equal(t, 257, tooLong.Actual)
}

func TestClient_MarshalOmitsAbsent(t *testing.T) {
	c, err := model.NewClient("John Doe", "", "+7 999 111 22 33", "")
	require.NoError(t, err)

	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"John Doe","phone":"+79991112233"}`, string(data))
}

func TestCompany_MandatoryAtSerializationTime(t *testing.T) {
	// Partially built companies are legal in memory...
	c, err := model.NewCompany("", "", "", "")
	require.NoError(t, err)

	// ...but refuse to serialize, naming the first missing field
	_, err = json.Marshal(c)
	var missing *model.MissingError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "company", missing.Entity)
	assert.Equal(t, "email", missing.Field)

	require.NoError(t, c.SetEmail("shop@example.com"))
	_, err = json.Marshal(c)
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "sno", missing.Field)
}

func TestCompany_Complete(t *testing.T) {
	c, err := model.NewCompany("shop@example.com", model.SnoOsn, "1234567890", "https://shop.example.com")
	require.NoError(t, err)

	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"email": "shop@example.com",
		"sno": "osn",
		"inn": "1234567890",
		"payment_address": "https://shop.example.com"
	}`, string(data))
}

func TestCompany_RejectsBadINN(t *testing.T) {
	_, err := model.NewCompany("shop@example.com", model.SnoOsn, "12345", "addr")
	var formatErr *model.FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "company inn", formatErr.Field)
}

func TestCompany_RejectsUnknownSno(t *testing.T) {
	c := &model.Company{}
	require.Error(t, c.SetSno(model.Sno("flat_tax")))
}

func TestCompany_PaymentAddressNonEmpty(t *testing.T) {
	c := &model.Company{}
	err := c.SetPaymentAddress("   ")

	var empty *model.EmptyError
	require.ErrorAs(t, err, &empty)
	assert.Equal(t, "company payment address", empty.Field)
}

func TestSupplier_Phones(t *testing.T) {
	s, err := model.NewSupplier("OOO Supplier", "1234567890", "+7 (495) 123-45-67")
	require.NoError(t, err)

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"phones": ["+74951234567"],
		"name": "OOO Supplier",
		"inn": "1234567890"
	}`, string(data))
}

func TestAgentInfo_MarshalSkipsEmptyBlocks(t *testing.T) {
	a, err := model.NewAgentInfo(model.AgentTypePayingAgent)
	require.NoError(t, err)

	data, err := json.Marshal(a)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"paying_agent"}`, string(data))

	require.NoError(t, a.PayingAgent().SetOperation("top-up"))
	require.NoError(t, a.PayingAgent().AddPhone("+7 111 222 33 44"))

	data, err = json.Marshal(a)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "paying_agent",
		"paying_agent": {"operation": "top-up", "phones": ["+71112223344"]}
	}`, string(data))
}

func TestAdditionalUserProps(t *testing.T) {
	_, err := model.NewAdditionalUserProps("", "value")
	require.Error(t, err)

	p, err := model.NewAdditionalUserProps("order", "A-42")
	require.NoError(t, err)

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"order","value":"A-42"}`, string(data))
}
