package fiscal_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiscaldoc/fiscaldoc/pkg/fiscal"
)

func TestBuildAndSerializeReceipt(t *testing.T) {
	company, err := fiscal.NewCompany("shop@example.com", fiscal.SnoOsn, "1234567890", "https://shop.example.com")
	require.NoError(t, err)

	item, err := fiscal.NewItem("widget", decimal.RequireFromString("10.00"), decimal.NewFromInt(2))
	require.NoError(t, err)
	items, err := fiscal.NewItems(item)
	require.NoError(t, err)

	payment, err := fiscal.NewPayment(fiscal.PaymentTypeElectron, decimal.RequireFromString("20.00"))
	require.NoError(t, err)
	payments, err := fiscal.NewPayments(payment)
	require.NoError(t, err)

	receipt, err := fiscal.NewReceipt(&fiscal.Client{}, company, items, payments)
	require.NoError(t, err)

	data, err := receipt.Serialize()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"total":20.00`)
}

func TestValidationErrorsSurfaceThroughFacade(t *testing.T) {
	_, err := fiscal.NewItem("", decimal.NewFromInt(1), decimal.NewFromInt(1))

	var empty *fiscal.EmptyError
	require.ErrorAs(t, err, &empty)
}

func TestParseHelpers(t *testing.T) {
	vt, err := fiscal.ParseVatType("vat20")
	require.NoError(t, err)
	assert.Equal(t, fiscal.VatTypeVat20, vt)

	_, err = fiscal.ParseSno("flat_tax")
	require.Error(t, err)
}
