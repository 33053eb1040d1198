package model_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiscaldoc/fiscaldoc/internal/model"
)

func makeItems(t *testing.T, n int) []*model.Item {
	t.Helper()
	items := make([]*model.Item, 0, n)
	for i := 0; i < n; i++ {
		it, err := model.NewItem(fmt.Sprintf("item %d", i), decimal.NewFromInt(1), decimal.NewFromInt(1))
		require.NoError(t, err)
		items = append(items, it)
	}
	return items
}

func TestItems_CapacityAtomicity(t *testing.T) {
	c, err := model.NewItems(makeItems(t, model.MaxItems)...)
	require.NoError(t, err)
	require.Equal(t, model.MaxItems, c.Len())

	extra := makeItems(t, 1)
	err = c.Append(extra...)

	var tooMany *model.TooManyError
	require.ErrorAs(t, err, &tooMany)
	assert.Equal(t, "items", tooMany.Collection)
	assert.Equal(t, model.MaxItems, tooMany.Max)
	assert.Equal(t, model.MaxItems+1, tooMany.Attempted)
	// Size unchanged after the rejected transition
	assert.Equal(t, model.MaxItems, c.Len())
}

func TestItems_BulkAppendRejectedInFull(t *testing.T) {
	c, err := model.NewItems(makeItems(t, model.MaxItems-1)...)
	require.NoError(t, err)

	// Two more would overflow; not even the first may land
	err = c.Append(makeItems(t, 2)...)
	require.Error(t, err)
	assert.Equal(t, model.MaxItems-1, c.Len())
}

func TestItems_Prepend(t *testing.T) {
	items := makeItems(t, 2)
	c, err := model.NewItems(items[0])
	require.NoError(t, err)
	require.NoError(t, c.Prepend(items[1]))

	elems := c.Elements()
	require.Len(t, elems, 2)
	assert.Equal(t, "item 1", elems[0].Name())
	assert.Equal(t, "item 0", elems[1].Name())
}

func TestItems_NilElementRejected(t *testing.T) {
	c, err := model.NewItems(makeItems(t, 1)...)
	require.NoError(t, err)

	err = c.Append(nil)
	var wrongType *model.ElementTypeError
	require.ErrorAs(t, err, &wrongType)
	assert.Equal(t, "items", wrongType.Collection)
	assert.Equal(t, 1, c.Len())
}

func TestPayments_Capacity(t *testing.T) {
	payments := make([]*model.Payment, 0, model.MaxPayments+1)
	for i := 0; i <= model.MaxPayments; i++ {
		p, err := model.NewPayment(model.PaymentTypeCash, decimal.NewFromInt(1))
		require.NoError(t, err)
		payments = append(payments, p)
	}

	_, err := model.NewPayments(payments...)
	var tooMany *model.TooManyError
	require.ErrorAs(t, err, &tooMany)
	assert.Equal(t, "payments", tooMany.Collection)
	assert.Equal(t, model.MaxPayments, tooMany.Max)
}

func TestVats_MergeByType(t *testing.T) {
	a, err := model.NewVat(model.VatTypeVat20, decimal.NewFromInt(100))
	require.NoError(t, err)
	b, err := model.NewVat(model.VatTypeVat20, decimal.NewFromInt(50))
	require.NoError(t, err)

	c, err := model.NewVats(a)
	require.NoError(t, err)
	require.NoError(t, c.Append(b))

	// One entry with the combined base, not two entries
	require.Equal(t, 1, c.Len())
	entry := c.Elements()[0]
	assert.True(t, entry.BaseSum().Equal(decimal.NewFromInt(150)),
		"expected merged base 150, got %s", entry.BaseSum())
	assert.True(t, entry.ComputedSum().Equal(decimal.NewFromInt(30)))
}

func TestVats_DistinctTypesAppend(t *testing.T) {
	a, err := model.NewVat(model.VatTypeVat10, decimal.NewFromInt(100))
	require.NoError(t, err)
	b, err := model.NewVat(model.VatTypeVat20, decimal.NewFromInt(100))
	require.NoError(t, err)

	c, err := model.NewVats(a, b)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
}

func TestVats_BatchWithDuplicatesMergesBeforeCapacityCheck(t *testing.T) {
	// Six same-type entries collapse to one; capacity 6 is never exceeded
	vats := make([]*model.Vat, 0, model.MaxVats+2)
	for i := 0; i < model.MaxVats+2; i++ {
		v, err := model.NewVat(model.VatTypeVat10, decimal.NewFromInt(10))
		require.NoError(t, err)
		vats = append(vats, v)
	}

	c, err := model.NewVats(vats...)
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())
	assert.True(t, c.Elements()[0].BaseSum().Equal(decimal.NewFromInt(80)))
}

func TestVats_CapacityFailureLeavesMergeUndone(t *testing.T) {
	types := []model.VatType{
		model.VatTypeNone, model.VatTypeVat0, model.VatTypeVat10,
		model.VatTypeVat18, model.VatTypeVat20, model.VatTypeVat110,
	}
	seed := make([]*model.Vat, 0, len(types))
	for _, vt := range types {
		v, err := model.NewVat(vt, decimal.NewFromInt(10))
		require.NoError(t, err)
		seed = append(seed, v)
	}
	c, err := model.NewVats(seed...)
	require.NoError(t, err)
	require.Equal(t, model.MaxVats, c.Len())

	// A batch mixing a mergeable entry with a genuinely new type overflows;
	// nothing may change, including the mergeable entry's base.
	dup, err := model.NewVat(model.VatTypeVat10, decimal.NewFromInt(99))
	require.NoError(t, err)
	extra, err := model.NewVat(model.VatTypeVat118, decimal.NewFromInt(1))
	require.NoError(t, err)

	err = c.Append(dup, extra)
	var tooMany *model.TooManyError
	require.ErrorAs(t, err, &tooMany)
	assert.Equal(t, model.MaxVats, c.Len())
	for _, v := range c.Elements() {
		assert.True(t, v.BaseSum().Equal(decimal.NewFromInt(10)),
			"base of %s changed despite rejected append", v.Type())
	}
}

func TestVats_MergeOverMaxBaseRejected(t *testing.T) {
	max := decimal.RequireFromString("42949672.95")
	a, err := model.NewVat(model.VatTypeVat20, max)
	require.NoError(t, err)
	b, err := model.NewVat(model.VatTypeVat20, max)
	require.NoError(t, err)

	c, err := model.NewVats(a)
	require.NoError(t, err)

	// Merging would push the base to 85,899,345.90, past the bound
	err = c.Append(b)
	var tooHigh *model.TooHighError
	require.ErrorAs(t, err, &tooHigh)
	assert.Equal(t, "vat base sum", tooHigh.Field)

	require.Equal(t, 1, c.Len())
	assert.True(t, c.Elements()[0].BaseSum().Equal(max),
		"base changed despite rejected merge")
}

func TestVats_MergeOverflowLeavesBatchUndone(t *testing.T) {
	max := decimal.RequireFromString("42949672.95")
	a, err := model.NewVat(model.VatTypeVat20, max)
	require.NoError(t, err)
	c, err := model.NewVats(a)
	require.NoError(t, err)

	// A fresh type rides along with the overflowing merge; neither may land
	dup, err := model.NewVat(model.VatTypeVat20, decimal.NewFromInt(1))
	require.NoError(t, err)
	extra, err := model.NewVat(model.VatTypeVat10, decimal.NewFromInt(1))
	require.NoError(t, err)

	err = c.Append(dup, extra)
	var tooHigh *model.TooHighError
	require.ErrorAs(t, err, &tooHigh)
	assert.Equal(t, 1, c.Len())
	assert.True(t, c.Elements()[0].BaseSum().Equal(max))
}

func TestVats_PrependMergeOverMaxBaseRejected(t *testing.T) {
	max := decimal.RequireFromString("42949672.95")
	a, err := model.NewVat(model.VatTypeVat20, max)
	require.NoError(t, err)
	b, err := model.NewVat(model.VatTypeVat20, decimal.NewFromInt(1))
	require.NoError(t, err)

	c, err := model.NewVats(a)
	require.NoError(t, err)

	err = c.Prepend(b)
	var tooHigh *model.TooHighError
	require.ErrorAs(t, err, &tooHigh)
	assert.True(t, c.Elements()[0].BaseSum().Equal(max))
}

func TestItems_MarshalJSONKeepsOrder(t *testing.T) {
	c, err := model.NewItems(makeItems(t, 2)...)
	require.NoError(t, err)

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "item 0", decoded[0]["name"])
	assert.Equal(t, "item 1", decoded[1]["name"])
}
