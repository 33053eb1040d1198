package model_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fiscaldoc/fiscaldoc/internal/model"
)

func TestErrorsCarryStructuredContext(t *testing.T) {
	err := model.NewTooLongError("item name", 128, 200)
	require.Contains(t, err.Error(), "item name")
	require.Contains(t, err.Error(), "128")
	require.Contains(t, err.Error(), "200")

	err2 := model.NewTooManyError("payments", 10, 11)
	require.Contains(t, err2.Error(), "payments")
	require.Contains(t, err2.Error(), "10")
	require.Contains(t, err2.Error(), "11")

	err3 := model.NewFormatError("client inn", "12345", "10 or 12 digits")
	require.Contains(t, err3.Error(), "client inn")
	require.Contains(t, err3.Error(), "12345")

	err4 := model.NewMissingError("company", "inn")
	require.Contains(t, err4.Error(), "company")
	require.Contains(t, err4.Error(), "inn")

	err5 := model.NewTooHighError("item price", "42949672.95", "50000000.00")
	require.Contains(t, err5.Error(), "42949672.95")
	require.Contains(t, err5.Error(), "50000000.00")
}
