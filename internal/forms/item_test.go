package forms

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestItemValidateClean(t *testing.T) {
	v, errs := ItemInput{
		Name:         " Cordless Drill ",
		Category:     "Power Tools",
		Location:     "Warehouse A",
		PurchaseCost: "$1,299.99",
		Quantity:     "3",
		Tags:         "drill, DeWalt,,drill",
	}.Validate()
	require.False(t, errs.Any())
	require.Equal(t, "Cordless Drill", v.Name)
	require.Equal(t, int64(129999), v.PurchaseCostCents)
	require.Equal(t, 3, v.Quantity)
	require.Equal(t, []string{"drill", "dewalt"}, v.Tags)
}

func TestItemValidateDefaultsQuantity(t *testing.T) {
	v, errs := ItemInput{Name: "Ladder", Category: "Access"}.Validate()
	require.False(t, errs.Any())
	require.Equal(t, 1, v.Quantity)
	require.Zero(t, v.PurchaseCostCents)
}

func TestItemValidateErrors(t *testing.T) {
	_, errs := ItemInput{PurchaseCost: "abc", Quantity: "0"}.Validate()
	require.Equal(t, []string{FieldCategory, FieldName, FieldCost, FieldQuantity}, errs.Fields())

	_, errs = ItemInput{Name: "x", Category: "y", PurchaseCost: "-5"}.Validate()
	require.Equal(t, "Purchase cost cannot be negative", errs.Get(FieldCost))
}

func TestFormatCents(t *testing.T) {
	require.Equal(t, "$1,299.50", FormatCents("$", 129950))
	require.Equal(t, "$0.00", FormatCents("$", 0))
}
