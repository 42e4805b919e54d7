package columns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapColumnsTaxInvoiceHeaders(t *testing.T) {
	res := MapColumns([]string{"Item Description", "HSN", "Qty", "MRP", "Net Amt"})

	require.True(t, res.Success)
	require.NotNil(t, res.Mapping)
	assert.Equal(t, 0, res.Mapping.ProductName)
	assert.Equal(t, 2, res.Mapping.Quantity)
	assert.Equal(t, 4, res.Mapping.NetAmount)
	require.NotNil(t, res.Mapping.MRP)
	assert.Equal(t, 3, *res.Mapping.MRP)
	assert.Nil(t, res.Mapping.GrossAmount)

	assert.Equal(t, 4, res.PriceColumnIndex)
	assert.Equal(t, FieldNetAmount, res.PriceColumnType)
	assert.Len(t, res.Decisions, 5)
}

func TestMapColumnsPricePriority(t *testing.T) {
	tests := []struct {
		name     string
		headers  []string
		wantIdx  int
		wantType Field
	}{
		{"net beats mrp and gross", []string{"Item", "Qty", "Gross Amt", "MRP", "Net Amt"}, 4, FieldNetAmount},
		{"mrp beats gross", []string{"Item", "Qty", "Gross Amt", "MRP"}, 3, FieldMRP},
		{"gross as last resort", []string{"Item", "Qty", "Gross Amt"}, 2, FieldGrossAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := MapColumns(tt.headers)
			require.True(t, res.Success)
			assert.Equal(t, tt.wantIdx, res.PriceColumnIndex)
			assert.Equal(t, tt.wantType, res.PriceColumnType)
			assert.Equal(t, tt.wantIdx, res.Mapping.NetAmount)
		})
	}
}

func TestMapColumnsNormalization(t *testing.T) {
	res := MapColumns([]string{"  ITEM  ", "QTY", "AMOUNT"})
	require.True(t, res.Success)
	assert.Equal(t, 0, res.Mapping.ProductName)
	assert.Equal(t, 1, res.Mapping.Quantity)
	assert.Equal(t, 2, res.Mapping.NetAmount)
}

func TestMapColumnsDuplicateFirstWins(t *testing.T) {
	res := MapColumns([]string{"Item", "Product", "Qty", "Amount"})
	require.True(t, res.Success)
	assert.Equal(t, 0, res.Mapping.ProductName)

	// The losing duplicate is recorded as unknown.
	assert.Equal(t, FieldUnknown, res.Decisions[1].AssignedField)
	assert.Contains(t, res.Decisions[1].Reason, "first occurrence wins")
}

func TestMapColumnsFailures(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
	}{
		{"no headers", nil},
		{"only unknowns", []string{"Sr.No", "Remarks"}},
		{"missing price", []string{"Item", "Qty", "HSN"}},
		{"missing quantity", []string{"Item", "Net Amt"}},
		{"missing name", []string{"Qty", "Net Amt"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := MapColumns(tt.headers)
			assert.False(t, res.Success)
			assert.Nil(t, res.Mapping)
		})
	}
}

func TestMapColumnsNoFuzzyMatch(t *testing.T) {
	// Near-misses must not map; exact alias only.
	res := MapColumns([]string{"Itm", "Qnty", "Amnt"})
	require.False(t, res.Success)
	for _, d := range res.Decisions {
		assert.Equal(t, FieldUnknown, d.AssignedField)
	}
}
