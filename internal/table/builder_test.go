package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invtrack/receipt-scan/constants"
	"github.com/invtrack/receipt-scan/internal/ocr"
)

// blockGraph assembles a one-table block graph in the 1-based row/column
// convention engines use. grid[0] is the header row.
func blockGraph(grid [][]string) ocr.AnalysisResult {
	res := ocr.AnalysisResult{}
	tbl := ocr.Block{ID: "t1", Type: ocr.BlockTypeTable}
	cellN := 0
	for r, row := range grid {
		for c, text := range row {
			cellN++
			id := string(rune('a' + cellN))
			tbl.ChildIDs = append(tbl.ChildIDs, id)
			res.Blocks = append(res.Blocks, ocr.Block{
				ID:          id,
				Type:        ocr.BlockTypeCell,
				Text:        text,
				Confidence:  0.9,
				RowIndex:    r + 1,
				ColumnIndex: c + 1,
			})
		}
	}
	res.Blocks = append([]ocr.Block{tbl}, res.Blocks...)
	return res
}

func TestBuildReceiptFromTable(t *testing.T) {
	res := blockGraph([][]string{
		{"Item Description", "HSN", "Qty", "Net Amt"},
		{"Maggi Noodles", "1234", "5", "100.00"},
		{"Tata Salt", "2501", "2", "50.00"},
	})

	pr := BuildReceipt(res, nil)

	assert.Equal(t, []string{"Item Description", "HSN", "Qty", "Net Amt"}, pr.Headers)
	require.Len(t, pr.Rows, 2)

	// 1-based engine indices come out 0-based.
	first := pr.Rows[0]
	require.Len(t, first.Cells, 4)
	assert.Equal(t, 0, first.Cells[0].ColumnIndex)
	assert.Equal(t, 0, first.Cells[0].RowIndex)
	assert.Equal(t, "Maggi Noodles", first.Cells[0].Text)
	assert.Equal(t, "Maggi Noodles | 1234 | 5 | 100.00", first.RawText)

	assert.Equal(t, 1, pr.Rows[1].Cells[0].RowIndex)
	assert.Equal(t, constants.FormatTaxInvoice, pr.FormatType)
}

func TestBuildReceiptZeroBasedEngineUnshifted(t *testing.T) {
	res := blockGraph([][]string{
		{"Item", "Qty", "Amount"},
		{"Sugar", "1", "45"},
	})
	// Rewrite indices to a 0-based convention.
	for i := range res.Blocks {
		if res.Blocks[i].Type == ocr.BlockTypeCell {
			res.Blocks[i].RowIndex--
			res.Blocks[i].ColumnIndex--
		}
	}

	pr := BuildReceipt(res, nil)

	assert.Equal(t, []string{"Item", "Qty", "Amount"}, pr.Headers)
	require.Len(t, pr.Rows, 1)
	assert.Equal(t, 0, pr.Rows[0].Cells[0].ColumnIndex)
}

func TestBuildReceiptCellTextFromChildWords(t *testing.T) {
	res := ocr.AnalysisResult{Blocks: []ocr.Block{
		{ID: "t1", Type: ocr.BlockTypeTable, ChildIDs: []string{"h1", "h2", "h3", "c1", "c2", "c3"}},
		{ID: "h1", Type: ocr.BlockTypeCell, Text: "Item", RowIndex: 1, ColumnIndex: 1},
		{ID: "h2", Type: ocr.BlockTypeCell, Text: "Qty", RowIndex: 1, ColumnIndex: 2},
		{ID: "h3", Type: ocr.BlockTypeCell, Text: "Amount", RowIndex: 1, ColumnIndex: 3},
		{ID: "c1", Type: ocr.BlockTypeCell, RowIndex: 2, ColumnIndex: 1, ChildIDs: []string{"w1", "w2"}},
		{ID: "c2", Type: ocr.BlockTypeCell, Text: "2", RowIndex: 2, ColumnIndex: 2},
		{ID: "c3", Type: ocr.BlockTypeCell, Text: "80", RowIndex: 2, ColumnIndex: 3},
		{ID: "w1", Type: ocr.BlockTypeWord, Text: "Basmati"},
		{ID: "w2", Type: ocr.BlockTypeWord, Text: "Rice"},
	}}

	pr := BuildReceipt(res, nil)

	require.Len(t, pr.Rows, 1)
	assert.Equal(t, "Basmati Rice", pr.Rows[0].Cells[0].Text)
}

func TestBuildReceiptFirstTableWins(t *testing.T) {
	res := blockGraph([][]string{
		{"Item", "Qty", "Amount"},
		{"Salt", "1", "25"},
	})
	second := ocr.Block{ID: "t2", Type: ocr.BlockTypeTable, ChildIDs: []string{"zz"}}
	res.Blocks = append(res.Blocks, second, ocr.Block{
		ID: "zz", Type: ocr.BlockTypeCell, Text: "Other", RowIndex: 1, ColumnIndex: 1,
	})

	pr := BuildReceipt(res, nil)
	assert.Equal(t, []string{"Item", "Qty", "Amount"}, pr.Headers)
}

func TestBuildReceiptFromLines(t *testing.T) {
	res := ocr.AnalysisResult{Lines: []ocr.TextLine{
		{Text: "SuperMart", Confidence: 0.9, Top: 5},
		{Text: "Item Qty Amount", Confidence: 0.9, Top: 20},
		{Text: "Soap 2 80", Confidence: 0.8, Top: 30},
		{Text: "Total", Confidence: 0.8, Top: 40},
		{Text: "Shampoo 1 120", Confidence: 0.8, Top: 35},
	}}

	pr := BuildReceipt(res, nil)

	assert.Equal(t, []string{"Item", "Qty", "Amount"}, pr.Headers)
	require.Len(t, pr.Rows, 2)
	// Lines re-sorted by vertical position before row assembly.
	assert.Equal(t, "Soap | 2 | 80", pr.Rows[0].RawText)
	assert.Equal(t, "Shampoo | 1 | 120", pr.Rows[1].RawText)
	assert.Equal(t, constants.FormatSimpleList, pr.FormatType)
}

func TestBuildReceiptNoUsableInput(t *testing.T) {
	tests := []struct {
		name string
		res  ocr.AnalysisResult
	}{
		{"empty analysis", ocr.AnalysisResult{}},
		{"short lines only", ocr.AnalysisResult{Lines: []ocr.TextLine{
			{Text: "Hi", Top: 1}, {Text: "Total 99", Top: 2},
		}}},
		{"table block without cells", ocr.AnalysisResult{Blocks: []ocr.Block{
			{ID: "t1", Type: ocr.BlockTypeTable, ChildIDs: []string{"missing"}},
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pr := BuildReceipt(tt.res, nil)
			assert.Empty(t, pr.Headers)
			assert.Empty(t, pr.Rows)
			assert.Equal(t, constants.FormatUnknown, pr.FormatType)
		})
	}
}

func TestInferFormatType(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    constants.FormatType
	}{
		{"hsn header", []string{"Item", "HSN", "Qty"}, constants.FormatTaxInvoice},
		{"cgst header", []string{"Item", "CGST", "SGST"}, constants.FormatTaxInvoice},
		{"distributor header", []string{"Distributor Name", "Item", "Qty"}, constants.FormatDistributorBill},
		{"plain three headers", []string{"Item", "Qty", "Amount"}, constants.FormatSimpleList},
		{"two headers", []string{"Item", "Qty"}, constants.FormatUnknown},
		{"none", nil, constants.FormatUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferFormatType(tt.headers))
		})
	}
}
