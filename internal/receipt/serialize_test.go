package receipt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invtrack/receipt-scan/constants"
)

func sampleReceipt() *ParsedReceipt {
	cells := []CellData{
		{Text: "Maggi Noodles", ColumnIndex: 0, RowIndex: 0, Confidence: 0.95,
			BoundingBox: &BoundingBox{Left: 0.1, Top: 0.2, Width: 0.3, Height: 0.05}},
		{Text: "5", ColumnIndex: 1, RowIndex: 0, Confidence: 0.9},
		{Text: "100.00", ColumnIndex: 2, RowIndex: 0, Confidence: 0.85},
	}
	return &ParsedReceipt{
		Headers:    []string{"Item", "Qty", "Net Amt"},
		Rows:       []ParsedRow{{Cells: cells, RawText: JoinRawText(cells)}},
		FormatType: constants.FormatTaxInvoice,
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	original := sampleReceipt()

	data, err := Serialize(original)
	require.NoError(t, err)

	restored, err := Deserialize(data)
	require.NoError(t, err)
	assert.Equal(t, original, restored)

	// A second pass through the codec must be byte-stable.
	data2, err := Serialize(restored)
	require.NoError(t, err)
	assert.Equal(t, data, data2)
}

func TestSerializeNil(t *testing.T) {
	_, err := Serialize(nil)
	assert.Error(t, err)
}

func TestDeserializeEmptyCollections(t *testing.T) {
	r, err := Deserialize([]byte(`{"headers": null, "rows": null, "format_type": "unknown"}`))
	require.NoError(t, err)
	assert.NotNil(t, r.Headers)
	assert.NotNil(t, r.Rows)
	assert.Empty(t, r.Headers)
	assert.Empty(t, r.Rows)
}

func TestDeserializeRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"headers": [`},
		{"headers not an array", `{"headers": "Item", "rows": [], "format_type": "unknown"}`},
		{"missing format type", `{"headers": [], "rows": []}`},
		{"unknown format value", `{"headers": [], "rows": [], "format_type": "receipt"}`},
		{"extra top-level field", `{"headers": [], "rows": [], "format_type": "unknown", "extra": 1}`},
		{"cell missing confidence", `{"headers": [], "format_type": "unknown",
			"rows": [{"raw_text": "x", "cells": [{"text": "x", "column_index": 0, "row_index": 0}]}]}`},
		{"confidence out of range", `{"headers": [], "format_type": "unknown",
			"rows": [{"raw_text": "x", "cells": [{"text": "x", "column_index": 0, "row_index": 0, "confidence": 1.5}]}]}`},
		{"negative column index", `{"headers": [], "format_type": "unknown",
			"rows": [{"raw_text": "x", "cells": [{"text": "x", "column_index": -1, "row_index": 0, "confidence": 0.5}]}]}`},
		{"string confidence", `{"headers": [], "format_type": "unknown",
			"rows": [{"raw_text": "x", "cells": [{"text": "x", "column_index": 0, "row_index": 0, "confidence": "high"}]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Deserialize([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestJoinRawText(t *testing.T) {
	cells := []CellData{
		{Text: "Maggi", ColumnIndex: 0},
		{Text: "", ColumnIndex: 1},
		{Text: "100", ColumnIndex: 2},
	}
	assert.Equal(t, "Maggi |  | 100", JoinRawText(cells))
	assert.Equal(t, "", JoinRawText(nil))
}
