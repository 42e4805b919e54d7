package receipt

import (
	"encoding/json"
	"fmt"

	"github.com/invtrack/receipt-scan/constants"
	"github.com/invtrack/receipt-scan/internal/schema"
)

// Serialize renders a ParsedReceipt as indented JSON. The output round-trips
// losslessly through Deserialize.
func Serialize(r *ParsedReceipt) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("nil receipt")
	}
	return json.MarshalIndent(r, "", "  ")
}

// Deserialize parses and structurally validates a serialized ParsedReceipt.
// Malformed input fails rather than silently coercing: every cell must carry
// text/column_index/row_index/confidence of the correct types, and the
// format type must be one of the known values.
func Deserialize(data []byte) (*ParsedReceipt, error) {
	if err := schema.ValidateJSONAgainstSchema(receiptSchema(), data); err != nil {
		return nil, fmt.Errorf("invalid receipt document: %w", err)
	}
	var r ParsedReceipt
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("unmarshal receipt: %w", err)
	}
	if !constants.IsValidFormat(string(r.FormatType)) {
		return nil, fmt.Errorf("invalid format_type: %q", r.FormatType)
	}
	if r.Headers == nil {
		r.Headers = []string{}
	}
	if r.Rows == nil {
		r.Rows = []ParsedRow{}
	}
	return &r, nil
}

func receiptSchema() map[string]any {
	boundingBox := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"left", "top", "width", "height"},
		"properties": map[string]any{
			"left":   map[string]any{"type": "number"},
			"top":    map[string]any{"type": "number"},
			"width":  map[string]any{"type": "number"},
			"height": map[string]any{"type": "number"},
		},
	}
	cell := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"text", "column_index", "row_index", "confidence"},
		"properties": map[string]any{
			"text":         map[string]any{"type": "string"},
			"column_index": map[string]any{"type": "integer", "minimum": 0},
			"row_index":    map[string]any{"type": "integer", "minimum": 0},
			"confidence":   map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
			"bounding_box": boundingBox,
		},
	}
	row := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"cells", "raw_text"},
		"properties": map[string]any{
			"cells":    map[string]any{"type": "array", "items": cell},
			"raw_text": map[string]any{"type": "string"},
		},
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"headers", "rows", "format_type"},
		"properties": map[string]any{
			// Null collections are accepted and normalized to empty after
			// validation; everything below the top level stays strict.
			"headers":     map[string]any{"type": []string{"array", "null"}, "items": map[string]any{"type": "string"}},
			"rows":        map[string]any{"type": []string{"array", "null"}, "items": row},
			"format_type": map[string]any{"type": "string"},
		},
	}
}
