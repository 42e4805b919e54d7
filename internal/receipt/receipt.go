package receipt

import (
	"strings"

	"github.com/invtrack/receipt-scan/constants"
)

// RawTextDelimiter joins cell texts into a row's raw_text. It is part of
// the serialized form, so changing it breaks provenance comparisons.
const RawTextDelimiter = " | "

// BoundingBox locates a block on the page in normalized [0,1] coordinates.
// Purely descriptive; never consulted by extraction logic.
type BoundingBox struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// CellData is one OCR-detected table cell. RowIndex counts data rows only;
// the header row is consumed by the table builder and never appears here.
type CellData struct {
	Text        string       `json:"text"`
	ColumnIndex int          `json:"column_index"`
	RowIndex    int          `json:"row_index"`
	Confidence  float64      `json:"confidence"`
	BoundingBox *BoundingBox `json:"bounding_box,omitempty"`
}

// ParsedRow is one data row of the detected table. RawText preserves the
// cells' text verbatim for provenance and debugging.
type ParsedRow struct {
	Cells   []CellData `json:"cells"`
	RawText string     `json:"raw_text"`
}

// ParsedReceipt is the neutral table representation handed from the table
// builder to the column mapper. Headers may be empty when no table was
// detected. Rows with fewer cells than headers are legal; a missing cell
// means an absent field.
type ParsedReceipt struct {
	Headers    []string             `json:"headers"`
	Rows       []ParsedRow          `json:"rows"`
	FormatType constants.FormatType `json:"format_type"`
}

// JoinRawText builds the deterministic raw_text representation of a row.
func JoinRawText(cells []CellData) string {
	texts := make([]string, 0, len(cells))
	for _, c := range cells {
		texts = append(texts, c.Text)
	}
	return strings.Join(texts, RawTextDelimiter)
}

// CellAt returns the cell with the given column index, or nil when the row
// has no cell in that column.
func (r *ParsedRow) CellAt(columnIndex int) *CellData {
	for i := range r.Cells {
		if r.Cells[i].ColumnIndex == columnIndex {
			return &r.Cells[i]
		}
	}
	return nil
}
