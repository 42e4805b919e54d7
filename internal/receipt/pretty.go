package receipt

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// Pretty renders a column-aligned dump of the receipt with per-cell
// confidence percentages. Debugging aid only; no correctness obligations.
func Pretty(r *ParsedReceipt) string {
	var b strings.Builder
	fmt.Fprintf(&b, "format: %s  headers: %d  rows: %d\n", r.FormatType, len(r.Headers), len(r.Rows))

	width := len(r.Headers)
	for _, row := range r.Rows {
		for _, c := range row.Cells {
			if c.ColumnIndex+1 > width {
				width = c.ColumnIndex + 1
			}
		}
	}
	if width == 0 {
		b.WriteString("(empty receipt)\n")
		return b.String()
	}

	tw := tablewriter.NewWriter(&b)
	if len(r.Headers) > 0 {
		tw.SetHeader(r.Headers)
	}
	for _, row := range r.Rows {
		cols := make([]string, width)
		for _, c := range row.Cells {
			if c.ColumnIndex >= 0 && c.ColumnIndex < width {
				cols[c.ColumnIndex] = fmt.Sprintf("%s (%.0f%%)", c.Text, c.Confidence*100)
			}
		}
		tw.Append(cols)
	}
	tw.Render()
	return b.String()
}
