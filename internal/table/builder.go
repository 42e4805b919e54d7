package table

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/invtrack/receipt-scan/constants"
	"github.com/invtrack/receipt-scan/internal/ocr"
	"github.com/invtrack/receipt-scan/internal/receipt"
)

const (
	minHeaderTokens = 3
	minRowTokens    = 2
)

// BuildReceipt converts the engine's block graph into a neutral
// ParsedReceipt. It never fails: when no table was detected it falls back
// to line-based heuristics, and at worst returns an empty receipt with
// format "unknown", which the column mapper will reject.
func BuildReceipt(res ocr.AnalysisResult, logger *slog.Logger) *receipt.ParsedReceipt {
	if logger == nil {
		logger = slog.Default()
	}

	tbl := firstTable(res.Blocks)
	if tbl == nil {
		logger.Debug("table.build.no_table_block", "lines", len(res.Lines))
		return buildFromLines(res.Lines)
	}
	return buildFromTable(tbl, res.Blocks, logger)
}

// firstTable returns the first TABLE block in document order. Receipts with
// multiple product tables are out of scope; the first one wins.
func firstTable(blocks []ocr.Block) *ocr.Block {
	for i := range blocks {
		if blocks[i].Type == ocr.BlockTypeTable {
			return &blocks[i]
		}
	}
	return nil
}

func buildFromTable(tbl *ocr.Block, blocks []ocr.Block, logger *slog.Logger) *receipt.ParsedReceipt {
	byID := make(map[string]*ocr.Block, len(blocks))
	for i := range blocks {
		byID[blocks[i].ID] = &blocks[i]
	}

	// Resolve the table's child CELL blocks and group them by row index.
	rowsByIndex := make(map[int][]*ocr.Block)
	minCol := -1
	for _, id := range tbl.ChildIDs {
		cell, ok := byID[id]
		if !ok || cell.Type != ocr.BlockTypeCell {
			continue
		}
		rowsByIndex[cell.RowIndex] = append(rowsByIndex[cell.RowIndex], cell)
		if minCol < 0 || cell.ColumnIndex < minCol {
			minCol = cell.ColumnIndex
		}
	}
	if len(rowsByIndex) == 0 {
		logger.Warn("table.build.empty_table_block", "table_id", tbl.ID)
		return &receipt.ParsedReceipt{
			Headers:    []string{},
			Rows:       []receipt.ParsedRow{},
			FormatType: constants.FormatUnknown,
		}
	}

	// Engines typically emit 1-based column indices; shift down only when
	// every observed index leaves room for it.
	colShift := 0
	if minCol >= 1 {
		colShift = 1
	}

	rowIndices := make([]int, 0, len(rowsByIndex))
	for idx := range rowsByIndex {
		rowIndices = append(rowIndices, idx)
	}
	sort.Ints(rowIndices)

	// The lowest row index is the header row; it is consumed here and
	// excluded from the data rows.
	headerCells := rowsByIndex[rowIndices[0]]
	sort.SliceStable(headerCells, func(i, j int) bool {
		return headerCells[i].ColumnIndex < headerCells[j].ColumnIndex
	})
	headers := make([]string, 0, len(headerCells))
	for _, c := range headerCells {
		headers = append(headers, strings.TrimSpace(cellText(c, byID)))
	}

	rows := make([]receipt.ParsedRow, 0, len(rowIndices)-1)
	for dataIdx, rowIdx := range rowIndices[1:] {
		cells := rowsByIndex[rowIdx]
		sort.SliceStable(cells, func(i, j int) bool {
			return cells[i].ColumnIndex < cells[j].ColumnIndex
		})
		parsed := make([]receipt.CellData, 0, len(cells))
		for _, c := range cells {
			col := c.ColumnIndex - colShift
			if col < 0 {
				col = 0
			}
			parsed = append(parsed, receipt.CellData{
				Text:        cellText(c, byID),
				ColumnIndex: col,
				RowIndex:    dataIdx,
				Confidence:  c.Confidence,
				BoundingBox: c.Geometry,
			})
		}
		rows = append(rows, receipt.ParsedRow{
			Cells:   parsed,
			RawText: receipt.JoinRawText(parsed),
		})
	}

	pr := &receipt.ParsedReceipt{
		Headers:    headers,
		Rows:       rows,
		FormatType: InferFormatType(headers),
	}
	logger.Debug("table.build.ok",
		"headers", len(headers), "rows", len(rows), "format", pr.FormatType)
	return pr
}

// cellText is the cell's own text when present, else the space-joined text
// of its child WORD blocks. Cells can legitimately be empty.
func cellText(cell *ocr.Block, byID map[string]*ocr.Block) string {
	if cell.Text != "" {
		return cell.Text
	}
	var words []string
	for _, id := range cell.ChildIDs {
		w, ok := byID[id]
		if !ok || w.Type != ocr.BlockTypeWord {
			continue
		}
		if w.Text != "" {
			words = append(words, w.Text)
		}
	}
	return strings.Join(words, " ")
}

// buildFromLines is the lossy approximation used when no table block
// exists: the first line with enough whitespace-separated tokens becomes
// the header, and subsequent multi-token lines become data rows.
func buildFromLines(lines []ocr.TextLine) *receipt.ParsedReceipt {
	sorted := make([]ocr.TextLine, len(lines))
	copy(sorted, lines)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Top < sorted[j].Top })

	headerIdx := -1
	var headers []string
	for i, l := range sorted {
		tokens := strings.Fields(l.Text)
		if len(tokens) >= minHeaderTokens {
			headerIdx = i
			headers = tokens
			break
		}
	}
	if headerIdx < 0 {
		return &receipt.ParsedReceipt{
			Headers:    []string{},
			Rows:       []receipt.ParsedRow{},
			FormatType: constants.FormatUnknown,
		}
	}

	rows := make([]receipt.ParsedRow, 0, len(sorted)-headerIdx-1)
	for _, l := range sorted[headerIdx+1:] {
		tokens := strings.Fields(l.Text)
		if len(tokens) < minRowTokens {
			continue
		}
		cells := make([]receipt.CellData, 0, len(tokens))
		for col, tok := range tokens {
			cells = append(cells, receipt.CellData{
				Text:        tok,
				ColumnIndex: col,
				RowIndex:    len(rows),
				Confidence:  l.Confidence,
			})
		}
		rows = append(rows, receipt.ParsedRow{
			Cells:   cells,
			RawText: receipt.JoinRawText(cells),
		})
	}

	return &receipt.ParsedReceipt{
		Headers:    headers,
		Rows:       rows,
		FormatType: InferFormatType(headers),
	}
}
