// Package export renders scan results as XLSX workbooks.
package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/invtrack/receipt-scan/internal/extract"
)

// Service produces XLSX bytes for extracted products.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// ProductsXLSX returns an XLSX workbook with one row per product.
func (s *Service) ProductsXLSX(products []*extract.Product) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Products"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if index, _ := f.GetSheetIndex("Sheet1"); index != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	headers := []string{
		"Name",
		"HSN Code",
		"Quantity",
		"Unit Price",
		"Net Amount",
		"MRP",
		"Brand",
		"Confidence",
		"Needs Review",
		"Original Text",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, p := range products {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, p.Name)
		write(2, p.HSNCode)
		write(3, p.Quantity)
		if p.UnitPrice != nil {
			write(4, *p.UnitPrice)
		}
		write(5, p.NetAmount)
		if p.MRP != nil {
			write(6, *p.MRP)
		}
		write(7, p.Brand)
		write(8, p.Confidence)
		write(9, p.NeedsReview)
		write(10, truncate(p.OriginalText, 140))

		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 32) // name
	_ = f.SetColWidth(sheet, "B", "B", 12) // hsn
	_ = f.SetColWidth(sheet, "C", "F", 12) // numbers
	_ = f.SetColWidth(sheet, "G", "G", 18) // brand
	_ = f.SetColWidth(sheet, "J", "J", 48) // original text

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(products),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
