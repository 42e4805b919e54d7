package extract

import (
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/invtrack/receipt-scan/constants"
	"github.com/invtrack/receipt-scan/internal/columns"
	"github.com/invtrack/receipt-scan/internal/pricing"
	"github.com/invtrack/receipt-scan/internal/receipt"
)

// Config holds extraction policy knobs.
type Config struct {
	// SoftFieldConfidence stands in for the confidence of an absent
	// quantity or net-amount cell.
	SoftFieldConfidence float64
	// ReviewThreshold flags products whose overall confidence falls below it.
	ReviewThreshold float64
}

// Extractor turns mapped rows into products.
type Extractor struct {
	log *slog.Logger
	cfg Config
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.SoftFieldConfidence <= 0 {
		cfg.SoftFieldConfidence = constants.SoftFieldConfidence
	}
	if cfg.ReviewThreshold <= 0 {
		cfg.ReviewThreshold = constants.ReviewThreshold
	}
	return &Extractor{log: logger, cfg: cfg}
}

// ExtractRow assembles a product from one mapped row. Returns nil when the
// row has no usable product name; that is a silent skip, not an error.
func (e *Extractor) ExtractRow(row receipt.ParsedRow, mapping columns.Mapping) *Product {
	nameCell := row.CellAt(mapping.ProductName)
	if nameCell == nil || strings.TrimSpace(nameCell.Text) == "" {
		return nil
	}
	rawName := nameCell.Text

	name, code := SeparateProductCode(rawName)
	if name == "" {
		// A code alone is not a valid product name.
		e.log.Debug("extract.row.code_only_name", "raw", rawName)
		return nil
	}

	qtyCell := row.CellAt(mapping.Quantity)
	quantity, qtyOK := ParseNumericCell(cellString(qtyCell))
	if !qtyOK || quantity <= 0 || math.IsNaN(quantity) {
		// Quantity is optional on many receipts.
		quantity = 1
	}

	netCell := row.CellAt(mapping.NetAmount)
	netAmount, netOK := ParseNumericCell(cellString(netCell))
	if !netOK {
		netAmount = 0
	}

	var mrp *float64
	if mapping.MRP != nil {
		if cell := row.CellAt(*mapping.MRP); cell != nil {
			if v, ok := ParseNumericCell(cell.Text); ok {
				mrp = &v
			}
		}
	}

	priceRes := pricing.CalculateUnitPrice(&netAmount, &quantity)

	fc := FieldConfidences{
		Name:      nameCell.Confidence,
		Quantity:  e.fieldConfidence(qtyCell),
		NetAmount: e.fieldConfidence(netCell),
	}
	overall := (fc.Name + fc.Quantity + fc.NetAmount) / 3

	return &Product{
		ID:               NewProductID(),
		Name:             name,
		OriginalName:     rawName,
		OriginalText:     row.RawText,
		Quantity:         quantity,
		NetAmount:        netAmount,
		UnitPrice:        priceRes.UnitPrice,
		MRP:              mrp,
		HSNCode:          code,
		Confidence:       overall,
		NeedsReview:      overall < e.cfg.ReviewThreshold || !priceRes.Success,
		FieldConfidences: fc,
		BoundingBox:      nameCell.BoundingBox,
	}
}

// ExtractAll runs ExtractRow over every row and de-duplicates the results
// by case-insensitive name, first occurrence winning.
func (e *Extractor) ExtractAll(rows []receipt.ParsedRow, mapping columns.Mapping) []*Product {
	products := make([]*Product, 0, len(rows))
	for _, row := range rows {
		if p := e.ExtractRow(row, mapping); p != nil {
			products = append(products, p)
		}
	}
	return Dedupe(products)
}

func (e *Extractor) fieldConfidence(cell *receipt.CellData) float64 {
	if cell == nil {
		return e.cfg.SoftFieldConfidence
	}
	return cell.Confidence
}

func cellString(cell *receipt.CellData) string {
	if cell == nil {
		return ""
	}
	return cell.Text
}

var reNumber = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)

// ParseNumericCell pulls the first numeric token out of the cell text,
// tolerating currency symbols, thousands separators and unit suffixes.
// ok is false for empty or numberless text, letting callers apply their
// own defaults.
func ParseNumericCell(text string) (value float64, ok bool) {
	match := reNumber.FindString(text)
	if match == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
