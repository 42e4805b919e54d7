package scanner

import (
	"github.com/invtrack/receipt-scan/constants"
	"github.com/invtrack/receipt-scan/internal/columns"
	"github.com/invtrack/receipt-scan/internal/extract"
)

// ReceiptMetadata carries best-effort fields parsed from the document's
// free text. Heuristic and non-blocking; a scan succeeds without any of it.
type ReceiptMetadata struct {
	MerchantName  string   `json:"merchant_name,omitempty"`
	InvoiceNumber string   `json:"invoice_number,omitempty"`
	Date          string   `json:"date,omitempty"`
	TotalAmount   *float64 `json:"total_amount,omitempty"`
}

// ScanResult is the terminal outcome of a scan. Error is set only when
// Success is false and is always human-readable.
type ScanResult struct {
	Success    bool                 `json:"success"`
	Products   []*extract.Product   `json:"products"`
	Metadata   ReceiptMetadata      `json:"metadata"`
	Confidence float64              `json:"confidence"`
	FormatType constants.FormatType `json:"format_type"`
	MappingLog []columns.Decision   `json:"mapping_log,omitempty"`
	Error      string               `json:"error,omitempty"`
}
