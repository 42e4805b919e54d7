package constants

import (
	"strings"
)

// FormatType is a coarse classification of the document layout, inferred
// from column header vocabulary. It is used only to bound confidence,
// never to alter extraction logic.
type FormatType string

const (
	FormatTaxInvoice      FormatType = "tax_invoice"
	FormatDistributorBill FormatType = "distributor_bill"
	FormatSimpleList      FormatType = "simple_list"
	FormatUnknown         FormatType = "unknown"
)

var allFormats = []FormatType{
	FormatTaxInvoice,
	FormatDistributorBill,
	FormatSimpleList,
	FormatUnknown,
}

// IsValidFormat reports whether s is one of the known format type values.
func IsValidFormat(s string) bool {
	for _, f := range allFormats {
		if string(f) == s {
			return true
		}
	}
	return false
}

// Header vocabulary that identifies a format. Matched as substrings of the
// lowercased header row.
var (
	TaxInvoiceKeywords      = []string{"hsn", "cgst", "sgst"}
	DistributorBillKeywords = []string{"distributor", "dealer"}
)

// ContainsAnyKeyword reports whether any of the keywords occurs in s.
// Callers are expected to pass s already lowercased.
func ContainsAnyKeyword(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
