package table

import (
	"strings"

	"github.com/invtrack/receipt-scan/constants"
)

// InferFormatType classifies the document layout from the header
// vocabulary. Tax-invoice keywords win over distributor keywords; three or
// more headers with no keyword hit is a plain list.
func InferFormatType(headers []string) constants.FormatType {
	joined := strings.ToLower(strings.Join(headers, " "))
	switch {
	case constants.ContainsAnyKeyword(joined, constants.TaxInvoiceKeywords):
		return constants.FormatTaxInvoice
	case constants.ContainsAnyKeyword(joined, constants.DistributorBillKeywords):
		return constants.FormatDistributorBill
	case len(headers) >= 3:
		return constants.FormatSimpleList
	default:
		return constants.FormatUnknown
	}
}
