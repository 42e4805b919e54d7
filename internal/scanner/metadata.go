package scanner

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/invtrack/receipt-scan/internal/ocr"
)

var (
	reInvoiceNo = regexp.MustCompile(`(?i)\b(?:invoice|bill|inv)\s*(?:no|num|number|#)?\s*[:.#-]?\s*([A-Za-z0-9][A-Za-z0-9/-]{2,})`)
	reDate      = regexp.MustCompile(`\b(\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|\d{4}-\d{2}-\d{2})\b`)
	reTotal     = regexp.MustCompile(`(?i)\b(?:grand\s*total|total\s*amount|total|net\s*payable)\b[^0-9]{0,12}([0-9][0-9,]*(?:\.[0-9]{1,2})?)`)
)

// parseMetadata pulls merchant, invoice number, date and total from the
// document's free-text lines. Pure heuristics: the first plausible match
// wins and absence of any field is fine.
func parseMetadata(lines []ocr.TextLine) ReceiptMetadata {
	var md ReceiptMetadata
	for i, line := range lines {
		text := strings.TrimSpace(line.Text)
		if text == "" {
			continue
		}

		if md.MerchantName == "" && i < 3 && looksLikeMerchant(text) {
			md.MerchantName = text
		}
		if md.InvoiceNumber == "" {
			if m := reInvoiceNo.FindStringSubmatch(text); m != nil {
				md.InvoiceNumber = m[1]
			}
		}
		if md.Date == "" {
			if m := reDate.FindStringSubmatch(text); m != nil {
				md.Date = m[1]
			}
		}
		// Later totals overwrite earlier ones; receipts print the grand
		// total below the subtotals.
		if m := reTotal.FindStringSubmatch(text); m != nil {
			raw := strings.ReplaceAll(m[1], ",", "")
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				md.TotalAmount = &v
			}
		}
	}
	return md
}

// looksLikeMerchant rejects lines that are clearly labels, numbers or
// addresses. Merchant names sit in the first few lines and are mostly
// letters.
func looksLikeMerchant(text string) bool {
	lower := strings.ToLower(text)
	for _, word := range []string{"invoice", "bill", "receipt", "date", "gstin", "phone", "tel", "no."} {
		if strings.Contains(lower, word) {
			return false
		}
	}
	letters := 0
	for _, r := range text {
		if ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') {
			letters++
		}
	}
	return letters >= 3 && letters*2 >= len(text)
}
