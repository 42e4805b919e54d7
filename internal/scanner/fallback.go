package scanner

import (
	"context"
	"strings"
	"unicode"

	"github.com/invtrack/receipt-scan/constants"
	"github.com/invtrack/receipt-scan/internal/extract"
	"github.com/invtrack/receipt-scan/internal/llm"
	"github.com/invtrack/receipt-scan/internal/ocr"
)

// scanFallback sends the OCR lines to the generative model and converts
// its answer into products. Model prices and quantities are never trusted:
// every fallback product gets zero amounts, quantity 1 and needs_review.
// When the model call or parse fails the raw OCR lines themselves become
// the products, at an even lower confidence.
func (s *Scanner) scanFallback(ctx context.Context, scanID string, analysis ocr.AnalysisResult) ScanResult {
	lines := cleanLines(analysis)

	prompt := llm.BuildNameListPrompt(lines)
	answer, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		s.log.Warn("scanner.fallback.complete_failed", "scan_id", scanID, "error", err)
		return s.rawLineResult(analysis, lines)
	}

	parsed, err := llm.ParseFallbackResponse(answer)
	if err != nil {
		s.log.Warn("scanner.fallback.parse_failed", "scan_id", scanID, "error", err)
		return s.rawLineResult(analysis, lines)
	}

	products := make([]*extract.Product, 0, len(parsed.Products))
	for _, fp := range parsed.Products {
		name := strings.TrimSpace(fp.Name)
		if name == "" {
			continue
		}
		products = append(products, s.fallbackProduct(name, s.cfg.FallbackConfidence))
	}
	products = extract.Dedupe(products)

	products, aggregate := s.postProcess(products, constants.FormatUnknown)
	return ScanResult{
		Success:    true,
		Products:   products,
		Metadata:   parseMetadata(analysis.Lines),
		Confidence: aggregate,
		FormatType: constants.FormatUnknown,
	}
}

// rawLineResult is the last tier: each non-trivial OCR line becomes a
// product verbatim so the caller at least sees what was on the page.
func (s *Scanner) rawLineResult(analysis ocr.AnalysisResult, lines []string) ScanResult {
	products := make([]*extract.Product, 0, len(lines))
	for _, line := range lines {
		if !nonTrivialLine(line) {
			continue
		}
		products = append(products, s.fallbackProduct(line, s.cfg.RawLineConfidence))
	}
	products = extract.Dedupe(products)

	products, aggregate := s.postProcess(products, constants.FormatUnknown)
	return ScanResult{
		Success:    true,
		Products:   products,
		Metadata:   parseMetadata(analysis.Lines),
		Confidence: aggregate,
		FormatType: constants.FormatUnknown,
	}
}

func (s *Scanner) fallbackProduct(name string, confidence float64) *extract.Product {
	zero := float64(0)
	return &extract.Product{
		ID:           extract.NewProductID(),
		Name:         name,
		OriginalName: name,
		OriginalText: name,
		Quantity:     1,
		NetAmount:    0,
		UnitPrice:    &zero,
		Confidence:   confidence,
		NeedsReview:  true,
		FieldConfidences: extract.FieldConfidences{
			Name:      confidence,
			Quantity:  confidence,
			NetAmount: confidence,
		},
	}
}

// nonTrivialLine filters out line noise: a candidate product line needs at
// least three characters and at least one letter.
func nonTrivialLine(line string) bool {
	if len(strings.TrimSpace(line)) < 3 {
		return false
	}
	for _, r := range line {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func cleanLines(analysis ocr.AnalysisResult) []string {
	out := make([]string, 0, len(analysis.Lines))
	for _, l := range analysis.Lines {
		t := strings.TrimSpace(l.Text)
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}
