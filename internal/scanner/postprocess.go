package scanner

import (
	"math"

	"github.com/invtrack/receipt-scan/constants"
	"github.com/invtrack/receipt-scan/internal/extract"
)

// postProcess applies the confidence policy in a fixed order: clamp to
// [0,1], cap for unknown formats, recompute the review flag, truncate to
// the product limit, then aggregate. Returns the trimmed slice and the
// mean confidence (0 for an empty scan).
func (s *Scanner) postProcess(products []*extract.Product, format constants.FormatType) ([]*extract.Product, float64) {
	for _, p := range products {
		p.Confidence = clamp01(p.Confidence)
		if format == constants.FormatUnknown && p.Confidence > s.cfg.UnknownFormatCap {
			p.Confidence = s.cfg.UnknownFormatCap
		}
		if p.Confidence < s.cfg.ReviewThreshold {
			p.NeedsReview = true
		}
	}

	if len(products) > s.cfg.MaxProducts {
		s.log.Warn("scanner.postprocess.truncated",
			"extracted", len(products), "limit", s.cfg.MaxProducts)
		products = products[:s.cfg.MaxProducts]
	}

	if len(products) == 0 {
		return products, 0
	}
	var sum float64
	for _, p := range products {
		sum += p.Confidence
	}
	return products, sum / float64(len(products))
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
