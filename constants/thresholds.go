package constants

// Confidence policy constants. These are tuned values, not derived ones;
// the scanner config can override each of them per deployment.
const (
	// ReviewThreshold is the overall-confidence floor below which a
	// product is flagged for manual review.
	ReviewThreshold = 0.7

	// UnknownFormatCap bounds the confidence of every product extracted
	// from a document whose layout could not be classified.
	UnknownFormatCap = 0.5

	// SoftFieldConfidence stands in for the OCR confidence of an absent
	// quantity or net-amount cell. Missing quantity is common on receipts
	// and should not tank overall confidence as hard as a missing name.
	SoftFieldConfidence = 0.5

	// FallbackConfidence is assigned to products synthesized by the
	// generative-model fallback path, where no real price or quantity
	// was observed.
	FallbackConfidence = 0.35

	// RawLineConfidence is assigned when even the model response could
	// not be parsed and raw OCR lines are taken verbatim as names.
	RawLineConfidence = 0.3

	// DefaultMaxProducts caps the number of products returned per scan.
	DefaultMaxProducts = 50

	// CatalogMatchThreshold is the minimum name similarity for catalog
	// enrichment to overwrite extracted values.
	CatalogMatchThreshold = 0.8
)
