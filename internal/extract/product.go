package extract

import (
	"github.com/google/uuid"

	"github.com/invtrack/receipt-scan/internal/receipt"
)

// FieldConfidences carries the per-field OCR confidences that fed the
// overall product confidence.
type FieldConfidences struct {
	Name      float64 `json:"name"`
	Quantity  float64 `json:"quantity"`
	NetAmount float64 `json:"net_amount"`
}

// CatalogMatch records the best catalog candidate for a product. Attached
// for reference even when the similarity was too low to enrich.
type CatalogMatch struct {
	ProductID  string  `json:"product_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Brand      string  `json:"brand,omitempty"`
	Similarity float64 `json:"similarity"`
}

// Product is the terminal entity of a scan: one extracted line item.
// OriginalName and OriginalText preserve the verbatim OCR text for audit
// and are never cleaned. Created once by the row extractor or the fallback
// path; after the orchestrator's confidence post-processing it is immutable.
type Product struct {
	ID               string               `json:"id"`
	Name             string               `json:"name"`
	OriginalName     string               `json:"original_name"`
	OriginalText     string               `json:"original_text"`
	Quantity         float64              `json:"quantity"`
	NetAmount        float64              `json:"net_amount"`
	UnitPrice        *float64             `json:"unit_price"`
	MRP              *float64             `json:"mrp,omitempty"`
	HSNCode          string               `json:"hsn_code,omitempty"`
	Brand            string               `json:"brand,omitempty"`
	Confidence       float64              `json:"confidence"`
	NeedsReview      bool                 `json:"needs_review"`
	FieldConfidences FieldConfidences     `json:"field_confidences"`
	BoundingBox      *receipt.BoundingBox `json:"bounding_box,omitempty"`
	CatalogMatch     *CatalogMatch        `json:"catalog_match,omitempty"`
}

// NewProductID mints an opaque unique product token.
func NewProductID() string {
	return uuid.New().String()
}
