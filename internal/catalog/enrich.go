package catalog

import (
	"log/slog"

	"github.com/invtrack/receipt-scan/internal/extract"
)

// Enrich attaches the best catalog candidate to every product. The match
// is recorded regardless of score so callers can audit near misses; when
// the similarity clears the threshold the catalog price and brand
// overwrite the scanned values, which on receipts are the less reliable
// side of the comparison.
func Enrich(products []*extract.Product, items []Product, threshold float64, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	if len(items) == 0 {
		return
	}

	matched := 0
	for _, p := range products {
		best, score := bestMatch(p.Name, items)
		if best == nil || score <= 0 {
			continue
		}
		p.CatalogMatch = &extract.CatalogMatch{
			ProductID:  best.ID,
			Name:       best.Name,
			Price:      best.Price,
			Brand:      best.Brand,
			Similarity: score,
		}
		if score < threshold {
			continue
		}
		matched++
		price := best.Price
		p.UnitPrice = &price
		if best.Brand != "" {
			p.Brand = best.Brand
		}
	}
	logger.Info("catalog.enrich.done",
		"products", len(products),
		"catalog_items", len(items),
		"matched", matched,
	)
}
