// Package catalog enriches scanned products with known catalog entries
// matched by fuzzy name similarity.
package catalog

import "context"

// Product is one catalog entry.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	Brand       string  `json:"brand,omitempty"`
	Category    string  `json:"category,omitempty"`
}

// Store lists the catalog entries eligible for matching.
type Store interface {
	ListActiveProducts(ctx context.Context) ([]Product, error)
}
