package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invtrack/receipt-scan/constants"
	"github.com/invtrack/receipt-scan/internal/extract"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		min  float64
		max  float64
	}{
		{"identical", "Maggi Noodles", "Maggi Noodles", 1, 1},
		{"case and spacing", "  MAGGI   noodles ", "maggi noodles", 1, 1},
		{"one typo", "Maggi Noodls", "Maggi Noodles", 0.8, 1},
		{"containment", "Salt", "Tata Salt 1kg", 0.85, 1},
		{"unrelated", "Maggi Noodles", "Sunflower Oil", 0, 0.5},
		{"empty side", "", "Maggi Noodles", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Similarity(tt.a, tt.b)
			assert.GreaterOrEqual(t, s, tt.min)
			assert.LessOrEqual(t, s, tt.max)
			assert.Equal(t, s, Similarity(tt.b, tt.a), "similarity must be symmetric")
		})
	}
}

func TestEnrich(t *testing.T) {
	items := []Product{
		{ID: "p1", Name: "Maggi Noodles", Price: 21.5, Brand: "Nestle"},
		{ID: "p2", Name: "Tata Salt", Price: 26, Brand: "Tata"},
		{ID: "p3", Name: "Sunflower Oil", Price: 180},
	}

	zero := 0.0
	scannedPrice := 19.0
	products := []*extract.Product{
		{Name: "Maggi Noodls", UnitPrice: &zero},      // typo, strong match
		{Name: "Tata Salt", UnitPrice: &scannedPrice}, // exact match, scanned price loses
		{Name: "Unrelated Thing", UnitPrice: &zero},   // weak match only
	}

	Enrich(products, items, constants.CatalogMatchThreshold, nil)

	// Strong match overwrites price and brand.
	require.NotNil(t, products[0].CatalogMatch)
	assert.Equal(t, "p1", products[0].CatalogMatch.ProductID)
	require.NotNil(t, products[0].UnitPrice)
	assert.InDelta(t, 21.5, *products[0].UnitPrice, 1e-9)
	assert.Equal(t, "Nestle", products[0].Brand)

	// The catalog price wins over the scanned one above the threshold.
	require.NotNil(t, products[1].CatalogMatch)
	assert.InDelta(t, 26.0, *products[1].UnitPrice, 1e-9)
	assert.Equal(t, "Tata", products[1].Brand)

	// Weak match is recorded for audit but does not enrich.
	if products[2].CatalogMatch != nil {
		assert.Less(t, products[2].CatalogMatch.Similarity, constants.CatalogMatchThreshold)
	}
	assert.InDelta(t, 0.0, *products[2].UnitPrice, 1e-9)
	assert.Empty(t, products[2].Brand)
}

func TestEnrichEmptyCatalog(t *testing.T) {
	products := []*extract.Product{{Name: "Maggi Noodles"}}
	Enrich(products, nil, constants.CatalogMatchThreshold, nil)
	assert.Nil(t, products[0].CatalogMatch)
}
