package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeparateProductCode(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantName string
		wantCode string
	}{
		{"hsn leading", "1234 Maggi Noodles", "Maggi Noodles", "1234"},
		{"hsn trailing", "Maggi Noodles 1234", "Maggi Noodles", "1234"},
		{"eight digit hsn", "12345678 Salt 1kg", "Salt 1kg", "12345678"},
		{"long barcode trailing", "Parle-G Biscuit 890123456789", "Parle-G Biscuit", "890123456789"},
		{"sku with hyphen leading", "AB-123 Sunflower Oil", "Sunflower Oil", "AB-123"},
		{"sku trailing", "Detergent Bar X99", "Detergent Bar", "X99"},
		{"no code", "Basmati Rice", "Basmati Rice", ""},
		{"letters only token kept", "Tata Salt", "Tata Salt", ""},
		{"mid-name token left alone", "Rice 5kg Premium", "Rice 5kg Premium", ""},
		{"code only", "1234", "1234", ""},
		{"whitespace only", "   ", "", ""},
		{"empty", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, code := SeparateProductCode(tt.raw)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestSeparateProductCodeThreeDigitsIsNotHSN(t *testing.T) {
	// Three digits is below the HSN minimum but still an alphanumeric
	// token with a digit, so the SKU pattern picks it up.
	name, code := SeparateProductCode("123 Sugar")
	assert.Equal(t, "Sugar", name)
	assert.Equal(t, "123", code)
}
