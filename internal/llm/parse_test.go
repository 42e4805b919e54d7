package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFallbackResponseObject(t *testing.T) {
	resp, err := ParseFallbackResponse(`{"imageType": "name_list", "products": [
		{"name": "Maggi Noodles", "price": 0, "quantity": 1, "unit": "", "confidence": 0.5},
		{"name": "Tata Salt"}
	]}`)

	require.NoError(t, err)
	assert.Equal(t, "name_list", resp.ImageType)
	require.Len(t, resp.Products, 2)
	assert.Equal(t, "Maggi Noodles", resp.Products[0].Name)
	assert.Equal(t, "Tata Salt", resp.Products[1].Name)
}

func TestParseFallbackResponseMarkdownFence(t *testing.T) {
	text := "```json\n" + `{"imageType": "name_list", "products": [{"name": "Soap"}]}` + "\n```"
	resp, err := ParseFallbackResponse(text)
	require.NoError(t, err)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "Soap", resp.Products[0].Name)
}

func TestParseFallbackResponseSurroundingChatter(t *testing.T) {
	text := "Sure! Here is the list you asked for:\n" +
		`{"imageType": "name_list", "products": [{"name": "Shampoo"}]}` +
		"\nLet me know if you need anything else."
	resp, err := ParseFallbackResponse(text)
	require.NoError(t, err)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "Shampoo", resp.Products[0].Name)
}

func TestParseFallbackResponseBareStringArray(t *testing.T) {
	resp, err := ParseFallbackResponse(`["Maggi Noodles", "  ", "Tata Salt"]`)
	require.NoError(t, err)
	require.Len(t, resp.Products, 2)
	assert.Equal(t, "Maggi Noodles", resp.Products[0].Name)
	assert.Equal(t, "Tata Salt", resp.Products[1].Name)
}

func TestParseFallbackResponseBareProductArray(t *testing.T) {
	resp, err := ParseFallbackResponse(`[{"name": "Sugar", "quantity": 2}]`)
	require.NoError(t, err)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "Sugar", resp.Products[0].Name)
	assert.Equal(t, 2.0, resp.Products[0].Quantity)
}

func TestParseFallbackResponseFailures(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"no json", "I could not read the image, sorry."},
		{"truncated object", `{"imageType": "name_list", "products": [`},
		{"missing products key", `{"imageType": "name_list"}`},
		{"product without name", `{"products": [{"price": 10}]}`},
		{"empty name", `{"products": [{"name": ""}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFallbackResponse(tt.text)
			assert.Error(t, err)
		})
	}
}

func TestBuildNameListPrompt(t *testing.T) {
	prompt := BuildNameListPrompt([]string{"Maggi 2", "Salt 1"})

	assert.Contains(t, prompt, `"imageType"`)
	assert.Contains(t, prompt, "Maggi 2")
	assert.Contains(t, prompt, "Salt 1")
	// OCR text goes last so instructions cannot be drowned out.
	assert.True(t, strings.Index(prompt, "Rules:") < strings.Index(prompt, "Maggi 2"))
}
