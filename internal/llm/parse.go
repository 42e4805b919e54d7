package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invtrack/receipt-scan/internal/schema"
)

// FallbackProduct is one product as reported by the model. Only the name is
// trusted downstream; price/quantity/confidence are advisory at best.
type FallbackProduct struct {
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   float64 `json:"quantity"`
	Unit       string  `json:"unit,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

// FallbackResponse is the JSON object shape requested by the fallback prompt.
type FallbackResponse struct {
	ImageType string            `json:"imageType"`
	Products  []FallbackProduct `json:"products"`
}

// ParseFallbackResponse parses the model's response text. Accepts either
// the requested object shape or, for the name-cleanup variant, a bare JSON
// array of strings. Markdown fences and surrounding chatter are tolerated;
// anything else fails so callers can degrade to raw-line extraction.
func ParseFallbackResponse(text string) (*FallbackResponse, error) {
	body := extractJSON(text)
	if body == "" {
		return nil, fmt.Errorf("no JSON payload found in response")
	}

	if strings.HasPrefix(body, "[") {
		var names []string
		if err := json.Unmarshal([]byte(body), &names); err == nil {
			resp := &FallbackResponse{ImageType: "name_list"}
			for _, n := range names {
				if strings.TrimSpace(n) == "" {
					continue
				}
				resp.Products = append(resp.Products, FallbackProduct{Name: strings.TrimSpace(n)})
			}
			return resp, nil
		}
		var products []FallbackProduct
		if err := json.Unmarshal([]byte(body), &products); err != nil {
			return nil, fmt.Errorf("unmarshal product array: %w", err)
		}
		return &FallbackResponse{ImageType: "name_list", Products: products}, nil
	}

	if err := schema.ValidateJSONAgainstSchema(fallbackSchema(), []byte(body)); err != nil {
		return nil, fmt.Errorf("fallback response rejected: %w", err)
	}
	var resp FallbackResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return nil, fmt.Errorf("unmarshal fallback response: %w", err)
	}
	return &resp, nil
}

// extractJSON strips markdown fences and slices out the outermost JSON
// object or array. Returns "" when neither is present.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	objStart := strings.Index(text, "{")
	arrStart := strings.Index(text, "[")

	if arrStart >= 0 && (objStart < 0 || arrStart < objStart) {
		end := strings.LastIndex(text, "]")
		if end > arrStart {
			return text[arrStart : end+1]
		}
		return ""
	}
	if objStart >= 0 {
		end := strings.LastIndex(text, "}")
		if end > objStart {
			return text[objStart : end+1]
		}
	}
	return ""
}

func fallbackSchema() map[string]any {
	product := map[string]any{
		"type":     "object",
		"required": []string{"name"},
		"properties": map[string]any{
			"name":       map[string]any{"type": "string", "minLength": 1},
			"price":      map[string]any{"type": "number"},
			"quantity":   map[string]any{"type": "number"},
			"unit":       map[string]any{"type": "string"},
			"confidence": map[string]any{"type": "number"},
		},
	}
	return map[string]any{
		"type":     "object",
		"required": []string{"products"},
		"properties": map[string]any{
			"imageType": map[string]any{"type": "string"},
			"products":  map[string]any{"type": "array", "items": product},
		},
	}
}
