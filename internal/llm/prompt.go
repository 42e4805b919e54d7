package llm

import (
	"strings"
)

// BuildNameListPrompt composes the fixed instructional prompt for the
// fallback tier. It assumes the hardest case, a handwritten name-only
// list, and asks for corrected product names only; prices and quantities
// from the model are never trusted.
func BuildNameListPrompt(lines []string) string {
	var b strings.Builder
	b.WriteString("You are reading OCR output from a photo of a product list, often handwritten. ")
	b.WriteString("The text below is noisy: letters may be misread and words may be split or merged. ")
	b.WriteString("Identify the product names and correct obvious OCR mistakes.\n\n")
	b.WriteString("Return ONLY valid JSON in this exact format:\n")
	b.WriteString(`{"imageType": "name_list", "products": [{"name": "Product Name", "price": 0, "quantity": 1, "unit": "", "confidence": 0.5}]}`)
	b.WriteString("\n\nRules:\n")
	b.WriteString("- One entry per distinct product; skip totals, dates, phone numbers, and greetings.\n")
	b.WriteString("- Keep names short and in their original language; fix spelling only when obvious.\n")
	b.WriteString("- Do not invent prices or quantities; leave price 0 and quantity 1.\n")
	b.WriteString("- Do not include any text before or after the JSON. Do not use markdown code blocks.\n")
	b.WriteString("\nOCR text:\n")
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString("\n")
	}
	return b.String()
}
