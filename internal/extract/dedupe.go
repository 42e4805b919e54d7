package extract

import (
	"strings"
)

// Dedupe removes products whose cleaned name already appeared earlier in
// the list, comparing case-insensitively. First occurrence wins; original
// order is preserved.
func Dedupe(products []*Product) []*Product {
	seen := make(map[string]struct{}, len(products))
	out := make([]*Product, 0, len(products))
	for _, p := range products {
		key := strings.ToLower(strings.TrimSpace(p.Name))
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}
