package catalog

import (
	"strings"

	"github.com/agext/levenshtein"
)

// containmentScore is awarded when one normalized name fully contains the
// other, which edit distance alone underrates for short names inside long
// descriptions.
const containmentScore = 0.85

// Similarity scores two product names in [0,1]. Case and surrounding
// whitespace are ignored.
func Similarity(a, b string) float64 {
	a = normalizeName(a)
	b = normalizeName(b)
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	score := levenshtein.Match(a, b, nil)
	if (strings.Contains(a, b) || strings.Contains(b, a)) && score < containmentScore {
		score = containmentScore
	}
	return score
}

func normalizeName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// bestMatch returns the highest-scoring catalog entry, or nil for an
// empty catalog.
func bestMatch(name string, items []Product) (*Product, float64) {
	var best *Product
	bestScore := 0.0
	for i := range items {
		if s := Similarity(name, items[i].Name); s > bestScore {
			best = &items[i]
			bestScore = s
		}
	}
	return best, bestScore
}
