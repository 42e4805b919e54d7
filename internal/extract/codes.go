package extract

import (
	"regexp"
	"strings"
)

// Code-separation patterns, in priority order. A code is only recognized
// when anchored at the start or end of the name and separated by
// whitespace; the first matching pattern wins.
var (
	// HSN-style numeric code, 4-8 digits.
	reHSNLead  = regexp.MustCompile(`^(\d{4,8})\s+(.+)$`)
	reHSNTrail = regexp.MustCompile(`^(.+?)\s+(\d{4,8})$`)

	// Longer purely numeric code, 5-12 digits (barcodes, article numbers).
	reNumLead  = regexp.MustCompile(`^(\d{5,12})\s+(.+)$`)
	reNumTrail = regexp.MustCompile(`^(.+?)\s+(\d{5,12})$`)

	// SKU-style alphanumeric token; must contain at least one digit,
	// verified separately since RE2 has no lookahead.
	reAlnumLead  = regexp.MustCompile(`^([A-Za-z0-9-]+)\s+(.+)$`)
	reAlnumTrail = regexp.MustCompile(`^(.+?)\s+([A-Za-z0-9-]+)$`)

	reHasDigit = regexp.MustCompile(`\d`)
)

// SeparateProductCode strips an embedded tax/product code from a raw name.
// Returns the cleaned name and the code ("" when none matched). The cleaned
// name can come back empty when the text was effectively code-only; callers
// must reject such rows.
func SeparateProductCode(raw string) (name, code string) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", ""
	}

	type pattern struct {
		re        *regexp.Regexp
		codeGroup int
		nameGroup int
	}
	patterns := []pattern{
		{reHSNLead, 1, 2},
		{reHSNTrail, 2, 1},
		{reNumLead, 1, 2},
		{reNumTrail, 2, 1},
		{reAlnumLead, 1, 2},
		{reAlnumTrail, 2, 1},
	}

	for _, p := range patterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		candidate := m[p.codeGroup]
		if !reHasDigit.MatchString(candidate) {
			continue
		}
		return strings.TrimSpace(m[p.nameGroup]), candidate
	}
	return text, ""
}
