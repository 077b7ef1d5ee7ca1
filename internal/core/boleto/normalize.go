package boleto

import (
	"sort"
	"strings"
)

// Normalizer replaces glyphs OCR confuses with digits. It is only ever
// applied to substrings already isolated as numeric or date candidates.
type Normalizer struct {
	replacer *strings.Replacer
}

// NewNormalizer builds a Normalizer from a digit -> glyphs table.
func NewNormalizer(table map[string][]string) *Normalizer {
	digits := make([]string, 0, len(table))
	for d := range table {
		digits = append(digits, d)
	}
	sort.Strings(digits)

	var pairs []string
	for _, d := range digits {
		for _, g := range table[d] {
			pairs = append(pairs, g, d)
		}
	}
	return &Normalizer{replacer: strings.NewReplacer(pairs...)}
}

// Apply returns s with every confusable glyph replaced by its digit.
// Replacements are digits and never glyphs, so Apply is idempotent.
func (n *Normalizer) Apply(s string) string {
	if n == nil || s == "" {
		return s
	}
	return n.replacer.Replace(s)
}

// Normalize applies the default noise table.
func Normalize(s string) string {
	return Default().Normalize(s)
}
