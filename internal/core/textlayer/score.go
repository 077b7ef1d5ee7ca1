package textlayer

import (
	"regexp"
	"strings"
)

var (
	reScoreDate     = regexp.MustCompile(`\b\d{2}/\d{2}/\d{4}\b`)
	reScoreAmount   = regexp.MustCompile(`\b\d{1,3}(\.\d{3})*,\d{2}\b`)
	reScoreLine     = regexp.MustCompile(`\d{5}\.\d{5}|\d{44,48}`)
	reScoreLabels   = regexp.MustCompile(`(?i)vencimento|benefici[áa]rio|cedente|pagador|sacado|nosso n[úu]mero`)
	reScoreCurrency = regexp.MustCompile(`R\$`)
)

// Score is a naive 0..1 signal of how much a text layer looks like a boleto.
// It is logged for diagnostics and never gates extraction.
func Score(txt string) float32 {
	if strings.TrimSpace(txt) == "" {
		return 0
	}
	score := float32(0.1) // base
	if reScoreLabels.MatchString(txt) {
		score += 0.3
	}
	if reScoreLine.MatchString(txt) {
		score += 0.25
	}
	if reScoreDate.MatchString(txt) {
		score += 0.15
	}
	if reScoreAmount.MatchString(txt) || reScoreCurrency.MatchString(txt) {
		score += 0.1
	}
	if len(txt) > 300 {
		score += 0.1
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}
