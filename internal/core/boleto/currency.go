package boleto

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// DefaultMaxAmount is the sanity bound used when no spec overrides it.
const DefaultMaxAmount = 99_999_999.00

var reCurrencyMarker = regexp.MustCompile(`(?i)R\$`)

// ParseCurrency parses a Brazilian or international amount with the default engine.
func ParseCurrency(raw string) *float64 {
	return Default().ParseCurrency(raw)
}

// ParseCurrency turns a located amount into a number rounded to cents.
// The separator convention is resolved in this order:
//  1. both "," and "." present: the later one is the decimal separator;
//  2. only ",": decimal when exactly two digits follow the last one;
//  3. only ".": decimal when exactly two digits follow the last one.
//
// Anything else is a thousands separator and dropped. Values above the
// configured maximum are rejected as misreads.
func (e *Engine) ParseCurrency(raw string) *float64 {
	s := strings.TrimSpace(reCurrencyMarker.ReplaceAllString(raw, ""))
	if !strings.ContainsAny(s, "0123456789") {
		return nil
	}
	s = keepNumeric(e.norm.Apply(s))

	lastComma := strings.LastIndexByte(s, ',')
	lastDot := strings.LastIndexByte(s, '.')
	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			s = decimalAt(strings.ReplaceAll(s, ".", ""), ',')
		} else {
			s = decimalAt(strings.ReplaceAll(s, ",", ""), '.')
		}
	case lastComma >= 0:
		if len(s)-lastComma-1 == 2 {
			s = decimalAt(s, ',')
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastDot >= 0:
		if len(s)-lastDot-1 == 2 {
			s = decimalAt(s, '.')
		} else {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	v = math.Round(v*100) / 100
	if v > e.maxAmount {
		return nil
	}
	return &v
}

// decimalAt keeps the last sep as the decimal point and drops the others.
func decimalAt(s string, sep byte) string {
	i := strings.LastIndexByte(s, sep)
	if i < 0 {
		return s
	}
	head := strings.ReplaceAll(s[:i], string(sep), "")
	return head + "." + s[i+1:]
}

func keepNumeric(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= '0' && c <= '9') || c == '.' || c == ',' {
			b.WriteByte(c)
		}
	}
	return b.String()
}
