package boleto

import (
	"regexp"
	"strconv"
)

var reDate = regexp.MustCompile(`(\d{2})[/\s.Il]?(\d{2})[/\s.Il]?(\d{4})`)

// ParseDate parses a day/month/year candidate with the default engine.
func ParseDate(raw string) *string {
	return Default().ParseDate(raw)
}

// ParseDate returns the first dd/mm/yyyy triple in raw as YYYY-MM-DD.
// Separators may be "/", whitespace, ".", or the OCR artefacts "I" and "l".
// The raw string is tried before its normalized form so that those
// artefacts are still read as separators. Day and month are range checked
// only; 31/02 is accepted.
func (e *Engine) ParseDate(raw string) *string {
	if raw == "" {
		return nil
	}
	for _, candidate := range []string{raw, e.norm.Apply(raw)} {
		m := reDate.FindStringSubmatch(candidate)
		if m == nil {
			continue
		}
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if day < 1 || day > 31 || month < 1 || month > 12 {
			return nil
		}
		out := m[3] + "-" + m[2] + "-" + m[1]
		return &out
	}
	return nil
}
