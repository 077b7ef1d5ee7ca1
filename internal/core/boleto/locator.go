package boleto

import (
	"regexp"
	"strings"
)

var (
	reBlockNewline = regexp.MustCompile(`\s*\n\s*`)
	reBlockSpaces  = regexp.MustCompile(`\s{2,}`)
	reBlockDashes  = regexp.MustCompile(`[-_]+`)
)

// locate runs a rule against text and returns the raw captured value.
func (r compiledRule) locate(text string) (string, bool) {
	switch r.strategy {
	case StrategyBlock:
		return r.locateBlock(text)
	case StrategySameLine, StrategyPattern:
		return r.locateMatch(text)
	}
	return "", false
}

func (r compiledRule) locateMatch(text string) (string, bool) {
	var m []string
	if r.match == MatchLast {
		all := r.re.FindAllStringSubmatch(text, -1)
		if len(all) == 0 {
			return "", false
		}
		m = all[len(all)-1]
	} else {
		m = r.re.FindStringSubmatch(text)
		if m == nil {
			return "", false
		}
	}

	value := m[0]
	if len(m) > 1 {
		value = m[1]
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}

// locateBlock captures from the label up to the earliest stop marker, or to
// the end of the text when no stop marker follows.
func (r compiledRule) locateBlock(text string) (string, bool) {
	var loc []int
	if r.match == MatchLast {
		all := r.label.FindAllStringIndex(text, -1)
		if len(all) == 0 {
			return "", false
		}
		loc = all[len(all)-1]
	} else {
		loc = r.label.FindStringIndex(text)
		if loc == nil {
			return "", false
		}
	}

	rest := strings.TrimLeft(text[loc[1]:], " \t\r\n.:")
	if r.stop != nil {
		if stop := r.stop.FindStringIndex(rest); stop != nil {
			rest = rest[:stop[0]]
		}
	}

	value := CleanBlock(rest)
	return value, value != ""
}

// CleanBlock flattens a multi-line capture: line breaks become " / ",
// whitespace and hyphen/underscore runs become single spaces.
func CleanBlock(s string) string {
	s = strings.TrimSpace(s)
	s = reBlockNewline.ReplaceAllString(s, " / ")
	s = reBlockSpaces.ReplaceAllString(s, " ")
	s = reBlockDashes.ReplaceAllString(s, " ")
	s = reBlockSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
