package boleto

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dimviana/Gestor-de-Boleto/internal/common"
)

//go:embed fields.yaml
var defaultSpecYAML []byte

// Kind selects the value parser applied to a located raw string.
type Kind string

const (
	KindText     Kind = "text"
	KindDate     Kind = "date"
	KindCurrency Kind = "currency"
	KindCode     Kind = "code"
	KindDigits   Kind = "digits"
)

// Strategy selects how a rule locates its raw value.
type Strategy string

const (
	// StrategyBlock captures everything after a label up to the first stop marker.
	StrategyBlock Strategy = "block"
	// StrategySameLine captures a value shape right after a label.
	StrategySameLine Strategy = "same_line"
	// StrategyPattern matches a bare pattern anywhere in the text.
	StrategyPattern Strategy = "pattern"
)

// MatchPolicy picks which occurrence wins when a rule matches more than once.
type MatchPolicy string

const (
	MatchFirst MatchPolicy = "first"
	MatchLast  MatchPolicy = "last"
)

// Gap describes what may sit between a label and its value.
type Gap string

const (
	GapSameLine   Gap = "same_line"
	GapNextLine   Gap = "next_line"
	GapUnbounded  Gap = "unbounded"
	GapSeparators Gap = "separators"
)

var gapExpr = map[Gap]string{
	GapSameLine:   `[^\d\n]*`,
	GapNextLine:   `[^\d\n]*\n?[^\d\n]*`,
	GapUnbounded:  `[^\d]*`,
	GapSeparators: `[\s.:]*`,
}

// value shapes per kind for same_line rules without an explicit value
var defaultValue = map[Kind]string{
	KindDate:     `\d{2}[/\s.Il]?\d{2}[/\s.Il]?\d{4}`,
	KindCurrency: `(?:R\$\s*)?[\d.,]+`,
	KindCode:     `[^\s.:]\S*`,
}

var defaultGap = map[Kind]Gap{
	KindDate:     GapSameLine,
	KindCurrency: GapUnbounded,
	KindCode:     GapSeparators,
	KindText:     GapSameLine,
	KindDigits:   GapSeparators,
}

// Rule is one step of a field's cascade.
type Rule struct {
	Strategy Strategy    `yaml:"strategy"`
	Match    MatchPolicy `yaml:"match"`
	Labels   []string    `yaml:"labels"`
	Stops    []string    `yaml:"stops"`
	Gap      Gap         `yaml:"gap"`
	Value    string      `yaml:"value"`
	Pattern  string      `yaml:"pattern"`
}

// Fallback copies another field's value when this one is missing.
type Fallback struct {
	Field    string `yaml:"field"`
	WhenZero bool   `yaml:"when_zero"`
}

// FieldSpec declares how one output field is found and parsed.
type FieldSpec struct {
	Name     string    `yaml:"name"`
	Kind     Kind      `yaml:"kind"`
	Rules    []Rule    `yaml:"rules"`
	Fallback *Fallback `yaml:"fallback"`
}

// Spec is the full, declarative engine configuration.
type Spec struct {
	MaxAmount float64             `yaml:"max_amount"`
	Noise     map[string][]string `yaml:"noise"`
	Fields    []FieldSpec         `yaml:"fields"`
}

// DefaultSpec returns the embedded field specs.
func DefaultSpec() (*Spec, error) {
	return ParseSpec(defaultSpecYAML)
}

// LoadSpecFile reads field specs from a YAML file on disk.
func LoadSpecFile(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read field specs %s: %w", path, err)
	}
	return ParseSpec(data)
}

// ParseSpec decodes and validates YAML field specs.
func ParseSpec(data []byte) (*Spec, error) {
	var s Spec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, common.NewAppError(common.CodeSpec, "decode field specs", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Fingerprint identifies the spec by content: equal specs share it no matter
// how their source YAML was formatted.
func (s *Spec) Fingerprint() string {
	data, err := yaml.Marshal(s)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}

// Validate checks that the spec declares exactly the output fields and that
// every rule is well formed.
func (s *Spec) Validate() error {
	if s.MaxAmount <= 0 {
		return specError("max_amount must be positive")
	}
	for digit, glyphs := range s.Noise {
		if len(digit) != 1 || digit[0] < '0' || digit[0] > '9' {
			return specError("noise key %q is not a single digit", digit)
		}
		for _, g := range glyphs {
			if g == "" || strings.ContainsAny(g, "0123456789") {
				return specError("noise glyph %q for %s must be non-empty and digit-free", g, digit)
			}
		}
	}

	seen := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		if !isOutputField(f.Name) {
			return specError("unknown field %q", f.Name)
		}
		if seen[f.Name] {
			return specError("field %q declared twice", f.Name)
		}
		seen[f.Name] = true

		switch f.Kind {
		case KindText, KindDate, KindCurrency, KindCode, KindDigits:
		default:
			return specError("field %s: unknown kind %q", f.Name, f.Kind)
		}
		if len(f.Rules) == 0 {
			return specError("field %s: no rules", f.Name)
		}
		for i, r := range f.Rules {
			if err := r.validate(f.Kind); err != nil {
				return specError("field %s rule %d: %v", f.Name, i, err)
			}
		}
		if f.Fallback != nil && !isOutputField(f.Fallback.Field) {
			return specError("field %s: fallback to unknown field %q", f.Name, f.Fallback.Field)
		}
	}
	for _, name := range FieldNames {
		if !seen[name] {
			return specError("field %q is not declared", name)
		}
	}
	return nil
}

func (r Rule) validate(kind Kind) error {
	switch r.Match {
	case MatchFirst, MatchLast:
	default:
		return fmt.Errorf("match must be first or last, got %q", r.Match)
	}
	if r.Gap != "" {
		if _, ok := gapExpr[r.Gap]; !ok {
			return fmt.Errorf("unknown gap %q", r.Gap)
		}
	}

	switch r.Strategy {
	case StrategyBlock:
		if len(r.Labels) == 0 {
			return fmt.Errorf("block rule needs labels")
		}
	case StrategySameLine:
		if len(r.Labels) == 0 {
			return fmt.Errorf("same_line rule needs labels")
		}
		if r.Value == "" && defaultValue[kind] == "" {
			return fmt.Errorf("same_line rule for kind %s needs an explicit value", kind)
		}
	case StrategyPattern:
		if r.Pattern == "" {
			return fmt.Errorf("pattern rule needs a pattern")
		}
	default:
		return fmt.Errorf("unknown strategy %q", r.Strategy)
	}
	return nil
}

func specError(format string, args ...any) error {
	return common.NewAppError(common.CodeSpec, fmt.Sprintf(format, args...), common.ErrInvalidInput)
}

// compiledRule is a Rule with its regular expressions built.
type compiledRule struct {
	strategy Strategy
	match    MatchPolicy
	label    *regexp.Regexp
	stop     *regexp.Regexp
	re       *regexp.Regexp
}

func compileRule(kind Kind, r Rule) (compiledRule, error) {
	cr := compiledRule{strategy: r.Strategy, match: r.Match}
	var err error

	switch r.Strategy {
	case StrategyBlock:
		if cr.label, err = regexp.Compile(`(?i)` + alternation(r.Labels)); err != nil {
			return cr, fmt.Errorf("labels: %w", err)
		}
		if len(r.Stops) > 0 {
			if cr.stop, err = regexp.Compile(`(?i)\b` + alternation(r.Stops) + `\b`); err != nil {
				return cr, fmt.Errorf("stops: %w", err)
			}
		}
	case StrategySameLine:
		gap := r.Gap
		if gap == "" {
			gap = defaultGap[kind]
		}
		value := r.Value
		if value == "" {
			value = defaultValue[kind]
		}
		expr := `(?i)` + alternation(r.Labels) + gapExpr[gap] + `(` + value + `)`
		if cr.re, err = regexp.Compile(expr); err != nil {
			return cr, fmt.Errorf("same_line: %w", err)
		}
	case StrategyPattern:
		if cr.re, err = regexp.Compile(r.Pattern); err != nil {
			return cr, fmt.Errorf("pattern: %w", err)
		}
	}
	return cr, nil
}

func alternation(parts []string) string {
	return `(?:` + strings.Join(parts, `|`) + `)`
}
