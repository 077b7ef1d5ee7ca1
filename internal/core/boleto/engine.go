package boleto

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"
)

// Engine extracts boleto fields from a plain-text layer. It holds only
// compiled, read-only specs and is safe for concurrent use.
type Engine struct {
	fields    []compiledField
	byName    map[string]int
	norm      *Normalizer
	maxAmount float64
	logger    *slog.Logger
	schema    schemaCache

	fingerprint string
}

type compiledField struct {
	name     string
	kind     Kind
	rules    []compiledRule
	fallback *Fallback
}

// NewEngine compiles spec. A nil spec means the embedded defaults.
func NewEngine(spec *Spec, logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if spec == nil {
		var err error
		if spec, err = DefaultSpec(); err != nil {
			return nil, err
		}
	} else if err := spec.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		byName:    make(map[string]int, len(spec.Fields)),
		norm:      NewNormalizer(spec.Noise),
		maxAmount: spec.MaxAmount,
		logger:    logger,

		fingerprint: spec.Fingerprint(),
	}
	for _, fs := range spec.Fields {
		cf := compiledField{name: fs.Name, kind: fs.Kind, fallback: fs.Fallback}
		for i, r := range fs.Rules {
			cr, err := compileRule(fs.Kind, r)
			if err != nil {
				return nil, specError("field %s rule %d: %v", fs.Name, i, err)
			}
			cf.rules = append(cf.rules, cr)
		}
		e.byName[fs.Name] = len(e.fields)
		e.fields = append(e.fields, cf)
	}
	return e, nil
}

var defaultEngine = sync.OnceValue(func() *Engine {
	e, err := NewEngine(nil, nil)
	if err != nil {
		panic(fmt.Sprintf("boleto: embedded field specs are invalid: %v", err))
	}
	return e
})

// Fingerprint identifies the field specs the engine was built from.
func (e *Engine) Fingerprint() string {
	return e.fingerprint
}

// Default returns the engine built from the embedded field specs.
func Default() *Engine {
	return defaultEngine()
}

// Extract runs the default engine over text.
func Extract(text string) Result {
	return Default().Extract(text)
}

// Extract returns every declared field. Fields are independent: a miss or a
// failure in one never affects the others.
func (e *Engine) Extract(text string) Result {
	text = prepare(text)

	var res Result
	for i := range e.fields {
		res.set(e.fields[i].name, e.extractField(&e.fields[i], text))
	}
	for i := range e.fields {
		f := &e.fields[i]
		if f.fallback == nil {
			continue
		}
		v := res.Get(f.name)
		if v.IsNull() || (f.fallback.WhenZero && v.Number != nil && *v.Number == 0) {
			res.set(f.name, res.Get(f.fallback.Field))
		}
	}
	return res
}

// ExtractField runs a single field's cascade, without fallbacks.
func (e *Engine) ExtractField(name, text string) Value {
	i, ok := e.byName[name]
	if !ok {
		return Value{}
	}
	return e.extractField(&e.fields[i], prepare(text))
}

// Normalize applies the engine's noise table.
func (e *Engine) Normalize(s string) string {
	return e.norm.Apply(s)
}

// MaxAmount returns the configured sanity bound for amounts.
func (e *Engine) MaxAmount() float64 {
	return e.maxAmount
}

func (e *Engine) extractField(f *compiledField, text string) (v Value) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("field extraction panicked", "field", f.name, "panic", r)
			v = Value{}
		}
	}()

	for i, rule := range f.rules {
		raw, ok := rule.locate(text)
		if !ok {
			continue
		}
		if v = e.convert(f.kind, raw); !v.IsNull() {
			return v
		}
		e.logger.Debug("located value did not parse", "field", f.name, "rule", i, "raw", raw)
	}
	e.logger.Debug("field not found", "field", f.name)
	return Value{}
}

func (e *Engine) convert(kind Kind, raw string) Value {
	switch kind {
	case KindDate:
		return Value{String: e.ParseDate(raw)}
	case KindCurrency:
		return Value{Number: e.ParseCurrency(raw)}
	case KindDigits:
		return stringValue(onlyDigits(raw))
	default:
		return stringValue(strings.TrimSpace(raw))
	}
}

func stringValue(s string) Value {
	if s == "" {
		return Value{}
	}
	return Value{String: &s}
}

func prepare(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return norm.NFC.String(text)
}
