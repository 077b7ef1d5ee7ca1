package boleto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/dimviana/Gestor-de-Boleto/internal/common"
)

// BuildResultJSONSchema returns a JSON-Schema (draft 2020-12 subset) for the
// extraction record as a generic map. Every key is required and nullable.
func BuildResultJSONSchema(maxAmount float64) map[string]any {
	text := nullable(map[string]any{"type": "string", "minLength": 1})
	date := nullable(map[string]any{"type": "string", "pattern": `^\d{4}-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])$`})
	amount := func() map[string]any {
		return nullable(map[string]any{"type": "number", "minimum": 0, "maximum": maxAmount})
	}

	props := map[string]any{
		FieldRecipient:        text,
		FieldDrawee:           text,
		FieldDocumentDate:     date,
		FieldDueDate:          date,
		FieldDocumentAmount:   amount(),
		FieldAmount:           amount(),
		FieldDiscount:         amount(),
		FieldInterestAndFines: amount(),
		FieldBarcode:          nullable(map[string]any{"type": "string", "pattern": `^\d{44,48}$`}),
		FieldGuideNumber:      text,
		FieldPixQrCodeText:    nullable(map[string]any{"type": "string", "pattern": `^000201`, "minLength": 106}),
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             FieldNames,
	}
}

func nullable(schema map[string]any) map[string]any {
	return map[string]any{"anyOf": []any{schema, map[string]any{"type": "null"}}}
}

type schemaCache struct {
	once   sync.Once
	schema *jsonschema.Schema
	err    error
}

// ValidateJSON checks a serialized record against the result schema for this
// engine's amount bound.
func (e *Engine) ValidateJSON(data []byte) error {
	e.schema.once.Do(func() {
		e.schema.schema, e.schema.err = compileSchema(BuildResultJSONSchema(e.maxAmount))
	})
	if e.schema.err != nil {
		return e.schema.err
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w: not a JSON record: %v", common.ErrValidation, err)
	}
	if err := e.schema.schema.Validate(v); err != nil {
		return fmt.Errorf("%w: record does not match schema: %v", common.ErrValidation, err)
	}
	return nil
}

// Validate serializes r and validates it against the result schema.
func (e *Engine) Validate(r Result) error {
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	return e.ValidateJSON(b)
}

func compileSchema(schemaMap map[string]any) (*jsonschema.Schema, error) {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("result.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("result.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}
