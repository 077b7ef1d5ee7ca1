package common

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ValidationError represents validation failures
type ValidationError struct {
	Field   string
	Value   interface{}
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s' with value '%v': %s", e.Field, display(e.Value), e.Message)
}

// Validator provides validation utilities
type Validator struct {
	errors []ValidationError
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		errors: make([]ValidationError, 0),
	}
}

// Field validates a field and collects errors. Rules after the first failing
// one still run; callers that want short-circuiting pass a single rule.
func (v *Validator) Field(fieldName string, value interface{}, rules ...ValidationRule) *Validator {
	for _, rule := range rules {
		if err := rule(fieldName, value); err != nil {
			v.errors = append(v.errors, *err)
		}
	}
	return v
}

// HasErrors returns true if there are validation errors
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns all validation errors
func (v *Validator) Errors() []ValidationError {
	return v.errors
}

// Error returns a combined error, wrapping ErrValidation.
func (v *Validator) Error() error {
	if !v.HasErrors() {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrValidation, v.ErrorMessage())
}

// ErrorMessage returns a combined error message as string
func (v *Validator) ErrorMessage() string {
	if !v.HasErrors() {
		return ""
	}

	var messages []string
	for _, err := range v.errors {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

// ValidationRule represents a single validation rule
type ValidationRule func(fieldName string, value interface{}) *ValidationError

// Coded returns rule with its failures tagged by code.
func Coded(code string, rule ValidationRule) ValidationRule {
	return func(fieldName string, value interface{}) *ValidationError {
		err := rule(fieldName, value)
		if err != nil {
			err.Code = code
		}
		return err
	}
}

// Required - Common validation rules
func Required(fieldName string, value interface{}) *ValidationError {
	if value == nil {
		return &ValidationError{Field: fieldName, Value: value, Message: "is required"}
	}

	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return &ValidationError{Field: fieldName, Value: value, Message: "is required"}
		}
	case *string:
		if v == nil || strings.TrimSpace(*v) == "" {
			return &ValidationError{Field: fieldName, Value: value, Message: "is required"}
		}
	case *float64:
		if v == nil {
			return &ValidationError{Field: fieldName, Value: value, Message: "is required"}
		}
	}
	return nil
}

// NonZero fails on a present amount equal to zero. Missing values pass; pair
// it with Required when absence matters.
func NonZero(fieldName string, value interface{}) *ValidationError {
	f, ok := value.(*float64)
	if !ok || f == nil {
		return nil
	}
	if *f == 0 {
		return &ValidationError{Field: fieldName, Value: value, Message: "must not be zero"}
	}
	return nil
}

// DigitCount checks that a present string holds only digits and has one of the given lengths.
func DigitCount(lengths ...int) ValidationRule {
	return func(fieldName string, value interface{}) *ValidationError {
		str, ok := stringValue(value)
		if !ok {
			return nil
		}
		for _, r := range str {
			if !unicode.IsDigit(r) {
				return &ValidationError{Field: fieldName, Value: value, Message: "must contain only digits"}
			}
		}
		for _, n := range lengths {
			if len(str) == n {
				return nil
			}
		}
		return &ValidationError{
			Field:   fieldName,
			Value:   value,
			Message: fmt.Sprintf("must have %s digits", joinInts(lengths)),
		}
	}
}

func stringValue(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case *string:
		if v == nil {
			return "", false
		}
		return *v, true
	}
	return "", false
}

func display(value interface{}) interface{} {
	switch v := value.(type) {
	case *string:
		if v == nil {
			return "<nil>"
		}
		return *v
	case *float64:
		if v == nil {
			return "<nil>"
		}
		return *v
	}
	return value
}

func joinInts(ns []int) string {
	parts := make([]string, 0, len(ns))
	for _, n := range ns {
		parts = append(parts, fmt.Sprint(n))
	}
	return strings.Join(parts, " or ")
}

// IsValidationError reports whether err wraps ErrValidation.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}
