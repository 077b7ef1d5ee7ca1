package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInternal          = errors.New("internal error")
	ErrValidation        = errors.New("validation failed")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrTextUnavailable   = errors.New("text layer unavailable")
)

// Error codes used in AppError.Code.
const (
	CodeConfig      = "CONFIG_ERROR"
	CodeAcquisition = "TEXT_ACQUISITION_ERROR"
	CodeInput       = "INVALID_INPUT"
	CodeSpec        = "FIELD_SPEC_ERROR"
	CodeAuth        = "UNAUTHORIZED"
	CodeInternal    = "INTERNAL_ERROR"
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// AcquisitionError marks a failure to obtain the text layer of a document.
func AcquisitionError(message string, cause error) error {
	if cause == nil {
		cause = ErrTextUnavailable
	}
	return NewAppError(CodeAcquisition, message, cause)
}

// IsAcquisitionError reports whether err came from text acquisition.
func IsAcquisitionError(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code == CodeAcquisition {
		return true
	}
	return errors.Is(err, ErrTextUnavailable) || errors.Is(err, ErrUnsupportedFormat)
}

// ErrorBody is the single-object error shape written by the CLI and the HTTP API.
type ErrorBody struct {
	Error string `json:"error"`
}

// NewErrorBody renders err for callers. AppErrors expose only their message.
func NewErrorBody(err error) ErrorBody {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Cause != nil && !isSentinel(appErr.Cause) {
			return ErrorBody{Error: fmt.Sprintf("%s: %v", appErr.Message, appErr.Cause)}
		}
		return ErrorBody{Error: appErr.Message}
	}
	return ErrorBody{Error: err.Error()}
}

func isSentinel(err error) bool {
	switch err {
	case ErrNotFound, ErrInvalidInput, ErrUnauthorized, ErrInternal, ErrValidation, ErrUnsupportedFormat, ErrTextUnavailable:
		return true
	}
	return false
}
