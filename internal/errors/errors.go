// Package errors provides the error taxonomy for the pricing engine.
package errors

import (
	"fmt"
	"sort"
	"strings"
)

// Type identifies the category of error
type Type string

const (
	// TypeValidation indicates a malformed or out-of-range request field
	TypeValidation Type = "VALIDATION_ERROR"

	// TypeUnknownService indicates a service type absent from the rate table
	TypeUnknownService Type = "UNKNOWN_SERVICE"

	// TypeCalculation wraps an unexpected internal failure during a quote
	TypeCalculation Type = "CALCULATION_ERROR"

	// TypeConfig indicates a configuration error
	TypeConfig Type = "CONFIG_ERROR"

	// TypeNetwork indicates an external dependency failure. Never escapes the
	// engine; absorbed by the degraded-dependency policy.
	TypeNetwork Type = "NETWORK_ERROR"
)

// Error represents a domain error with context
type Error struct {
	Type    Type              `json:"type"`
	Message string            `json:"message"`
	Cause   error             `json:"-"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("[%s] %s: %s", e.Type, e.Message, e.fieldSummary())
	}
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) fieldSummary() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return strings.Join(parts, "; ")
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{Type: errType, Message: message}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{Type: errType, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{Type: errType, Message: message, Cause: cause}
}

// Validation creates a validation error carrying per-field messages
func Validation(fields map[string]string) *Error {
	return &Error{
		Type:    TypeValidation,
		Message: "invalid pricing request",
		Fields:  fields,
	}
}

// UnknownService creates an unknown-service error. Treated as a
// validation-class failure by callers.
func UnknownService(serviceType string) *Error {
	return Newf(TypeUnknownService, "unknown service type: %s", serviceType)
}

// Calculation wraps an unexpected internal failure
func Calculation(message string, cause error) *Error {
	return Wrap(TypeCalculation, message, cause)
}

// IsType checks if an error is of a specific type
func IsType(err error, t Type) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == t
	}
	return false
}

// IsValidationClass reports whether the error should be treated as bad input
// rather than a system problem (HTTP 400 vs 500 at the API layer).
func IsValidationClass(err error) bool {
	return IsType(err, TypeValidation) || IsType(err, TypeUnknownService)
}
