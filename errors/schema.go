// Package errors defines the error types surfaced while loading and
// flattening IATI schemas.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode identifies a category of schema construction failure.
type ErrorCode string

const (
	// ErrSchemaLoad indicates the schema file could not be read.
	ErrSchemaLoad ErrorCode = "schema-load-failed"
	// ErrXMLParse indicates a schema document could not be parsed.
	ErrXMLParse ErrorCode = "schema-xml-parse"
	// ErrMalformedInclusion indicates an inclusion directive that cannot be
	// rewritten or resolved: a missing or truncated schemaLocation, more than
	// one inclusion at the schema root, a missing sibling import, or a nested
	// inclusion inside an included document.
	ErrMalformedInclusion ErrorCode = "schema-include-malformed"
)

// SchemaError describes a fatal error raised during schema construction.
// Construction is atomic: when a SchemaError is returned, no schema object
// exists.
type SchemaError struct {
	Code    ErrorCode
	Message string
	Path    string
	Err     error
}

// NewSchema builds a SchemaError with a code, message, and optional path.
func NewSchema(code ErrorCode, msg, path string) *SchemaError {
	return &SchemaError{Code: code, Message: msg, Path: path}
}

// NewSchemaf formats a message and builds a SchemaError.
func NewSchemaf(code ErrorCode, path, format string, args ...any) *SchemaError {
	return NewSchema(code, fmt.Sprintf(format, args...), path)
}

// WithCause attaches an underlying error for unwrapping.
func (e *SchemaError) WithCause(err error) *SchemaError {
	e.Err = err
	return e
}

// Error formats the error for display, including code, message, and context.
func (e *SchemaError) Error() string {
	if e == nil {
		return "schema error <nil>"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))
	if e.Path != "" {
		b.WriteString(fmt.Sprintf(" at %s", e.Path))
	}
	if e.Err != nil {
		b.WriteString(fmt.Sprintf(": %s", e.Err))
	}
	return b.String()
}

// Unwrap returns the underlying cause, if any.
func (e *SchemaError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// AsSchema extracts a SchemaError from err.
func AsSchema(err error) (*SchemaError, bool) {
	if err == nil {
		return nil, false
	}
	var schemaErr *SchemaError
	if errors.As(err, &schemaErr) && schemaErr != nil {
		return schemaErr, true
	}
	return nil, false
}
