package parser

import (
	"errors"
	"fmt"

	"integrity-gateway/internal/model"
)

// Parser converts the raw payload of one source into a Table. A parser is
// total per call: it either returns a complete table or fails with a
// FormatError. Parsers never keep a reference to the payload.
type Parser interface {
	// Kind returns the source kind this parser handles
	Kind() model.SourceKind

	// Parse converts payload bytes into a table. name is the source display
	// name, used only for error reporting.
	Parse(payload []byte, name string) (*model.Table, error)
}

// FormatError indicates that a source's bytes do not conform to its declared
// kind. The dispatcher recovers from it by skipping the offending source.
type FormatError struct {
	Kind   model.SourceKind
	Source string
	Reason string
	Cause  error
}

func (e *FormatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s source %q: %s: %v", e.Kind, e.Source, e.Reason, e.Cause)
	}
	return fmt.Sprintf("%s source %q: %s", e.Kind, e.Source, e.Reason)
}

func (e *FormatError) Unwrap() error {
	return e.Cause
}

// NewFormatError creates a FormatError for the given source.
func NewFormatError(kind model.SourceKind, source, reason string, cause error) *FormatError {
	return &FormatError{
		Kind:   kind,
		Source: source,
		Reason: reason,
		Cause:  cause,
	}
}

// AsFormatError unwraps err into a FormatError if possible.
func AsFormatError(err error) (*FormatError, bool) {
	var fe *FormatError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
