package booking

import "fmt"

// ParseError reports a representation that could not be decoded.
type ParseError struct {
	Format Format
	Err    error
}

// NewParseError creates a ParseError.
func NewParseError(format Format, err error) *ParseError {
	return &ParseError{Format: format, Err: err}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed %s payload: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaMismatchError reports a payload whose structure does not match the booking schema.
type SchemaMismatchError struct {
	Field  string
	Reason string
}

// NewSchemaMismatchError creates a SchemaMismatchError for the given field.
func NewSchemaMismatchError(field, reason string) *SchemaMismatchError {
	return &SchemaMismatchError{Field: field, Reason: reason}
}

func (e *SchemaMismatchError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("schema mismatch: %s", e.Reason)
	}
	return fmt.Sprintf("schema mismatch on %s: %s", e.Field, e.Reason)
}

// AssertionFailure reports a value mismatch between an expected and an actual booking.
type AssertionFailure struct {
	Field    string
	Expected any
	Actual   any
}

// NewAssertionFailure creates an AssertionFailure.
func NewAssertionFailure(field string, expected, actual any) *AssertionFailure {
	return &AssertionFailure{Field: field, Expected: expected, Actual: actual}
}

func (e *AssertionFailure) Error() string {
	return fmt.Sprintf("field %s: expected %v (%T), got %v (%T)", e.Field, e.Expected, e.Expected, e.Actual, e.Actual)
}

// PreconditionError reports an attempt to read a booking out of a response
// that was not a success.
type PreconditionError struct {
	Status int
	Kind   string
}

// NewPreconditionError creates a PreconditionError.
func NewPreconditionError(kind string, status int) *PreconditionError {
	return &PreconditionError{Kind: kind, Status: status}
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("cannot normalize %s response (status %d)", e.Kind, e.Status)
}
