// Package parsererror defines the error types raised while turning raw
// statement exports into canonical rows. Row-level errors are collected and
// reported alongside the import result; structural errors abort the import.
package parsererror

import (
	"errors"
	"fmt"
)

// Causes attached to RowError. Callers distinguish rejection kinds with
// errors.Is rather than string matching.
var (
	ErrUnparsableAmount = errors.New("unparsable amount")
	ErrUnparsableDate   = errors.New("unparsable date")
)

// MissingColumnError reports that a required canonical field has no matching
// column under any of its accepted aliases. It is fatal for the whole import.
type MissingColumnError struct {
	Field string   // canonical field name, e.g. "date"
	Found []string // column names actually present in the input
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column: %s (found columns: %v)", e.Field, e.Found)
}

// RowError represents a non-fatal, row-level normalization failure. The row
// is excluded from the import and the error is reported in the result.
type RowError struct {
	Row   int    // 1-based data row index within the statement
	Field string // canonical field that failed to normalize
	Value string // raw offending value
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: failed to parse %s=%q: %v", e.Row, e.Field, e.Value, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// NewUnparsableAmount builds the rejection for an amount that survives no
// normalization step.
func NewUnparsableAmount(row int, value string, cause error) *RowError {
	return &RowError{Row: row, Field: "amount", Value: value, Err: wrapCause(ErrUnparsableAmount, cause)}
}

// NewUnparsableDate builds the rejection for a date that matches none of the
// accepted layouts.
func NewUnparsableDate(row int, value string, cause error) *RowError {
	return &RowError{Row: row, Field: "date", Value: value, Err: wrapCause(ErrUnparsableDate, cause)}
}

func wrapCause(kind, cause error) error {
	if cause == nil {
		return kind
	}
	return fmt.Errorf("%w: %v", kind, cause)
}

// ValidationError represents a statement file that failed format validation
// before any rows were read.
type ValidationError struct {
	FilePath string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.FilePath, e.Reason)
}

// InvalidFormatError represents an input that does not conform to the format
// a specific statement parser expects.
type InvalidFormatError struct {
	FilePath             string
	ExpectedFormat       string
	ActualContentSnippet string // Optional: a snippet of the actual content for debugging
	Msg                  string
}

func (e *InvalidFormatError) Error() string {
	if e.ActualContentSnippet != "" {
		return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s. Content snippet: '%s'",
			e.FilePath, e.Msg, e.ExpectedFormat, e.ActualContentSnippet)
	}
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

// DataExtractionError represents required data that could not be extracted
// from a structurally valid file (XML entry without an amount, PDF table
// without a date column).
type DataExtractionError struct {
	FilePath  string
	FieldName string
	Reason    string
}

func (e *DataExtractionError) Error() string {
	return fmt.Sprintf("data extraction failed in file '%s' for field '%s': %s",
		e.FilePath, e.FieldName, e.Reason)
}
