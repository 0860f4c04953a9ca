package core

import (
	"errors"
	"fmt"
)

// Input validation errors.
var (
	ErrNoFiles           = errors.New("no files provided")
	ErrFileTooLarge      = errors.New("file too large")
	ErrTooManyFiles      = errors.New("too many files")
	ErrEmptySuggestions  = errors.New("no suggestions to report")
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// Data format errors.
var (
	ErrMissingColumn = errors.New("missing required column")
	ErrMalformedCSV  = errors.New("invalid csv")
	ErrEncoding      = errors.New("encoding error")
	ErrNoValidData   = errors.New("no valid data")
	ErrInvalidReport = errors.New("invalid report request")
)

// ErrRender is returned when a report cannot be generated.
var ErrRender = errors.New("report rendering failed")

// ColumnError reports a semantic column that could not be resolved in a file.
type ColumnError struct {
	File       string   // Upload the column was expected in
	Column     string   // Semantic column name, e.g. "cost"
	Candidates []string // Header names that were searched
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("%s: %q in %s (looked for %v)", ErrMissingColumn, e.Column, e.File, e.Candidates)
}

func (e *ColumnError) Unwrap() error {
	return ErrMissingColumn
}

var clientErrors = []error{
	ErrNoFiles,
	ErrFileTooLarge,
	ErrTooManyFiles,
	ErrEmptySuggestions,
	ErrUnsupportedFormat,
	ErrMissingColumn,
	ErrMalformedCSV,
	ErrEncoding,
	ErrNoValidData,
	ErrInvalidReport,
}

// IsClientError reports whether err was caused by the request rather than
// the server. Client errors are never retried and are shown verbatim.
func IsClientError(err error) bool {
	if err == nil {
		return false
	}
	for _, target := range clientErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
