// Package report renders analysis suggestions as downloadable CSV or PDF files.
package report

import (
	"fmt"
	"strings"

	"github.com/JonMunkholm/cloudsaver/internal/core"
)

// Format is a report output format.
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// filenameBase is the download name without extension.
const filenameBase = "cloudsaver_report"

// ParseFormat validates a format query value. Matching is case-insensitive
// and an empty value selects CSV.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (use csv or pdf)", core.ErrUnsupportedFormat, s)
	}
}

// ContentType returns the media type served for the format.
func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "text/csv; charset=utf-8"
}

// Filename returns the attachment file name for the format.
func (f Format) Filename() string {
	return filenameBase + "." + string(f)
}
