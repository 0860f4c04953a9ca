package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:     "missing cost column",
			err:      &ColumnError{File: "bill.csv", Column: "cost"},
			wantCode: "COL001",
		},
		{
			name:     "wrapped malformed csv",
			err:      fmt.Errorf("read bill.csv: %w: line 3", ErrMalformedCSV),
			wantCode: "FILE002",
		},
		{
			name:        "no files",
			err:         ErrNoFiles,
			wantCode:    "FILE004",
			wantMessage: "No billing export was uploaded",
		},
		{
			name:     "no valid data",
			err:      ErrNoValidData,
			wantCode: "FILE005",
		},
		{
			name:     "unsupported format",
			err:      fmt.Errorf("%w: %q", ErrUnsupportedFormat, "xml"),
			wantCode: "RPT002",
		},
		{
			name:     "empty suggestions",
			err:      ErrEmptySuggestions,
			wantCode: "RPT001",
		},
		{
			name:     "render failure",
			err:      fmt.Errorf("%w: font missing", ErrRender),
			wantCode: "RPT004",
		},
		{
			name:     "limiter busy",
			err:      ErrTooManyAnalyses,
			wantCode: "UPL002",
		},
		{
			name:     "rate limit",
			err:      errors.New("rate limit exceeded"),
			wantCode: "RATE001",
		},
		{
			name:        "unknown error falls back",
			err:         errors.New("something odd"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError().Code = %q, want %q", got.Code, tt.wantCode)
			}
			if tt.wantMessage != "" && got.Message != tt.wantMessage {
				t.Errorf("MapError().Message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	result := FormatUserError(ErrNoFiles)

	expected := "No billing export was uploaded (Code: FILE004). Please select at least one CSV file"
	if result != expected {
		t.Errorf("FormatUserError() = %q, want %q", result, expected)
	}
	if FormatUserError(nil) != "" {
		t.Error("FormatUserError(nil) should be empty")
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error is not user facing", nil, false},
		{"known error is user facing", ErrEncoding, true},
		{"unknown error is not user facing", errors.New("random internal error xyz"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsClientError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"column error", &ColumnError{Column: "cost"}, true},
		{"wrapped encoding", fmt.Errorf("decode a.csv: %w", ErrEncoding), true},
		{"unsupported format", ErrUnsupportedFormat, true},
		{"render is server side", ErrRender, false},
		{"busy is server side", ErrTooManyAnalyses, false},
		{"unknown", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsClientError(tt.err); got != tt.want {
				t.Errorf("IsClientError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestColumnError(t *testing.T) {
	err := &ColumnError{File: "gcp.csv", Column: "cost", Candidates: []string{"cost", "UnblendedCost"}}

	if !errors.Is(err, ErrMissingColumn) {
		t.Error("ColumnError should unwrap to ErrMissingColumn")
	}
	msg := err.Error()
	for _, want := range []string{"cost", "gcp.csv", "UnblendedCost"} {
		if !containsFold(msg, want) {
			t.Errorf("Error() = %q, want it to mention %q", msg, want)
		}
	}
}
