package core

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Table is one decoded CSV upload before normalization.
type Table struct {
	Source string      // File name the table was read from
	Header []string    // Raw header cells
	Index  HeaderIndex // Lowercased header lookup
	Rows   [][]string  // Data rows, padded to the header width
}

// ReadTable decodes and parses a single upload.
//
// Rows with more fields than the header are rejected as malformed; shorter
// rows are padded with empty cells. Fully blank rows are dropped.
func ReadTable(f File) (*Table, error) {
	text, err := DecodeText(f.Data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.Name, err)
	}

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read %s: %w: empty file", f.Name, ErrMalformedCSV)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w: %v", f.Name, ErrMalformedCSV, err)
	}

	t := &Table{
		Source: f.Name,
		Header: header,
		Index:  MakeHeaderIndex(header),
	}

	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w: %v", f.Name, ErrMalformedCSV, err)
		}

		if isBlankRow(row) {
			continue
		}
		if len(row) > len(header) {
			line, _ := r.FieldPos(0)
			return nil, fmt.Errorf("read %s: %w: line %d has %d fields, header has %d",
				f.Name, ErrMalformedCSV, line, len(row), len(header))
		}
		for len(row) < len(header) {
			row = append(row, "")
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
