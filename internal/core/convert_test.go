package core

import (
	"math"
	"testing"
)

// ----------------------------------------------------------------------------
// ParseNumber Tests
// ----------------------------------------------------------------------------

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   float64
		wantOK bool
	}{
		// Valid: basic numbers
		{name: "positive integer", input: "123", want: 123, wantOK: true},
		{name: "zero", input: "0", want: 0, wantOK: true},
		{name: "negative integer", input: "-456", want: -456, wantOK: true},
		{name: "decimal number", input: "123.45", want: 123.45, wantOK: true},
		{name: "leading decimal point", input: ".99", want: 0.99, wantOK: true},
		{name: "trailing decimal point", input: "99.", want: 99, wantOK: true},
		{name: "scientific notation", input: "1.5e3", want: 1500, wantOK: true},

		// Valid: vendor formatting
		{name: "dollar sign and thousands", input: "$1,234.56", want: 1234.56, wantOK: true},
		{name: "euro sign", input: "€1234.56", want: 1234.56, wantOK: true},
		{name: "won sign", input: "₩1,000", want: 1000, wantOK: true},
		{name: "usd prefix", input: "USD 12.5", want: 12.5, wantOK: true},
		{name: "percent sign", input: "2.5%", want: 2.5, wantOK: true},
		{name: "accounting negative", input: "(123.45)", want: -123.45, wantOK: true},
		{name: "excel formula", input: `="42"`, want: 42, wantOK: true},
		{name: "surrounding whitespace", input: "  7  ", want: 7, wantOK: true},

		// Invalid
		{name: "empty", input: "", wantOK: false},
		{name: "whitespace only", input: "   ", wantOK: false},
		{name: "text", input: "abc", wantOK: false},
		{name: "mixed text", input: "12abc", wantOK: false},
		{name: "two decimal points", input: "1.2.3", wantOK: false},
		{name: "NaN literal", input: "NaN", wantOK: false},
		{name: "overflow", input: "1e999", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseNumber(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseNumber(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ParseNumber(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestToFloat_UnparseableIsZero(t *testing.T) {
	for _, input := range []string{"", "n/a", "-", "twelve"} {
		if got := ToFloat(input); got != 0 {
			t.Errorf("ToFloat(%q) = %v, want 0", input, got)
		}
	}
}

func TestToInt(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"10", 10},
		{"10.9", 10},
		{"-3.5", -3},
		{"1,200", 1200},
		{"", 0},
		{"many", 0},
		{"1e20", 0},
	}

	for _, tt := range tests {
		if got := ToInt(tt.input); got != tt.want {
			t.Errorf("ToInt(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

// ----------------------------------------------------------------------------
// CleanCell Tests
// ----------------------------------------------------------------------------

func TestCleanCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple string unchanged", input: "hello", want: "hello"},
		{name: "empty string", input: "", want: ""},
		{name: "surrounded by whitespace", input: "  hello  ", want: "hello"},
		{name: "Excel formula with quotes", input: `="hello"`, want: "hello"},
		{name: "bare equals sign", input: "=SUM(A1)", want: "SUM(A1)"},
		{name: "double quotes removed", input: `"hello"`, want: "hello"},
		{name: "leading single quote (Excel text prefix)", input: "'12345", want: "12345"},
		{name: "byte order mark removed", input: "\ufeffservice", want: "service"},
		{name: "only quotes", input: `""`, want: ""},
		{name: "slash kept", input: "lineItem/UnblendedCost", want: "lineItem/UnblendedCost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanCell(tt.input); got != tt.want {
				t.Errorf("CleanCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// MakeHeaderIndex Tests
// ----------------------------------------------------------------------------

func TestMakeHeaderIndex(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		checks map[string]int
	}{
		{
			name:   "case insensitive lookup",
			header: []string{"Service", "COST", "cpu_Avg"},
			checks: map[string]int{"service": 0, "cost": 1, "cpu_avg": 2},
		},
		{
			name:   "headers with quotes and whitespace",
			header: []string{` "cloud" `, "  days "},
			checks: map[string]int{"cloud": 0, "days": 1},
		},
		{
			name:   "bom on first header",
			header: []string{"\ufeffservice", "cost"},
			checks: map[string]int{"service": 0, "cost": 1},
		},
		{
			name:   "empty header",
			header: []string{},
			checks: map[string]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := MakeHeaderIndex(tt.header)
			for key, wantPos := range tt.checks {
				gotPos, ok := idx[key]
				if !ok {
					t.Errorf("MakeHeaderIndex(%v)[%q] not found, want index %d", tt.header, key, wantPos)
					continue
				}
				if gotPos != wantPos {
					t.Errorf("MakeHeaderIndex(%v)[%q] = %d, want %d", tt.header, key, gotPos, wantPos)
				}
			}
		})
	}
}

func TestMakeHeaderIndex_DuplicateHeaders(t *testing.T) {
	idx := MakeHeaderIndex([]string{"cost", "service", "Cost"})

	if gotPos, ok := idx["cost"]; !ok || gotPos != 0 {
		t.Errorf("duplicate headers: cost index = %d, want 0 (first occurrence)", gotPos)
	}
}

func TestHeaderIndex_Lookup(t *testing.T) {
	idx := MakeHeaderIndex([]string{"ProductName", "UnblendedCost"})

	pos, ok := idx.Lookup("cost", "lineItem/UnblendedCost", "unblendedcost")
	if !ok || pos != 1 {
		t.Errorf("Lookup() = (%d, %v), want (1, true)", pos, ok)
	}
	if _, ok := idx.Lookup("cost"); ok {
		t.Error("Lookup(cost) should miss")
	}
}
