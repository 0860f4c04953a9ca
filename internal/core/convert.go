package core

// convert.go provides lenient cell conversion for billing exports.
//
// Vendor exports are messy: currency symbols, thousands separators,
// accounting-style negatives, Excel formula prefixes and stray quotes all
// show up in practice. Conversions here never fail; values that cannot be
// parsed coerce to zero so a single bad cell never drops a row.

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numericRegex validates that a string is a valid numeric format after cleanup.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// HeaderIndex maps cleaned, lowercased column names to their position in a row.
type HeaderIndex map[string]int

// MakeHeaderIndex builds a HeaderIndex from a CSV header row.
// When a column name repeats, the first occurrence wins.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		key := strings.ToLower(CleanCell(h))
		if key == "" {
			continue
		}
		if _, exists := idx[key]; !exists {
			idx[key] = i
		}
	}
	return idx
}

// Lookup returns the position of the first candidate present in the index.
func (h HeaderIndex) Lookup(candidates ...string) (int, bool) {
	for _, c := range candidates {
		if pos, ok := h[strings.ToLower(c)]; ok {
			return pos, true
		}
	}
	return 0, false
}

// CleanCell removes common CSV artifacts from a cell value:
// surrounding whitespace, a UTF-8 BOM, the Excel formula prefix (="...")
// and surrounding quotes.
func CleanCell(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.Trim(s, `"'`)
}

// ParseNumber parses a numeric cell. Currency symbols, thousands separators
// and accounting format "(123.45)" are accepted. The second return value
// reports whether s held a finite number.
func ParseNumber(s string) (float64, bool) {
	s = CleanCell(s)
	if s == "" {
		return 0, false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.NewReplacer(
		"$", "",
		"€", "", // Euro
		"£", "", // Pound
		"₩", "", // Won
		"￦", "", // Fullwidth won
		",", "",
		"%", "",
	).Replace(s)
	s = strings.TrimSpace(s)
	if strings.HasPrefix(strings.ToUpper(s), "USD") {
		s = strings.TrimSpace(s[3:])
	}

	if !numericRegex.MatchString(s) {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if negative {
		f = -f
	}
	return f, true
}

// ToFloat parses a numeric cell, returning 0 when it cannot be parsed.
func ToFloat(s string) float64 {
	f, _ := ParseNumber(s)
	return f
}

// ToInt parses a numeric cell and truncates it toward zero.
// Returns 0 when the cell cannot be parsed or does not fit in an int.
func ToInt(s string) int {
	f, ok := ParseNumber(s)
	if !ok || f > math.MaxInt32 || f < math.MinInt32 {
		return 0
	}
	return int(f)
}
