package report

// layout.go estimates how tall a table row must be.
//
// Maroto wraps long text inside a column but rows have a fixed height, so
// the height is computed up front from the widest-wrapping cell and every
// cell in the row is drawn at that height. The estimate counts East Asian
// wide runes as two cells, which matches how Hangul renders in NanumGothic.

import (
	"math"

	"golang.org/x/text/width"
)

const (
	gridColumns     = 12
	usableWidthMM   = 190.0 // A4 minus default 10mm margins
	cellPaddingMM   = 2.0
	narrowGlyphMM   = 1.6 // Approximate half-width glyph at tableFontSize
	lineHeightMM    = 4.0
	minRowHeightMM  = 8.0
	tableFontSize   = 8.0
	headerRowHeight = 9.0
)

// displayWidth returns the width of s in half-width cells.
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

// cellsPerLine returns how many half-width glyphs fit on one line of a
// column spanning span grid units.
func cellsPerLine(span int) int {
	colWidth := usableWidthMM*float64(span)/gridColumns - 2*cellPaddingMM
	n := int(colWidth / narrowGlyphMM)
	if n < 1 {
		return 1
	}
	return n
}

// wrappedLines returns the number of lines s occupies in a column of span
// grid units. Empty text still takes one line.
func wrappedLines(s string, span int) int {
	w := displayWidth(s)
	if w == 0 {
		return 1
	}
	return int(math.Ceil(float64(w) / float64(cellsPerLine(span))))
}

// rowHeight returns the height in mm for a row whose cells hold texts in
// columns of the given spans.
func rowHeight(texts []string, spans []int) float64 {
	lines := 1
	for i, s := range texts {
		if i >= len(spans) {
			break
		}
		if n := wrappedLines(s, spans[i]); n > lines {
			lines = n
		}
	}
	return math.Max(minRowHeightMM, float64(lines)*lineHeightMM+2*cellPaddingMM)
}
