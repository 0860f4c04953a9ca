package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/JonMunkholm/cloudsaver/internal/core"
)

// Document is the input to a report: the summary and suggestions of an
// analysis. It decodes from the /analyze response body; other fields of
// that body are ignored.
type Document struct {
	Summary     core.Summary      `json:"summary"`
	Suggestions []core.Suggestion `json:"suggestions"`
}

// FromAnalysis builds a report document from an analysis result.
func FromAnalysis(a *core.Analysis) Document {
	return Document{Summary: a.Summary, Suggestions: a.Suggestions}
}

// DecodeDocument reads a JSON document from r.
func DecodeDocument(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", core.ErrInvalidReport, err)
	}
	return doc, nil
}

// Validate rejects documents that cannot produce a report.
func (d Document) Validate() error {
	if len(d.Suggestions) == 0 {
		return core.ErrEmptySuggestions
	}
	return nil
}
