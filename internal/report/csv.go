package report

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/JonMunkholm/cloudsaver/internal/core"
)

// utf8BOM makes spreadsheet tools detect UTF-8 for the Korean headers.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// csvHeader labels cloud, service, action, priority, estimated_saving,
// current_cost, reason and source, in that order.
var csvHeader = []string{"클라우드", "서비스", "조치", "우선순위", "예상 절감액", "현재 비용", "사유", "출처"}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func csvRow(s core.Suggestion) []string {
	return []string{
		s.Cloud,
		s.Service,
		s.Action,
		string(s.Priority),
		formatAmount(s.EstimatedSaving),
		formatAmount(s.CurrentCost),
		s.Reason,
		s.Source,
	}
}

func renderCSV(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, s := range doc.Suggestions {
		if err := w.Write(csvRow(s)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
