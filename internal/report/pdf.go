package report

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	mcore "github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/JonMunkholm/cloudsaver/internal/core"
)

// tableSpans are the grid widths of cloud, service, action, saving,
// current cost and reason.
var tableSpans = []int{1, 2, 2, 2, 2, 3}

var tableHeader = []string{"클라우드", "서비스", "조치", "예상 절감액", "현재 비용", "사유"}

var (
	headerFill = &props.Color{Red: 230, Green: 236, Blue: 245}
	borderGray = &props.Color{Red: 160, Green: 160, Blue: 160}
)

var amounts = message.NewPrinter(language.English)

func money(v float64) string {
	return amounts.Sprintf("$%.2f", v)
}

func cellStyle(fill *props.Color) *props.Cell {
	return &props.Cell{
		BackgroundColor: fill,
		BorderColor:     borderGray,
		BorderType:      border.Full,
		BorderThickness: 0.2,
	}
}

func (r *Renderer) textProps(size float64, bold bool, a align.Type) props.Text {
	p := props.Text{
		Family: r.fontFamily,
		Size:   size,
		Align:  a,
		Top:    cellPaddingMM,
		Left:   cellPaddingMM,
		Right:  cellPaddingMM,
	}
	if bold {
		p.Style = fontstyle.Bold
	}
	return p
}

// tableRow builds one bordered row; every cell shares the computed height.
func (r *Renderer) tableRow(texts []string, header bool) mcore.Row {
	var fill *props.Color
	if header {
		fill = headerFill
	}

	cols := make([]mcore.Col, len(texts))
	for i, s := range texts {
		a := align.Left
		if !header && (i == 3 || i == 4) {
			a = align.Right
		}
		cols[i] = text.NewCol(tableSpans[i], s, r.textProps(tableFontSize, header, a)).
			WithStyle(cellStyle(fill))
	}

	height := rowHeight(texts, tableSpans)
	if header {
		height = headerRowHeight
	}
	return row.New(height).Add(cols...)
}

func suggestionCells(s core.Suggestion) []string {
	return []string{
		s.Cloud,
		s.Service,
		s.Action,
		money(s.EstimatedSaving),
		money(s.CurrentCost),
		s.Reason,
	}
}

func (r *Renderer) renderPDF(id uuid.UUID, doc Document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		WithDefaultFont(&props.Font{Family: r.fontFamily, Size: tableFontSize}).
		WithCustomFonts(r.fonts).
		Build()

	m := maroto.New(cfg)

	if err := m.RegisterFooter(
		row.New(6).Add(text.NewCol(12, "Report ID: "+id.String(), r.textProps(7, false, align.Left))),
	); err != nil {
		return nil, fmt.Errorf("%w: footer: %v", core.ErrRender, err)
	}

	m.AddRow(14, text.NewCol(12, "CloudSaver 비용 절감 리포트", r.textProps(16, true, align.Left)))

	summary := doc.Summary
	m.AddRow(8,
		text.NewCol(4, "총 비용: "+money(summary.TotalCost), r.textProps(10, false, align.Left)),
		text.NewCol(4, "예상 절감액: "+money(summary.TotalSaving), r.textProps(10, false, align.Left)),
		text.NewCol(4, fmt.Sprintf("절감률: %.1f%%", summary.SavingRate), r.textProps(10, false, align.Left)),
	)
	m.AddRow(6, col.New(12))

	m.AddRows(r.tableRow(tableHeader, true))
	for _, s := range doc.Suggestions {
		m.AddRows(r.tableRow(suggestionCells(s), false))
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrRender, err)
	}
	return out.GetBytes(), nil
}
