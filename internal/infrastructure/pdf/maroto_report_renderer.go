// Package pdf implementa las listas impresas del catálogo con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título (Teileliste / Inventarliste)                 │
//	│          Stand: dd.mm.yyyy hh:mm                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  by-shelf: por estante "Regal X" + tabla                     │
//	│            Teilenummer | Beschreibung | Fach | Menge         │
//	│  full:     Teilenummer | Beschreibung | Regal | Fach | Menge │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/parts-catalog/internal/application/ports"
)

var _ ports.ReportRenderer = (*MarotoReportRenderer)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 44, Green: 62, Blue: 80}
	colorHeader  = &props.Color{Red: 236, Green: 240, Blue: 241}
	colorShade   = &props.Color{Red: 248, Green: 249, Blue: 250}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

type column struct {
	label string
	size  int
	align align.Type
	value func(r ports.ReportRow) string
}

var (
	byShelfColumns = []column{
		{"Teilenummer", 3, align.Left, func(r ports.ReportRow) string { return r.Code }},
		{"Beschreibung", 6, align.Left, func(r ports.ReportRow) string { return r.Description }},
		{"Fach", 1, align.Center, func(r ports.ReportRow) string { return r.Section }},
		{"Menge", 2, align.Center, func(r ports.ReportRow) string { return r.Quantity }},
	}
	fullColumns = []column{
		{"Teilenummer", 3, align.Left, func(r ports.ReportRow) string { return r.Code }},
		{"Beschreibung", 5, align.Left, func(r ports.ReportRow) string { return r.Description }},
		{"Regal", 2, align.Center, func(r ports.ReportRow) string { return r.Shelf }},
		{"Fach", 1, align.Center, func(r ports.ReportRow) string { return r.Section }},
		{"Menge", 1, align.Center, func(r ports.ReportRow) string { return r.Quantity }},
	}
)

// MarotoReportRenderer implementa ports.ReportRenderer usando Maroto v2.
type MarotoReportRenderer struct{}

// NewMarotoReportRenderer construye el renderer.
func NewMarotoReportRenderer() *MarotoReportRenderer { return &MarotoReportRenderer{} }

// Render genera el PDF y devuelve sus bytes.
func (g *MarotoReportRenderer) Render(_ context.Context, doc ports.ReportDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(doc.Title, true).
		Build()

	m := maroto.New(cfg)
	if err := m.RegisterHeader(headerRows(doc)...); err != nil {
		return nil, fmt.Errorf("pdf: registrar header: %w", err)
	}

	for _, blocks := range layout(doc, pageCapacity) {
		if len(blocks) == 0 {
			continue
		}
		m.AddPages(page.New().Add(renderBlocks(doc.Mode, blocks)...))
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// renderBlocks convierte los bloques de una página en filas de Maroto.
func renderBlocks(mode string, blocks []block) []core.Row {
	cols := fullColumns
	if mode == ports.ReportModeByShelf {
		cols = byShelfColumns
	}
	rows := make([]core.Row, 0, len(blocks))
	for _, b := range blocks {
		switch b.kind {
		case blockShelfBar:
			rows = append(rows, shelfTitleRow(b.title))
		case blockTableHeader:
			rows = append(rows, tableHeaderRow(cols))
		case blockRow:
			rows = append(rows, tableRow(cols, b.row))
		case blockSpacer:
			rows = append(rows, line.NewRow(blockHeights[blockSpacer], props.Line{Color: colorWhite}))
		}
	}
	return rows
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRows: título centrado + fecha de emisión, repetidos en cada página.
func headerRows(doc ports.ReportDocument) []core.Row {
	return []core.Row{
		row.New(10).Add(col.New(12).Add(text.New(doc.Title, props.Text{
			Style: fontstyle.Bold, Size: 16, Align: align.Center, Top: 1,
		}))),
		row.New(6).Add(col.New(12).Add(text.New("Stand: "+doc.GeneratedAt.Format("02.01.2006 15:04"), props.Text{
			Size: 10, Align: align.Center, Color: colorGray,
		}))),
		line.NewRow(4, props.Line{Color: colorPrimary, Thickness: 0.4}),
	}
}

// shelfTitleRow: barra oscura "Regal X".
func shelfTitleRow(title string) core.Row {
	return row.New(blockHeights[blockShelfBar]).Add(col.New(12).Add(text.New("  "+title, props.Text{
		Style: fontstyle.Bold, Size: 12, Color: colorWhite, Top: 1.5,
	}))).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableHeaderRow(cols []column) core.Row {
	cells := make([]core.Col, 0, len(cols))
	for _, c := range cols {
		cells = append(cells, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: c.align, Top: 1.5, Left: 1, Right: 1,
		})))
	}
	return row.New(blockHeights[blockTableHeader]).Add(cells...).WithStyle(&props.Cell{
		BackgroundColor: colorHeader,
		BorderType:      border.Full,
		BorderColor:     colorGray,
		BorderThickness: 0.1,
	})
}

func tableRow(cols []column, r ports.ReportRow) core.Row {
	cells := make([]core.Col, 0, len(cols))
	for _, c := range cols {
		cells = append(cells, col.New(c.size).Add(text.New(c.value(r), props.Text{
			Size: 9, Align: c.align, Top: 1.5, Left: 1, Right: 1,
		})))
	}
	style := &props.Cell{BorderType: border.Full, BorderColor: colorGray, BorderThickness: 0.1}
	if r.Shaded {
		style.BackgroundColor = colorShade
	}
	return row.New(blockHeights[blockRow]).Add(cells...).WithStyle(style)
}
