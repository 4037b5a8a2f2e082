// Package pdf genera el reporte imprimible del registro de actividad de una orden.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la orden + tipo  │  Estado + Fecha         │
//	│  CONTACTO: Nombre + email                                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Nota                                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de notas                                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/stockorder-sync/internal/application/orderactivity"
	"github.com/jhoicas/stockorder-sync/internal/domain/entity"
)

var _ orderactivity.ActivityPDFGenerator = (*ActivityPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// caracteres por renglón de la columna de nota (fuente 8, 10 columnas de 12).
const noteChunk = 95

// ── Generator ─────────────────────────────────────────────────────────────────

// ActivityPDFGenerator implementa orderactivity.ActivityPDFGenerator usando Maroto v2.
type ActivityPDFGenerator struct{}

// NewActivityPDFGenerator construye el generador.
func NewActivityPDFGenerator() *ActivityPDFGenerator { return &ActivityPDFGenerator{} }

// GenerateActivityPDF genera el PDF y devuelve sus bytes.
func (g *ActivityPDFGenerator) GenerateActivityPDF(
	_ context.Context,
	order *entity.Order,
	annotations []*entity.Annotation,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Registro de actividad "+order.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(order))
	m.AddRows(partnerRow(order.Partner))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(annotationRows(annotations)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow(len(annotations)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(order *entity.Order) core.Row {
	kind := "ORDEN DE COMPRA"
	if order.Kind == entity.OrderKindSale {
		kind = "ORDEN DE VENTA"
	}
	fecha := "—"
	if order.DateOrder != nil {
		fecha = order.DateOrder.Format("02/01/2006")
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New(order.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(kind, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REGISTRO DE ACTIVIDAD", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Estado: "+nonEmpty(order.State, "—"), props.Text{
				Size: 9, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func partnerRow(p *entity.Partner) core.Row {
	name, email := "—", "—"
	if p != nil {
		name = nonEmpty(p.Name, "—")
		email = nonEmpty(p.Email, "—")
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CONTACTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   Email: %s", name, email), props.Text{
				Size: 8, Top: 7, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Left,
			Color: colorWhite, Top: 2, Left: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("Fecha (UTC)", 2),
		h("Nota", 10),
	)
}

// annotationRows: una fila por renglón; las notas largas se parten en varios renglones.
func annotationRows(annotations []*entity.Annotation) []core.Row {
	if len(annotations) == 0 {
		return []core.Row{row.New(7).Add(col.New(12).Add(
			text.New("Sin notas registradas.", props.Text{Size: 8, Top: 1, Color: colorGray}),
		))}
	}
	rows := make([]core.Row, 0, len(annotations))
	for _, a := range annotations {
		for i, chunk := range splitEvery(a.Body, noteChunk) {
			stamp := ""
			if i == 0 {
				stamp = a.CreatedAt.UTC().Format("2006-01-02 15:04")
			}
			rows = append(rows, row.New(5).Add(
				col.New(2).Add(text.New(stamp, props.Text{Size: 7, Top: 1, Left: 1, Color: colorGray})),
				col.New(10).Add(text.New(chunk, props.Text{Size: 8, Top: 1, Left: 1})),
			))
		}
	}
	return rows
}

func footerRow(total int) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Total de notas: %d", total), props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 2, Color: colorPrimary,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// splitEvery divide s en trozos de max n runas.
func splitEvery(s string, n int) []string {
	r := []rune(s)
	var parts []string
	for len(r) > n {
		parts = append(parts, string(r[:n]))
		r = r[n:]
	}
	if len(r) > 0 {
		parts = append(parts, string(r))
	}
	return parts
}
