// Package pdf genera el comprobante imprimible de un movimiento de stock.
//
// Layout de la página A5:
//
//	┌───────────────────────────────────────────┐
//	│  MV-00042              TIPO  |  ESTADO    │
//	│  ───────────────────────────────────────  │
//	│  PRODUCTO: SKU + nombre                   │
//	│  ORIGEN  ->  DESTINO                      │
//	│  ───────────────────────────────────────  │
//	│  Cantidad | Programado | Hecho            │
//	│  ───────────────────────────────────────  │
//	│  QR con la referencia + firma             │
//	└───────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/application/ports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var typeLabels = map[string]string{
	"receipt":    "RECEPCIÓN",
	"delivery":   "ENTREGA",
	"internal":   "TRASLADO INTERNO",
	"adjustment": "AJUSTE DE INVENTARIO",
}

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.MoveSlipGenerator = (*MarotoSlipGenerator)(nil)

// MarotoSlipGenerator implementa ports.MoveSlipGenerator usando Maroto v2.
type MarotoSlipGenerator struct{}

// NewMarotoSlipGenerator construye el generador.
func NewMarotoSlipGenerator() *MarotoSlipGenerator { return &MarotoSlipGenerator{} }

// GenerateMoveSlip genera el PDF del movimiento y devuelve sus bytes.
func (g *MarotoSlipGenerator) GenerateMoveSlip(move *dto.MoveResponse) ([]byte, error) {
	if move == nil {
		return nil, fmt.Errorf("pdf: movimiento nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante "+move.Reference, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(move))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(productRow(move))
	m.AddRows(routeRow(move))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(quantityRow(move))
	if move.Reason != "" {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Motivo: "+move.Reason, props.Text{Size: 8, Top: 2, Color: colorGray}),
		)))
	}
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(move))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(move *dto.MoveResponse) core.Row {
	return row.New(16).Add(
		col.New(6).Add(
			text.New(move.Reference, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(move.ExternalReference, ""), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(6).Add(
			text.New(nonEmpty(typeLabels[move.Type], move.Type), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Estado: "+move.Status, props.Text{
				Size: 8, Align: align.Right, Top: 8,
			}),
		),
	)
}

func productRow(move *dto.MoveResponse) core.Row {
	return row.New(12).Add(col.New(12).Add(
		text.New("PRODUCTO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		text.New(fmt.Sprintf("%s  %s", move.ProductSKU, move.ProductName), props.Text{Size: 10, Top: 6}),
	))
}

func routeRow(move *dto.MoveResponse) core.Row {
	return row.New(12).Add(
		col.New(5).Add(
			text.New("ORIGEN", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(move.SourceName, props.Text{Size: 9, Top: 6}),
		),
		col.New(2).Add(text.New("→", props.Text{Size: 12, Align: align.Center, Top: 4})),
		col.New(5).Add(
			text.New("DESTINO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(move.DestName, props.Text{Size: 9, Top: 6}),
		),
	)
}

func quantityRow(move *dto.MoveResponse) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Size: 10, Top: 6}),
		)
	}
	done := "—"
	if move.DoneAt != nil {
		done = formatDate(*move.DoneAt)
	}
	return row.New(14).Add(
		cell("Cantidad", move.Quantity.String()),
		cell("Programado", formatDate(move.ScheduledAt)),
		cell("Hecho", done),
	)
}

func footerRow(move *dto.MoveResponse) core.Row {
	return row.New(30).Add(
		col.New(4).Add(code.NewQr(move.Reference, props.Rect{Percent: 95, Center: true})),
		col.New(8).Add(
			text.New("Recibido por: ______________________", props.Text{Size: 9, Top: 8, Left: 3}),
			text.New("Fecha: ____ / ____ / ______", props.Text{Size: 9, Top: 18, Left: 3}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("02/01/2006 15:04")
}
