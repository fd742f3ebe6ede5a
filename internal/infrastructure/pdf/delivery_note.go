// Package pdf genera la remisión imprimible de un lote de movimientos.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tipo de movimiento  │  Lote + Fecha                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TRASLADO: Proyecto / Conductor / Origen → Destino           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Ítem | Cant. | Unidad | Categoría                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR del lote + firmas                                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
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

	"github.com/jhoicas/inventory-assistant/internal/application/ports"
	"github.com/jhoicas/inventory-assistant/internal/domain"
	"github.com/jhoicas/inventory-assistant/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var titles = map[entity.MovementType]string{
	entity.MovementTypeIN:     "STOCK RECEIPT",
	entity.MovementTypeOUT:    "DELIVERY NOTE",
	entity.MovementTypeADJUST: "STOCK ADJUSTMENT",
}

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.DeliveryNoteGenerator = (*DeliveryNoteGenerator)(nil)

// DeliveryNoteGenerator implementa ports.DeliveryNoteGenerator usando Maroto v2.
type DeliveryNoteGenerator struct {
	now func() time.Time
}

// NewDeliveryNoteGenerator construye el generador.
func NewDeliveryNoteGenerator() *DeliveryNoteGenerator {
	return &DeliveryNoteGenerator{now: time.Now}
}

// Generate genera el PDF de la remisión y devuelve sus bytes.
func (g *DeliveryNoteGenerator) Generate(ctx context.Context, note *ports.DeliveryNote) ([]byte, error) {
	if note == nil || len(note.Movements) == 0 {
		return nil, fmt.Errorf("pdf: remisión sin movimientos: %w", domain.ErrInvalidInput)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(titleFor(note.MovementType)+" "+note.BatchID, true).
		WithAuthor(nonEmpty(note.UserName, "Inventory Assistant"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(note, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(transferRow(note))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(note.Movements)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(note))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(note *ports.DeliveryNote, now time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(titleFor(note.MovementType), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%d items", len(note.Movements)), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(note.BatchID, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2,
			}),
			text.New("Date: "+batchDate(note, now).Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

func transferRow(note *ports.DeliveryNote) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Project: %s   |   Driver: %s",
				nonEmpty(note.Project, "-"), nonEmpty(note.Driver, "-"),
			), props.Text{Size: 9, Top: 2}),
			text.New(fmt.Sprintf("From: %s   →   To: %s",
				nonEmpty(note.FromLocation, "-"), nonEmpty(note.ToLocation, "-"),
			), props.Text{Style: fontstyle.Bold, Size: 9, Top: 9}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Item", 5, align.Left),
		h("Qty", 2, align.Right),
		h("Unit", 1, align.Center),
		h("Category", 3, align.Left),
	)
}

func tableRows(movements []*entity.StockMovement) []core.Row {
	out := make([]core.Row, 0, len(movements))
	for i, m := range movements {
		out = append(out, row.New(7).Add(
			col.New(1).Add(text.New(strconv.Itoa(i+1), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(m.ItemName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(m.SignedBaseQuantity.String(), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(nonEmpty(m.Unit, m.UnitType), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(m.Category.String(), props.Text{Size: 7, Top: 1, Left: 1, Color: colorGray})),
		))
	}
	return out
}

// footerRow QR con el identificador del lote y espacio para firmas.
func footerRow(note *ports.DeliveryNote) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(note.BatchID, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("Submitted for approval. Status: "+string(entity.MovementStatusRequested), props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Issued by: "+nonEmpty(note.UserName, "-"), props.Text{Size: 8, Top: 12, Left: 3}),
			text.New("Received by: ______________________", props.Text{Size: 8, Top: 24, Left: 3}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func titleFor(mt entity.MovementType) string {
	if t, ok := titles[mt]; ok {
		return t
	}
	return "STOCK MOVEMENT"
}

// batchDate fecha del primer movimiento; si no tiene, la actual.
func batchDate(note *ports.DeliveryNote, now time.Time) time.Time {
	if ts := note.Movements[0].Timestamp; !ts.IsZero() {
		return ts
	}
	return now
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
