// Package pdf implementa la generación del recibo imprimible de un pedido.
//
// Layout del ticket:
//
//	┌──────────────────────────────┐
//	│  NOMBRE DEL RESTAURANTE      │
//	│  Pedido #id  ·  Mesa N       │
//	│  Fecha                       │
//	│  ──────────────────────────  │
//	│  Cant | Plato | Precio | Sub │
//	│  ──────────────────────────  │
//	│  TOTAL A PAGAR               │
//	└──────────────────────────────┘
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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tu-usuario/resto-pos/internal/application/orders"
	"github.com/tu-usuario/resto-pos/internal/domain/entity"
)

var _ orders.ReceiptGenerator = (*MarotoReceiptGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 30, Green: 30, Blue: 30}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// printer formatea montos con separador de miles en locale es.
var printer = message.NewPrinter(language.Spanish)

// MarotoReceiptGenerator implementa orders.ReceiptGenerator usando Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// GenerateReceiptPDF genera el PDF del recibo y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(
	_ context.Context,
	order *entity.Order,
	restaurant *entity.Restaurant,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Recibo de pedido", true).
		WithAuthor(restaurant.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(order, restaurant))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range itemRows(order.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(order.Total))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre del restaurante, número de pedido, mesa y fecha.
func headerRow(order *entity.Order, restaurant *entity.Restaurant) core.Row {
	mesa := fmt.Sprintf("Mesa %d", order.Table)
	if order.Table == 0 {
		mesa = "Para llevar"
	}
	fecha := order.CreatedAt.Format("02/01/2006 15:04")

	return row.New(20).Add(
		col.New(12).Add(
			text.New(restaurant.Name, props.Text{
				Style: fontstyle.Bold, Size: 14, Align: align.Center,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Pedido %s   ·   %s", shortID(order.ID), mesa), props.Text{
				Size: 9, Align: align.Center, Top: 9,
			}),
			text.New(fecha, props.Text{
				Size: 8, Align: align.Center, Top: 14, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Plato", 5, align.Left),
		h("Precio", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// itemRows: una fila por línea del pedido.
func itemRows(items []entity.OrderItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		sub := it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				fmt.Sprintf("%d", it.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				it.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1},
			)),
			col.New(2).Add(text.New(
				formatMoney(it.Price),
				props.Text{Size: 8, Align: align.Right, Top: 1},
			)),
			col.New(3).Add(text.New(
				formatMoney(sub),
				props.Text{Size: 8, Align: align.Right, Top: 1},
			)),
		))
	}
	return result
}

// totalRow: total a pagar alineado a la derecha.
func totalRow(total decimal.Decimal) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(3).Add(text.New(formatMoney(total), props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right,
			Color: colorPrimary, Top: 2,
		})),
	)
}

func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New("¡Gracias por su visita!", props.Text{
			Size: 9, Align: align.Center, Color: colorGray, Top: 2,
		}),
	))
}

// formatMoney formatea un monto con separador de miles: "$ 25.000,50".
func formatMoney(d decimal.Decimal) string {
	f, _ := d.Float64()
	return printer.Sprintf("$ %.2f", f)
}

// shortID recorta un UUID a su primer bloque para el ticket.
func shortID(id string) string {
	if len(id) > 8 {
		return "#" + id[:8]
	}
	return "#" + id
}
