// Package pdf implementa la exportación del reporte de inventario en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la empresa │ "Reporte de Inventario" +    │
//	│          fecha de generación                                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: productos / transacciones / stock bajo / valor     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: productos con stock bajo (nombre | categoría | cant)│
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: productos más movidos (nombre | movimientos)        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

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

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/reports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa reports.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInventoryReport genera el PDF del reporte y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInventoryReport(data *reports.InventoryReportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Inventario", true).
		WithAuthor(data.CompanyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data.CompanyName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRows(data.Summary)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Stock bajo
	m.AddRows(sectionTitleRow("PRODUCTOS CON STOCK BAJO"))
	if len(data.LowStock) == 0 {
		m.AddRows(emptyNoticeRow("Sin productos por debajo del umbral."))
	} else {
		m.AddRows(lowStockHeaderRow())
		for _, r := range lowStockRows(data.LowStock) {
			m.AddRows(r)
		}
	}

	// Top productos
	m.AddRows(line.NewRow(2))
	m.AddRows(sectionTitleRow("PRODUCTOS CON MÁS MOVIMIENTO"))
	if len(data.TopProducts) == 0 {
		m.AddRows(emptyNoticeRow("Sin movimientos registrados."))
	} else {
		m.AddRows(topProductsHeaderRow())
		for _, r := range topProductsRows(data.TopProducts) {
			m.AddRows(r)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la empresa (izq) y título + fecha (der).
func headerRow(companyName string) core.Row {
	fecha := time.Now().Format("02/01/2006 15:04")
	return row.New(16).Add(
		col.New(7).Add(
			text.New(companyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("REPORTE DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// summaryRows: los cuatro conteos del dashboard más la valorización.
func summaryRows(s *dto.DashboardSummaryDTO) []core.Row {
	item := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 12, Top: 5, Align: align.Center,
				Color: colorPrimary,
			}),
		)
	}
	return []core.Row{
		row.New(14).Add(
			item("Productos", fmt.Sprintf("%d", s.TotalProducts)),
			item("Transacciones", fmt.Sprintf("%d", s.TotalTransactions)),
			item("Stock bajo", fmt.Sprintf("%d", s.LowStockItems)),
			item("Últimos 7 días", fmt.Sprintf("%d", s.RecentTransactions)),
		),
		row.New(10).Add(
			col.New(12).Add(
				text.New("Valor total del inventario: $"+s.TotalStockValue.StringFixed(2), props.Text{
					Style: fontstyle.Bold, Size: 10, Align: align.Center,
					Color: colorPrimary, Top: 2,
				}),
			),
		),
	}
}

func sectionTitleRow(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
		}),
	))
}

func emptyNoticeRow(msg string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Color: colorGray, Top: 1, Left: 2}),
	))
}

func lowStockHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		h("Producto", 6, align.Left),
		h("Categoría", 4, align.Left),
		h("Cantidad", 2, align.Right),
	)
}

func lowStockRows(products []*dto.ProductResponse) []core.Row {
	result := make([]core.Row, 0, len(products))
	for _, p := range products {
		result = append(result, row.New(6).Add(
			col.New(6).Add(text.New(p.Name, props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1,
			})),
			col.New(4).Add(text.New(p.Category, props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1, Color: colorGray,
			})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", p.Quantity), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return result
}

func topProductsHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		h("Producto", 9, align.Left),
		h("Movimientos", 3, align.Right),
	)
}

func topProductsRows(products []*dto.TopProductDTO) []core.Row {
	result := make([]core.Row, 0, len(products))
	for _, p := range products {
		result = append(result, row.New(6).Add(
			col.New(9).Add(text.New(p.Name, props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1,
			})),
			col.New(3).Add(text.New(fmt.Sprintf("%d", p.Movements), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return result
}
