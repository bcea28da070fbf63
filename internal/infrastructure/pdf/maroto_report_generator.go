// Package pdf genera el reporte anual de movimientos de stock en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + dueño      │  Año + fecha de generación   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES DEL AÑO: Entradas / Salidas / Neto / Movimientos    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA MENSUAL: Mes | Entradas | Salidas | Neto | Mov | Prom │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA CATEGORÍAS: Categoría | Mov | % | Productos           │
//	│  TABLA TOP PRODUCTOS: Producto | Mov | Stock | Precio        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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

	"github.com/jhoicas/stock-analytics/internal/application/report"
	"github.com/jhoicas/stock-analytics/internal/domain/analytics"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorIn      = &props.Color{Red: 20, Green: 120, Blue: 60}
	colorOut     = &props.Color{Red: 170, Green: 40, Blue: 40}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa report.PDFRenderer usando Maroto v2.
// Los números se formatean con separadores del locale configurado (por defecto español).
type MarotoReportGenerator struct {
	printer *message.Printer
}

// NewMarotoReportGenerator construye el generador para el locale dado (ej: language.Spanish).
func NewMarotoReportGenerator(tag language.Tag) *MarotoReportGenerator {
	return &MarotoReportGenerator{printer: message.NewPrinter(tag)}
}

// RenderYearly genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) RenderYearly(_ context.Context, doc report.YearlyDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(doc.Title, true).
		WithAuthor("stock-analytics", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.totalsRow(doc.Report.YearlyTotals))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabla mensual
	m.AddRows(sectionTitle("RESUMEN MENSUAL"))
	m.AddRows(tableHeader(
		cell{"Mes", 2, align.Left},
		cell{"Entradas", 2, align.Right},
		cell{"Salidas", 2, align.Right},
		cell{"Neto", 2, align.Right},
		cell{"Movimientos", 2, align.Right},
		cell{"Prom. diario", 2, align.Right},
	))
	for _, ms := range doc.Report.Months {
		m.AddRows(tableRow(
			cell{ms.MonthName, 2, align.Left},
			cell{g.qty(ms.TotalIn), 2, align.Right},
			cell{g.qty(ms.TotalOut), 2, align.Right},
			cell{g.qty(ms.Net), 2, align.Right},
			cell{g.printer.Sprintf("%d", ms.MovementCount), 2, align.Right},
			cell{g.qty(ms.AverageDaily), 2, align.Right},
		))
	}

	// Categorías
	m.AddRows(line.NewRow(4))
	m.AddRows(sectionTitle("CATEGORÍAS"))
	m.AddRows(tableHeader(
		cell{"Categoría", 3, align.Left},
		cell{"Movimientos", 2, align.Right},
		cell{"%", 2, align.Right},
		cell{"Productos", 5, align.Left},
	))
	if len(doc.Categories) == 0 {
		m.AddRows(emptyRow("Sin movimientos en el año"))
	}
	for _, c := range doc.Categories {
		m.AddRows(tableRow(
			cell{nonEmpty(c.Category, "—"), 3, align.Left},
			cell{g.printer.Sprintf("%d", c.MovementCount), 2, align.Right},
			cell{g.qty(c.Percentage) + "%", 2, align.Right},
			cell{strings.Join(c.Products, ", "), 5, align.Left},
		))
	}

	// Top productos
	m.AddRows(line.NewRow(4))
	m.AddRows(sectionTitle("PRODUCTOS CON MÁS MOVIMIENTOS"))
	m.AddRows(tableHeader(
		cell{"Producto", 4, align.Left},
		cell{"Movimientos", 2, align.Right},
		cell{"Neto", 2, align.Right},
		cell{"Stock actual", 2, align.Right},
		cell{"Precio unit.", 2, align.Right},
	))
	if len(doc.TopProducts) == 0 {
		m.AddRows(emptyRow("Sin movimientos en el año"))
	}
	for _, p := range doc.TopProducts {
		m.AddRows(tableRow(
			cell{nonEmpty(p.ProductName, p.ProductLineID), 4, align.Left},
			cell{g.printer.Sprintf("%d", p.MovementCount), 2, align.Right},
			cell{g.qty(p.Net), 2, align.Right},
			cell{g.qty(p.CurrentStock) + " " + p.Unite, 2, align.Right},
			cell{"$" + g.money(p.UnitPrice), 2, align.Right},
		))
	}

	generated, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return generated.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + dueño (izq) y año + fecha de generación (der).
func (g *MarotoReportGenerator) headerRow(doc report.YearlyDocument) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(doc.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Usuario: "+doc.OwnerLabel, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("%d", doc.Report.Year), props.Text{
				Style: fontstyle.Bold, Size: 14, Align: align.Right, Top: 1,
			}),
			text.New("Generado: "+doc.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

// totalsRow: bloque con los totales del año.
func (g *MarotoReportGenerator) totalsRow(t analytics.Totals) core.Row {
	block := func(label, value string, c *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Center, Color: c, Top: 6}),
		)
	}
	return row.New(16).Add(
		block("Entradas", g.qty(t.TotalIn), colorIn),
		block("Salidas", g.qty(t.TotalOut), colorOut),
		block("Neto", g.qty(t.Net), colorPrimary),
		block("Movimientos", g.printer.Sprintf("%d", t.MovementCount), colorPrimary),
	)
}

type cell struct {
	value string
	size  int
	align align.Type
}

func sectionTitle(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
	))
}

func tableHeader(cells ...cell) core.Row {
	cols := make([]core.Col, 0, len(cells))
	for _, c := range cells {
		cols = append(cols, col.New(c.size).Add(text.New(c.value, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align, Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(6).Add(cols...)
}

func tableRow(cells ...cell) core.Row {
	cols := make([]core.Col, 0, len(cells))
	for _, c := range cells {
		cols = append(cols, col.New(c.size).Add(text.New(c.value, props.Text{
			Size: 8, Align: c.align, Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(5).Add(cols...)
}

func emptyRow(msg string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Color: colorGray, Top: 1, Align: align.Center}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// qty cantidad con hasta dos decimales y separadores del locale, ej: "12.345,5".
func (g *MarotoReportGenerator) qty(d decimal.Decimal) string {
	return g.printer.Sprint(d.Round(2).InexactFloat64())
}

// money valor monetario sin decimales con separador de miles, ej: "25.000".
func (g *MarotoReportGenerator) money(d decimal.Decimal) string {
	return g.printer.Sprintf("%d", d.Round(0).IntPart())
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
