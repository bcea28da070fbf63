// Package excel lee y escribe libros XLSX: exporta el reporte anual y parsea
// planillas de importación de líneas de producto.
package excel

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stock-analytics/internal/application/report"
	"github.com/jhoicas/stock-analytics/internal/domain/analytics"
)

const (
	sheetMonths     = "Meses"
	sheetCategories = "Categorias"
	sheetProducts   = "Productos"
)

// YearlyWorkbook implementa report.WorkbookRenderer con excelize.
type YearlyWorkbook struct{}

// NewYearlyWorkbook construye el renderer.
func NewYearlyWorkbook() *YearlyWorkbook { return &YearlyWorkbook{} }

// RenderYearly arma un libro con tres hojas (meses, categorías y productos) y devuelve sus bytes.
func (w *YearlyWorkbook) RenderYearly(_ context.Context, doc report.YearlyDocument) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetMonths); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}
	for _, name := range []string{sheetCategories, sheetProducts} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("excel: crear hoja %s: %w", name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}

	// ── Meses ──────────────────────────────────────────────────────────────
	months := [][]any{{"Mes", "Entradas", "Salidas", "Neto", "Movimientos", "Prom. diario"}}
	for _, m := range doc.Report.Months {
		months = append(months, []any{
			m.MonthName,
			m.TotalIn.InexactFloat64(),
			m.TotalOut.InexactFloat64(),
			m.Net.InexactFloat64(),
			m.MovementCount,
			m.AverageDaily.Round(4).InexactFloat64(),
		})
	}
	t := doc.Report.YearlyTotals
	months = append(months, []any{
		fmt.Sprintf("Total %d", doc.Report.Year),
		t.TotalIn.InexactFloat64(), t.TotalOut.InexactFloat64(), t.Net.InexactFloat64(), t.MovementCount, nil,
	})
	if err := writeRows(f, sheetMonths, months, bold); err != nil {
		return nil, err
	}
	// fila de totales en negrita
	if err := f.SetCellStyle(sheetMonths, cell(1, len(months)), cell(6, len(months)), bold); err != nil {
		return nil, fmt.Errorf("excel: estilo totales: %w", err)
	}

	// ── Categorías ─────────────────────────────────────────────────────────
	cats := [][]any{{"Categoría", "Entradas", "Salidas", "Neto", "Movimientos", "Porcentaje", "Productos"}}
	for _, c := range doc.Categories {
		cats = append(cats, []any{
			c.Category,
			c.TotalIn.InexactFloat64(),
			c.TotalOut.InexactFloat64(),
			c.Net.InexactFloat64(),
			c.MovementCount,
			c.Percentage.Round(2).InexactFloat64(),
			strings.Join(c.Products, ", "),
		})
	}
	if err := writeRows(f, sheetCategories, cats, bold); err != nil {
		return nil, err
	}

	// ── Productos ──────────────────────────────────────────────────────────
	prods := [][]any{{"ID", "Producto", "Categoría", "Unidad", "Entradas", "Salidas", "Neto", "Movimientos", "Stock actual", "Precio unitario"}}
	for _, p := range doc.TopProducts {
		prods = append(prods, productRow(p))
	}
	if err := writeRows(f, sheetProducts, prods, bold); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

func productRow(p analytics.ProductPerformance) []any {
	return []any{
		p.ProductLineID,
		p.ProductName,
		p.Category,
		p.Unite,
		p.TotalIn.InexactFloat64(),
		p.TotalOut.InexactFloat64(),
		p.Net.InexactFloat64(),
		p.MovementCount,
		p.CurrentStock.InexactFloat64(),
		p.UnitPrice.InexactFloat64(),
	}
}

// writeRows escribe rows desde A1; la primera fila es el encabezado.
func writeRows(f *excelize.File, sheet string, rows [][]any, headerStyle int) error {
	for r, values := range rows {
		if err := f.SetSheetRow(sheet, cell(1, r+1), &values); err != nil {
			return fmt.Errorf("excel: hoja %s fila %d: %w", sheet, r+1, err)
		}
	}
	if len(rows) == 0 {
		return nil
	}
	if err := f.SetCellStyle(sheet, cell(1, 1), cell(len(rows[0]), 1), headerStyle); err != nil {
		return fmt.Errorf("excel: estilo encabezado %s: %w", sheet, err)
	}
	return nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
