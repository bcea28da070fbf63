package excel

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stock-analytics/internal/application/report"
	"github.com/jhoicas/stock-analytics/internal/domain/analytics"
)

func TestYearlyWorkbook_RenderYearly(t *testing.T) {
	months := make([]analytics.MonthlySummary, 0, 12)
	for m := time.January; m <= time.December; m++ {
		months = append(months, analytics.NewMonthlySummary(2024, m, nil))
	}
	months[2].Totals = analytics.Totals{
		TotalIn: decimal.NewFromInt(10), TotalOut: decimal.NewFromInt(4), Net: decimal.NewFromInt(6), MovementCount: 2,
	}
	doc := report.YearlyDocument{
		Title:  "Reporte anual 2024",
		Report: analytics.BuildYearlyReport(2024, months),
		Categories: []analytics.CategoryStat{{
			Category:   "Ferretería",
			Totals:     analytics.Totals{MovementCount: 2},
			Products:   []string{"Tornillo", "Tuerca"},
			Percentage: decimal.NewFromInt(100),
		}},
		TopProducts: []analytics.ProductPerformance{{ProductLineID: "p1", ProductName: "Tornillo"}},
	}

	out, err := NewYearlyWorkbook().RenderYearly(context.Background(), doc)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheetMonths, sheetCategories, sheetProducts}, f.GetSheetList())

	rows, err := f.GetRows(sheetMonths)
	require.NoError(t, err)
	require.Len(t, rows, 14, "encabezado + 12 meses + total")
	assert.Equal(t, "Mes", rows[0][0])
	assert.Equal(t, "Ene", rows[1][0])
	assert.Equal(t, []string{"Mar", "10", "4", "6", "2"}, rows[3][:5])
	assert.Equal(t, "Total 2024", rows[13][0])
	assert.Equal(t, "2", rows[13][4])

	cats, err := f.GetRows(sheetCategories)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Tornillo, Tuerca", cats[1][6])

	prods, err := f.GetRows(sheetProducts)
	require.NoError(t, err)
	require.Len(t, prods, 2)
	assert.Equal(t, "Tornillo", prods[1][1])
}
