package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/jhoicas/stock-analytics/internal/application/report"
	"github.com/jhoicas/stock-analytics/internal/domain/analytics"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func yearlyDoc() report.YearlyDocument {
	months := make([]analytics.MonthlySummary, 0, 12)
	for m := time.January; m <= time.December; m++ {
		months = append(months, analytics.NewMonthlySummary(2024, m, nil))
	}
	return report.YearlyDocument{
		Title:       "Reporte anual de movimientos 2024",
		OwnerLabel:  "Todos los usuarios",
		GeneratedAt: time.Date(2025, 1, 2, 8, 0, 0, 0, time.UTC),
		Report:      analytics.BuildYearlyReport(2024, months),
		Categories: []analytics.CategoryStat{{
			Category:   "Ferretería",
			Totals:     analytics.Totals{TotalIn: decimal.NewFromInt(10), MovementCount: 1},
			Products:   []string{"Tornillo"},
			Percentage: decimal.NewFromInt(100),
		}},
		TopProducts: []analytics.ProductPerformance{{
			ProductLineID: "p1",
			ProductName:   "Tornillo",
			Unite:         "und",
			Totals:        analytics.Totals{TotalIn: decimal.NewFromInt(10), Net: decimal.NewFromInt(10), MovementCount: 1},
			CurrentStock:  decimal.NewFromInt(1500),
			UnitPrice:     decimal.NewFromInt(25000),
		}},
	}
}

func TestRenderYearly_GeneraPDF(t *testing.T) {
	g := NewMarotoReportGenerator(language.Spanish)

	out, err := g.RenderYearly(context.Background(), yearlyDoc())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderYearly_SinDatos(t *testing.T) {
	g := NewMarotoReportGenerator(language.Spanish)
	doc := yearlyDoc()
	doc.Categories = nil
	doc.TopProducts = nil

	out, err := g.RenderYearly(context.Background(), doc)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestFormatoNumeros(t *testing.T) {
	es := NewMarotoReportGenerator(language.Spanish)
	assert.Equal(t, "25.000", es.money(decimal.NewFromInt(25000)))
	assert.Contains(t, es.qty(decimal.RequireFromString("12345.5")), ",5")

	en := NewMarotoReportGenerator(language.English)
	assert.Equal(t, "25,000", en.money(decimal.NewFromInt(25000)))
}
