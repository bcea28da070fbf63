package dto

import "github.com/jhoicas/stock-analytics/internal/domain/analytics"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Contiene los totales del día y del mes en curso, más el Top-5 productos del mes.
type DashboardSummaryDTO struct {
	// Movimientos del día actual (00:00 – 23:59:59)
	Today analytics.Totals `json:"today"`

	// Movimientos del mes en curso (día 1 – hoy)
	Month analytics.Totals `json:"month"`

	// Top 5 productos por cantidad de movimientos del mes
	TopProducts []analytics.ProductPerformance `json:"top_products"`

	// Foto de stock de los productos movidos en el mes
	Overview analytics.StockOverview `json:"overview"`

	DateLabel string `json:"date_label"` // ej: "Febrero 2026"
}
