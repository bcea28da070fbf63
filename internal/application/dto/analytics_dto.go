package dto

import "github.com/jhoicas/stock-analytics/internal/domain/analytics"

// ── Query parameters ──────────────────────────────────────────────────────────

// PeriodRequest rango de fechas para consultas de analítica y listados de movimientos.
type PeriodRequest struct {
	From   string `query:"from"`    // YYYY-MM-DD; por defecto primer día del mes actual
	To     string `query:"to"`      // YYYY-MM-DD; por defecto hoy (inclusive)
	UserID string `query:"user_id"` // solo admin: filtra por dueño
}

// MonthRequest parámetros para GET /api/analytics/monthly.
type MonthRequest struct {
	Year   int    `query:"year" validate:"omitempty,min=1970,max=9999"` // por defecto año actual
	Month  int    `query:"month" validate:"omitempty,min=1,max=12"`     // por defecto mes actual
	UserID string `query:"user_id"`
}

// YearRequest parámetros para GET /api/analytics/yearly y los reportes anuales.
type YearRequest struct {
	Year   int    `query:"year" validate:"omitempty,min=1970,max=9999"`
	UserID string `query:"user_id"`
}

// ProductPerformanceRequest parámetros para GET /api/analytics/products.
type ProductPerformanceRequest struct {
	From   string `query:"from"`
	To     string `query:"to"`
	UserID string `query:"user_id"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=100"` // default 10
}

// Period devuelve el rango como PeriodRequest.
func (r ProductPerformanceRequest) Period() PeriodRequest {
	return PeriodRequest{From: r.From, To: r.To, UserID: r.UserID}
}

// ForecastRequest parámetros para GET /api/analytics/forecast/:productId.
type ForecastRequest struct {
	Days int `query:"days" validate:"omitempty,min=1,max=365"` // ventana en días, default 30
}

// ── Respuestas ────────────────────────────────────────────────────────────────

// PeriodDTO rango de fechas efectivamente consultado.
type PeriodDTO struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// DailyMovementsDTO respuesta de GET /api/analytics/daily.
type DailyMovementsDTO struct {
	Period PeriodDTO               `json:"period"`
	Days   []analytics.DailyBucket `json:"days"`
}

// CategoryStatsDTO respuesta de GET /api/analytics/categories.
type CategoryStatsDTO struct {
	Period     PeriodDTO                `json:"period"`
	Categories []analytics.CategoryStat `json:"categories"`
}

// ProductPerformanceDTO respuesta de GET /api/analytics/products.
type ProductPerformanceDTO struct {
	Period   PeriodDTO                      `json:"period"`
	Limit    int                            `json:"limit"`
	Products []analytics.ProductPerformance `json:"products"`
}

// StockOverviewDTO respuesta de GET /api/analytics/overview.
type StockOverviewDTO struct {
	Period PeriodDTO `json:"period"`
	analytics.StockOverview
}
