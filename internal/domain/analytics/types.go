package analytics

import (
	"time"

	"github.com/jhoicas/stock-analytics/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Totals acumulados de un conjunto de movimientos.
type Totals struct {
	TotalIn       decimal.Decimal `json:"total_in"`
	TotalOut      decimal.Decimal `json:"total_out"`
	Net           decimal.Decimal `json:"net"` // TotalIn - TotalOut
	MovementCount int             `json:"movement_count"`
}

// Plus devuelve la suma campo a campo de t y o.
func (t Totals) Plus(o Totals) Totals {
	return Totals{
		TotalIn:       t.TotalIn.Add(o.TotalIn),
		TotalOut:      t.TotalOut.Add(o.TotalOut),
		Net:           t.Net.Add(o.Net),
		MovementCount: t.MovementCount + o.MovementCount,
	}
}

func (t *Totals) add(m *entity.StockMovement) {
	switch m.Type {
	case entity.MovementTypeIN:
		t.TotalIn = t.TotalIn.Add(m.Quantity)
	case entity.MovementTypeOUT:
		t.TotalOut = t.TotalOut.Add(m.Quantity)
	}
	t.Net = t.TotalIn.Sub(t.TotalOut)
	t.MovementCount++
}

// MovementRecord copia plana de un movimiento, apta para serializar sin referencias vivas.
type MovementRecord struct {
	ID            string          `json:"id"`
	ProductLineID string          `json:"product_line_id"`
	ProductName   string          `json:"product_name"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	PreviousStock decimal.Decimal `json:"previous_stock"`
	NewStock      decimal.Decimal `json:"new_stock"`
	Reason        string          `json:"reason"`
	CreatedAt     time.Time       `json:"created_at"`
}

// DailyBucket movimientos agrupados por fecha calendario.
type DailyBucket struct {
	Date      string           `json:"date"` // YYYY-MM-DD
	StockIn   decimal.Decimal  `json:"stock_in"`
	StockOut  decimal.Decimal  `json:"stock_out"`
	Net       decimal.Decimal  `json:"net"`
	Movements []MovementRecord `json:"movements"`
}

// MonthlySummary resumen de un mes calendario.
type MonthlySummary struct {
	Year        int `json:"year"`
	Month       int `json:"month"`
	DaysInMonth int `json:"days_in_month"`
	Totals
	AverageDaily decimal.Decimal `json:"average_daily"` // MovementCount / DaysInMonth
}

// MonthlyEntry resumen mensual dentro del reporte anual, con etiqueta corta del mes.
type MonthlyEntry struct {
	MonthlySummary
	MonthName string `json:"month_name"`
}

// YearlyReport doce resúmenes mensuales (enero a diciembre) más el total del año.
type YearlyReport struct {
	Year         int            `json:"year"`
	Months       []MonthlyEntry `json:"months"`
	YearlyTotals Totals         `json:"yearly_totals"`
}

// CategoryStat acumulado por categoría de producto.
type CategoryStat struct {
	Category string `json:"category"`
	Totals
	Products   []string        `json:"products"`   // nombres distintos, en orden de aparición
	Percentage decimal.Decimal `json:"percentage"` // % del total de movimientos
}

// ProductPerformance acumulado por línea de producto con foto del stock y precio actuales.
type ProductPerformance struct {
	ProductLineID string `json:"product_line_id"`
	ProductName   string `json:"product_name"`
	Category      string `json:"category"`
	Unite         string `json:"unite"`
	Totals
	CurrentStock decimal.Decimal `json:"current_stock"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
}

// StockOverview foto del stock de las líneas que tuvieron movimientos en el rango.
type StockOverview struct {
	TotalProducts     int             `json:"total_products"`
	TotalStockValue   decimal.Decimal `json:"total_stock_value"`
	LowStockProducts  int             `json:"low_stock_products"`
	HighStockProducts int             `json:"high_stock_products"`
}

// ForecastResult proyección lineal de consumo para una línea de producto.
type ForecastResult struct {
	ProductLineID     string          `json:"product_line_id"`
	ProductName       string          `json:"product_name"`
	CurrentStock      decimal.Decimal `json:"current_stock"`
	Days              int             `json:"days"`
	DailyOutflow      decimal.Decimal `json:"daily_outflow"`
	DaysUntilStockout int64           `json:"days_until_stockout"`
	RecommendedOrder  decimal.Decimal `json:"recommended_order"`
}
