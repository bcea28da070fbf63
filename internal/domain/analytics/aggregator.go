// Package analytics contiene el agregador de movimientos de stock: funciones puras que
// convierten una lista de movimientos en resúmenes diarios, mensuales, anuales, por
// categoría, por producto, la foto de stock actual y el pronóstico de consumo.
//
// Ninguna función modifica su entrada ni accede a la base de datos; la obtención de
// movimientos la hace la capa de aplicación.
package analytics

import (
	"sort"
	"time"

	"github.com/jhoicas/stock-analytics/internal/domain/entity"
	"github.com/shopspring/decimal"
)

const forecastCoverDays = 7 // días de cobertura para el pedido recomendado

var (
	hundred        = decimal.NewFromInt(100)
	highStockRatio = decimal.NewFromFloat(0.8)
)

// Summarize acumula entradas, salidas, neto y cantidad de movimientos.
func Summarize(movs []*entity.StockMovement) Totals {
	t := zeroTotals()
	for _, m := range movs {
		t.add(m)
	}
	return t
}

// DailyMovements agrupa por fecha calendario de CreatedAt expresada en loc.
// Con loc nil se usa la zona horaria propia de cada timestamp.
// Devuelve un bucket por fecha con al menos un movimiento, en orden ascendente;
// dentro de cada bucket se conserva el orden de entrada.
func DailyMovements(movs []*entity.StockMovement, loc *time.Location) []DailyBucket {
	index := make(map[string]int)
	buckets := make([]DailyBucket, 0)

	for _, m := range movs {
		ts := m.CreatedAt
		if loc != nil {
			ts = ts.In(loc)
		}
		key := ts.Format(DateLayout)

		i, ok := index[key]
		if !ok {
			buckets = append(buckets, DailyBucket{
				Date:      key,
				StockIn:   decimal.Zero,
				StockOut:  decimal.Zero,
				Net:       decimal.Zero,
				Movements: []MovementRecord{},
			})
			i = len(buckets) - 1
			index[key] = i
		}

		b := &buckets[i]
		switch m.Type {
		case entity.MovementTypeIN:
			b.StockIn = b.StockIn.Add(m.Quantity)
		case entity.MovementTypeOUT:
			b.StockOut = b.StockOut.Add(m.Quantity)
		}
		b.Net = b.StockIn.Sub(b.StockOut)
		b.Movements = append(b.Movements, toRecord(m))
	}

	// YYYY-MM-DD ordena igual lexicográfica y cronológicamente.
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Date < buckets[j].Date
	})
	return buckets
}

// NewMonthlySummary pliega los movimientos del mes y agrega el promedio diario
// (cantidad de movimientos / días del mes).
func NewMonthlySummary(year int, month time.Month, movs []*entity.StockMovement) MonthlySummary {
	days := DaysIn(year, month)
	t := Summarize(movs)
	return MonthlySummary{
		Year:         year,
		Month:        int(month),
		DaysInMonth:  days,
		Totals:       t,
		AverageDaily: decimal.NewFromInt(int64(t.MovementCount)).Div(decimal.NewFromInt(int64(days))),
	}
}

// BuildYearlyReport ensambla el reporte anual a partir de los resúmenes mensuales.
// Los meses se ordenan de enero a diciembre sin importar el orden de llegada.
func BuildYearlyReport(year int, months []MonthlySummary) YearlyReport {
	sorted := make([]MonthlySummary, len(months))
	copy(sorted, months)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Month < sorted[j].Month })

	report := YearlyReport{
		Year:         year,
		Months:       make([]MonthlyEntry, 0, len(sorted)),
		YearlyTotals: zeroTotals(),
	}
	for _, ms := range sorted {
		report.Months = append(report.Months, MonthlyEntry{
			MonthlySummary: ms,
			MonthName:      ShortMonthName(time.Month(ms.Month)),
		})
		report.YearlyTotals = report.YearlyTotals.Plus(ms.Totals)
	}
	return report
}

// CategoryStats agrupa por categoría de la línea de producto, en orden de aparición.
// Percentage es la participación de cada categoría en el total de movimientos
// (0 si no hay movimientos).
func CategoryStats(movs []*entity.StockMovement) []CategoryStat {
	index := make(map[string]int)
	seen := make(map[string]map[string]struct{})
	stats := make([]CategoryStat, 0)

	for _, m := range movs {
		line := lineOf(m)
		i, ok := index[line.Category]
		if !ok {
			stats = append(stats, CategoryStat{
				Category:   line.Category,
				Totals:     zeroTotals(),
				Products:   []string{},
				Percentage: decimal.Zero,
			})
			i = len(stats) - 1
			index[line.Category] = i
			seen[line.Category] = make(map[string]struct{})
		}
		s := &stats[i]
		s.add(m)
		if _, dup := seen[line.Category][line.Name]; !dup {
			seen[line.Category][line.Name] = struct{}{}
			s.Products = append(s.Products, line.Name)
		}
	}

	total := 0
	for _, s := range stats {
		total += s.MovementCount
	}
	if total == 0 {
		return stats
	}
	totalDec := decimal.NewFromInt(int64(total))
	for i := range stats {
		stats[i].Percentage = decimal.NewFromInt(int64(stats[i].MovementCount)).Mul(hundred).Div(totalDec)
	}
	return stats
}

// RankProducts agrupa por línea de producto y ordena por cantidad de movimientos descendente.
// El orden es estable: en empate se respeta el orden de aparición. Si limit > 0 se trunca.
// CurrentStock y UnitPrice corresponden a la última línea vista en la entrada.
func RankProducts(movs []*entity.StockMovement, limit int) []ProductPerformance {
	index := make(map[string]int)
	perf := make([]ProductPerformance, 0)

	for _, m := range movs {
		line := lineOf(m)
		i, ok := index[m.ProductLineID]
		if !ok {
			perf = append(perf, ProductPerformance{
				ProductLineID: m.ProductLineID,
				Totals:        zeroTotals(),
			})
			i = len(perf) - 1
			index[m.ProductLineID] = i
		}
		p := &perf[i]
		p.add(m)
		p.ProductName = line.Name
		p.Category = line.Category
		p.Unite = line.Unite
		p.CurrentStock = line.CurrentStock
		p.UnitPrice = line.UnitPrice
	}

	sort.SliceStable(perf, func(i, j int) bool {
		return perf[i].MovementCount > perf[j].MovementCount
	})
	if limit > 0 && len(perf) > limit {
		perf = perf[:limit]
	}
	return perf
}

// Overview calcula la foto de stock sobre las líneas que tuvieron al menos un movimiento.
// Las líneas sin movimientos en el rango no cuentan.
func Overview(movs []*entity.StockMovement) StockOverview {
	lines := make(map[string]entity.ProductLine)
	order := make([]string, 0)
	for _, m := range movs {
		if _, ok := lines[m.ProductLineID]; !ok {
			order = append(order, m.ProductLineID)
		}
		lines[m.ProductLineID] = lineOf(m)
	}

	out := StockOverview{TotalStockValue: decimal.Zero}
	for _, id := range order {
		l := lines[id]
		out.TotalProducts++
		out.TotalStockValue = out.TotalStockValue.Add(l.CurrentStock.Mul(l.UnitPrice))
		if l.CurrentStock.LessThanOrEqual(l.MinStock) {
			out.LowStockProducts++
		}
		if l.CurrentStock.GreaterThan(l.InitialStock.Mul(highStockRatio)) {
			out.HighStockProducts++
		}
	}
	return out
}

// Forecast proyecta el consumo de una línea a partir de las salidas de la ventana de days días.
//
//	dailyOutflow      = Σ OUT / days (promedio plano)
//	daysUntilStockout = floor(currentStock / dailyOutflow), 0 si no hay consumo
//	recommendedOrder  = dailyOutflow × 7
func Forecast(product *entity.ProductLine, movs []*entity.StockMovement, days int) ForecastResult {
	out := ForecastResult{
		ProductLineID:    product.ID,
		ProductName:      product.Name,
		CurrentStock:     product.CurrentStock,
		Days:             days,
		DailyOutflow:     decimal.Zero,
		RecommendedOrder: decimal.Zero,
	}
	if days <= 0 {
		return out
	}

	totalOut := decimal.Zero
	for _, m := range movs {
		if m.IsOut() {
			totalOut = totalOut.Add(m.Quantity)
		}
	}
	out.DailyOutflow = totalOut.Div(decimal.NewFromInt(int64(days)))
	if out.DailyOutflow.IsPositive() {
		out.DaysUntilStockout = product.CurrentStock.Div(out.DailyOutflow).Floor().IntPart()
	}
	out.RecommendedOrder = out.DailyOutflow.Mul(decimal.NewFromInt(forecastCoverDays))
	return out
}

func zeroTotals() Totals {
	return Totals{TotalIn: decimal.Zero, TotalOut: decimal.Zero, Net: decimal.Zero}
}

func lineOf(m *entity.StockMovement) entity.ProductLine {
	if m.ProductLine == nil {
		return entity.ProductLine{ID: m.ProductLineID}
	}
	return *m.ProductLine
}

func toRecord(m *entity.StockMovement) MovementRecord {
	return MovementRecord{
		ID:            m.ID,
		ProductLineID: m.ProductLineID,
		ProductName:   lineOf(m).Name,
		Type:          m.Type,
		Quantity:      m.Quantity,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		Reason:        m.Reason,
		CreatedAt:     m.CreatedAt,
	}
}
