package inventory

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/jhoicas/stock-analytics/internal/application/dto"
	"github.com/jhoicas/stock-analytics/internal/domain/analytics"
	"github.com/jhoicas/stock-analytics/internal/domain/entity"
	"github.com/jhoicas/stock-analytics/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const (
	replenishmentWindowDays = 30
	replenishmentMaxLines   = 1000
)

var idealStockFactor = decimal.NewFromFloat(1.5)

// ReplenishmentUseCase genera la lista de reposición de un dueño.
// Combina el stock de cada línea con su consumo reciente para priorizar las críticas.
type ReplenishmentUseCase struct {
	lineRepo     repository.ProductLineRepository
	movementRepo repository.StockMovementRepository
	now          func() time.Time
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(
	lineRepo repository.ProductLineRepository,
	movementRepo repository.StockMovementRepository,
) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{
		lineRepo:     lineRepo,
		movementRepo: movementRepo,
		now:          time.Now,
	}
}

// GenerateReplenishmentList devuelve las líneas con stock en o bajo el mínimo, con la cantidad
// sugerida de pedido y un ranking de prioridad basado en días hasta agotarse y consumo diario.
// ownerID vacío considera todas las líneas.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context, ownerID string) ([]dto.ReplenishmentSuggestionDTO, error) {
	// 1. Líneas en o bajo el stock mínimo
	lines, err := uc.lineRepo.ListByUser(ctx, ownerID, replenishmentMaxLines, 0)
	if err != nil {
		return nil, err
	}
	low := make([]*entity.ProductLine, 0)
	for _, l := range lines {
		if l.CurrentStock.LessThanOrEqual(l.MinStock) {
			low = append(low, l)
		}
	}
	if len(low) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	// 2. Movimientos de la ventana, agrupados por línea
	end := uc.now()
	start := end.AddDate(0, 0, -replenishmentWindowDays)
	movs, err := uc.movementRepo.FindMovements(ctx, repository.MovementFilter{From: start, To: end, UserID: ownerID})
	if err != nil {
		return nil, err
	}
	byLine := make(map[string][]*entity.StockMovement)
	for _, m := range movs {
		byLine[m.ProductLineID] = append(byLine[m.ProductLineID], m)
	}

	// 3. Construir los DTOs con el pronóstico de cada línea
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(low))
	for _, l := range low {
		f := analytics.Forecast(l, byLine[l.ID], replenishmentWindowDays)

		idealStock := l.MinStock.Mul(idealStockFactor).Add(f.RecommendedOrder)
		suggestedQty := idealStock.Sub(l.CurrentStock)
		if suggestedQty.LessThanOrEqual(decimal.Zero) {
			suggestedQty = decimal.Zero
		}

		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductLineID:      l.ID,
			ProductName:        l.Name,
			Category:           l.Category,
			CurrentStock:       l.CurrentStock,
			MinStock:           l.MinStock,
			IdealStock:         idealStock,
			SuggestedOrderQty:  suggestedQty,
			UnitPrice:          l.UnitPrice,
			EstimatedOrderCost: suggestedQty.Mul(l.UnitPrice),
			DailyOutflow:       f.DailyOutflow,
			DaysUntilStockout:  f.DaysUntilStockout,
		})
	}

	// 4. Ordenar: primero las que se agotan antes (sin consumo van al final), luego mayor consumo diario,
	//    finalmente mayor déficit bajo el mínimo.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if da, db := runway(a), runway(b); da != db {
			return da < db
		}
		if !a.DailyOutflow.Equal(b.DailyOutflow) {
			return a.DailyOutflow.GreaterThan(b.DailyOutflow)
		}
		defA := a.MinStock.Sub(a.CurrentStock)
		defB := b.MinStock.Sub(b.CurrentStock)
		return defA.GreaterThan(defB)
	})

	// 5. Asignar prioridad (1 = más urgente)
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}

// runway días hasta agotarse; sin consumo la línea no se agota.
func runway(s dto.ReplenishmentSuggestionDTO) int64 {
	if !s.DailyOutflow.IsPositive() {
		return math.MaxInt64
	}
	return s.DaysUntilStockout
}
