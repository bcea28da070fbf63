package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/stock-analytics/internal/domain/entity"
	"github.com/jhoicas/stock-analytics/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReplenishmentList(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	lines := store.Lines()
	for _, l := range []*entity.ProductLine{
		{ID: "ok", UserID: "u1", Name: "Sobrado", CurrentStock: decimal.NewFromInt(100), MinStock: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(1)},
		{ID: "quieto", UserID: "u1", Name: "Sin consumo", CurrentStock: decimal.NewFromInt(2), MinStock: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(1)},
		{ID: "rapido", UserID: "u1", Name: "Rápido", CurrentStock: decimal.NewFromInt(6), MinStock: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(2)},
	} {
		require.NoError(t, lines.Create(ctx, l))
	}
	// 60 unidades en la ventana de 30 días → 2/día → 3 días de cobertura
	require.NoError(t, store.StockMovements().Create(ctx, &entity.StockMovement{
		ID: "m1", ProductLineID: "rapido", UserID: "u1", Type: entity.MovementTypeOUT,
		Quantity: decimal.NewFromInt(60), CreatedAt: ahora.AddDate(0, 0, -3),
	}))

	uc := NewReplenishmentUseCase(lines, store.StockMovements())
	uc.now = func() time.Time { return ahora }

	out, err := uc.GenerateReplenishmentList(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, out, 2)

	first := out[0]
	assert.Equal(t, "rapido", first.ProductLineID)
	assert.Equal(t, 1, first.Priority)
	assert.True(t, first.DailyOutflow.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, int64(3), first.DaysUntilStockout)
	// ideal = 10*1.5 + 2*7 = 29; sugerido = 29 - 6 = 23
	assert.True(t, first.IdealStock.Equal(decimal.NewFromInt(29)))
	assert.True(t, first.SuggestedOrderQty.Equal(decimal.NewFromInt(23)))
	assert.True(t, first.EstimatedOrderCost.Equal(decimal.NewFromInt(46)))

	assert.Equal(t, "quieto", out[1].ProductLineID)
	assert.Equal(t, 2, out[1].Priority)
}

func TestGenerateReplenishmentList_Vacia(t *testing.T) {
	store := memory.NewStore()
	uc := NewReplenishmentUseCase(store.Lines(), store.StockMovements())

	out, err := uc.GenerateReplenishmentList(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}
