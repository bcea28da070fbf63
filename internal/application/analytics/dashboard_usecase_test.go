package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-analytics/internal/domain/entity"
	"github.com/jhoicas/stock-analytics/internal/infrastructure/memory"
)

var hoy = time.Date(2026, 2, 14, 15, 30, 0, 0, time.UTC)

func seedDashboard(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	for _, l := range []*entity.ProductLine{
		{ID: "p1", UserID: "u1", Name: "Tornillo", Category: "Ferretería", CurrentStock: decimal.NewFromInt(4), MinStock: decimal.NewFromInt(5), InitialStock: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(100)},
		{ID: "p2", UserID: "u2", Name: "Cemento", Category: "Construcción", CurrentStock: decimal.NewFromInt(50), InitialStock: decimal.NewFromInt(50), UnitPrice: decimal.NewFromInt(10)},
	} {
		require.NoError(t, store.Lines().Create(ctx, l))
	}
	movs := []entity.StockMovement{
		{ID: "m1", ProductLineID: "p1", UserID: "u1", Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(6), CreatedAt: hoy.AddDate(0, 0, -10)},
		{ID: "m2", ProductLineID: "p1", UserID: "u1", Type: entity.MovementTypeOUT, Quantity: decimal.NewFromInt(2), CreatedAt: hoy.Add(-2 * time.Hour)},
		{ID: "m3", ProductLineID: "p2", UserID: "u2", Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(5), CreatedAt: hoy.Add(-time.Hour)},
		// mes anterior: fuera del resumen
		{ID: "m0", ProductLineID: "p1", UserID: "u1", Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(100), CreatedAt: hoy.AddDate(0, -1, 0)},
	}
	for i := range movs {
		require.NoError(t, store.StockMovements().Create(ctx, &movs[i]))
	}
	return store
}

func newDashboard(store *memory.Store) *DashboardUseCase {
	uc := NewDashboardUseCase(store.StockMovements(), time.UTC, zerolog.Nop())
	uc.now = func() time.Time { return hoy }
	return uc
}

func TestGetSummary_HoyYMes(t *testing.T) {
	uc := newDashboard(seedDashboard(t))

	out, err := uc.GetSummary(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, 2, out.Today.MovementCount)
	assert.True(t, out.Today.TotalIn.Equal(decimal.NewFromInt(5)))
	assert.True(t, out.Today.TotalOut.Equal(decimal.NewFromInt(2)))

	assert.Equal(t, 3, out.Month.MovementCount)
	assert.True(t, out.Month.Net.Equal(decimal.NewFromInt(9)))

	require.Len(t, out.TopProducts, 2)
	assert.Equal(t, "p1", out.TopProducts[0].ProductLineID)
	assert.Equal(t, 2, out.Overview.TotalProducts)
	assert.Equal(t, 1, out.Overview.LowStockProducts)
	assert.Equal(t, "Febrero 2026", out.DateLabel)
}

func TestGetSummary_FiltraPorOwner(t *testing.T) {
	uc := newDashboard(seedDashboard(t))

	out, err := uc.GetSummary(context.Background(), "u2")
	require.NoError(t, err)
	assert.Equal(t, 1, out.Month.MovementCount)
	require.Len(t, out.TopProducts, 1)
	assert.Equal(t, "Cemento", out.TopProducts[0].ProductName)
}

func TestGetSummary_PropagaError(t *testing.T) {
	store := seedDashboard(t)
	store.FindErr = errors.New("db caída")

	_, err := newDashboard(store).GetSummary(context.Background(), "")
	assert.ErrorContains(t, err, "db caída")
}
