package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/stock-analytics/internal/domain/entity"
	"github.com/jhoicas/stock-analytics/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindMovements_FiltraYOrdena(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Lines().Create(ctx, &entity.ProductLine{ID: "p1", UserID: "u1", Name: "Tornillo", Category: "Ferretería"}))
	require.NoError(t, s.Lines().Create(ctx, &entity.ProductLine{ID: "p2", UserID: "u2", Name: "Cemento", Category: "Construcción"}))

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	movs := s.StockMovements()
	require.NoError(t, movs.Create(ctx, &entity.StockMovement{ID: "m2", ProductLineID: "p1", UserID: "u1", CreatedAt: base.Add(48 * time.Hour)}))
	require.NoError(t, movs.Create(ctx, &entity.StockMovement{ID: "m1", ProductLineID: "p1", UserID: "u1", CreatedAt: base}))
	require.NoError(t, movs.Create(ctx, &entity.StockMovement{ID: "m3", ProductLineID: "p2", UserID: "u2", CreatedAt: base.Add(time.Hour)}))

	got, err := movs.FindMovements(ctx, repository.MovementFilter{From: base, To: base.AddDate(0, 1, 0), UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "m1", got[0].ID)
	assert.Equal(t, "m2", got[1].ID)
	require.NotNil(t, got[0].ProductLine)
	assert.Equal(t, "Tornillo", got[0].ProductLine.Name)
}

func TestFindMovements_DuenoEsElDeLaLinea(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Lines().Create(ctx, &entity.ProductLine{ID: "p1", UserID: "u1", Name: "Tornillo"}))

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	// un admin registra el movimiento sobre la línea de u1
	require.NoError(t, s.StockMovements().Create(ctx, &entity.StockMovement{ID: "m1", ProductLineID: "p1", UserID: "admin", CreatedAt: base}))

	rango := repository.MovementFilter{From: base.AddDate(0, 0, -1), To: base.AddDate(0, 0, 1)}

	rango.UserID = "u1"
	got, err := s.StockMovements().FindMovements(ctx, rango)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "admin", got[0].UserID)

	rango.UserID = "admin"
	got, err = s.StockMovements().FindMovements(ctx, rango)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLinesDelete_BorraMovimientosEnCascada(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Lines().Create(ctx, &entity.ProductLine{ID: "p1", UserID: "u1"}))
	require.NoError(t, s.Lines().Create(ctx, &entity.ProductLine{ID: "p2", UserID: "u1"}))
	require.NoError(t, s.StockMovements().Create(ctx, &entity.StockMovement{ID: "m1", ProductLineID: "p1"}))
	require.NoError(t, s.StockMovements().Create(ctx, &entity.StockMovement{ID: "m2", ProductLineID: "p2"}))

	require.NoError(t, s.Lines().Delete(ctx, "p1"))

	movs := s.Movements()
	require.Len(t, movs, 1)
	assert.Equal(t, "m2", movs[0].ID)
}

func TestRun_RollbackAnteError(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Lines().Create(ctx, &entity.ProductLine{ID: "p1", CurrentStock: decimal.NewFromInt(10)}))
	boom := errors.New("boom")

	err := s.Run(ctx, func(lines repository.ProductLineRepository, movs repository.StockMovementRepository) error {
		require.NoError(t, lines.UpdateStock(ctx, "p1", decimal.NewFromInt(3)))
		require.NoError(t, movs.Create(ctx, &entity.StockMovement{ID: "m1", ProductLineID: "p1"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	line, err := s.Lines().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, line.CurrentStock.Equal(decimal.NewFromInt(10)))
	assert.Empty(t, s.Movements())
}

func TestUsers_EmailDuplicado(t *testing.T) {
	ctx := context.Background()
	users := NewStore().Users()
	require.NoError(t, users.Create(ctx, &entity.User{ID: "u1", Email: "a@b.co"}))
	assert.Error(t, users.Create(ctx, &entity.User{ID: "u2", Email: "a@b.co"}))

	missing, err := users.GetByID(ctx, "nadie")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
