package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-analytics/internal/domain/entity"
)

// MovementFilter criterio de búsqueda de movimientos. From y To son inclusivos.
// UserID y ProductLineID vacíos no filtran.
type MovementFilter struct {
	From          time.Time
	To            time.Time
	UserID        string
	ProductLineID string
}

// StockMovementRepository define el puerto de persistencia para movimientos de stock (DIP).
type StockMovementRepository interface {
	// Create persiste un movimiento. Los movimientos son inmutables: no hay Update ni Delete.
	Create(ctx context.Context, movement *entity.StockMovement) error

	// FindMovements devuelve los movimientos del rango ordenados por created_at ascendente,
	// con la línea de producto asociada ya cargada en StockMovement.ProductLine.
	FindMovements(ctx context.Context, filter MovementFilter) ([]*entity.StockMovement, error)
}
