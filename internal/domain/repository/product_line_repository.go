package repository

import (
	"context"

	"github.com/jhoicas/stock-analytics/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductLineRepository define el puerto de persistencia para ProductLine (DIP).
// GetByID y GetForUpdate devuelven (nil, nil) cuando la línea no existe.
type ProductLineRepository interface {
	Create(ctx context.Context, line *entity.ProductLine) error
	GetByID(ctx context.Context, id string) (*entity.ProductLine, error)
	// GetForUpdate obtiene la línea bloqueando la fila (SELECT FOR UPDATE); solo tiene sentido dentro de una tx.
	GetForUpdate(ctx context.Context, id string) (*entity.ProductLine, error)
	// Update actualiza los datos descriptivos. No modifica CurrentStock (se maneja vía movimientos).
	Update(ctx context.Context, line *entity.ProductLine) error
	UpdateStock(ctx context.Context, id string, currentStock decimal.Decimal) error
	// ListByUser lista las líneas de un dueño; userID vacío lista todas.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.ProductLine, error)
	Delete(ctx context.Context, id string) error
}
