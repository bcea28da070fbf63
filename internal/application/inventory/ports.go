package inventory

import (
	"context"

	"github.com/jhoicas/stock-analytics/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que el movimiento y el stock de la línea se escriben juntos o no se escriben.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		lineRepo repository.ProductLineRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

// CacheInvalidator descarta resultados de analítica cacheados tras una escritura.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}
