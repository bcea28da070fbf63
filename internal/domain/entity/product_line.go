package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductLine representa un artículo inventariable con su nivel de stock corriente.
// CurrentStock lo actualiza el registro de movimientos: siempre refleja el NewStock
// del último StockMovement creado para la línea.
type ProductLine struct {
	ID           string
	UserID       string // dueño
	Name         string
	Category     string
	Unite        string // etiqueta de unidad (kg, und, caja...)
	UnitPrice    decimal.Decimal
	CurrentStock decimal.Decimal
	MinStock     decimal.Decimal
	InitialStock decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
