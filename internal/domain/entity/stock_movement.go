package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // salida / consumo
)

// StockMovement representa un cambio de stock registrado sobre una línea de producto.
// Es inmutable una vez creado.
type StockMovement struct {
	ID            string
	ProductLineID string
	UserProductID string
	UserID        string
	Type          string          // IN, OUT
	Quantity      decimal.Decimal // siempre >= 0; el signo lo da Type
	PreviousStock decimal.Decimal
	NewStock      decimal.Decimal
	Reason        string
	CreatedAt     time.Time

	// ProductLine es la línea asociada, cargada junto con el movimiento en las consultas de lectura.
	ProductLine *ProductLine
}

// IsIn indica si el movimiento suma stock.
func (m *StockMovement) IsIn() bool { return m.Type == MovementTypeIN }

// IsOut indica si el movimiento descuenta stock.
func (m *StockMovement) IsOut() bool { return m.Type == MovementTypeOUT }
