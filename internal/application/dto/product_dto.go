package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductLineRequest entrada para crear una línea de producto.
// El stock inicial queda registrado como InitialStock y como CurrentStock.
type CreateProductLineRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Category     string          `json:"category" validate:"required,min=1,max=100"`
	Unite        string          `json:"unite" validate:"required,min=1,max=20"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
}

// UpdateProductLineRequest entrada para actualizar una línea (sin stock: se mueve vía movimientos).
type UpdateProductLineRequest struct {
	Name      *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category  *string          `json:"category" validate:"omitempty,min=1,max=100"`
	Unite     *string          `json:"unite" validate:"omitempty,min=1,max=20"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	MinStock  *decimal.Decimal `json:"min_stock"`
}

// ProductLineResponse salida de una línea de producto.
type ProductLineResponse struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Unite        string          `json:"unite"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	InitialStock decimal.Decimal `json:"initial_stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductLineListResponse lista paginada de líneas de producto.
type ProductLineListResponse struct {
	Items []ProductLineResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// ProductImportResponse resultado de la importación masiva desde XLSX.
type ProductImportResponse struct {
	Created int                   `json:"created"`
	Items   []ProductLineResponse `json:"items"`
}
