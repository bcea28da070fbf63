package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordMovementRequest body para POST /api/movements.
type RecordMovementRequest struct {
	ProductLineID string          `json:"product_line_id" validate:"required,uuid"`
	UserProductID string          `json:"user_product_id,omitempty"`
	Type          string          `json:"type" validate:"required,oneof=IN OUT"`
	Quantity      decimal.Decimal `json:"quantity"`
	Reason        string          `json:"reason" validate:"omitempty,max=500"`
}

// MovementResponse salida de un movimiento registrado.
type MovementResponse struct {
	ID            string          `json:"id"`
	ProductLineID string          `json:"product_line_id"`
	ProductName   string          `json:"product_name,omitempty"`
	UserProductID string          `json:"user_product_id,omitempty"`
	UserID        string          `json:"user_id"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	PreviousStock decimal.Decimal `json:"previous_stock"`
	NewStock      decimal.Decimal `json:"new_stock"`
	Reason        string          `json:"reason"`
	CreatedAt     time.Time       `json:"created_at"`
}

// MovementListResponse movimientos de un período.
type MovementListResponse struct {
	Period PeriodDTO          `json:"period"`
	Items  []MovementResponse `json:"items"`
}

// ReplenishmentSuggestionDTO sugerencia de reposición para una línea en o bajo su stock mínimo.
type ReplenishmentSuggestionDTO struct {
	ProductLineID      string          `json:"product_line_id"`
	ProductName        string          `json:"product_name"`
	Category           string          `json:"category"`
	CurrentStock       decimal.Decimal `json:"current_stock"`
	MinStock           decimal.Decimal `json:"min_stock"`
	IdealStock         decimal.Decimal `json:"ideal_stock"`          // MinStock * 1.5 + pedido recomendado a 7 días
	SuggestedOrderQty  decimal.Decimal `json:"suggested_order_qty"`  // IdealStock - CurrentStock
	UnitPrice          decimal.Decimal `json:"unit_price"`
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // SuggestedOrderQty * UnitPrice
	DailyOutflow       decimal.Decimal `json:"daily_outflow"`        // salidas de los últimos 30 días / 30
	DaysUntilStockout  int64           `json:"days_until_stockout"`  // 0 si no hay consumo
	Priority           int             `json:"priority"`             // 1 = más urgente
}
