package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-analytics/internal/domain/entity"
	"github.com/jhoicas/stock-analytics/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento de stock.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, product_line_id, user_product_id, user_id, type, quantity, previous_stock, new_stock, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	var userProductID *string
	if m.UserProductID != "" {
		userProductID = &m.UserProductID
	}
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductLineID, userProductID, m.UserID, m.Type,
		m.Quantity, m.PreviousStock, m.NewStock, m.Reason, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// FindMovements devuelve los movimientos de [From, To] con su línea de producto, por created_at ascendente.
func (r *StockMovementRepo) FindMovements(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT m.id, m.product_line_id, COALESCE(m.user_product_id::text, ''), m.user_id, m.type,
		       m.quantity, m.previous_stock, m.new_stock, m.reason, m.created_at,
		       pl.id, pl.user_id, pl.name, pl.category, pl.unite, pl.unit_price,
		       pl.current_stock, pl.min_stock, pl.initial_stock, pl.created_at, pl.updated_at
		FROM stock_movements m
		JOIN product_lines pl ON pl.id = m.product_line_id
		WHERE m.created_at BETWEEN $1 AND $2`)
	args := []any{f.From, f.To}
	if f.UserID != "" {
		args = append(args, f.UserID)
		fmt.Fprintf(&sb, " AND pl.user_id = $%d", len(args))
	}
	if f.ProductLineID != "" {
		args = append(args, f.ProductLineID)
		fmt.Fprintf(&sb, " AND m.product_line_id = $%d", len(args))
	}
	sb.WriteString(" ORDER BY m.created_at ASC, m.id ASC")

	rows, err := r.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("find stock movements: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.StockMovement, 0)
	for rows.Next() {
		var m entity.StockMovement
		var l entity.ProductLine
		if err := rows.Scan(
			&m.ID, &m.ProductLineID, &m.UserProductID, &m.UserID, &m.Type,
			&m.Quantity, &m.PreviousStock, &m.NewStock, &m.Reason, &m.CreatedAt,
			&l.ID, &l.UserID, &l.Name, &l.Category, &l.Unite, &l.UnitPrice,
			&l.CurrentStock, &l.MinStock, &l.InitialStock, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		m.ProductLine = &l
		list = append(list, &m)
	}
	return list, rows.Err()
}
