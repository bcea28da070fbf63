package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-analytics/internal/domain"
	"github.com/jhoicas/stock-analytics/internal/domain/entity"
	"github.com/jhoicas/stock-analytics/internal/domain/repository"
)

var _ repository.ProductLineRepository = (*ProductLineRepo)(nil)

const productLineColumns = `id, user_id, name, category, unite, unit_price, current_stock, min_stock, initial_stock, created_at, updated_at`

// ProductLineRepo implementación del puerto ProductLineRepository sobre PostgreSQL (usable con pool o tx).
type ProductLineRepo struct {
	q Querier
}

// NewProductLineRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductLineRepository(q Querier) *ProductLineRepo {
	return &ProductLineRepo{q: q}
}

// Create persiste una nueva línea de producto.
func (r *ProductLineRepo) Create(ctx context.Context, l *entity.ProductLine) error {
	query := `
		INSERT INTO product_lines (` + productLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.UserID, l.Name, l.Category, l.Unite, l.UnitPrice,
		l.CurrentStock, l.MinStock, l.InitialStock, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product line: %w", err)
	}
	return nil
}

// GetByID obtiene una línea por ID.
func (r *ProductLineRepo) GetByID(ctx context.Context, id string) (*entity.ProductLine, error) {
	return r.get(ctx, `SELECT `+productLineColumns+` FROM product_lines WHERE id = $1`, id)
}

// GetForUpdate obtiene la línea bloqueando la fila hasta el fin de la transacción.
// Serializa los movimientos concurrentes sobre la misma línea.
func (r *ProductLineRepo) GetForUpdate(ctx context.Context, id string) (*entity.ProductLine, error) {
	return r.get(ctx, `SELECT `+productLineColumns+` FROM product_lines WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductLineRepo) get(ctx context.Context, query, id string) (*entity.ProductLine, error) {
	l, err := scanProductLine(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product line: %w", err)
	}
	return l, nil
}

// Update actualiza los datos descriptivos. No toca current_stock ni initial_stock.
func (r *ProductLineRepo) Update(ctx context.Context, l *entity.ProductLine) error {
	query := `
		UPDATE product_lines SET name = $2, category = $3, unite = $4, unit_price = $5, min_stock = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, l.ID, l.Name, l.Category, l.Unite, l.UnitPrice, l.MinStock, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update product line: %w", err)
	}
	return nil
}

// UpdateStock actualiza solo el stock corriente (usado por el registro de movimientos).
func (r *ProductLineRepo) UpdateStock(ctx context.Context, id string, currentStock decimal.Decimal) error {
	_, err := r.q.Exec(ctx,
		`UPDATE product_lines SET current_stock = $2, updated_at = now() WHERE id = $1`,
		id, currentStock,
	)
	if err != nil {
		return fmt.Errorf("update product line stock: %w", err)
	}
	return nil
}

// ListByUser lista líneas por dueño con paginación. userID vacío lista todas.
func (r *ProductLineRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.ProductLine, error) {
	query := `
		SELECT ` + productLineColumns + `
		FROM product_lines WHERE ($1 = '' OR user_id::text = $1)
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list product lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductLine
	for rows.Next() {
		l, err := scanProductLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product line: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// Delete elimina una línea por ID. Los movimientos se borran por ON DELETE CASCADE.
func (r *ProductLineRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM product_lines WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product line: %w", err)
	}
	return nil
}

func scanProductLine(row pgx.Row) (*entity.ProductLine, error) {
	var l entity.ProductLine
	err := row.Scan(&l.ID, &l.UserID, &l.Name, &l.Category, &l.Unite, &l.UnitPrice,
		&l.CurrentStock, &l.MinStock, &l.InitialStock, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
