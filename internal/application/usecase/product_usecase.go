package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stock-analytics/internal/application/dto"
	"github.com/jhoicas/stock-analytics/internal/domain"
	"github.com/jhoicas/stock-analytics/internal/domain/entity"
	"github.com/jhoicas/stock-analytics/internal/domain/repository"
	"github.com/rs/zerolog"
)

// ProductUseCase casos de uso CRUD para líneas de producto. El stock se maneja vía movimientos.
//
// ownerID es el usuario que hace la petición; vacío significa administrador (sin restricción de dueño).
type ProductUseCase struct {
	repo  repository.ProductLineRepository
	cache AnalyticsCache
	log   zerolog.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductLineRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, cache: passthroughCache{}, log: zerolog.Nop()}
}

// WithCache invalida el caché de analítica cuando Update o Delete cambian datos ya agregados
// (nombre, categoría y precio viajan en cada movimiento; Delete borra movimientos en cascada).
func (uc *ProductUseCase) WithCache(cache AnalyticsCache, log zerolog.Logger) *ProductUseCase {
	if cache != nil {
		uc.cache = cache
	}
	uc.log = log
	return uc
}

// Create crea una línea de producto para userID. InitialStock queda igual al stock inicial.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductLineRequest) (*dto.ProductLineResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.UnitPrice.IsNegative() || in.CurrentStock.IsNegative() || in.MinStock.IsNegative() {
		return nil, fmt.Errorf("%w: precio y stock no pueden ser negativos", domain.ErrInvalidInput)
	}
	now := time.Now()
	line := &entity.ProductLine{
		ID:           uuid.New().String(),
		UserID:       userID,
		Name:         in.Name,
		Category:     in.Category,
		Unite:        in.Unite,
		UnitPrice:    in.UnitPrice,
		CurrentStock: in.CurrentStock,
		MinStock:     in.MinStock,
		InitialStock: in.CurrentStock,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, line); err != nil {
		return nil, err
	}
	return toProductLineResponse(line), nil
}

// Import crea en bloque las líneas leídas de una planilla. Valida todas las filas antes de
// persistir la primera, de modo que una fila inválida no deja la importación a medias.
func (uc *ProductUseCase) Import(ctx context.Context, userID string, rows []dto.CreateProductLineRequest) (*dto.ProductImportResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no hay filas para importar", domain.ErrInvalidInput)
	}
	for i, r := range rows {
		if r.Name == "" || r.Category == "" || r.Unite == "" {
			return nil, fmt.Errorf("%w: fila %d incompleta", domain.ErrInvalidInput, i+1)
		}
		if r.UnitPrice.IsNegative() || r.CurrentStock.IsNegative() || r.MinStock.IsNegative() {
			return nil, fmt.Errorf("%w: fila %d con valores negativos", domain.ErrInvalidInput, i+1)
		}
	}

	out := &dto.ProductImportResponse{Items: make([]dto.ProductLineResponse, 0, len(rows))}
	for _, r := range rows {
		created, err := uc.Create(ctx, userID, r)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, *created)
	}
	out.Created = len(out.Items)
	return out, nil
}

// GetByID obtiene una línea. ErrNotFound si no existe, ErrForbidden si es de otro dueño.
func (uc *ProductUseCase) GetByID(ctx context.Context, ownerID, id string) (*dto.ProductLineResponse, error) {
	line, err := uc.owned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return toProductLineResponse(line), nil
}

// Update actualiza los datos descriptivos. No permite modificar el stock.
func (uc *ProductUseCase) Update(ctx context.Context, ownerID, id string, in dto.UpdateProductLineRequest) (*dto.ProductLineResponse, error) {
	line, err := uc.owned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		line.Name = *in.Name
	}
	if in.Category != nil {
		line.Category = *in.Category
	}
	if in.Unite != nil {
		line.Unite = *in.Unite
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: precio negativo", domain.ErrInvalidInput)
		}
		line.UnitPrice = *in.UnitPrice
	}
	if in.MinStock != nil {
		if in.MinStock.IsNegative() {
			return nil, fmt.Errorf("%w: stock mínimo negativo", domain.ErrInvalidInput)
		}
		line.MinStock = *in.MinStock
	}
	line.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, line); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, id)
	return toProductLineResponse(line), nil
}

// List lista líneas del dueño con paginación (ownerID vacío lista todas).
func (uc *ProductUseCase) List(ctx context.Context, ownerID string, page dto.PageRequest) (*dto.ProductLineListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByUser(ctx, ownerID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductLineResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toProductLineResponse(l))
	}
	return &dto.ProductLineListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina una línea (y, por cascada en la DB, sus movimientos).
func (uc *ProductUseCase) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := uc.owned(ctx, ownerID, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx, id)
	return nil
}

func (uc *ProductUseCase) invalidate(ctx context.Context, id string) {
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.log.Warn().Err(err).Str("product_line_id", id).Msg("products: no se pudo invalidar el caché de analítica")
	}
}

func (uc *ProductUseCase) owned(ctx context.Context, ownerID, id string) (*entity.ProductLine, error) {
	line, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, domain.ErrNotFound
	}
	if ownerID != "" && line.UserID != ownerID {
		return nil, domain.ErrForbidden
	}
	return line, nil
}

func toProductLineResponse(l *entity.ProductLine) *dto.ProductLineResponse {
	if l == nil {
		return nil
	}
	return &dto.ProductLineResponse{
		ID:           l.ID,
		UserID:       l.UserID,
		Name:         l.Name,
		Category:     l.Category,
		Unite:        l.Unite,
		UnitPrice:    l.UnitPrice,
		CurrentStock: l.CurrentStock,
		MinStock:     l.MinStock,
		InitialStock: l.InitialStock,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

