package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stock-analytics/internal/application/dto"
	"github.com/jhoicas/stock-analytics/internal/domain"
	"github.com/jhoicas/stock-analytics/internal/domain/analytics"
	"github.com/jhoicas/stock-analytics/internal/domain/entity"
	"github.com/jhoicas/stock-analytics/internal/domain/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// RecordMovementUseCase registra movimientos de stock (IN, OUT) de forma transaccional,
// con bloqueo de fila (SELECT FOR UPDATE) sobre la línea de producto y Commit/Rollback.
type RecordMovementUseCase struct {
	txRunner     TxRunner
	movementRepo repository.StockMovementRepository
	cache        CacheInvalidator
	loc          *time.Location
	log          zerolog.Logger
	now          func() time.Time
}

// NewRecordMovementUseCase construye el caso de uso. cache puede ser nil.
func NewRecordMovementUseCase(
	txRunner TxRunner,
	movementRepo repository.StockMovementRepository,
	cache CacheInvalidator,
	loc *time.Location,
	log zerolog.Logger,
) *RecordMovementUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &RecordMovementUseCase{
		txRunner:     txRunner,
		movementRepo: movementRepo,
		cache:        cache,
		loc:          loc,
		log:          log,
		now:          time.Now,
	}
}

// MovementInput entrada para registrar un movimiento.
// Owner es el dueño exigido sobre la línea (vacío = administrador, sin restricción).
type MovementInput struct {
	UserID        string
	Owner         string
	ProductLineID string
	UserProductID string
	Type          string
	Quantity      decimal.Decimal
	Reason        string
}

// RecordMovement inicia una transacción, bloquea la línea de producto (SELECT FOR UPDATE),
// calcula newStock = previousStock ± quantity, guarda el movimiento y actualiza currentStock.
// Una salida mayor al stock disponible devuelve domain.ErrInsufficientStock sin escribir nada.
func (uc *RecordMovementUseCase) RecordMovement(ctx context.Context, input MovementInput) (*dto.MovementResponse, error) {
	switch input.Type {
	case entity.MovementTypeIN, entity.MovementTypeOUT:
	default:
		return nil, fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvalidInput, input.Type)
	}
	if input.ProductLineID == "" || input.UserID == "" {
		return nil, fmt.Errorf("%w: producto y usuario son obligatorios", domain.ErrInvalidInput)
	}
	if !input.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor a cero", domain.ErrInvalidInput)
	}

	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		ProductLineID: input.ProductLineID,
		UserProductID: input.UserProductID,
		UserID:        input.UserID,
		Type:          input.Type,
		Quantity:      input.Quantity,
		Reason:        input.Reason,
		CreatedAt:     uc.now(),
	}

	// Inicia transacción; Commit si todo ok, Rollback si algo falla (TxRunner.Run lo hace)
	err := uc.txRunner.Run(ctx, func(lineRepo repository.ProductLineRepository, movRepo repository.StockMovementRepository) error {
		// Bloquea la fila de la línea para evitar condiciones de carrera entre movimientos simultáneos
		line, err := lineRepo.GetForUpdate(ctx, input.ProductLineID)
		if err != nil {
			return err
		}
		if line == nil {
			return domain.ErrNotFound
		}
		if input.Owner != "" && line.UserID != input.Owner {
			return domain.ErrForbidden
		}

		mov.PreviousStock = line.CurrentStock
		if mov.IsIn() {
			mov.NewStock = line.CurrentStock.Add(input.Quantity)
		} else {
			if line.CurrentStock.LessThan(input.Quantity) {
				return domain.ErrInsufficientStock
			}
			mov.NewStock = line.CurrentStock.Sub(input.Quantity)
		}

		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		if err := lineRepo.UpdateStock(ctx, line.ID, mov.NewStock); err != nil {
			return err
		}
		line.CurrentStock = mov.NewStock
		mov.ProductLine = line
		return nil
	})
	if err != nil {
		return nil, err
	}

	// El movimiento ya está confirmado; una falla del caché solo deja resultados viejos hasta el TTL.
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx); err != nil {
			uc.log.Warn().Err(err).Str("movement_id", mov.ID).Msg("inventory: no se pudo invalidar el caché de analítica")
		}
	}
	uc.log.Info().
		Str("movement_id", mov.ID).
		Str("product_line_id", mov.ProductLineID).
		Str("type", mov.Type).
		Str("quantity", mov.Quantity.String()).
		Str("new_stock", mov.NewStock.String()).
		Msg("inventory: movimiento registrado")

	return toMovementResponse(mov), nil
}

// RecordMovementFromRequest adapta el request HTTP al caso de uso RecordMovement.
func (uc *RecordMovementUseCase) RecordMovementFromRequest(ctx context.Context, userID, owner string, in dto.RecordMovementRequest) (*dto.MovementResponse, error) {
	return uc.RecordMovement(ctx, MovementInput{
		UserID:        userID,
		Owner:         owner,
		ProductLineID: in.ProductLineID,
		UserProductID: in.UserProductID,
		Type:          in.Type,
		Quantity:      in.Quantity,
		Reason:        in.Reason,
	})
}

// ListMovements lista los movimientos del período (ownerID vacío = todos), en orden cronológico.
func (uc *RecordMovementUseCase) ListMovements(ctx context.Context, ownerID string, req dto.PeriodRequest) (*dto.MovementListResponse, error) {
	from, to, err := analytics.ParsePeriod(req.From, req.To, uc.now(), uc.loc)
	if err != nil {
		return nil, err
	}
	movs, err := uc.movementRepo.FindMovements(ctx, repository.MovementFilter{From: from, To: to, UserID: ownerID})
	if err != nil {
		uc.log.Error().Err(err).Str("user_id", ownerID).Msg("inventory: fallo al listar movimientos")
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		items = append(items, *toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Period: dto.PeriodDTO{From: from.Format(analytics.DateLayout), To: to.Format(analytics.DateLayout)},
		Items:  items,
	}, nil
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	out := &dto.MovementResponse{
		ID:            m.ID,
		ProductLineID: m.ProductLineID,
		UserProductID: m.UserProductID,
		UserID:        m.UserID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		Reason:        m.Reason,
		CreatedAt:     m.CreatedAt,
	}
	if m.ProductLine != nil {
		out.ProductName = m.ProductLine.Name
	}
	return out
}
