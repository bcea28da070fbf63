package usecase

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/jhoicas/stock-analytics/internal/application/dto"
	"github.com/jhoicas/stock-analytics/internal/domain"
	"github.com/jhoicas/stock-analytics/internal/domain/analytics"
	"github.com/jhoicas/stock-analytics/internal/domain/entity"
	"github.com/jhoicas/stock-analytics/internal/domain/repository"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	defaultProductLimit = 10
	maxProductLimit     = 100
	defaultForecastDays = 30
)

// AnalyticsCache caché de resultados de analítica. FetchJSON llena dest desde el caché
// o invocando loader; Invalidate descarta todo lo cacheado.
type AnalyticsCache interface {
	FetchJSON(ctx context.Context, dest any, loader func(context.Context) (any, error), parts ...string) error
	Invalidate(ctx context.Context) error
}

// AnalyticsUseCase obtiene movimientos del store y los pliega con el agregador de dominio.
//
// Reglas:
//   - Un error del store se registra y se devuelve sin modificar; no hay reintentos ni resultados parciales.
//   - ownerID vacío consulta los movimientos de todos los usuarios.
//   - Las fechas calendario se calculan en la zona horaria configurada.
type AnalyticsUseCase struct {
	movementRepo repository.StockMovementRepository
	productRepo  repository.ProductLineRepository
	cache        AnalyticsCache
	loc          *time.Location
	log          zerolog.Logger
	now          func() time.Time
}

// NewAnalyticsUseCase construye el caso de uso. cache puede ser nil (sin caché); loc nil equivale a UTC.
func NewAnalyticsUseCase(
	movementRepo repository.StockMovementRepository,
	productRepo repository.ProductLineRepository,
	cache AnalyticsCache,
	loc *time.Location,
	log zerolog.Logger,
) *AnalyticsUseCase {
	if cache == nil {
		cache = passthroughCache{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &AnalyticsUseCase{
		movementRepo: movementRepo,
		productRepo:  productRepo,
		cache:        cache,
		loc:          loc,
		log:          log,
		now:          time.Now,
	}
}

// GetDailyMovements agrupa los movimientos del período por fecha calendario.
func (uc *AnalyticsUseCase) GetDailyMovements(ctx context.Context, ownerID string, req dto.PeriodRequest) (*dto.DailyMovementsDTO, error) {
	from, to, err := analytics.ParsePeriod(req.From, req.To, uc.now(), uc.loc)
	if err != nil {
		return nil, err
	}
	var out dto.DailyMovementsDTO
	err = uc.cache.FetchJSON(ctx, &out, func(ctx context.Context) (any, error) {
		movs, err := uc.findMovements(ctx, "daily", repository.MovementFilter{From: from, To: to, UserID: ownerID})
		if err != nil {
			return nil, err
		}
		return dto.DailyMovementsDTO{
			Period: periodDTO(from, to),
			Days:   analytics.DailyMovements(movs, uc.loc),
		}, nil
	}, "daily", ownerKey(ownerID), stamp(from), stamp(to))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetMonthlySummary resume un mes calendario (ambos extremos inclusivos).
func (uc *AnalyticsUseCase) GetMonthlySummary(ctx context.Context, ownerID string, year, month int) (*analytics.MonthlySummary, error) {
	if err := validateYearMonth(year, month); err != nil {
		return nil, err
	}
	var out analytics.MonthlySummary
	err := uc.cache.FetchJSON(ctx, &out, func(ctx context.Context) (any, error) {
		return uc.monthlySummary(ctx, ownerID, year, time.Month(month))
	}, "monthly", ownerKey(ownerID), strconv.Itoa(year), strconv.Itoa(month))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetYearlyReport calcula los doce meses en paralelo. Cada resultado se guarda en su índice,
// por lo que el orden es enero..diciembre sin importar cuál termina primero.
// Un solo mes fallido hace fallar el reporte completo.
func (uc *AnalyticsUseCase) GetYearlyReport(ctx context.Context, ownerID string, year int) (*analytics.YearlyReport, error) {
	if err := validateYearMonth(year, 1); err != nil {
		return nil, err
	}
	var out analytics.YearlyReport
	err := uc.cache.FetchJSON(ctx, &out, func(ctx context.Context) (any, error) {
		months := make([]analytics.MonthlySummary, 12)
		g, gctx := errgroup.WithContext(ctx)
		for i := range months {
			month := time.Month(i + 1)
			g.Go(func() error {
				ms, err := uc.monthlySummary(gctx, ownerID, year, month)
				if err != nil {
					return err
				}
				months[i] = ms
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return analytics.BuildYearlyReport(year, months), nil
	}, "yearly", ownerKey(ownerID), strconv.Itoa(year))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCategoryStats agrupa los movimientos del período por categoría.
func (uc *AnalyticsUseCase) GetCategoryStats(ctx context.Context, ownerID string, req dto.PeriodRequest) (*dto.CategoryStatsDTO, error) {
	from, to, err := analytics.ParsePeriod(req.From, req.To, uc.now(), uc.loc)
	if err != nil {
		return nil, err
	}
	var out dto.CategoryStatsDTO
	err = uc.cache.FetchJSON(ctx, &out, func(ctx context.Context) (any, error) {
		movs, err := uc.findMovements(ctx, "categories", repository.MovementFilter{From: from, To: to, UserID: ownerID})
		if err != nil {
			return nil, err
		}
		return dto.CategoryStatsDTO{
			Period:     periodDTO(from, to),
			Categories: analytics.CategoryStats(movs),
		}, nil
	}, "categories", ownerKey(ownerID), stamp(from), stamp(to))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProductPerformance ranking de productos por cantidad de movimientos.
// limit por defecto 10, máximo 100.
func (uc *AnalyticsUseCase) GetProductPerformance(ctx context.Context, ownerID string, req dto.PeriodRequest, limit int) (*dto.ProductPerformanceDTO, error) {
	from, to, err := analytics.ParsePeriod(req.From, req.To, uc.now(), uc.loc)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultProductLimit
	}
	if limit > maxProductLimit {
		limit = maxProductLimit
	}
	var out dto.ProductPerformanceDTO
	err = uc.cache.FetchJSON(ctx, &out, func(ctx context.Context) (any, error) {
		movs, err := uc.findMovements(ctx, "products", repository.MovementFilter{From: from, To: to, UserID: ownerID})
		if err != nil {
			return nil, err
		}
		return dto.ProductPerformanceDTO{
			Period:   periodDTO(from, to),
			Limit:    limit,
			Products: analytics.RankProducts(movs, limit),
		}, nil
	}, "products", ownerKey(ownerID), stamp(from), stamp(to), strconv.Itoa(limit))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCurrentStockOverview foto de stock de los productos con movimientos en el período.
func (uc *AnalyticsUseCase) GetCurrentStockOverview(ctx context.Context, ownerID string, req dto.PeriodRequest) (*dto.StockOverviewDTO, error) {
	from, to, err := analytics.ParsePeriod(req.From, req.To, uc.now(), uc.loc)
	if err != nil {
		return nil, err
	}
	var out dto.StockOverviewDTO
	err = uc.cache.FetchJSON(ctx, &out, func(ctx context.Context) (any, error) {
		movs, err := uc.findMovements(ctx, "overview", repository.MovementFilter{From: from, To: to, UserID: ownerID})
		if err != nil {
			return nil, err
		}
		return dto.StockOverviewDTO{
			Period:        periodDTO(from, to),
			StockOverview: analytics.Overview(movs),
		}, nil
	}, "overview", ownerKey(ownerID), stamp(from), stamp(to))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetForecastingData proyecta el consumo de una línea sobre la ventana [now-days, now].
// Devuelve domain.ErrNotFound si la línea no existe y domain.ErrForbidden si no pertenece a ownerID.
// No se cachea: la ventana se desplaza con el reloj.
func (uc *AnalyticsUseCase) GetForecastingData(ctx context.Context, ownerID, productLineID string, days int) (*analytics.ForecastResult, error) {
	if productLineID == "" {
		return nil, fmt.Errorf("%w: product id requerido", domain.ErrInvalidInput)
	}
	if days <= 0 {
		days = defaultForecastDays
	}

	product, err := uc.productRepo.GetByID(ctx, productLineID)
	if err != nil {
		uc.log.Error().Err(err).Str("op", "forecast").Str("product_line_id", productLineID).Msg("analytics: fallo al consultar la línea de producto")
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if ownerID != "" && product.UserID != ownerID {
		return nil, domain.ErrForbidden
	}

	now := uc.now().In(uc.loc)
	movs, err := uc.findMovements(ctx, "forecast", repository.MovementFilter{
		From:          now.AddDate(0, 0, -days),
		To:            now,
		ProductLineID: productLineID,
	})
	if err != nil {
		return nil, err
	}
	result := analytics.Forecast(product, movs, days)
	return &result, nil
}

// monthlySummary consulta y resume un mes sin pasar por el caché.
func (uc *AnalyticsUseCase) monthlySummary(ctx context.Context, ownerID string, year int, month time.Month) (analytics.MonthlySummary, error) {
	start, end := analytics.MonthRange(year, month, uc.loc)
	movs, err := uc.findMovements(ctx, "monthly", repository.MovementFilter{From: start, To: end, UserID: ownerID})
	if err != nil {
		return analytics.MonthlySummary{}, err
	}
	return analytics.NewMonthlySummary(year, month, movs), nil
}

// findMovements consulta el store y registra la falla antes de devolverla tal cual.
func (uc *AnalyticsUseCase) findMovements(ctx context.Context, op string, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	movs, err := uc.movementRepo.FindMovements(ctx, f)
	if err != nil {
		uc.log.Error().Err(err).
			Str("op", op).
			Str("user_id", f.UserID).
			Time("from", f.From).
			Time("to", f.To).
			Msg("analytics: fallo al consultar movimientos")
		return nil, err
	}
	return movs, nil
}

func validateYearMonth(year, month int) error {
	if year < 1970 || year > 9999 {
		return fmt.Errorf("%w: año fuera de rango: %d", domain.ErrInvalidInput, year)
	}
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: mes fuera de rango: %d", domain.ErrInvalidInput, month)
	}
	return nil
}

func periodDTO(from, to time.Time) dto.PeriodDTO {
	return dto.PeriodDTO{From: from.Format(analytics.DateLayout), To: to.Format(analytics.DateLayout)}
}

func ownerKey(ownerID string) string {
	if ownerID == "" {
		return "all"
	}
	return ownerID
}

func stamp(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}

// passthroughCache siempre invoca al loader.
type passthroughCache struct{}

func (passthroughCache) FetchJSON(ctx context.Context, dest any, loader func(context.Context) (any, error), _ ...string) error {
	value, err := loader(ctx)
	if err != nil {
		return err
	}
	return assign(dest, value)
}

func (passthroughCache) Invalidate(context.Context) error { return nil }

// assign copia value en *dest; los tipos deben coincidir.
func assign(dest, value any) error {
	dv := reflect.ValueOf(dest)
	if dv.Kind() != reflect.Pointer || dv.IsNil() {
		return fmt.Errorf("analytics: destino inválido %T", dest)
	}
	vv := reflect.ValueOf(value)
	if !vv.IsValid() || !vv.Type().AssignableTo(dv.Elem().Type()) {
		return fmt.Errorf("analytics: no se puede asignar %T a %T", value, dest)
	}
	dv.Elem().Set(vv)
	return nil
}
