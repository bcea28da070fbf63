// Package analytics contiene los casos de uso del Dashboard de movimientos de stock.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stock-analytics/internal/application/dto"
	"github.com/jhoicas/stock-analytics/internal/domain/entity"
	"github.com/jhoicas/stock-analytics/internal/domain/repository"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	agg "github.com/jhoicas/stock-analytics/internal/domain/analytics"
)

const dashboardTopProducts = 5 // número de productos en el widget del dashboard

// DashboardUseCase genera el resumen de movimientos del día y del mes en curso.
//
// Fuente de datos: StockMovementRepository (consultas read-only).
// Los cálculos los hace el agregador de dominio; aquí solo se arman los rangos.
type DashboardUseCase struct {
	movementRepo repository.StockMovementRepository
	loc          *time.Location
	log          zerolog.Logger
	now          func() time.Time
}

// NewDashboardUseCase construye el caso de uso. loc nil equivale a UTC.
func NewDashboardUseCase(movementRepo repository.StockMovementRepository, loc *time.Location, log zerolog.Logger) *DashboardUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardUseCase{movementRepo: movementRepo, loc: loc, log: log, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO para el dueño indicado (vacío = todos).
//
// Dos consultas en paralelo:
//  1. movimientos de hoy  → Today
//  2. movimientos del mes → Month + TopProducts + Overview
func (uc *DashboardUseCase) GetSummary(ctx context.Context, ownerID string) (*dto.DashboardSummaryDTO, error) {
	now := uc.now().In(uc.loc)

	// ── Rangos de fecha ────────────────────────────────────────────────────────
	// Hoy: 00:00:00 – 23:59:59
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.loc)
	todayEnd := todayStart.AddDate(0, 0, 1).Add(-time.Second)

	// Mes en curso: día 1 a las 00:00 – hoy a las 23:59:59
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, uc.loc)

	var today, month []*entity.StockMovement
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		today, err = uc.movementRepo.FindMovements(gctx, repository.MovementFilter{From: todayStart, To: todayEnd, UserID: ownerID})
		if err != nil {
			return fmt.Errorf("dashboard: movimientos de hoy: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		month, err = uc.movementRepo.FindMovements(gctx, repository.MovementFilter{From: monthStart, To: todayEnd, UserID: ownerID})
		if err != nil {
			return fmt.Errorf("dashboard: movimientos del mes: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		uc.log.Error().Err(err).Str("user_id", ownerID).Msg("dashboard: fallo al consultar movimientos")
		return nil, err
	}

	// ── Construir DTO ──────────────────────────────────────────────────────────
	return &dto.DashboardSummaryDTO{
		Today:       agg.Summarize(today),
		Month:       agg.Summarize(month),
		TopProducts: agg.RankProducts(month, dashboardTopProducts),
		Overview:    agg.Overview(month),
		DateLabel:   monthLabel(now),
	}, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
