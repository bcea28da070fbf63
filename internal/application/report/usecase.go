// Package report arma los reportes anuales exportables (PDF y XLSX) a partir de la analítica.
package report

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jhoicas/stock-analytics/internal/application/dto"
	"github.com/jhoicas/stock-analytics/internal/domain/analytics"
	"golang.org/x/sync/errgroup"
)

const topProductsInReport = 10

// AnalyticsSource consultas de analítica que alimentan el reporte.
type AnalyticsSource interface {
	GetYearlyReport(ctx context.Context, ownerID string, year int) (*analytics.YearlyReport, error)
	GetCategoryStats(ctx context.Context, ownerID string, req dto.PeriodRequest) (*dto.CategoryStatsDTO, error)
	GetProductPerformance(ctx context.Context, ownerID string, req dto.PeriodRequest, limit int) (*dto.ProductPerformanceDTO, error)
}

// ReportUseCase genera el reporte anual y lo entrega renderizado.
type ReportUseCase struct {
	source   AnalyticsSource
	pdf      PDFRenderer
	workbook WorkbookRenderer
	now      func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(source AnalyticsSource, pdf PDFRenderer, workbook WorkbookRenderer) *ReportUseCase {
	return &ReportUseCase{source: source, pdf: pdf, workbook: workbook, now: time.Now}
}

// YearlyPDF reporte anual en PDF.
func (uc *ReportUseCase) YearlyPDF(ctx context.Context, ownerID string, year int) ([]byte, error) {
	doc, err := uc.build(ctx, ownerID, year)
	if err != nil {
		return nil, err
	}
	return uc.pdf.RenderYearly(ctx, *doc)
}

// YearlyWorkbook reporte anual en XLSX.
func (uc *ReportUseCase) YearlyWorkbook(ctx context.Context, ownerID string, year int) ([]byte, error) {
	doc, err := uc.build(ctx, ownerID, year)
	if err != nil {
		return nil, err
	}
	return uc.workbook.RenderYearly(ctx, *doc)
}

// build consulta en paralelo el reporte anual, las categorías y el top de productos del año.
func (uc *ReportUseCase) build(ctx context.Context, ownerID string, year int) (*YearlyDocument, error) {
	if year == 0 {
		year = uc.now().Year()
	}
	period := dto.PeriodRequest{
		From: strconv.Itoa(year) + "-01-01",
		To:   strconv.Itoa(year) + "-12-31",
	}

	var (
		yearly     *analytics.YearlyReport
		categories *dto.CategoryStatsDTO
		products   *dto.ProductPerformanceDTO
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		yearly, err = uc.source.GetYearlyReport(gctx, ownerID, year)
		return err
	})
	g.Go(func() (err error) {
		categories, err = uc.source.GetCategoryStats(gctx, ownerID, period)
		return err
	})
	g.Go(func() (err error) {
		products, err = uc.source.GetProductPerformance(gctx, ownerID, period, topProductsInReport)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	owner := "Todos los usuarios"
	if ownerID != "" {
		owner = ownerID
	}
	return &YearlyDocument{
		Title:       fmt.Sprintf("Reporte anual de movimientos %d", year),
		OwnerLabel:  owner,
		GeneratedAt: uc.now(),
		Report:      *yearly,
		Categories:  categories.Categories,
		TopProducts: products.Products,
	}, nil
}
