package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/stock-analytics/internal/application/dto"
	"github.com/jhoicas/stock-analytics/internal/domain/analytics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	yearlyErr error
	periods   []dto.PeriodRequest
	limit     int
}

func (f *fakeSource) GetYearlyReport(_ context.Context, _ string, year int) (*analytics.YearlyReport, error) {
	if f.yearlyErr != nil {
		return nil, f.yearlyErr
	}
	return &analytics.YearlyReport{Year: year}, nil
}

func (f *fakeSource) GetCategoryStats(_ context.Context, _ string, req dto.PeriodRequest) (*dto.CategoryStatsDTO, error) {
	return &dto.CategoryStatsDTO{Categories: []analytics.CategoryStat{{Category: "Ferretería"}}}, nil
}

func (f *fakeSource) GetProductPerformance(_ context.Context, _ string, req dto.PeriodRequest, limit int) (*dto.ProductPerformanceDTO, error) {
	f.periods = append(f.periods, req)
	f.limit = limit
	return &dto.ProductPerformanceDTO{Products: []analytics.ProductPerformance{{ProductName: "Tornillo"}}}, nil
}

type captureRenderer struct {
	doc YearlyDocument
	out []byte
}

func (c *captureRenderer) RenderYearly(_ context.Context, doc YearlyDocument) ([]byte, error) {
	c.doc = doc
	return c.out, nil
}

func TestYearlyPDF_ArmaDocumento(t *testing.T) {
	src := &fakeSource{}
	pdf := &captureRenderer{out: []byte("%PDF")}
	uc := NewReportUseCase(src, pdf, &captureRenderer{})

	out, err := uc.YearlyPDF(context.Background(), "u1", 2024)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), out)

	assert.Equal(t, 2024, pdf.doc.Report.Year)
	assert.Equal(t, "u1", pdf.doc.OwnerLabel)
	assert.Equal(t, "Reporte anual de movimientos 2024", pdf.doc.Title)
	assert.Len(t, pdf.doc.Categories, 1)
	assert.Len(t, pdf.doc.TopProducts, 1)
	assert.Equal(t, dto.PeriodRequest{From: "2024-01-01", To: "2024-12-31"}, src.periods[0])
	assert.Equal(t, topProductsInReport, src.limit)
}

func TestYearlyWorkbook_AnioPorDefecto(t *testing.T) {
	xlsx := &captureRenderer{out: []byte("PK")}
	uc := NewReportUseCase(&fakeSource{}, &captureRenderer{}, xlsx)
	uc.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }

	_, err := uc.YearlyWorkbook(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Equal(t, 2025, xlsx.doc.Report.Year)
	assert.Equal(t, "Todos los usuarios", xlsx.doc.OwnerLabel)
}

func TestYearlyPDF_ErrorSePropaga(t *testing.T) {
	boom := errors.New("db caída")
	pdf := &captureRenderer{}
	uc := NewReportUseCase(&fakeSource{yearlyErr: boom}, pdf, &captureRenderer{})

	_, err := uc.YearlyPDF(context.Background(), "", 2024)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, pdf.doc.Report.Year, "no se renderiza con datos parciales")
}
