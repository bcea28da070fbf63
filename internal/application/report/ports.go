package report

import (
	"context"
	"time"

	"github.com/jhoicas/stock-analytics/internal/domain/analytics"
)

// YearlyDocument datos de entrada de los renderizadores del reporte anual.
type YearlyDocument struct {
	Title       string
	OwnerLabel  string // "Todos los usuarios" o el email/ID del dueño
	GeneratedAt time.Time
	Report      analytics.YearlyReport
	Categories  []analytics.CategoryStat
	TopProducts []analytics.ProductPerformance
}

// PDFRenderer genera el PDF del reporte anual.
type PDFRenderer interface {
	RenderYearly(ctx context.Context, doc YearlyDocument) ([]byte, error)
}

// WorkbookRenderer genera el libro XLSX del reporte anual.
type WorkbookRenderer interface {
	RenderYearly(ctx context.Context, doc YearlyDocument) ([]byte, error)
}
