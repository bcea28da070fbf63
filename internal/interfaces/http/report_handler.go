package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-analytics/internal/application/report"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ReportHandler descarga el reporte anual en PDF o XLSX.
type ReportHandler struct {
	uc        *report.ReportUseCase
	analytics *AnalyticsHandler // reutiliza el parseo de year/user_id
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ReportUseCase, analytics *AnalyticsHandler) *ReportHandler {
	return &ReportHandler{uc: uc, analytics: analytics}
}

// YearlyPDF godoc
// @Summary      Reporte anual en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        year     query  int     false  "Año (default: actual)"
// @Param        user_id  query  string  false  "Solo admin: filtrar por dueño"
// @Success      200  {file}  binary
// @Router       /api/reports/yearly.pdf [get]
func (h *ReportHandler) YearlyPDF(c *fiber.Ctx) error {
	req, owner, ok, err := h.analytics.yearParams(c)
	if !ok {
		return err
	}
	body, err := h.uc.YearlyPDF(c.UserContext(), owner, req.Year)
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, contentTypePDF, fmt.Sprintf("reporte-anual-%d.pdf", req.Year), body)
}

// YearlyWorkbook godoc
// @Summary      Reporte anual en Excel
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        year     query  int     false  "Año (default: actual)"
// @Param        user_id  query  string  false  "Solo admin: filtrar por dueño"
// @Success      200  {file}  binary
// @Router       /api/reports/yearly.xlsx [get]
func (h *ReportHandler) YearlyWorkbook(c *fiber.Ctx) error {
	req, owner, ok, err := h.analytics.yearParams(c)
	if !ok {
		return err
	}
	body, err := h.uc.YearlyWorkbook(c.UserContext(), owner, req.Year)
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, contentTypeXLSX, fmt.Sprintf("reporte-anual-%d.xlsx", req.Year), body)
}

func sendFile(c *fiber.Ctx, contentType, filename string, body []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(body)
}
