package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/stock-analytics/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el resumen de movimientos del día y del mes en curso.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (today, month, top_products[5], overview, date_label).
// No requiere parámetros salvo user_id (admin); las fechas se calculan en el servidor.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	owner, err := ownerScope(c, c.Query("user_id"))
	if err != nil {
		return writeError(c, err)
	}
	summary, err := h.uc.GetSummary(c.UserContext(), owner)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
