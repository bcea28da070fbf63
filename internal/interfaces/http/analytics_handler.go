package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-analytics/internal/application/dto"
	"github.com/jhoicas/stock-analytics/internal/application/usecase"
)

// AnalyticsHandler maneja los endpoints de analítica de movimientos de stock.
// Todos aceptan user_id (solo admin) y los de rango from/to en formato YYYY-MM-DD.
type AnalyticsHandler struct {
	uc  *usecase.AnalyticsUseCase
	loc *time.Location
	now func() time.Time
}

// NewAnalyticsHandler construye el handler. loc define el mes/año por defecto.
func NewAnalyticsHandler(uc *usecase.AnalyticsUseCase, loc *time.Location) *AnalyticsHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &AnalyticsHandler{uc: uc, loc: loc, now: time.Now}
}

// Daily godoc
// @Summary      Movimientos agrupados por día
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        from     query  string  false  "YYYY-MM-DD (default: primer día del mes)"
// @Param        to       query  string  false  "YYYY-MM-DD inclusive (default: hoy)"
// @Param        user_id  query  string  false  "Solo admin: filtrar por dueño"
// @Success      200  {object}  dto.DailyMovementsDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/daily [get]
func (h *AnalyticsHandler) Daily(c *fiber.Ctx) error {
	req, owner, ok, err := periodParams(c)
	if !ok {
		return err
	}
	out, err := h.uc.GetDailyMovements(c.UserContext(), owner, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Monthly godoc
// @Summary      Resumen de un mes calendario
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        year     query  int     false  "Año (default: actual)"
// @Param        month    query  int     false  "Mes 1-12 (default: actual)"
// @Param        user_id  query  string  false  "Solo admin: filtrar por dueño"
// @Success      200  {object}  analytics.MonthlySummary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/monthly [get]
func (h *AnalyticsHandler) Monthly(c *fiber.Ctx) error {
	var req dto.MonthRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "INVALID_PARAMS", "parámetros de consulta inválidos")
	}
	if ok, err := validateStruct(c, &req); !ok {
		return err
	}
	owner, err := ownerScope(c, req.UserID)
	if err != nil {
		return writeError(c, err)
	}
	now := h.now().In(h.loc)
	if req.Year == 0 {
		req.Year = now.Year()
	}
	if req.Month == 0 {
		req.Month = int(now.Month())
	}
	out, err := h.uc.GetMonthlySummary(c.UserContext(), owner, req.Year, req.Month)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Yearly godoc
// @Summary      Reporte anual (doce meses + total)
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        year     query  int     false  "Año (default: actual)"
// @Param        user_id  query  string  false  "Solo admin: filtrar por dueño"
// @Success      200  {object}  analytics.YearlyReport
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/yearly [get]
func (h *AnalyticsHandler) Yearly(c *fiber.Ctx) error {
	req, owner, ok, err := h.yearParams(c)
	if !ok {
		return err
	}
	out, err := h.uc.GetYearlyReport(c.UserContext(), owner, req.Year)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Categories godoc
// @Summary      Estadísticas por categoría
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        from     query  string  false  "YYYY-MM-DD"
// @Param        to       query  string  false  "YYYY-MM-DD"
// @Param        user_id  query  string  false  "Solo admin: filtrar por dueño"
// @Success      200  {object}  dto.CategoryStatsDTO
// @Router       /api/analytics/categories [get]
func (h *AnalyticsHandler) Categories(c *fiber.Ctx) error {
	req, owner, ok, err := periodParams(c)
	if !ok {
		return err
	}
	out, err := h.uc.GetCategoryStats(c.UserContext(), owner, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Products godoc
// @Summary      Ranking de productos por cantidad de movimientos
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        from     query  string  false  "YYYY-MM-DD"
// @Param        to       query  string  false  "YYYY-MM-DD"
// @Param        limit    query  int     false  "Máximo de productos (default 10, max 100)"
// @Param        user_id  query  string  false  "Solo admin: filtrar por dueño"
// @Success      200  {object}  dto.ProductPerformanceDTO
// @Router       /api/analytics/products [get]
func (h *AnalyticsHandler) Products(c *fiber.Ctx) error {
	var req dto.ProductPerformanceRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "INVALID_PARAMS", "parámetros de consulta inválidos")
	}
	if ok, err := validateStruct(c, &req); !ok {
		return err
	}
	owner, err := ownerScope(c, req.UserID)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetProductPerformance(c.UserContext(), owner, req.Period(), req.Limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Overview godoc
// @Summary      Foto del stock de los productos con movimientos en el período
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        from     query  string  false  "YYYY-MM-DD"
// @Param        to       query  string  false  "YYYY-MM-DD"
// @Param        user_id  query  string  false  "Solo admin: filtrar por dueño"
// @Success      200  {object}  dto.StockOverviewDTO
// @Router       /api/analytics/overview [get]
func (h *AnalyticsHandler) Overview(c *fiber.Ctx) error {
	req, owner, ok, err := periodParams(c)
	if !ok {
		return err
	}
	out, err := h.uc.GetCurrentStockOverview(c.UserContext(), owner, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Forecast godoc
// @Summary      Pronóstico de consumo de una línea de producto
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        productId  path   string  true   "ID de la línea"
// @Param        days       query  int     false  "Ventana en días (default 30)"
// @Success      200  {object}  analytics.ForecastResult
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/analytics/forecast/{productId} [get]
func (h *AnalyticsHandler) Forecast(c *fiber.Ctx) error {
	var req dto.ForecastRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "INVALID_PARAMS", "parámetros de consulta inválidos")
	}
	if ok, err := validateStruct(c, &req); !ok {
		return err
	}
	owner, err := ownerScope(c, "")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetForecastingData(c.UserContext(), owner, c.Params("productId"), req.Days)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// yearParams parsea year/user_id (year 0 = año actual). Con ok=false la respuesta ya fue escrita.
func (h *AnalyticsHandler) yearParams(c *fiber.Ctx) (req dto.YearRequest, owner string, ok bool, err error) {
	if err := c.QueryParser(&req); err != nil {
		return req, "", false, badRequest(c, "INVALID_PARAMS", "parámetros de consulta inválidos")
	}
	if valid, err := validateStruct(c, &req); !valid {
		return req, "", false, err
	}
	owner, err = ownerScope(c, req.UserID)
	if err != nil {
		return req, "", false, writeError(c, err)
	}
	if req.Year == 0 {
		req.Year = h.now().In(h.loc).Year()
	}
	return req, owner, true, nil
}
