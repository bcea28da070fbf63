package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-analytics/internal/application/dto"
	"github.com/jhoicas/stock-analytics/internal/application/inventory"
)

// InventoryHandler maneja el registro y listado de movimientos de stock y la lista de reposición.
type InventoryHandler struct {
	record        *inventory.RecordMovementUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(record *inventory.RecordMovementUseCase, replenishment *inventory.ReplenishmentUseCase) *InventoryHandler {
	return &InventoryHandler{record: record, replenishment: replenishment}
}

// RecordMovement godoc
// @Summary      Registrar movimiento de stock (IN / OUT)
// @Description  Bloquea la línea de producto, valida stock suficiente para OUT y actualiza el stock
//               corriente en la misma transacción. Invalida el caché de analítica.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *InventoryHandler) RecordMovement(c *fiber.Ctx) error {
	owner, err := ownerScope(c, "")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if ok, err := validateStruct(c, &in); !ok {
		return err
	}
	out, err := h.record.RecordMovementFromRequest(c.UserContext(), GetUserID(c), owner, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Listar movimientos de un período
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        from     query  string  false  "YYYY-MM-DD (default: primer día del mes)"
// @Param        to       query  string  false  "YYYY-MM-DD inclusive (default: hoy)"
// @Param        user_id  query  string  false  "Solo admin: filtrar por dueño"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	req, owner, ok, err := periodParams(c)
	if !ok {
		return err
	}
	out, err := h.record.ListMovements(c.UserContext(), owner, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Replenishment godoc
// @Summary      Lista de reposición sugerida
// @Description  Líneas con stock bajo el mínimo, con pedido sugerido según el consumo de los últimos 30 días.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        user_id  query  string  false  "Solo admin: filtrar por dueño"
// @Success      200  {array}  dto.ReplenishmentSuggestionDTO
// @Router       /api/inventory/replenishment [get]
func (h *InventoryHandler) Replenishment(c *fiber.Ctx) error {
	owner, err := ownerScope(c, c.Query("user_id"))
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.replenishment.GenerateReplenishmentList(c.UserContext(), owner)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// periodParams parsea from/to/user_id y resuelve el dueño. Con ok=false la respuesta ya fue escrita.
func periodParams(c *fiber.Ctx) (req dto.PeriodRequest, owner string, ok bool, err error) {
	if err := c.QueryParser(&req); err != nil {
		return req, "", false, badRequest(c, "INVALID_PARAMS", "parámetros de consulta inválidos")
	}
	owner, err = ownerScope(c, req.UserID)
	if err != nil {
		return req, "", false, writeError(c, err)
	}
	return req, owner, true, nil
}
