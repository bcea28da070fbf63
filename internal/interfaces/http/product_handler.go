package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-analytics/internal/application/dto"
	"github.com/jhoicas/stock-analytics/internal/application/usecase"
	"github.com/jhoicas/stock-analytics/internal/infrastructure/excel"
)

const maxImportSize = 5 << 20 // 5 MiB

// ProductHandler maneja las peticiones HTTP para líneas de producto (protegido).
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear línea de producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductLineRequest  true  "Datos de la línea"
// @Success      201   {object}  dto.ProductLineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductLineRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if ok, err := validateStruct(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Import godoc
// @Summary      Importar líneas de producto desde XLSX
// @Description  Formulario multipart con el campo "file". Encabezados aceptados: nombre/name,
//               categoría/category, unidad/unite, precio/unit_price, stock/current_stock, stock mínimo/min_stock.
// @Tags         products
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Success      201  {object}  dto.ProductImportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/import [post]
func (h *ProductHandler) Import(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "MISSING_FILE", "el campo file es requerido")
	}
	if fh.Size > maxImportSize {
		return badRequest(c, "FILE_TOO_LARGE", "el archivo supera 5 MiB")
	}
	f, err := fh.Open()
	if err != nil {
		return badRequest(c, "INVALID_FILE", "no se pudo leer el archivo")
	}
	defer f.Close()

	rows, err := excel.ParseProductLines(f)
	if err != nil {
		return badRequest(c, "INVALID_FILE", err.Error())
	}
	out, err := h.uc.Import(c.UserContext(), GetUserID(c), rows)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener línea de producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la línea"
// @Success      200  {object}  dto.ProductLineResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	owner, err := ownerScope(c, "")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), owner, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar líneas de producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        limit    query  int     false  "Máximo de resultados (default 20, max 100)"
// @Param        offset   query  int     false  "Desplazamiento"
// @Param        user_id  query  string  false  "Solo admin: filtrar por dueño"
// @Success      200  {object}  dto.ProductLineListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	owner, err := ownerScope(c, c.Query("user_id"))
	if err != nil {
		return writeError(c, err)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_PARAMS", "parámetros de paginación inválidos")
	}
	page.DefaultPage()
	if ok, err := validateStruct(c, &page); !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), owner, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar línea de producto (sin stock)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID de la línea"
// @Param        body  body  dto.UpdateProductLineRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.ProductLineResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	owner, err := ownerScope(c, "")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateProductLineRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if ok, err := validateStruct(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), owner, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar línea de producto y sus movimientos
// @Tags         products
// @Security     Bearer
// @Param        id   path  string  true  "ID de la línea"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	owner, err := ownerScope(c, "")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), owner, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
