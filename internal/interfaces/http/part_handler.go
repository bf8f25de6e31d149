package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/parts-catalog/internal/application/dto"
	"github.com/jhoicas/parts-catalog/internal/application/usecase"
	"github.com/jhoicas/parts-catalog/pkg/logger"
)

// PartHandler consultas y edición de piezas.
type PartHandler struct {
	uc  *usecase.PartUseCase
	log *logger.Logger
}

// NewPartHandler construye el handler.
func NewPartHandler(uc *usecase.PartUseCase, log *logger.Logger) *PartHandler {
	return &PartHandler{uc: uc, log: log}
}

// Search godoc
// @Summary      Buscar piezas por código o descripción
// @Tags         parts
// @Produce      json
// @Param        q       query  string  false  "Texto a buscar (vacío = todas)"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.PartListResponse
// @Router       /api/parts [get]
func (h *PartHandler) Search(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "limit y offset deben ser numéricos"})
	}
	page.DefaultPage()
	out, err := h.uc.Search(c.Context(), c.Query("q"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// CheckCode godoc
// @Summary      Verificar si un código ya existe
// @Tags         parts
// @Produce      json
// @Param        code  query  string  true  "Código de pieza"
// @Success      200   {object}  dto.CheckCodeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/parts/check-code [get]
func (h *PartHandler) CheckCode(c *fiber.Ctx) error {
	out, err := h.uc.CheckCode(c.Context(), c.Query("code"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetDetail godoc
// @Summary      Detalle de pieza con ubicaciones
// @Tags         parts
// @Produce      json
// @Param        id   path  string  true  "ID de la pieza"
// @Success      200  {object}  dto.PartDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/parts/{id} [get]
func (h *PartHandler) GetDetail(c *fiber.Ctx) error {
	out, err := h.uc.GetDetail(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar código, descripción o foto
// @Tags         parts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la pieza"
// @Param        body  body  dto.UpdatePartRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.PartResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/parts/{id} [put]
func (h *PartHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePartRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de cambios de una pieza (más reciente primero)
// @Tags         parts
// @Produce      json
// @Param        id      path   string  true   "ID de la pieza"
// @Param        limit   query  int     false  "Límite"  default(50)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.HistoryListResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/parts/{id}/history [get]
func (h *PartHandler) History(c *fiber.Ctx) error {
	out, err := h.uc.History(c.Context(), c.Params("id"), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
