package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/parts-catalog/internal/application/usecase"
	"github.com/jhoicas/parts-catalog/pkg/logger"
)

// ShelfHandler vistas por estante.
type ShelfHandler struct {
	uc  *usecase.ShelfUseCase
	log *logger.Logger
}

// NewShelfHandler construye el handler.
func NewShelfHandler(uc *usecase.ShelfUseCase, log *logger.Logger) *ShelfHandler {
	return &ShelfHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Estantes con cantidad de piezas y ubicaciones
// @Tags         shelves
// @Produce      json
// @Success      200  {array}  dto.ShelfSummaryResponse
// @Router       /api/shelves [get]
func (h *ShelfHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// View godoc
// @Summary      Contenido de un estante
// @Tags         shelves
// @Produce      json
// @Param        name  path  string  true  "Nombre del estante"
// @Success      200   {object}  dto.ShelfViewResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/shelves/{name} [get]
func (h *ShelfHandler) View(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		name = c.Params("name")
	}
	out, err := h.uc.View(c.Context(), name)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
