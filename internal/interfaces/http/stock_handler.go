package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/parts-catalog/internal/application/dto"
	"github.com/jhoicas/parts-catalog/internal/application/inventory"
	"github.com/jhoicas/parts-catalog/pkg/logger"
)

// StockHandler entradas y retiros de stock (admin | bodeguero).
type StockHandler struct {
	uc  *inventory.StockUseCase
	log *logger.Logger
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.StockUseCase, log *logger.Logger) *StockHandler {
	return &StockHandler{uc: uc, log: log}
}

// AddStock godoc
// @Summary      Registrar stock por código (crea la pieza si no existe)
// @Description  Suma la cantidad en (estante, sección) o crea la ubicación. Registra historial.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddStockRequest  true  "code, shelf, section, quantity"
// @Success      201   {object}  dto.StockResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/add [post]
func (h *StockHandler) AddStock(c *fiber.Ctx) error {
	var in dto.AddStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddStockFromRequest(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// AddLocation godoc
// @Summary      Registrar stock en una pieza existente
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la pieza"
// @Param        body  body  dto.AddLocationRequest  true  "shelf, section, quantity"
// @Success      201   {object}  dto.StockResultResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/parts/{id}/locations [post]
func (h *StockHandler) AddLocation(c *fiber.Ctx) error {
	var in dto.AddLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddLocationFromRequest(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Withdraw godoc
// @Summary      Retirar stock de una ubicación
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WithdrawStockRequest  true  "location_id, quantity"
// @Success      200   {object}  dto.StockResultResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK"
// @Router       /api/stock/withdraw [post]
func (h *StockHandler) Withdraw(c *fiber.Ctx) error {
	var in dto.WithdrawStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.WithdrawFromRequest(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
