package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/parts-catalog/internal/application/dto"
	"github.com/jhoicas/parts-catalog/internal/application/usecase"
	"github.com/jhoicas/parts-catalog/pkg/logger"
)

// OCRHandler clasificación de fragmentos OCR en código / descripción.
type OCRHandler struct {
	uc  *usecase.ClassifyUseCase
	log *logger.Logger
}

// NewOCRHandler construye el handler.
func NewOCRHandler(uc *usecase.ClassifyUseCase, log *logger.Logger) *OCRHandler {
	return &OCRHandler{uc: uc, log: log}
}

// Classify godoc
// @Summary      Separar fragmentos OCR en candidatos de código y descripción
// @Description  Descarta fragmentos bajo la confianza mínima. Timeout interno de 10 s.
// @Tags         ocr
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ClassifyRequest  true  "fragments: [{text, confidence}]"
// @Success      200   {object}  dto.ClassifyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      408   {object}  dto.ErrorResponse
// @Router       /api/ocr/classify [post]
func (h *OCRHandler) Classify(c *fiber.Ctx) error {
	var in dto.ClassifyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Categorize(c.Context(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
