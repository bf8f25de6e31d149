package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/parts-catalog/internal/application/ports"
	"github.com/jhoicas/parts-catalog/internal/application/report"
	"github.com/jhoicas/parts-catalog/pkg/logger"
)

// ReportHandler descarga de listas en PDF.
type ReportHandler struct {
	uc  *report.UseCase
	log *logger.Logger
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase, log *logger.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, log: log}
}

// ByShelf godoc
// @Summary      Lista de piezas agrupada por estante (PDF)
// @Tags         reports
// @Produce      application/pdf
// @Success      200
// @Router       /api/reports/by-shelf [get]
func (h *ReportHandler) ByShelf(c *fiber.Ctx) error {
	return h.export(c, ports.ReportModeByShelf)
}

// Full godoc
// @Summary      Inventario completo ordenado por código (PDF)
// @Tags         reports
// @Produce      application/pdf
// @Success      200
// @Router       /api/reports/full [get]
func (h *ReportHandler) Full(c *fiber.Ctx) error {
	return h.export(c, ports.ReportModeFull)
}

func (h *ReportHandler) export(c *fiber.Ctx, mode string) error {
	out, err := h.uc.Export(c.Context(), mode)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, out.Filename))
	return c.Send(out.Content)
}
