package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/parts-catalog/internal/application/auth"
	"github.com/jhoicas/parts-catalog/internal/application/inventory"
	"github.com/jhoicas/parts-catalog/internal/application/report"
	"github.com/jhoicas/parts-catalog/internal/application/usecase"
	"github.com/jhoicas/parts-catalog/internal/domain/entity"
	"github.com/jhoicas/parts-catalog/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	PartUC     *usecase.PartUseCase
	StockUC    *inventory.StockUseCase
	ShelfUC    *usecase.ShelfUseCase
	ReportUC   *report.UseCase
	ClassifyUC *usecase.ClassifyUseCase
	JWTSecret  string
	Logger     *logger.Logger
}

// Router registra las rutas de la API. Lecturas públicas; cambios de stock y datos requieren
// token con rol admin o bodeguero.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api")
	authRequired := AuthMiddleware(deps.JWTSecret)
	writers := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, log)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", authRequired, RequireRole(entity.RoleAdmin), authHandler.Register)
	authGroup.Get("/me", authRequired, authHandler.Me)

	// Parts
	partHandler := NewPartHandler(deps.PartUC, log)
	stockHandler := NewStockHandler(deps.StockUC, log)
	parts := api.Group("/parts")
	parts.Get("/", partHandler.Search)
	parts.Get("/check-code", partHandler.CheckCode)
	parts.Get("/:id", partHandler.GetDetail)
	parts.Put("/:id", authRequired, writers, partHandler.Update)
	parts.Get("/:id/history", partHandler.History)
	parts.Post("/:id/locations", authRequired, writers, stockHandler.AddLocation)

	// Stock
	stock := api.Group("/stock", authRequired, writers)
	stock.Post("/add", stockHandler.AddStock)
	stock.Post("/withdraw", stockHandler.Withdraw)

	// Shelves
	shelfHandler := NewShelfHandler(deps.ShelfUC, log)
	shelves := api.Group("/shelves")
	shelves.Get("/", shelfHandler.List)
	shelves.Get("/:name", shelfHandler.View)

	// Reports (PDF)
	reportHandler := NewReportHandler(deps.ReportUC, log)
	reports := api.Group("/reports")
	reports.Get("/by-shelf", reportHandler.ByShelf)
	reports.Get("/full", reportHandler.Full)

	// OCR
	ocrHandler := NewOCRHandler(deps.ClassifyUC, log)
	api.Post("/ocr/classify", ocrHandler.Classify)
}
