package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/parts-catalog/internal/application/auth"
	"github.com/jhoicas/parts-catalog/internal/application/inventory"
	"github.com/jhoicas/parts-catalog/internal/application/report"
	"github.com/jhoicas/parts-catalog/internal/application/usecase"
	infraai "github.com/jhoicas/parts-catalog/internal/infrastructure/ai"
	infrapdf "github.com/jhoicas/parts-catalog/internal/infrastructure/pdf"
	"github.com/jhoicas/parts-catalog/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/parts-catalog/internal/interfaces/http"
	"github.com/jhoicas/parts-catalog/pkg/config"
	"github.com/jhoicas/parts-catalog/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.DB.Driver).
		Str("classifier", cfg.Classifier.Provider).
		Msg("iniciando aplicación")

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir catalog store")
	}
	defer backend.Close()

	stockUC := inventory.NewStockUseCase(backend.Tx)
	partUC := usecase.NewPartUseCase(backend.Parts, backend.Locations, backend.History)
	shelfUC := usecase.NewShelfUseCase(backend.Locations)
	reportUC := report.NewUseCase(backend.Locations, infrapdf.NewMarotoReportRenderer())
	classifyUC := usecase.NewClassifyUseCase(infraai.NewFromConfig(cfg.Classifier, log), cfg.Classifier.MinConfidence)
	authUC := auth.NewAuthUseCase(backend.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Parts Catalog API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "driver": backend.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		PartUC:     partUC,
		StockUC:    stockUC,
		ShelfUC:    shelfUC,
		ReportUC:   reportUC,
		ClassifyUC: classifyUC,
		JWTSecret:  cfg.JWT.Secret,
		Logger:     log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
