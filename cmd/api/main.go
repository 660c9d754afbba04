package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ecomlabs/readiness-api/internal/application/readiness"
	"github.com/ecomlabs/readiness-api/internal/infrastructure/postgres"
	httpRouter "github.com/ecomlabs/readiness-api/internal/interfaces/http"
	"github.com/ecomlabs/readiness-api/pkg/config"
	"github.com/ecomlabs/readiness-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	mappingRepo := postgres.NewMappingRepository(pool)
	skuRepo := postgres.NewStockSkuRepository(pool)
	locationRepo := postgres.NewStockLocationRepository(pool)
	locationStockRepo := postgres.NewLocationStockRepository(pool)
	compositionRepo := postgres.NewCompositionRepository(pool)
	insumoRepo := postgres.NewInsumoCompositionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledger := readiness.NewStockLedger(txRunner, locationStockRepo, locationRepo, log)
	compositions := readiness.NewCompositionResolver(compositionRepo, skuRepo, ledger)
	supply := readiness.NewSupplyValidator(insumoRepo, skuRepo, locationStockRepo, locationRepo, cfg.Engine.ResolveConcurrency)
	resolver := readiness.NewResolver(mappingRepo, skuRepo, locationRepo, compositions, supply, log, cfg.Engine.ResolveConcurrency)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Resolver: resolver,
		Supply:   supply,
		Ledger:   ledger,
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
