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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-assistant/internal/application/batch"
	"github.com/jhoicas/inventory-assistant/internal/application/command"
	"github.com/jhoicas/inventory-assistant/internal/application/migration"
	"github.com/jhoicas/inventory-assistant/internal/domain/ambiguity"
	"github.com/jhoicas/inventory-assistant/internal/domain/classifier"
	"github.com/jhoicas/inventory-assistant/internal/domain/repository"
	"github.com/jhoicas/inventory-assistant/internal/infrastructure/memory"
	"github.com/jhoicas/inventory-assistant/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/inventory-assistant/internal/infrastructure/pdf"
	"github.com/jhoicas/inventory-assistant/internal/infrastructure/postgres"
	"github.com/jhoicas/inventory-assistant/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/inventory-assistant/internal/interfaces/http"
	"github.com/jhoicas/inventory-assistant/pkg/config"
	"github.com/jhoicas/inventory-assistant/pkg/logger"
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
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var store repository.ItemStore
	switch cfg.Store.Driver {
	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("crear esquema")
		}
		store = postgres.NewItemStore(pool)
	default:
		log.Warn().Msg("almacén en memoria: los registros se pierden al reiniciar")
		store = memory.NewItemStore()
	}

	maxQty, err := decimal.NewFromString(cfg.Batch.MaxQuantityPerItem)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.Batch.MaxQuantityPerItem).Msg("BATCH_MAX_QUANTITY inválido")
	}

	recorder := metrics.NewRecorder()
	cls := classifier.New()
	resolver := ambiguity.NewResolver(cls, ambiguity.NewCache())

	validator := batch.NewValidator(batch.Limits{
		MaxBatchSize:       cfg.Batch.MaxBatchSize,
		MaxQuantityPerItem: maxQty,
		MaxNameLength:      cfg.Batch.MaxNameLength,
	})
	builder := batch.NewBuilder(resolver, time.Now)
	processor := batch.NewProcessor(validator, builder, store, recorder, log)

	// PDF: remisión imprimible del lote
	commandSvc := command.NewService(processor, infrapdf.NewDeliveryNoteGenerator(), log)
	auditor := migration.NewAuditor(store, cls, migration.Config{
		Placeholders: cfg.Migration.Placeholders,
		BatchSize:    cfg.Migration.BatchSize,
	}, recorder, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventory Assistant API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Commands:   commandSvc,
		Classifier: cls,
		Resolver:   resolver,
		Auditor:    auditor,
		Snapshots:  xlsx.NewSnapshotStore(),
		Metrics:    recorder.Handler(),
		JWTSecret:  cfg.JWT.Secret,
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
