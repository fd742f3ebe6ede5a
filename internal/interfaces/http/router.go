package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/inventory-assistant/internal/application/command"
	"github.com/jhoicas/inventory-assistant/internal/application/migration"
	"github.com/jhoicas/inventory-assistant/internal/application/ports"
	"github.com/jhoicas/inventory-assistant/internal/domain/ambiguity"
	"github.com/jhoicas/inventory-assistant/internal/domain/classifier"
	"github.com/jhoicas/inventory-assistant/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Commands   *command.Service
	Classifier *classifier.Classifier
	Resolver   *ambiguity.Resolver
	Auditor    *migration.Auditor
	Snapshots  ports.SnapshotStore
	Metrics    nethttp.Handler // opcional: expone /metrics
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	chat := RequireRole(entity.RoleAdmin, entity.RoleOperator, entity.RoleBot)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Comandos del chat
	commands := protected.Group("/commands", chat)
	commandHandler := NewCommandHandler(deps.Commands)
	commands.Post("/:type/preview", commandHandler.Preview)
	commands.Post("/:type", commandHandler.Process)

	// Categorías
	categories := protected.Group("/categories", chat)
	categoryHandler := NewCategoryHandler(deps.Classifier, deps.Resolver)
	categories.Get("/", categoryHandler.List)
	categories.Get("/classify", categoryHandler.Classify)
	categories.Get("/validate", categoryHandler.Validate)

	// Caché de ambigüedad (admin)
	amb := protected.Group("/ambiguity", adminOnly)
	ambiguityHandler := NewAmbiguityHandler(deps.Resolver.Cache())
	amb.Get("/", ambiguityHandler.Stats)
	amb.Delete("/", ambiguityHandler.Clear)

	// Migración de categorías (admin)
	mig := protected.Group("/migration", adminOnly)
	migrationHandler := NewMigrationHandler(deps.Auditor, deps.Snapshots)
	mig.Get("/preview", migrationHandler.Preview)
	mig.Get("/validate", migrationHandler.Validate)
	mig.Get("/consistency", migrationHandler.Consistency)
	mig.Post("/run", migrationHandler.Run)
	mig.Post("/rollback", migrationHandler.Rollback)
}
