// categorize audita y migra las categorías de los ítems del almacén externo.
//
// Uso:
//
//	categorize validate
//	categorize preview --limit 20
//	categorize consistency
//	categorize migrate --dry-run --snapshot backup.xlsx
//	categorize migrate --batch-size 50
//	categorize rollback backup.xlsx
//
// La configuración (STORE_DRIVER, DB_*, MIGRATION_*) se lee igual que en cmd/api.
package main

import (
	"context"
	"os"

	"github.com/jhoicas/inventory-assistant/internal/domain/repository"
	"github.com/jhoicas/inventory-assistant/internal/infrastructure/memory"
	"github.com/jhoicas/inventory-assistant/internal/infrastructure/postgres"
	"github.com/jhoicas/inventory-assistant/pkg/config"
	"github.com/jhoicas/inventory-assistant/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})

	root, closeStore := newRootCmd(cfg, func(ctx context.Context) (repository.ItemStore, func(), error) {
		return openStore(ctx, cfg, log)
	}, log)
	os.Exit(execute(root, closeStore))
}

// openStore abre el almacén configurado; el cierre libera el pool si existe.
func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.ItemStore, func(), error) {
	if cfg.Store.Driver != config.StorePostgres {
		log.Warn().Msg("almacén en memoria: no hay ítems que auditar fuera del proceso")
		return memory.NewItemStore(), func() {}, nil
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	return postgres.NewItemStore(pool), pool.Close, nil
}
