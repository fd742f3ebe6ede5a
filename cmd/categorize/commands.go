package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/inventory-assistant/internal/application/migration"
	"github.com/jhoicas/inventory-assistant/internal/domain/classifier"
	"github.com/jhoicas/inventory-assistant/internal/domain/repository"
	"github.com/jhoicas/inventory-assistant/internal/infrastructure/xlsx"
	"github.com/jhoicas/inventory-assistant/pkg/config"
	"github.com/jhoicas/inventory-assistant/pkg/logger"
)

// storeOpener abre el almacén de ítems; close libera sus recursos.
type storeOpener func(ctx context.Context) (store repository.ItemStore, close func(), err error)

// cli estado compartido entre subcomandos.
type cli struct {
	cfg       *config.Config
	open      storeOpener
	log       *logger.Logger
	auditor   *migration.Auditor
	snapshots *xlsx.SnapshotStore
	close     func()
}

// newRootCmd arma el árbol de comandos. El almacén se abre una sola vez antes de cada subcomando;
// la función devuelta lo cierra y debe llamarse tras Execute, haya o no error.
func newRootCmd(cfg *config.Config, open storeOpener, log *logger.Logger) (*cobra.Command, func()) {
	c := &cli{cfg: cfg, open: open, log: log, snapshots: xlsx.NewSnapshotStore(), close: func() {}}

	root := &cobra.Command{
		Use:          "categorize",
		Short:        "Audit and migrate item categories in the inventory store",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			store, closeFn, err := c.open(cmd.Context())
			if err != nil {
				return fmt.Errorf("abrir almacén: %w", err)
			}
			c.close = closeFn
			c.auditor = migration.NewAuditor(store, classifier.New(), migration.Config{
				Placeholders: cfg.Migration.Placeholders,
				BatchSize:    cfg.Migration.BatchSize,
			}, nil, log)
			return nil
		},
	}

	root.AddCommand(c.validateCmd(), c.previewCmd(), c.consistencyCmd(), c.migrateCmd(), c.rollbackCmd())
	return root, func() { c.close() }
}

// execute corre el comando y cierra el almacén también cuando el subcomando falla.
func execute(root *cobra.Command, closeStore func()) int {
	defer closeStore()
	if err := root.Execute(); err != nil {
		return 1
	}
	return 0
}

func (c *cli) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Show category distribution and whether a migration is needed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rep, err := c.auditor.ValidateData(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rep)
		},
	}
}

func (c *cli) previewCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview the categories a migration would assign",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rep, err := c.auditor.Preview(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rep)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", migration.DefaultPreviewLimit, "maximum items to show")
	return cmd
}

func (c *cli) consistencyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "consistency",
		Short: "Report items whose stored category conflicts with the detected one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rep, err := c.auditor.CheckConsistency(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rep)
		},
	}
}

func (c *cli) migrateCmd() *cobra.Command {
	var (
		dryRun    bool
		batchSize int
		snapshot  string
	)
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Reclassify items with missing or placeholder categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rep, err := c.auditor.Migrate(cmd.Context(), migration.Options{DryRun: dryRun, BatchSize: batchSize})
			if err != nil {
				return err
			}
			if snapshot != "" {
				if err := c.writeSnapshot(cmd.Context(), snapshot, rep); err != nil {
					return err
				}
				c.log.Info().Str("path", snapshot).Msg("respaldo de categorías escrito")
			}
			return printJSON(cmd.OutOrStdout(), rep)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report changes without writing them")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "maximum items to process (0 uses MIGRATION_BATCH_SIZE)")
	cmd.Flags().StringVar(&snapshot, "snapshot", "", "write original categories to this .xlsx for rollback")
	return cmd
}

func (c *cli) rollbackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rollback <snapshot.xlsx>",
		Short: "Restore original categories from a snapshot written by migrate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("abrir respaldo: %w", err)
			}
			defer f.Close()

			rows, err := c.snapshots.Import(cmd.Context(), f)
			if err != nil {
				return err
			}
			rep := c.auditor.Rollback(cmd.Context(), migration.BackupsFromSnapshot(rows))
			if err := printJSON(cmd.OutOrStdout(), rep); err != nil {
				return err
			}
			if !rep.Success {
				return fmt.Errorf("reversión incompleta: %d fallidos", rep.Failed)
			}
			return nil
		},
	}
}

func (c *cli) writeSnapshot(ctx context.Context, path string, rep *migration.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("crear respaldo: %w", err)
	}
	if err := c.snapshots.Export(ctx, f, migration.SnapshotFromReport(rep)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
