package migration_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-assistant/internal/application/migration"
	"github.com/jhoicas/inventory-assistant/internal/domain"
	"github.com/jhoicas/inventory-assistant/internal/domain/classifier"
	"github.com/jhoicas/inventory-assistant/internal/domain/entity"
	"github.com/jhoicas/inventory-assistant/internal/infrastructure/memory"
)

type migrationCall struct {
	dryRun                    bool
	migrated, skipped, failed int
}

// fakeRecorder captura las métricas de migración.
type fakeRecorder struct {
	mu    sync.Mutex
	calls []migrationCall
}

func (f *fakeRecorder) RecordBatch(entity.MovementType, *entity.BatchResult, time.Duration) {}

func (f *fakeRecorder) RecordMigration(dryRun bool, migrated, skipped, failed int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, migrationCall{dryRun, migrated, skipped, failed})
}

// seedStore ítems ordenados por nombre: tres a migrar, uno sin cambio, uno correcto.
func seedStore() *memory.ItemStore {
	return memory.NewItemStore(
		&entity.Item{Name: "LED Bulb 9W", Category: "Steel"},
		&entity.Item{Name: "Pipe wire clamp", Category: "Uncategorized"},
		&entity.Item{Name: "cement"},
		&entity.Item{Name: "iron rod", Category: "Steel"},
		&entity.Item{Name: "sand", Category: "Construction Materials"},
	)
}

func newAuditor(store *memory.ItemStore, rec *fakeRecorder) *migration.Auditor {
	return migration.NewAuditor(store, classifier.New(), migration.Config{}, rec, nil)
}

// ──────────────────────────────────────────────────────────────────────────────
// Migrate
// ──────────────────────────────────────────────────────────────────────────────

func TestMigrate_DryRun_NoEscribe(t *testing.T) {
	store := seedStore()
	rec := &fakeRecorder{}
	a := newAuditor(store, rec)

	rep, err := a.Migrate(context.Background(), migration.Options{DryRun: true})
	require.NoError(t, err)
	assert.True(t, rep.DryRun)
	assert.True(t, rep.Success)
	assert.Equal(t, 5, rep.TotalItems)
	assert.Equal(t, 3, rep.ItemsToMigrate)
	assert.Equal(t, 3, rep.Migrated)
	assert.Equal(t, 2, rep.Skipped, "sand se omite e iron rod queda igual")
	assert.Equal(t, "DRY RUN: Would migrate 3 items to new categories", rep.Message)

	require.Len(t, rep.Details, 3)
	assert.Equal(t, "LED Bulb 9W", rep.Details[0].ItemName)
	assert.Equal(t, "Steel", rep.Details[0].OldCategory)
	assert.Equal(t, "Lamps and Bulbs > LED Bulbs", rep.Details[0].NewCategory)
	assert.Equal(t, migration.StatusWouldMigrate, rep.Details[0].Status)
	for _, d := range rep.Details {
		assert.NotEqual(t, "iron rod", d.ItemName)
	}

	it, _ := store.Item("LED Bulb 9W")
	assert.Equal(t, entity.Category("Steel"), it.Category, "la simulación no modifica el almacén")
	require.Len(t, rec.calls, 1)
	assert.Equal(t, migrationCall{true, 3, 2, 0}, rec.calls[0])
}

func TestMigrate_Real_AplicaEIdempotente(t *testing.T) {
	store := seedStore()
	a := newAuditor(store, &fakeRecorder{})

	rep, err := a.Migrate(context.Background(), migration.Options{})
	require.NoError(t, err)
	assert.Equal(t, 3, rep.Migrated)
	assert.Equal(t, "Successfully migrated 3 items to new categories", rep.Message)

	it, _ := store.Item("cement")
	assert.Equal(t, entity.Category("Construction Materials"), it.Category)
	it, _ = store.Item("pipe wire clamp")
	assert.Equal(t, entity.Category("Plumbing > Pipes"), it.Category)

	again, err := a.Migrate(context.Background(), migration.Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, again.Migrated, "una segunda pasada no cambia nada")
}

func TestMigrate_TamanoDeLote(t *testing.T) {
	a := newAuditor(seedStore(), &fakeRecorder{})
	rep, err := a.Migrate(context.Background(), migration.Options{DryRun: true, BatchSize: 2})
	require.NoError(t, err)
	assert.Len(t, rep.Details, 2)
	assert.Equal(t, 1, rep.Remaining)
}

func TestMigrate_SinCambioNoOcupaElLote(t *testing.T) {
	store := memory.NewItemStore(
		&entity.Item{Name: "Steel rod 1", Category: "Steel"},
		&entity.Item{Name: "Steel rod 2", Category: "Steel"},
		&entity.Item{Name: "Steel rod 3", Category: "Steel"},
		&entity.Item{Name: "Zinc cement", Category: "Uncategorized"},
	)
	a := newAuditor(store, &fakeRecorder{})

	rep, err := a.Migrate(context.Background(), migration.Options{BatchSize: 3})
	require.NoError(t, err)
	assert.Equal(t, 1, rep.ItemsToMigrate)
	assert.Equal(t, 3, rep.Skipped)
	assert.Equal(t, 1, rep.Migrated)
	assert.Equal(t, 0, rep.Remaining)
	require.Len(t, rep.Details, 1)
	assert.Equal(t, "Zinc cement", rep.Details[0].ItemName)

	it, _ := store.Item("Zinc cement")
	assert.Equal(t, entity.Category("Construction Materials"), it.Category)

	again, err := a.Migrate(context.Background(), migration.Options{BatchSize: 3})
	require.NoError(t, err)
	assert.Equal(t, 0, again.ItemsToMigrate)
	assert.Equal(t, 4, again.Skipped)
}

func TestMigrate_FallosDelAlmacen(t *testing.T) {
	store := seedStore()
	store.FailWith(func(op, name string) error {
		if op == "UpdateItemCategory" && name == "cement" {
			return memory.Unavailable("")(op, name)
		}
		return nil
	})
	a := newAuditor(store, &fakeRecorder{})

	rep, err := a.Migrate(context.Background(), migration.Options{})
	require.NoError(t, err)
	assert.False(t, rep.Success)
	assert.Equal(t, 2, rep.Migrated)
	assert.Equal(t, 1, rep.Failed)
	require.Len(t, rep.Errors, 1)
	assert.Contains(t, rep.Errors[0], "Error processing cement")
}

func TestMigrate_AlmacenNoDisponible(t *testing.T) {
	store := seedStore()
	store.FailWith(memory.Unavailable("FetchAllItems"))
	_, err := newAuditor(store, &fakeRecorder{}).Migrate(context.Background(), migration.Options{})
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestMigrate_SinItems(t *testing.T) {
	rep, err := newAuditor(memory.NewItemStore(), &fakeRecorder{}).Migrate(context.Background(), migration.Options{})
	require.NoError(t, err)
	assert.False(t, rep.Success)
	assert.Equal(t, "No items found to migrate", rep.Message)
}

// ──────────────────────────────────────────────────────────────────────────────
// Preview, ValidateData y CheckConsistency
// ──────────────────────────────────────────────────────────────────────────────

func TestPreview_Limite(t *testing.T) {
	rep, err := newAuditor(seedStore(), &fakeRecorder{}).Preview(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, rep.ItemsToMigrate)
	assert.Equal(t, 2, rep.ItemsToSkip)
	require.Len(t, rep.Items, 3)
	assert.Equal(t, "None", rep.Items[2].CurrentCategory)
	assert.Equal(t, "Construction Materials", rep.Items[2].ProposedCategory)
	assert.Equal(t, "1 piece", rep.Items[2].UnitInfo)
	assert.Equal(t, "Preview of 3 items that would be migrated", rep.Message)
}

func TestValidateData_Distribucion(t *testing.T) {
	v, err := newAuditor(seedStore(), &fakeRecorder{}).ValidateData(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, v.WithCategories)
	assert.Equal(t, 1, v.WithoutCategories)
	assert.Equal(t, 3, v.WithPlaceholder)
	assert.Equal(t, 2, v.CategoryDistribution["Steel"])
	assert.True(t, v.MigrationNeeded)
	assert.Equal(t, "Migration needed: 1 items without categories, 3 with placeholder categories", v.Message)
	assert.Contains(t, v.Warnings, "Item 'cement' has no category")
}

func TestValidateData_SinMigracion(t *testing.T) {
	store := memory.NewItemStore(&entity.Item{Name: "sand", Category: "Construction Materials"})
	v, err := newAuditor(store, &fakeRecorder{}).ValidateData(context.Background())
	require.NoError(t, err)
	assert.False(t, v.MigrationNeeded)
	assert.Empty(t, v.Warnings)
}

func TestCheckConsistency_DetectaConflictos(t *testing.T) {
	store := memory.NewItemStore(
		&entity.Item{Name: "Copper wire", Category: "Paint"},
		&entity.Item{Name: "Exterior paint", Category: "Paint"},
		&entity.Item{Name: "hammer", Category: "Tools"},
		&entity.Item{Name: "cement", Category: "Steel"},
	)
	rep, err := newAuditor(store, &fakeRecorder{}).CheckConsistency(context.Background())
	require.NoError(t, err)

	require.Len(t, rep.Inconsistencies, 1, "Steel vs Construction Materials no es un par conflictivo")
	assert.Equal(t, "Copper wire", rep.Inconsistencies[0].ItemName)
	assert.Equal(t, "Electrical > Cables", rep.Inconsistencies[0].Suggestion)
	assert.Equal(t, []string{"Paint", "Steel", "Tools"}, rep.CategoriesFound)
	assert.Contains(t, rep.Suggestions, "Consider removing unused categories")
	assert.Contains(t, rep.Suggestions, "Consider consolidating 3 small categories: Paint, Steel, Tools")
}

// ──────────────────────────────────────────────────────────────────────────────
// Respaldo y reversión
// ──────────────────────────────────────────────────────────────────────────────

func TestRollback_DesdeRespaldoDeSimulacion(t *testing.T) {
	store := seedStore()
	a := newAuditor(store, &fakeRecorder{})

	dry, err := a.Migrate(context.Background(), migration.Options{DryRun: true})
	require.NoError(t, err)
	snapshot := migration.SnapshotFromReport(dry)
	require.Len(t, snapshot, 3)

	_, err = a.Migrate(context.Background(), migration.Options{})
	require.NoError(t, err)

	rb := a.Rollback(context.Background(), migration.BackupsFromSnapshot(snapshot))
	assert.True(t, rb.Success)
	assert.Equal(t, 3, rb.RolledBack)
	assert.Equal(t, "Rollback completed: 3 items restored, 0 failed", rb.Message)

	it, _ := store.Item("LED Bulb 9W")
	assert.Equal(t, entity.Category("Steel"), it.Category)
	it, _ = store.Item("cement")
	assert.Equal(t, entity.Category(""), it.Category)
}

func TestRollback_RegistrosInvalidos(t *testing.T) {
	a := newAuditor(seedStore(), &fakeRecorder{})
	rb := a.Rollback(context.Background(), []migration.BackupRecord{
		{ItemName: "", OriginalCategory: "Paint"},
		{ItemName: "ghost", OriginalCategory: "Paint"},
		{ItemName: "sand", OriginalCategory: "Steel"},
	})
	assert.False(t, rb.Success)
	assert.Equal(t, 1, rb.RolledBack)
	assert.Equal(t, 1, rb.Failed)
	assert.Equal(t, []string{"Backup record missing item name", "Failed to rollback ghost"}, rb.Errors)
}
