// Package migration recorre los ítems ya guardados para detectar y corregir categorías
// vacías o de relleno, con simulación (dry run) y reversión a partir de respaldos del llamador.
package migration

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/inventory-assistant/internal/application/ports"
	"github.com/jhoicas/inventory-assistant/internal/domain/classifier"
	"github.com/jhoicas/inventory-assistant/internal/domain/entity"
	"github.com/jhoicas/inventory-assistant/internal/domain/repository"
	"github.com/jhoicas/inventory-assistant/pkg/logger"
)

// Valores por defecto.
const (
	DefaultBatchSize    = 10
	DefaultPreviewLimit = 20
)

// DefaultPlaceholders categorías que se consideran de relleno.
var DefaultPlaceholders = []string{"Steel", "Uncategorized"}

// significantMismatches pares de familias que no deberían confundirse.
var significantMismatches = [][2]string{
	{"Paint", "Electrical"},
	{"Electrical", "Plumbing"},
	{"Tools", "Safety Equipment"},
	{"Steel", "Carpentry"},
}

// Config parámetros del auditor.
type Config struct {
	Placeholders []string
	BatchSize    int
}

// Auditor migración y auditoría de categorías sobre el almacén externo.
type Auditor struct {
	store        repository.ItemStore
	classifier   *classifier.Classifier
	placeholders map[string]bool
	batchSize    int
	metrics      ports.MetricsRecorder
	log          *logger.Logger
	now          func() time.Time
}

// NewAuditor crea el auditor. metrics y log pueden ser nil.
func NewAuditor(store repository.ItemStore, c *classifier.Classifier, cfg Config, metrics ports.MetricsRecorder, log *logger.Logger) *Auditor {
	if len(cfg.Placeholders) == 0 {
		cfg.Placeholders = DefaultPlaceholders
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if metrics == nil {
		metrics = ports.NopRecorder{}
	}
	if log == nil {
		log = logger.Nop()
	}
	ph := make(map[string]bool, len(cfg.Placeholders))
	for _, p := range cfg.Placeholders {
		ph[strings.ToLower(strings.TrimSpace(p))] = true
	}
	return &Auditor{
		store:        store,
		classifier:   c,
		placeholders: ph,
		batchSize:    cfg.BatchSize,
		metrics:      metrics,
		log:          log.Component("migration"),
		now:          time.Now,
	}
}

// NeedsMigration categoría vacía o de relleno.
func (a *Auditor) NeedsMigration(c entity.Category) bool {
	s := strings.ToLower(strings.TrimSpace(c.String()))
	return s == "" || a.placeholders[s]
}

// partition separa los ítems a migrar de los que se omiten, conservando el orden del almacén.
// Un ítem de relleno cuya categoría detectada coincide con la guardada se omite
// antes del corte por BatchSize.
func (a *Auditor) partition(items []*entity.Item) (migrate, skip []*entity.Item) {
	for _, it := range items {
		if a.NeedsMigration(it.Category) && !a.unchanged(it) {
			migrate = append(migrate, it)
		} else {
			skip = append(skip, it)
		}
	}
	return migrate, skip
}

func (a *Auditor) unchanged(it *entity.Item) bool {
	return strings.EqualFold(it.Category.String(), a.classifier.Classify(it.Name).String())
}

// Migrate reclasifica como máximo BatchSize ítems con categoría vacía o de relleno.
// En simulación solo informa; en ejecución real aplica UpdateItemCategory ítem por ítem.
// Es idempotente: un ítem ya migrado deja de cumplir la condición de migración.
func (a *Auditor) Migrate(ctx context.Context, opts Options) (*Report, error) {
	if opts.BatchSize <= 0 {
		opts.BatchSize = a.batchSize
	}
	a.log.Info().Bool("dry_run", opts.DryRun).Int("batch_size", opts.BatchSize).Msg("iniciando migración de categorías")

	items, err := a.store.FetchAllItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("migrate: fetch items: %w", err)
	}
	rep := &Report{DryRun: opts.DryRun, TotalItems: len(items), Errors: []string{}, Details: []Detail{}}
	if len(items) == 0 {
		rep.Message = "No items found to migrate"
		return rep, nil
	}

	toMigrate, toSkip := a.partition(items)
	rep.ItemsToMigrate = len(toMigrate)
	rep.Skipped = len(toSkip)
	if len(toMigrate) == 0 {
		rep.Success = true
		rep.Message = "No items need migration - all items already have proper categories"
		a.metrics.RecordMigration(opts.DryRun, 0, rep.Skipped, 0)
		return rep, nil
	}

	batch := toMigrate
	if len(batch) > opts.BatchSize {
		batch = batch[:opts.BatchSize]
	}
	rep.Remaining = len(toMigrate) - len(batch)

	for _, it := range batch {
		d := a.migrateOne(ctx, it, opts.DryRun)
		switch d.Status {
		case StatusWouldMigrate, StatusSuccess:
			rep.Migrated++
		case StatusUnchanged:
			rep.Skipped++
		case StatusFailed:
			rep.Failed++
			rep.Errors = append(rep.Errors, fmt.Sprintf("Failed to update %s", it.Name))
		case StatusError:
			rep.Failed++
			rep.Errors = append(rep.Errors, fmt.Sprintf("Error processing %s: %s", it.Name, d.Error))
		}
		rep.Details = append(rep.Details, d)
	}

	if opts.DryRun {
		rep.Message = fmt.Sprintf("DRY RUN: Would migrate %d items to new categories", rep.Migrated)
	} else {
		rep.Message = fmt.Sprintf("Successfully migrated %d items to new categories", rep.Migrated)
	}
	rep.Success = len(rep.Errors) == 0
	a.metrics.RecordMigration(opts.DryRun, rep.Migrated, rep.Skipped, rep.Failed)
	a.log.Info().
		Bool("dry_run", opts.DryRun).
		Int("migrated", rep.Migrated).
		Int("failed", rep.Failed).
		Int("remaining", rep.Remaining).
		Msg("migración de categorías terminada")
	return rep, nil
}

func (a *Auditor) migrateOne(ctx context.Context, it *entity.Item, dryRun bool) Detail {
	detected := a.classifier.Classify(it.Name)
	d := Detail{
		ItemName:    it.Name,
		OldCategory: it.Category.String(),
		NewCategory: detected.String(),
		StockLevel:  it.OnHand,
		UnitInfo:    it.Unit().String(),
	}
	if strings.EqualFold(d.OldCategory, d.NewCategory) {
		d.Status = StatusUnchanged
		return d
	}
	if dryRun {
		d.Status = StatusWouldMigrate
		return d
	}

	ok, err := a.store.UpdateItemCategory(ctx, it.Name, detected)
	switch {
	case err != nil:
		a.log.Error().Err(err).Str("item", it.Name).Msg("error actualizando categoría")
		d.Status = StatusError
		d.Error = err.Error()
	case !ok:
		d.Status = StatusFailed
		d.Error = "item not found in store"
	default:
		d.Status = StatusSuccess
	}
	return d
}

// Preview propuesta para los primeros limit ítems a migrar, sin escrituras.
func (a *Auditor) Preview(ctx context.Context, limit int) (*PreviewReport, error) {
	if limit <= 0 {
		limit = DefaultPreviewLimit
	}
	items, err := a.store.FetchAllItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("migration preview: fetch items: %w", err)
	}
	toMigrate, toSkip := a.partition(items)
	rep := &PreviewReport{
		TotalItems:     len(items),
		ItemsToMigrate: len(toMigrate),
		ItemsToSkip:    len(toSkip),
		Items:          []PreviewItem{},
		Limit:          limit,
	}
	for i, it := range toMigrate {
		if i == limit {
			break
		}
		current := it.Category.String()
		if current == "" {
			current = "None"
		}
		rep.Items = append(rep.Items, PreviewItem{
			ItemName:         it.Name,
			CurrentCategory:  current,
			ProposedCategory: a.classifier.Classify(it.Name).String(),
			StockLevel:       it.OnHand,
			UnitInfo:         it.Unit().String(),
		})
	}
	rep.Message = fmt.Sprintf("Preview of %d items that would be migrated", len(rep.Items))
	return rep, nil
}

// ValidateData distribución de categorías y avisos sobre ítems sin categoría o de relleno.
func (a *Auditor) ValidateData(ctx context.Context) (*DataValidation, error) {
	items, err := a.store.FetchAllItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("validate migration data: fetch items: %w", err)
	}
	v := &DataValidation{
		TotalItems:           len(items),
		CategoryDistribution: map[string]int{},
		Warnings:             []string{},
	}
	for _, it := range items {
		cat := strings.TrimSpace(it.Category.String())
		if cat == "" {
			v.WithoutCategories++
			v.Warnings = append(v.Warnings, fmt.Sprintf("Item '%s' has no category", it.Name))
			continue
		}
		v.WithCategories++
		v.CategoryDistribution[cat]++
		if a.NeedsMigration(it.Category) {
			v.WithPlaceholder++
			v.Warnings = append(v.Warnings, fmt.Sprintf("Item '%s' has placeholder category '%s'", it.Name, cat))
		}
	}

	v.MigrationNeeded = v.WithoutCategories > 0 || v.WithPlaceholder > 0
	if !v.MigrationNeeded {
		v.Message = "No migration needed - all items have proper categories"
		return v, nil
	}
	v.Message = fmt.Sprintf("Migration needed: %d items without categories, %d with placeholder categories",
		v.WithoutCategories, v.WithPlaceholder)
	if v.WithoutCategories > 0 {
		v.Warnings = append(v.Warnings, fmt.Sprintf("%d items have no category and will be auto-categorized", v.WithoutCategories))
	}
	if v.WithPlaceholder > 0 {
		v.Warnings = append(v.Warnings, fmt.Sprintf("%d items have placeholder categories and will be re-categorized", v.WithPlaceholder))
	}
	return v, nil
}

// CheckConsistency busca ítems cuya categoría guardada pertenece a una familia que suele
// confundirse con la detectada (Paint/Electrical, Electrical/Plumbing, Tools/Safety Equipment,
// Steel/Carpentry), categorías del catálogo sin ítems y sugerencias de organización.
func (a *Auditor) CheckConsistency(ctx context.Context) (*ConsistencyReport, error) {
	items, err := a.store.FetchAllItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("check consistency: fetch items: %w", err)
	}
	rep := &ConsistencyReport{
		TotalItems:      len(items),
		CategoriesFound: []string{},
		Inconsistencies: []Inconsistency{},
		Warnings:        []string{},
		Suggestions:     []string{},
		Timestamp:       a.now().UTC(),
	}

	found := map[string]bool{}
	counts := map[string]int{}
	for _, it := range items {
		if it.Category == "" {
			continue
		}
		found[it.Category.String()] = true
		counts[it.Category.String()]++
		detected := a.classifier.Classify(it.Name)
		if mismatch(it.Category, detected) {
			rep.Inconsistencies = append(rep.Inconsistencies, Inconsistency{
				ItemName:        it.Name,
				CurrentCategory: it.Category.String(),
				Issue:           "Potential category mismatch",
				Suggestion:      detected.String(),
			})
		}
	}
	for c := range found {
		rep.CategoriesFound = append(rep.CategoriesFound, c)
	}
	sort.Strings(rep.CategoriesFound)

	var orphaned int
	for _, c := range a.classifier.AllCategories() {
		if !found[c.String()] {
			orphaned++
		}
	}
	if orphaned > 0 {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("Found %d categories with no items", orphaned))
		rep.Suggestions = append(rep.Suggestions, "Consider removing unused categories")
	}
	rep.Suggestions = append(rep.Suggestions, organizationSuggestions(counts)...)
	return rep, nil
}

// mismatch: sin relación de inclusión entre ambas y sus familias forman un par conflictivo.
func mismatch(current, detected entity.Category) bool {
	cur := strings.ToLower(current.String())
	det := strings.ToLower(detected.String())
	if strings.Contains(cur, det) || strings.Contains(det, cur) {
		return false
	}
	cb, db := strings.ToLower(current.Base()), strings.ToLower(detected.Base())
	for _, pair := range significantMismatches {
		p0, p1 := strings.ToLower(pair[0]), strings.ToLower(pair[1])
		if (cb == p0 || cb == p1) && (db == p0 || db == p1) {
			return true
		}
	}
	return false
}

func organizationSuggestions(counts map[string]int) []string {
	var small, large, flat []string
	for c, n := range counts {
		if n <= 2 {
			small = append(small, c)
		}
		if n >= 20 {
			large = append(large, c)
		}
		if !entity.Category(c).IsHierarchical() && n >= 10 {
			flat = append(flat, c)
		}
	}
	sort.Strings(small)
	sort.Strings(large)
	sort.Strings(flat)

	var out []string
	if len(small) > 0 {
		out = append(out, fmt.Sprintf("Consider consolidating %d small categories: %s", len(small), strings.Join(head(small, 5), ", ")))
	}
	if len(large) > 0 {
		out = append(out, fmt.Sprintf("Consider splitting large categories: %s", strings.Join(large, ", ")))
	}
	if len(flat) > 0 {
		out = append(out, fmt.Sprintf("Consider adding subcategories to: %s", strings.Join(head(flat, 3), ", ")))
	}
	return out
}

func head(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// Rollback reaplica las categorías originales de los respaldos del llamador.
// El auditor no guarda respaldos propios: sin el resultado de la simulación no hay reversión.
func (a *Auditor) Rollback(ctx context.Context, backups []BackupRecord) *RollbackReport {
	a.log.Info().Int("items", len(backups)).Msg("iniciando reversión de migración")
	rep := &RollbackReport{TotalItems: len(backups), Errors: []string{}}
	for _, b := range backups {
		name := strings.TrimSpace(b.ItemName)
		if name == "" {
			rep.Errors = append(rep.Errors, "Backup record missing item name")
			continue
		}
		ok, err := a.store.UpdateItemCategory(ctx, name, entity.Category(b.OriginalCategory))
		switch {
		case err != nil:
			rep.Failed++
			rep.Errors = append(rep.Errors, fmt.Sprintf("Error rolling back %s: %v", name, err))
		case !ok:
			rep.Failed++
			rep.Errors = append(rep.Errors, fmt.Sprintf("Failed to rollback %s", name))
		default:
			rep.RolledBack++
		}
	}
	rep.Success = len(rep.Errors) == 0
	rep.Message = fmt.Sprintf("Rollback completed: %d items restored, %d failed", rep.RolledBack, rep.Failed)
	a.log.Info().Int("rolled_back", rep.RolledBack).Int("failed", rep.Failed).Msg("reversión terminada")
	return rep
}

// SnapshotFromReport filas de respaldo de los ítems migrados (o a migrar) de un reporte.
func SnapshotFromReport(rep *Report) []ports.CategorySnapshot {
	out := []ports.CategorySnapshot{}
	if rep == nil {
		return out
	}
	for _, d := range rep.Details {
		if d.Status != StatusWouldMigrate && d.Status != StatusSuccess {
			continue
		}
		out = append(out, ports.CategorySnapshot{
			ItemName:         d.ItemName,
			OriginalCategory: entity.Category(d.OldCategory),
			NewCategory:      entity.Category(d.NewCategory),
		})
	}
	return out
}

// BackupsFromSnapshot convierte filas de respaldo en registros para Rollback.
func BackupsFromSnapshot(rows []ports.CategorySnapshot) []BackupRecord {
	out := make([]BackupRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, BackupRecord{ItemName: r.ItemName, OriginalCategory: r.OriginalCategory.String()})
	}
	return out
}
