package migration

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status estado de un ítem dentro de una migración.
type Status string

// Estados por ítem.
const (
	StatusWouldMigrate Status = "would_migrate"
	StatusSuccess      Status = "success"
	StatusUnchanged    Status = "unchanged"
	StatusFailed       Status = "failed"
	StatusError        Status = "error"
)

// Options parámetros de Migrate. BatchSize <= 0 usa el valor configurado.
type Options struct {
	DryRun    bool
	BatchSize int
}

// Detail delta antes/después de un ítem.
type Detail struct {
	ItemName    string          `json:"item_name"`
	OldCategory string          `json:"old_category"`
	NewCategory string          `json:"new_category"`
	StockLevel  decimal.Decimal `json:"stock_level"`
	UnitInfo    string          `json:"unit_info"`
	Status      Status          `json:"status"`
	Error       string          `json:"error,omitempty"`
}

// Report resultado agregado de Migrate.
type Report struct {
	DryRun         bool     `json:"dry_run"`
	Success        bool     `json:"success"`
	Message        string   `json:"message"`
	TotalItems     int      `json:"total_items"`
	ItemsToMigrate int      `json:"items_to_migrate"`
	Skipped        int      `json:"skipped_items"`
	Migrated       int      `json:"migrated_items"`
	Failed         int      `json:"failed_items"`
	Remaining      int      `json:"remaining_items"`
	Errors         []string `json:"errors"`
	Details        []Detail `json:"migration_details"`
}

// PreviewItem propuesta para un ítem sin aplicarla.
type PreviewItem struct {
	ItemName         string          `json:"item_name"`
	CurrentCategory  string          `json:"current_category"`
	ProposedCategory string          `json:"proposed_category"`
	StockLevel       decimal.Decimal `json:"stock_level"`
	UnitInfo         string          `json:"unit_info"`
}

// PreviewReport resultado de Preview.
type PreviewReport struct {
	TotalItems     int           `json:"total_items"`
	ItemsToMigrate int           `json:"items_to_migrate"`
	ItemsToSkip    int           `json:"items_to_skip"`
	Items          []PreviewItem `json:"preview_items"`
	Limit          int           `json:"preview_limit"`
	Message        string        `json:"message"`
}

// DataValidation distribución de categorías y avisos previos a migrar.
type DataValidation struct {
	TotalItems           int            `json:"total_items"`
	WithCategories       int            `json:"items_with_categories"`
	WithoutCategories    int            `json:"items_without_categories"`
	WithPlaceholder      int            `json:"items_with_default_category"`
	CategoryDistribution map[string]int `json:"category_distribution"`
	MigrationNeeded      bool           `json:"migration_needed"`
	Warnings             []string       `json:"warnings"`
	Message              string         `json:"message"`
}

// Inconsistency ítem cuya categoría guardada choca con la detectada.
type Inconsistency struct {
	ItemName        string `json:"item_name"`
	CurrentCategory string `json:"current_category"`
	Issue           string `json:"issue"`
	Suggestion      string `json:"suggestion"`
}

// ConsistencyReport resultado de CheckConsistency.
type ConsistencyReport struct {
	TotalItems      int             `json:"total_items"`
	CategoriesFound []string        `json:"categories_found"`
	Inconsistencies []Inconsistency `json:"inconsistencies"`
	Warnings        []string        `json:"warnings"`
	Suggestions     []string        `json:"suggestions"`
	Timestamp       time.Time       `json:"timestamp"`
}

// BackupRecord categoría original de un ítem, provista por el llamador para revertir.
type BackupRecord struct {
	ItemName         string `json:"item_name"`
	OriginalCategory string `json:"original_category"`
}

// RollbackReport resultado de Rollback.
type RollbackReport struct {
	TotalItems int      `json:"total_items"`
	RolledBack int      `json:"rolled_back"`
	Failed     int      `json:"failed"`
	Errors     []string `json:"errors"`
	Success    bool     `json:"success"`
	Message    string   `json:"message"`
}
