package dto

// ClassifyResponse respuesta de GET /api/categories/classify.
type ClassifyResponse struct {
	Name       string   `json:"name"`
	Category   string   `json:"category"`
	Candidates []string `json:"candidates"`
	Method     string   `json:"method"`
	UnitSize   string   `json:"unit_size,omitempty"`
	UnitType   string   `json:"unit_type,omitempty"`
}

// CategoryListResponse respuesta de GET /api/categories.
type CategoryListResponse struct {
	Categories []string `json:"categories"`
	Main       []string `json:"main_categories"`
}

// MigrationRunRequest body opcional de POST /api/migration/run.
type MigrationRunRequest struct {
	DryRun    bool `json:"dry_run"`
	BatchSize int  `json:"batch_size"`
}

// BackupRecordDTO categoría original de un ítem para revertir una migración.
type BackupRecordDTO struct {
	ItemName         string `json:"item_name"`
	OriginalCategory string `json:"original_category"`
}

// RollbackRequest body JSON de POST /api/migration/rollback.
type RollbackRequest struct {
	Backups []BackupRecordDTO `json:"backups"`
}
