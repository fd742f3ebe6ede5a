package ports

import (
	"time"

	"github.com/jhoicas/inventory-assistant/internal/domain/entity"
)

// MetricsRecorder puerto de salida para métricas del motor (Prometheus en producción).
// Las implementaciones deben ser seguras para uso concurrente.
type MetricsRecorder interface {
	RecordBatch(movementType entity.MovementType, result *entity.BatchResult, elapsed time.Duration)
	RecordMigration(dryRun bool, migrated, skipped, failed int)
}

// NopRecorder descarta todas las métricas.
type NopRecorder struct{}

var _ MetricsRecorder = NopRecorder{}

// RecordBatch no hace nada.
func (NopRecorder) RecordBatch(entity.MovementType, *entity.BatchResult, time.Duration) {}

// RecordMigration no hace nada.
func (NopRecorder) RecordMigration(bool, int, int, int) {}
