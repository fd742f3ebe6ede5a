// Package metrics expone las métricas del motor de lotes en formato Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/inventory-assistant/internal/application/ports"
	"github.com/jhoicas/inventory-assistant/internal/domain/entity"
)

const namespace = "inventory_assistant"

var _ ports.MetricsRecorder = (*Recorder)(nil)

// Recorder colectores Prometheus del motor, registrados en un registro propio.
type Recorder struct {
	registry *prometheus.Registry

	batches    *prometheus.CounterVec
	entries    *prometheus.CounterVec
	errors     *prometheus.CounterVec
	fallbacks  prometheus.Counter
	duration   *prometheus.HistogramVec
	migrations *prometheus.CounterVec
	migrated   *prometheus.CounterVec
}

// NewRecorder crea y registra los colectores.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		batches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_total",
			Help:      "Lotes procesados por tipo de movimiento y estado",
		}, []string{"type", "status"}),
		entries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_entries_total",
			Help:      "Entradas procesadas por tipo de movimiento y resultado",
		}, []string{"type", "result"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_errors_total",
			Help:      "Errores de lote por tipo de error",
		}, []string{"kind"}),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classification_fallbacks_total",
			Help:      "Categorías sintetizadas porque ninguna regla coincidió",
		}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_duration_seconds",
			Help:      "Tiempo de procesamiento de un lote",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}, []string{"type"}),
		migrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "category_migrations_total",
			Help:      "Ejecuciones de la migración de categorías",
		}, []string{"dry_run"}),
		migrated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "category_migration_items_total",
			Help:      "Ítems tratados por la migración de categorías",
		}, []string{"dry_run", "result"}),
	}
	r.registry.MustRegister(r.batches, r.entries, r.errors, r.fallbacks, r.duration, r.migrations, r.migrated)
	return r
}

// Registry registro de los colectores (para pruebas o para exponerlos junto a otros).
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Handler handler HTTP de /metrics.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// RecordBatch registra un lote terminado.
func (r *Recorder) RecordBatch(mt entity.MovementType, res *entity.BatchResult, elapsed time.Duration) {
	if res == nil {
		return
	}
	t := string(mt)
	r.batches.WithLabelValues(t, batchStatus(res)).Inc()
	r.entries.WithLabelValues(t, "successful").Add(float64(res.SuccessfulEntries))
	r.entries.WithLabelValues(t, "failed").Add(float64(res.FailedEntries))
	r.duration.WithLabelValues(t).Observe(elapsed.Seconds())
	for _, e := range res.Errors {
		r.errors.WithLabelValues(string(e.Kind)).Inc()
	}
	for _, w := range res.Warnings {
		if w.Kind == entity.ErrorKindClassificationFallback {
			r.fallbacks.Inc()
		}
	}
}

// RecordMigration registra una ejecución de la migración de categorías.
func (r *Recorder) RecordMigration(dryRun bool, migrated, skipped, failed int) {
	d := strconv.FormatBool(dryRun)
	r.migrations.WithLabelValues(d).Inc()
	r.migrated.WithLabelValues(d, "migrated").Add(float64(migrated))
	r.migrated.WithLabelValues(d, "skipped").Add(float64(skipped))
	r.migrated.WithLabelValues(d, "failed").Add(float64(failed))
}

func batchStatus(res *entity.BatchResult) string {
	switch {
	case res.FullySuccessful():
		return "success"
	case res.SuccessfulEntries == 0:
		return "error"
	default:
		return "partial_success"
	}
}
