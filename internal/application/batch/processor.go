package batch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/inventory-assistant/internal/application/ports"
	"github.com/jhoicas/inventory-assistant/internal/domain"
	"github.com/jhoicas/inventory-assistant/internal/domain/entity"
	"github.com/jhoicas/inventory-assistant/internal/domain/repository"
	"github.com/jhoicas/inventory-assistant/pkg/logger"
)

// Outcome resultado de procesar un lote: el BatchResult y los movimientos registrados.
type Outcome struct {
	Result    *entity.BatchResult
	Movements []*entity.StockMovement
	BatchID   string
}

// Processor orquesta validar → construir → registrar en el almacén.
type Processor struct {
	validator *Validator
	builder   *Builder
	store     repository.ItemStore
	metrics   ports.MetricsRecorder
	log       *logger.Logger
}

// NewProcessor construye el procesador. metrics y log pueden ser nil.
func NewProcessor(validator *Validator, builder *Builder, store repository.ItemStore, metrics ports.MetricsRecorder, log *logger.Logger) *Processor {
	if metrics == nil {
		metrics = ports.NopRecorder{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Processor{
		validator: validator,
		builder:   builder,
		store:     store,
		metrics:   metrics,
		log:       log.Component("batch"),
	}
}

// Validate solo valida (vista previa, sin escrituras).
func (p *Processor) Validate(req Request) ValidationResult {
	return p.validator.Validate(req.Items, req.MovementType, req.Meta)
}

// Preview valida y, si el lote es válido, construye los movimientos sin registrarlos.
// La lectura de ubicaciones preferidas es opcional: si falla se omite.
func (p *Processor) Preview(ctx context.Context, req Request) (ValidationResult, *Built) {
	vr := p.Validate(req)
	if !vr.OK {
		return vr, nil
	}
	hints, err := p.locationHints(ctx)
	if err != nil {
		p.log.Debug().Err(err).Msg("vista previa sin ubicaciones preferidas")
	}
	return vr, p.builder.Build(req, hints)
}

// Process procesa el lote completo. Nunca devuelve error ni propaga pánicos:
// un fallo inesperado se convierte en un resultado con un único InternalError.
func (p *Processor) Process(ctx context.Context, req Request) (out *Outcome) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			p.log.Error().Interface("panic", r).Str("type", string(req.MovementType)).Msg("fallo interno procesando lote")
			res := FailedResult(len(req.Items), []entity.BatchError{{
				Kind:       entity.ErrorKindInternal,
				Message:    "Unexpected error while processing the batch",
				Severity:   entity.SeverityCritical,
				EntryIndex: entity.NoEntry,
			}}, nil)
			out = &Outcome{Result: res}
		}
		out.Result.ProcessingTimeSeconds = time.Since(start).Seconds()
		p.metrics.RecordBatch(req.MovementType, out.Result, time.Since(start))
	}()

	vr := p.Validate(req)
	if !vr.OK {
		p.log.Info().Str("type", string(req.MovementType)).Int("errors", len(vr.Errors)).Msg("lote rechazado por validación")
		return &Outcome{Result: FailedResult(len(req.Items), vr.Errors, vr.Warnings)}
	}

	warnings := append([]entity.BatchError(nil), vr.Warnings...)
	hints, err := p.locationHints(ctx)
	if err != nil {
		p.log.Warn().Err(err).Msg("no se pudieron cargar ubicaciones preferidas")
		warnings = append(warnings, entity.BatchError{
			Kind:       entity.ErrorKindExternalUnavailable,
			Message:    fmt.Sprintf("Could not load stored item locations: %v", err),
			Severity:   entity.SeverityWarning,
			EntryIndex: entity.NoEntry,
		})
	}

	built := p.builder.Build(req, hints)
	warnings = append(warnings, built.Warnings...)

	var (
		errs     []entity.BatchError
		ids      []string
		recorded []*entity.StockMovement
	)
	for i, m := range built.Movements {
		id, err := p.record(ctx, m, hints)
		if err != nil {
			p.log.Warn().Err(err).Str("batch_id", built.BatchID).Str("item", m.ItemName).Msg("no se pudo registrar el movimiento")
			errs = append(errs, storeError(i, m.ItemName, err))
			continue
		}
		ids = append(ids, id)
		recorded = append(recorded, m)
	}

	res := AssembleResult(len(req.Items), len(recorded), ids, errs, warnings, built.GlobalParameters)
	res.Summary = Summarize(req.MovementType, res)
	p.log.Info().
		Str("batch_id", built.BatchID).
		Str("type", string(req.MovementType)).
		Int("successful", res.SuccessfulEntries).
		Int("failed", res.FailedEntries).
		Msg("lote procesado")
	return &Outcome{Result: res, Movements: recorded, BatchID: built.BatchID}
}

// record en IN crea/actualiza el ítem antes de anexar el movimiento.
func (p *Processor) record(ctx context.Context, m *entity.StockMovement, hints map[string]string) (string, error) {
	if m.MovementType == entity.MovementTypeIN {
		fields := entity.ItemFields{Category: m.Category, UnitSize: m.UnitSize, UnitType: m.UnitType}
		if _, known := hints[strings.ToLower(m.ItemName)]; !known {
			fields.Location = m.ToLocation
		}
		if _, err := p.store.CreateOrUpdateItem(ctx, m.ItemName, fields); err != nil {
			return "", fmt.Errorf("create or update item: %w", err)
		}
	}
	id, err := p.store.AppendMovement(ctx, m)
	if err != nil {
		return "", fmt.Errorf("append movement: %w", err)
	}
	return id, nil
}

// locationHints ubicación preferida por ítem (nombre en minúsculas).
func (p *Processor) locationHints(ctx context.Context) (map[string]string, error) {
	items, err := p.store.FetchAllItems(ctx)
	if err != nil {
		return nil, err
	}
	hints := make(map[string]string, len(items))
	for _, it := range items {
		if it == nil || strings.TrimSpace(it.Location) == "" {
			continue
		}
		hints[strings.ToLower(strings.TrimSpace(it.Name))] = it.Location
	}
	return hints, nil
}

func storeError(i int, name string, err error) entity.BatchError {
	kind := entity.ErrorKindInternal
	if errors.Is(err, domain.ErrStoreUnavailable) {
		kind = entity.ErrorKindExternalUnavailable
	}
	return entity.BatchError{
		Kind:       kind,
		Message:    fmt.Sprintf("Item %d (%s): %v", i+1, name, err),
		Severity:   entity.SeverityError,
		EntryIndex: i,
	}
}
