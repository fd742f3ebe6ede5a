package batch

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-assistant/internal/domain/ambiguity"
	"github.com/jhoicas/inventory-assistant/internal/domain/entity"
	"github.com/jhoicas/inventory-assistant/internal/domain/inference"
)

// Valores sustituidos cuando el comando no los trae.
const (
	DefaultProject = "Default Project"
	DefaultDriver  = "Default Driver"
)

// movementDefaults motivo por tipo de movimiento.
var movementDefaults = map[entity.MovementType]string{
	entity.MovementTypeIN:     "Restocking",
	entity.MovementTypeOUT:    "Required",
	entity.MovementTypeADJUST: "Adjustment",
}

// Request entrada del pipeline de un lote.
type Request struct {
	MovementType entity.MovementType
	Items        []entity.ItemDraft
	Meta         Metadata
}

// Built movimientos construidos para un lote, aún sin registrar.
type Built struct {
	BatchID          string
	Timestamp        time.Time
	Movements        []*entity.StockMovement
	Warnings         []entity.BatchError
	GlobalParameters map[string]string
}

// Builder convierte borradores validados en movimientos. Nunca toca el almacén.
type Builder struct {
	resolver *ambiguity.Resolver
	now      func() time.Time
}

// NewBuilder construye el builder. clock nil usa time.Now.
func NewBuilder(resolver *ambiguity.Resolver, clock func() time.Time) *Builder {
	if clock == nil {
		clock = time.Now
	}
	return &Builder{resolver: resolver, now: clock}
}

// NewBatchID identificador opaco del lote: BATCH_<8 hex en mayúsculas>_<unix>.
func NewBatchID(now time.Time) string {
	random := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("BATCH_%s_%d", random, now.Unix())
}

// Build construye un movimiento por ítem con un único batch_id y marca de tiempo.
// hints: nombre de ítem en minúsculas → ubicación preferida registrada (puede ser nil).
func (b *Builder) Build(req Request, hints map[string]string) *Built {
	now := b.now().UTC()
	out := &Built{
		BatchID:   NewBatchID(now),
		Timestamp: now,
		Movements: make([]*entity.StockMovement, 0, len(req.Items)),
	}
	out.GlobalParameters = b.globalParameters(req, out.BatchID)

	for i, draft := range req.Items {
		m, warn := b.buildOne(i, draft, req, hints, out)
		out.Movements = append(out.Movements, m)
		if warn != nil {
			out.Warnings = append(out.Warnings, *warn)
		}
	}
	return out
}

func (b *Builder) buildOne(i int, draft entity.ItemDraft, req Request, hints map[string]string, batch *Built) (*entity.StockMovement, *entity.BatchError) {
	name := strings.TrimSpace(draft.Name)
	meta := req.Meta

	var warn *entity.BatchError
	categorize := func(n string) entity.Category {
		if forced := strings.TrimSpace(meta.Category); forced != "" {
			return entity.Category(forced)
		}
		res := b.resolver.ResolveItem(n)
		if res.Synthesized() {
			warn = &entity.BatchError{
				Kind:       entity.ErrorKindClassificationFallback,
				Message:    fmt.Sprintf("Item %d: no category rule matched '%s'; created category '%s'", i+1, n, res.Category),
				Severity:   entity.SeverityInfo,
				EntryIndex: i,
				Field:      entity.ParamCategory,
			}
		}
		return res.Category
	}
	fields := inference.Populate(entity.ItemDraft{Name: name, Quantity: draft.Quantity, Unit: draft.Unit}, categorize)

	from, to := inference.DetermineLocations(req.MovementType, hints[strings.ToLower(name)], userLocation(req.MovementType, meta))
	location := from
	if req.MovementType == entity.MovementTypeIN {
		location = to
	}

	qty := draft.Quantity.Abs()
	signed := qty
	switch req.MovementType {
	case entity.MovementTypeOUT:
		signed = qty.Neg()
	case entity.MovementTypeADJUST:
		signed = draft.Quantity
	}

	m := &entity.StockMovement{
		ItemName:           name,
		MovementType:       req.MovementType,
		Quantity:           qty,
		Unit:               fields.EffectiveUnit,
		SignedBaseQuantity: signed,
		UnitSize:           fields.Unit.Size,
		UnitType:           fields.Unit.Type,
		Category:           fields.Category,
		Location:           location,
		FromLocation:       from,
		ToLocation:         to,
		Status:             entity.MovementStatusRequested,
		Reason:             movementDefaults[req.MovementType],
		Source:             entity.SourceTelegram,
		UserID:             meta.UserID,
		UserName:           meta.UserName,
		Timestamp:          batch.Timestamp,
		BatchID:            batch.BatchID,
		Project:            batch.GlobalParameters[entity.ParamProject],
		DriverName:         batch.GlobalParameters[entity.ParamDriver],
		Note:               strings.TrimSpace(draft.Note),
	}
	return m, warn
}

// globalParameters valores efectivos usados por el lote (con los defaults aplicados).
func (b *Builder) globalParameters(req Request, batchID string) map[string]string {
	meta := req.Meta
	params := map[string]string{entity.ParamBatchID: batchID}
	from, to := inference.DetermineLocations(req.MovementType, "", userLocation(req.MovementType, meta))

	switch req.MovementType {
	case entity.MovementTypeIN, entity.MovementTypeOUT:
		params[entity.ParamProject] = orDefault(meta.Project, DefaultProject)
		params[entity.ParamDriver] = orDefault(meta.Driver, DefaultDriver)
		params[entity.ParamFromLocation] = from
		params[entity.ParamToLocation] = to
	case entity.MovementTypeADJUST:
		params[entity.ParamLocation] = from
		if p := strings.TrimSpace(meta.Project); p != "" {
			params[entity.ParamProject] = p
		}
		if d := strings.TrimSpace(meta.Driver); d != "" {
			params[entity.ParamDriver] = d
		}
	}
	if c := strings.TrimSpace(meta.Category); c != "" {
		params[entity.ParamCategory] = c
	}
	if d := strings.TrimSpace(meta.Date); d != "" {
		params[entity.ParamDate] = d
	}
	if l := strings.TrimSpace(meta.LoggedBy); l != "" {
		params[entity.ParamLoggedBy] = l
	}
	return params
}

// userLocation ubicación indicada por el usuario relevante para el tipo de movimiento.
func userLocation(mt entity.MovementType, meta Metadata) string {
	switch mt {
	case entity.MovementTypeIN:
		return meta.FromLocation
	case entity.MovementTypeOUT:
		return meta.ToLocation
	}
	return orDefault(meta.FromLocation, meta.ToLocation)
}

func orDefault(v, def string) string {
	if s := strings.TrimSpace(v); s != "" {
		return s
	}
	return def
}

// TotalQuantity suma de cantidades de los movimientos (para resúmenes y remisiones).
func TotalQuantity(movements []*entity.StockMovement) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		total = total.Add(m.Quantity)
	}
	return total
}
