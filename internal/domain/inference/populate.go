package inference

import (
	"strings"

	"github.com/jhoicas/inventory-assistant/internal/domain/entity"
)

// CategorizeFunc asigna la categoría de un ítem por su nombre (clasificador o resolvedor).
type CategorizeFunc func(itemName string) entity.Category

// Fields campos derivados de un ItemDraft antes de construir el movimiento.
type Fields struct {
	Category entity.Category
	// UnitDescriptor extraído del nombre; DefaultUnit si UnitFound es false.
	Unit      entity.UnitDescriptor
	UnitFound bool
	// EffectiveUnit unidad reportada (canónica) o inferida.
	EffectiveUnit string
	UnitInferred  bool
}

// Populate completa los campos derivados de un borrador. No modifica el borrador.
func Populate(draft entity.ItemDraft, categorize CategorizeFunc) Fields {
	var f Fields
	if categorize != nil {
		f.Category = categorize(draft.Name)
	}

	if u, ok := ExtractUnit(draft.Name); ok {
		f.Unit, f.UnitFound = u, true
	} else {
		f.Unit = entity.DefaultUnit
	}

	if NeedsInference(draft.Unit) {
		f.EffectiveUnit = InferUnit(draft.Name, draft.Quantity)
		f.UnitInferred = true
	} else {
		f.EffectiveUnit = CanonicalUnit(strings.TrimSpace(draft.Unit))
	}
	return f
}
