package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemDraft ítem transitorio producido por el tokenizador de comandos.
// Pertenece a una sola invocación del pipeline; se descarta tras construir el movimiento.
// En ajustes (ADJUST) Quantity puede llevar signo.
type ItemDraft struct {
	Name     string
	Quantity decimal.Decimal
	Unit     string // opcional; vacío = se infiere
	Note     string // opcional
}

// Item registro de ítem en el almacén externo. Name es el identificador natural.
type Item struct {
	ID        string
	Name      string
	Category  Category
	UnitSize  decimal.Decimal
	UnitType  string
	Location  string // ubicación preferida
	OnHand    decimal.Decimal
	UpdatedAt time.Time
}

// Unit devuelve el descriptor de unidad del ítem o DefaultUnit si no está completo.
func (i *Item) Unit() UnitDescriptor {
	u := UnitDescriptor{Size: i.UnitSize, Type: i.UnitType}
	if !u.Valid() {
		return DefaultUnit
	}
	return u
}

// ItemFields campos escribibles de un ítem (create_or_update_item).
type ItemFields struct {
	Category Category
	UnitSize decimal.Decimal
	UnitType string
	Location string
}

// ToRecord aplana los campos en el mapa clave/valor del almacén. Omite los vacíos.
func (f ItemFields) ToRecord() map[string]any {
	rec := make(map[string]any, 4)
	if f.Category != "" {
		rec["category"] = f.Category.String()
	}
	if f.UnitSize.GreaterThan(decimal.Zero) {
		rec["unit_size"] = f.UnitSize.String()
	}
	if f.UnitType != "" {
		rec["unit_type"] = f.UnitType
	}
	if f.Location != "" {
		rec["location"] = f.Location
	}
	return rec
}
