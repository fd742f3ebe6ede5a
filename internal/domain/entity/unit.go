package entity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// UnitDescriptor describe cuánto de una medida base representa una unidad reportada
// (ej. 20 "ltrs" por cada lata). Size > 0 y Type no vacío.
type UnitDescriptor struct {
	Size decimal.Decimal
	Type string
}

// DefaultUnit descriptor asumido cuando el ítem no tiene unidad detectable.
var DefaultUnit = UnitDescriptor{Size: decimal.NewFromInt(1), Type: "piece"}

// Valid verifica las invariantes del descriptor.
func (u UnitDescriptor) Valid() bool {
	return u.Size.GreaterThan(decimal.Zero) && u.Type != ""
}

// String formato legible: "20 ltrs".
func (u UnitDescriptor) String() string {
	return fmt.Sprintf("%s %s", u.Size.String(), u.Type)
}
