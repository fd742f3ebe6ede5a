package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MovementType tipo de movimiento de inventario (value object).
type MovementType string

// Tipos de movimiento.
const (
	MovementTypeIN     MovementType = "IN"     // entrada
	MovementTypeOUT    MovementType = "OUT"    // salida
	MovementTypeADJUST MovementType = "ADJUST" // ajuste
)

// ParseMovementType acepta "in", "/out", "Adjust", etc.
func ParseMovementType(s string) (MovementType, bool) {
	switch strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(s), "/")) {
	case "IN":
		return MovementTypeIN, true
	case "OUT":
		return MovementTypeOUT, true
	case "ADJUST", "ADJUSTMENT":
		return MovementTypeADJUST, true
	}
	return "", false
}

// MovementStatus estado opaco del movimiento; las transiciones ocurren fuera del motor.
type MovementStatus string

// Estados de movimiento.
const (
	MovementStatusRequested MovementStatus = "REQUESTED"
	MovementStatusApproved  MovementStatus = "APPROVED"
	MovementStatusPosted    MovementStatus = "POSTED"
	MovementStatusRejected  MovementStatus = "REJECTED"
)

// SourceTelegram origen por defecto de los movimientos creados desde el chat.
const SourceTelegram = "Telegram"

// StockMovement registro de salida del motor: un movimiento por ítem por lote.
// Inmutable una vez construido; la persistencia y el cambio de estado son externos.
type StockMovement struct {
	ID                 string
	ItemName           string
	MovementType       MovementType
	Quantity           decimal.Decimal // siempre > 0
	Unit               string
	SignedBaseQuantity decimal.Decimal // +Quantity en IN, -Quantity en OUT, signo del llamador en ADJUST
	UnitSize           decimal.Decimal
	UnitType           string
	Category           Category
	Location           string
	FromLocation       string
	ToLocation         string
	Status             MovementStatus
	Reason             string
	Source             string
	UserID             string
	UserName           string
	Timestamp          time.Time
	BatchID            string
	Project            string
	DriverName         string
	Note               string
}

// ToRecord aplana el movimiento en el mapa clave/valor que se envía al almacén externo.
// Los campos opcionales vacíos se omiten.
func (m *StockMovement) ToRecord() map[string]any {
	rec := map[string]any{
		"item_name":            m.ItemName,
		"movement_type":        string(m.MovementType),
		"quantity":             m.Quantity.String(),
		"unit":                 m.Unit,
		"signed_base_quantity": m.SignedBaseQuantity.String(),
		"unit_size":            m.UnitSize.String(),
		"unit_type":            m.UnitType,
		"status":               string(m.Status),
		"user_id":              m.UserID,
		"user_name":            m.UserName,
		"timestamp":            m.Timestamp.UTC().Format(time.RFC3339),
		"batch_id":             m.BatchID,
	}
	optional := map[string]string{
		"id":            m.ID,
		"category":      m.Category.String(),
		"location":      m.Location,
		"from_location": m.FromLocation,
		"to_location":   m.ToLocation,
		"reason":        m.Reason,
		"source":        m.Source,
		"project":       m.Project,
		"driver_name":   m.DriverName,
		"note":          m.Note,
	}
	for k, v := range optional {
		if v != "" {
			rec[k] = v
		}
	}
	return rec
}
