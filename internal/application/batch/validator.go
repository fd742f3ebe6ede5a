// Package batch valida lotes de ítems, construye los movimientos de inventario
// y orquesta su registro en el almacén externo.
package batch

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-assistant/internal/domain/entity"
)

// Valores por defecto de los límites.
const (
	DefaultMaxBatchSize       = 20
	DefaultMaxQuantityPerItem = 10000
	DefaultMaxNameLength      = 200
)

// Limits límites configurables del validador.
type Limits struct {
	MaxBatchSize       int
	MaxQuantityPerItem decimal.Decimal
	MaxNameLength      int
}

// DefaultLimits 20 ítems por lote, 10000 por ítem, nombres de hasta 200 caracteres.
func DefaultLimits() Limits {
	return Limits{
		MaxBatchSize:       DefaultMaxBatchSize,
		MaxQuantityPerItem: decimal.NewFromInt(DefaultMaxQuantityPerItem),
		MaxNameLength:      DefaultMaxNameLength,
	}
}

// Metadata datos compartidos por todo el lote (parámetros del comando y usuario).
type Metadata struct {
	Project      string
	Driver       string
	FromLocation string
	ToLocation   string
	Category     string // fuerza la categoría de todos los ítems
	Date         string
	LoggedBy     string
	UserID       string
	UserName     string
	ChatID       int64
}

// ValidationResult resultado completo de la validación; OK si no hay errores.
type ValidationResult struct {
	OK       bool
	Errors   []entity.BatchError
	Warnings []entity.BatchError
}

// Validator valida lotes antes de construir movimientos. No modifica la entrada.
type Validator struct {
	limits Limits
}

// NewValidator construye el validador; límites en cero toman el valor por defecto.
func NewValidator(limits Limits) *Validator {
	def := DefaultLimits()
	if limits.MaxBatchSize <= 0 {
		limits.MaxBatchSize = def.MaxBatchSize
	}
	if !limits.MaxQuantityPerItem.GreaterThan(decimal.Zero) {
		limits.MaxQuantityPerItem = def.MaxQuantityPerItem
	}
	if limits.MaxNameLength <= 0 {
		limits.MaxNameLength = def.MaxNameLength
	}
	return &Validator{limits: limits}
}

// Limits límites efectivos.
func (v *Validator) Limits() Limits { return v.limits }

// Validate revisa, en orden: tamaño del lote (corta la validación), destino obligatorio en OUT,
// categoría forzada bien formada, proyecto/conductor (advertencias) y cada ítem.
// Devuelve todos los problemas a la vez.
func (v *Validator) Validate(items []entity.ItemDraft, movementType entity.MovementType, meta Metadata) ValidationResult {
	var res ValidationResult

	if len(items) > v.limits.MaxBatchSize {
		res.Errors = append(res.Errors, entity.BatchError{
			Kind:       entity.ErrorKindValidation,
			Message:    fmt.Sprintf("Batch size %d exceeds maximum limit of %d", len(items), v.limits.MaxBatchSize),
			Severity:   entity.SeverityError,
			EntryIndex: entity.NoEntry,
			Field:      "items",
			Suggestion: fmt.Sprintf("Split the command into batches of at most %d items", v.limits.MaxBatchSize),
		})
		return res
	}

	if movementType == entity.MovementTypeOUT && strings.TrimSpace(meta.ToLocation) == "" {
		res.Errors = append(res.Errors, entity.BatchError{
			Kind:       entity.ErrorKindValidation,
			Message:    "Destination location (to:) is required for OUT commands",
			Severity:   entity.SeverityError,
			EntryIndex: entity.NoEntry,
			Field:      entity.ParamToLocation,
		})
	}
	if c := entity.Category(strings.TrimSpace(meta.Category)); c != "" && !c.Valid() {
		res.Errors = append(res.Errors, entity.BatchError{
			Kind:       entity.ErrorKindValidation,
			Message:    fmt.Sprintf("Invalid category '%s': use 'Category' or 'Category > Subcategory'", meta.Category),
			Severity:   entity.SeverityError,
			EntryIndex: entity.NoEntry,
			Field:      entity.ParamCategory,
		})
	}
	if movementType == entity.MovementTypeIN || movementType == entity.MovementTypeOUT {
		if strings.TrimSpace(meta.Project) == "" {
			res.Warnings = append(res.Warnings, warning(entity.NoEntry, entity.ParamProject, "Project not specified - using default"))
		}
		if strings.TrimSpace(meta.Driver) == "" {
			res.Warnings = append(res.Warnings, warning(entity.NoEntry, entity.ParamDriver, "Driver not specified - using default"))
		}
	}

	for i, item := range items {
		errs, warns := v.validateItem(i, item, movementType)
		res.Errors = append(res.Errors, errs...)
		res.Warnings = append(res.Warnings, warns...)
	}

	res.OK = len(res.Errors) == 0
	return res
}

func (v *Validator) validateItem(i int, item entity.ItemDraft, movementType entity.MovementType) (errs, warns []entity.BatchError) {
	n := i + 1
	name := strings.TrimSpace(item.Name)
	if name == "" {
		errs = append(errs, invalid(i, "name", fmt.Sprintf("Item %d: Missing item name", n)))
	}

	qty := item.Quantity
	if movementType == entity.MovementTypeADJUST {
		qty = qty.Abs()
	}
	switch {
	case !qty.GreaterThan(decimal.Zero):
		errs = append(errs, invalid(i, "quantity", fmt.Sprintf("Item %d: Invalid quantity '%s'", n, item.Quantity.String())))
	case qty.GreaterThan(v.limits.MaxQuantityPerItem):
		errs = append(errs, invalid(i, "quantity", fmt.Sprintf("Item %d: Quantity %s exceeds maximum limit of %s",
			n, qty.String(), v.limits.MaxQuantityPerItem.String())))
	}

	if strings.TrimSpace(item.Unit) == "" {
		warns = append(warns, warning(i, "unit", fmt.Sprintf("Item %d: No unit specified - will use smart inference", n)))
	}
	if l := utf8.RuneCountInString(name); l > v.limits.MaxNameLength {
		warns = append(warns, warning(i, "name", fmt.Sprintf("Item %d: Item name is very long (%d characters)", n, l)))
	}
	return errs, warns
}

func invalid(index int, field, msg string) entity.BatchError {
	return entity.BatchError{
		Kind:       entity.ErrorKindValidation,
		Message:    msg,
		Severity:   entity.SeverityError,
		EntryIndex: index,
		Field:      field,
	}
}

func warning(index int, field, msg string) entity.BatchError {
	return entity.BatchError{
		Kind:       entity.ErrorKindValidation,
		Message:    msg,
		Severity:   entity.SeverityWarning,
		EntryIndex: index,
		Field:      field,
	}
}
