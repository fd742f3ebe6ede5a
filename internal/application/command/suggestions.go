package command

import (
	"github.com/jhoicas/inventory-assistant/internal/domain/entity"
)

// Sugerencias por campo o tipo de error.
const (
	SuggestDestination   = "Add to: Destination to your OUT command"
	SuggestProject       = "Add project: ProjectName to your command"
	SuggestDriver        = "Add driver: DriverName to your command"
	SuggestQuantity      = "Ensure quantity is a positive number"
	SuggestName          = "Provide a name for each item"
	SuggestDuplicates    = "Combine duplicate items into a single line"
	SuggestCategory      = "Use category: Name or category: Name > Subcategory"
	SuggestStoreDown     = "The inventory store is not reachable. Try again later or with fewer items."
	SuggestRetry         = "Please try again or contact support if the issue persists"
	suggestBatchTooLarge = "Split the batch into smaller commands"
)

// formatExample ejemplo de comando por tipo de movimiento.
var formatExample = map[entity.MovementType]string{
	entity.MovementTypeIN:     "/in project: Name, driver: Name; item, quantity, unit",
	entity.MovementTypeOUT:    "/out project: Name, driver: Name, to: Destination; item, quantity, unit",
	entity.MovementTypeADJUST: "/adjust from: Location; item, +/-quantity, unit",
}

// FormatHint "Check command format: ..." para el tipo dado (IN si es desconocido).
func FormatHint(mt entity.MovementType) string {
	ex, ok := formatExample[mt]
	if !ok {
		ex = formatExample[entity.MovementTypeIN]
	}
	return "Check command format: " + ex
}

// Suggestions sugerencias de recuperación para los errores dados, sin repetir y en orden.
// La sugerencia propia de un error tiene prioridad sobre la plantilla.
func Suggestions(mt entity.MovementType, errs []entity.BatchError) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range errs {
		s := suggestionFor(mt, e)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func suggestionFor(mt entity.MovementType, e entity.BatchError) string {
	if e.Suggestion != "" {
		return e.Suggestion
	}
	switch e.Kind {
	case entity.ErrorKindExternalUnavailable:
		return SuggestStoreDown
	case entity.ErrorKindInternal:
		return SuggestRetry
	case entity.ErrorKindClassificationFallback:
		return ""
	}
	switch e.Field {
	case entity.ParamToLocation:
		return SuggestDestination
	case entity.ParamProject:
		return SuggestProject
	case entity.ParamDriver:
		return SuggestDriver
	case entity.ParamCategory:
		return SuggestCategory
	case "quantity":
		return SuggestQuantity
	case "name":
		if e.Kind == entity.ErrorKindParsing {
			return SuggestDuplicates
		}
		return SuggestName
	case "items":
		if e.Kind == entity.ErrorKindValidation {
			return suggestBatchTooLarge
		}
	}
	return FormatHint(mt)
}
