package inference

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/inventory-assistant/internal/domain/entity"
)

// Ubicaciones canónicas.
const (
	LocationWarehouse          = "Warehouse"
	LocationUnknown            = "Unknown"
	LocationUnknownSource      = "Unknown Source"
	LocationUnknownDestination = "Unknown Destination"
)

const sitePrefix = "site "

// locationAliases se evalúan en orden por contención; "main warehouse" antes que "warehouse".
var locationAliases = []struct {
	key   string
	value string
}{
	{"main warehouse", "Main Warehouse"},
	{"warehouse", LocationWarehouse},
	{"office", "Office"},
	{"yard", "Yard"},
}

// NormalizeLocation recorta y canoniza un nombre de ubicación.
// "site a" → "Site A"; alias conocidos; resto en Title Case. Vacío → "Unknown".
func NormalizeLocation(location string) string {
	trimmed := strings.Join(strings.Fields(location), " ")
	if trimmed == "" {
		return LocationUnknown
	}
	lower := strings.ToLower(trimmed)

	if i := strings.Index(lower, sitePrefix); i >= 0 {
		if suffix := strings.TrimSpace(lower[i+len(sitePrefix):]); suffix != "" {
			return "Site " + strings.ToUpper(suffix)
		}
	}
	for _, a := range locationAliases {
		if strings.Contains(lower, a.key) {
			return a.value
		}
	}
	return cases.Title(language.English).String(lower)
}

// DetermineLocations calcula origen y destino según el tipo de movimiento.
// IN: origen del usuario, destino la ubicación preferida del ítem o Warehouse.
// OUT: origen la ubicación preferida o Warehouse, destino del usuario.
// ADJUST: misma ubicación en ambos extremos.
func DetermineLocations(movementType entity.MovementType, itemHint, userSpecified string) (from, to string) {
	itemHint = strings.TrimSpace(itemHint)
	userSpecified = strings.TrimSpace(userSpecified)
	stored := LocationWarehouse
	if itemHint != "" {
		stored = itemHint
	}

	switch movementType {
	case entity.MovementTypeIN:
		from = firstNonEmpty(userSpecified, LocationUnknownSource)
		to = stored
	case entity.MovementTypeOUT:
		from = stored
		to = firstNonEmpty(userSpecified, LocationUnknownDestination)
	case entity.MovementTypeADJUST:
		from = firstNonEmpty(userSpecified, stored)
		to = from
	default:
		return LocationUnknown, LocationUnknown
	}
	return NormalizeLocation(from), NormalizeLocation(to)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
