// Package inference deduce campos de un movimiento a partir del texto libre del ítem:
// descriptor de unidad, unidad inferida y ubicaciones origen/destino.
package inference

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-assistant/internal/domain/entity"
)

// unitSpelling grafía aceptada y su token canónico. El orden importa:
// las grafías largas van antes que sus prefijos ("mm" antes que "m").
type unitSpelling struct {
	token     string
	canonical string
}

var unitVocabulary = []unitSpelling{
	// volumen
	{"liters", "ltrs"}, {"litres", "ltrs"}, {"liter", "ltrs"}, {"litre", "ltrs"},
	{"ltrs", "ltrs"}, {"ltr", "ltrs"},
	// masa
	{"kilos", "kg"}, {"kilo", "kg"}, {"kgs", "kg"}, {"kg", "kg"},
	{"tons", "tons"}, {"ton", "tons"},
	// longitud
	{"meters", "m"}, {"metres", "m"}, {"meter", "m"}, {"metre", "m"},
	{"mm", "mm"}, {"cm", "cm"}, {"m", "m"},
	// conteo
	{"pieces", "pieces"}, {"piece", "pieces"}, {"pcs", "pieces"},
	{"bags", "bags"}, {"bag", "bags"},
	{"boxes", "boxes"}, {"box", "boxes"},
	{"sets", "sets"}, {"set", "sets"},
}

var (
	canonicalUnits = buildCanonical()
	unitPattern    = buildUnitPattern()
)

func buildCanonical() map[string]string {
	m := make(map[string]string, len(unitVocabulary))
	for _, s := range unitVocabulary {
		m[s.token] = s.canonical
	}
	return m
}

func buildUnitPattern() *regexp.Regexp {
	tokens := make([]string, 0, len(unitVocabulary))
	for _, s := range unitVocabulary {
		tokens = append(tokens, regexp.QuoteMeta(s.token))
	}
	return regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(` + strings.Join(tokens, "|") + `)\b`)
}

// ExtractUnit busca "número + unidad" en el nombre ("Paint 20ltrs" → 20 ltrs).
// Devuelve false si no hay unidad reconocible; el consumidor asume entity.DefaultUnit.
func ExtractUnit(itemName string) (entity.UnitDescriptor, bool) {
	m := unitPattern.FindStringSubmatch(itemName)
	if m == nil {
		return entity.UnitDescriptor{}, false
	}
	size, err := decimal.NewFromString(m[1])
	if err != nil || !size.GreaterThan(decimal.Zero) {
		return entity.UnitDescriptor{}, false
	}
	return entity.UnitDescriptor{Size: size, Type: canonicalUnits[strings.ToLower(m[2])]}, true
}

// CanonicalUnit normaliza una grafía conocida ("Liters" → "ltrs"); las desconocidas
// se devuelven recortadas y en minúsculas.
func CanonicalUnit(unit string) string {
	u := strings.ToLower(strings.TrimSpace(unit))
	if c, ok := canonicalUnits[u]; ok {
		return c
	}
	return u
}

// countUnits unidades de conteo que la inferencia produce y no llevan tamaño en el nombre.
var countUnits = map[string]bool{
	"can": true, "cans": true,
	"sheet": true, "sheets": true,
	"packet": true, "packets": true,
	"roll": true, "rolls": true,
	"unit": true, "units": true,
}

// IsUnitToken indica si la palabra es una unidad reconocida ("Liters", "bags", "cans").
func IsUnitToken(word string) bool {
	w := strings.ToLower(strings.TrimSpace(word))
	if w == "" {
		return false
	}
	_, ok := canonicalUnits[w]
	return ok || countUnits[w]
}

// NeedsInference indica si la unidad reportada falta o es un marcador genérico.
func NeedsInference(unit string) bool {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "", "piece", "pieces", "pcs":
		return true
	}
	return false
}
