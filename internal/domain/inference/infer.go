package inference

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	qty10   = decimal.NewFromInt(10)
	qty20   = decimal.NewFromInt(20)
	qty100  = decimal.NewFromInt(100)
	qty1000 = decimal.NewFromInt(1000)
)

// unitFamily familia de palabras clave con su regla de decisión por magnitud.
type unitFamily struct {
	name     string
	keywords []string
	decide   func(lower string, qty decimal.Decimal) string
}

// unitFamilies se evalúan en este orden; la primera familia presente decide.
var unitFamilies = []unitFamily{
	{"construction", []string{"cement", "concrete", "sand", "gravel", "stone", "aggregate"}, byMass("bags")},
	{"paints", []string{"paint", "varnish", "primer", "coating", "enamel"}, func(_ string, q decimal.Decimal) string {
		if q.GreaterThanOrEqual(qty20) {
			return "ltrs"
		}
		return "cans"
	}},
	{"electrical", []string{"wire", "cable", "conduit", "flex"}, func(string, decimal.Decimal) string {
		return "m"
	}},
	{"plumbing", []string{"pipe", "tube", "fitting", "valve"}, byLength},
	{"metals", []string{"steel", "iron", "aluminum", "copper", "metal"}, func(lower string, _ decimal.Decimal) string {
		switch {
		case strings.Contains(lower, "bar") || strings.Contains(lower, "beam"):
			return "pieces"
		case strings.Contains(lower, "sheet") || strings.Contains(lower, "plate"):
			return "sheets"
		}
		return "kg"
	}},
	{"timber", []string{"wood", "timber", "plywood", "mdf", "board"}, byLength},
	{"safety", []string{"helmet", "glove", "goggle", "vest", "boot", "mask"}, pieces},
	{"tools", []string{"hammer", "drill", "saw", "wrench", "pliers", "tool"}, pieces},
	{"fasteners", []string{"nail", "screw", "bolt", "nut", "washer"}, func(_ string, q decimal.Decimal) string {
		if q.GreaterThanOrEqual(qty100) {
			return "packets"
		}
		return "pieces"
	}},
}

func byMass(small string) func(string, decimal.Decimal) string {
	return func(_ string, q decimal.Decimal) string {
		switch {
		case q.GreaterThanOrEqual(qty1000):
			return "tons"
		case q.GreaterThanOrEqual(qty100):
			return "kg"
		}
		return small
	}
}

func byLength(_ string, q decimal.Decimal) string {
	if q.GreaterThanOrEqual(qty10) {
		return "m"
	}
	return "pieces"
}

func pieces(string, decimal.Decimal) string { return "pieces" }

// InferUnit elige una unidad cuando el usuario no reportó una (o reportó una genérica).
// Tabla de decisión determinista: familia de palabra clave × magnitud de la cantidad.
func InferUnit(itemName string, quantity decimal.Decimal) string {
	lower := strings.ToLower(itemName)
	q := quantity.Abs()
	for _, f := range unitFamilies {
		if containsAny(lower, f.keywords) {
			return f.decide(lower, q)
		}
	}
	return byMass("pieces")(lower, q)
}

// InferUnitFamily nombre de la familia que decidió la unidad ("default" si ninguna).
func InferUnitFamily(itemName string) string {
	lower := strings.ToLower(itemName)
	for _, f := range unitFamilies {
		if containsAny(lower, f.keywords) {
			return f.name
		}
	}
	return "default"
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
