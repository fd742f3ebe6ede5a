package classifier

// Rule asocia una palabra clave (subcadena en minúsculas) con una categoría.
// El orden de las tablas es parte del contrato: la primera coincidencia gana.
type Rule struct {
	Keyword  string
	Category string
}

// PriorityRule: si el nombre contiene Dominant y alguno de Dominated, gana la categoría de Dominant.
type PriorityRule struct {
	Dominant  string
	Dominated []string
}

// SubRule palabra clave de subcategoría dentro de una categoría base.
type SubRule struct {
	Keyword string
	Sub     string
}

// SubTable subcategorías de una categoría base, en orden de evaluación.
type SubTable struct {
	Base  string
	Rules []SubRule
}

// defaultRules tabla palabra clave → categoría.
var defaultRules = []Rule{
	// Pinturas y recubrimientos
	{"paint", "Paint"},
	{"coating", "Paint"},
	{"varnish", "Paint"},
	{"primer", "Paint"},
	{"enamel", "Paint"},
	{"lacquer", "Paint"},

	// Eléctricos
	{"wire", "Electrical > Cables"},
	{"cable", "Electrical > Cables"},
	{"switch", "Electrical > Switches"},
	{"outlet", "Electrical > Outlets"},
	{"socket", "Electrical > Outlets"},
	{"bulb", "Lamps and Bulbs"},
	{"lamp", "Lamps and Bulbs"},
	{"light", "Lamps and Bulbs"},
	{"led", "Lamps and Bulbs"},
	{"fluorescent", "Lamps and Bulbs"},
	{"incandescent", "Lamps and Bulbs"},
	{"adapter", "Adapters"},
	{"connector", "Electrical > Components"},
	{"fuse", "Electrical > Components"},
	{"breaker", "Electrical > Components"},

	// Plomería
	{"pipe", "Plumbing"},
	{"fitting", "Plumbing"},
	{"valve", "Plumbing"},
	{"faucet", "Plumbing"},
	{"tap", "Plumbing"},
	{"toilet", "Toilet Items"},
	{"sink", "Plumbing"},
	{"drain", "Plumbing"},
	{"shower", "Plumbing"},
	{"bath", "Plumbing"},

	// Herramientas
	{"hammer", "Tools"},
	{"screwdriver", "Tools"},
	{"wrench", "Tools"},
	{"pliers", "Tools"},
	{"drill", "Tools"},
	{"saw", "Tools"},
	{"level", "Tools"},
	{"tape", "Tools"},
	{"measure", "Tools"},
	{"tool", "Tools"},

	// Seguridad
	{"helmet", "Safety Equipment"},
	{"safety", "Safety Equipment"},
	{"glove", "Safety Equipment"},
	{"goggle", "Safety Equipment"},
	{"vest", "Safety Equipment"},
	{"boot", "Safety Equipment"},
	{"mask", "Safety Equipment"},
	{"harness", "Safety Equipment"},

	// Carpintería
	{"wood", "Carpentry"},
	{"plywood", "Carpentry"},
	{"mdf", "Carpentry"},
	{"timber", "Carpentry"},
	{"board", "Carpentry"},
	{"lumber", "Carpentry"},
	{"nail", "Carpentry"},
	{"screw", "Carpentry"},
	{"bolt", "Carpentry"},

	// Acero y metales
	{"steel", "Steel"},
	{"metal", "Steel"},
	{"iron", "Steel"},
	{"aluminum", "Steel"},
	{"copper", "Steel"},
	{"beam", "Steel"},
	{"plate", "Steel"},
	{"sheet", "Steel"},
	{"bar", "Steel"},

	// Materiales de construcción
	{"cement", "Construction Materials"},
	{"concrete", "Construction Materials"},
	{"sand", "Construction Materials"},
	{"gravel", "Construction Materials"},
	{"brick", "Construction Materials"},
	{"block", "Construction Materials"},
	{"tile", "Construction Materials"},
	{"grout", "Construction Materials"},
	{"mortar", "Construction Materials"},
}

// defaultPriorityRules resuelven nombres que mezclan dominios ("Electrical Paint" → Paint).
var defaultPriorityRules = []PriorityRule{
	{"paint", []string{"electrical", "power", "voltage"}},
	{"tool", []string{"electrical", "power"}},
	{"pipe", []string{"electrical", "wire"}},
	{"safety", []string{"electrical", "plumbing", "tools"}},
}

var defaultSubTables = []SubTable{
	{"Paint", []SubRule{
		{"interior", "Interior Paint"},
		{"exterior", "Exterior Paint"},
		{"specialty", "Specialty Paint"},
		{"primer", "Primer"},
		{"varnish", "Varnish"},
		{"enamel", "Enamel"},
	}},
	{"Electrical", []SubRule{
		{"cable", "Cables"},
		{"wire", "Cables"},
		{"switch", "Switches"},
		{"outlet", "Outlets"},
		{"socket", "Outlets"},
		{"component", "Components"},
	}},
	{"Plumbing", []SubRule{
		{"pipe", "Pipes"},
		{"fitting", "Fittings"},
		{"valve", "Valves"},
		{"fixture", "Fixtures"},
	}},
	{"Tools", []SubRule{
		{"hand", "Hand Tools"},
		{"power", "Power Tools"},
		{"measuring", "Measuring Tools"},
		{"safety", "Safety Tools"},
	}},
	{"Safety Equipment", []SubRule{
		{"head", "Head Protection"},
		{"eye", "Eye Protection"},
		{"hand", "Hand Protection"},
		{"body", "Body Protection"},
	}},
	{"Lamps and Bulbs", []SubRule{
		{"led", "LED Bulbs"},
		{"fluorescent", "Fluorescent"},
		{"incandescent", "Incandescent"},
		{"specialty", "Specialty Lighting"},
	}},
	{"Adapters", []SubRule{
		{"power", "Power Adapters"},
		{"pipe", "Pipe Adapters"},
		{"cable", "Cable Adapters"},
		{"mechanical", "Mechanical Adapters"},
	}},
	{"Toilet Items", []SubRule{
		{"seat", "Toilet Seats"},
		{"tank", "Toilet Tanks"},
		{"bowl", "Toilet Bowls"},
		{"accessory", "Toilet Accessories"},
	}},
	{"Carpentry", []SubRule{
		{"wood", "Wood"},
		{"plywood", "Plywood"},
		{"mdf", "MDF"},
		{"tool", "Wood Tools"},
	}},
	{"Steel", []SubRule{
		{"beam", "Beams"},
		{"pipe", "Pipes"},
		{"sheet", "Sheets"},
		{"structural", "Structural"},
	}},
}

// skipWords palabras que nunca se usan para sintetizar una categoría nueva
// (palabras vacías y unidades).
var skipWords = map[string]bool{
	"the": true, "and": true, "or": true, "for": true, "with": true, "from": true,
	"ltrs": true, "ltr": true, "liters": true, "kg": true, "kilos": true, "m": true,
	"mm": true, "cm": true, "meters": true, "ton": true, "tons": true,
	"piece": true, "pieces": true, "pcs": true, "bags": true, "boxes": true, "sets": true,
}
