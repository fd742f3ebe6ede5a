// Package classifier asigna categorías a ítems a partir de su nombre libre
// mediante reglas de palabras clave ordenadas (servicio de dominio, sin dependencias).
package classifier

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/inventory-assistant/internal/domain/entity"
)

// DefaultSearchLimit máximo de resultados de Search cuando limit <= 0.
const DefaultSearchLimit = 10

// measurementToken "20ltrs", "50kg", "2x4": número pegado a una unidad.
var measurementToken = regexp.MustCompile(`^\d+(?:[.,]\d+)?[a-z]*$`)

// Classifier clasificador por reglas. Inmutable tras New; seguro para uso concurrente.
type Classifier struct {
	rules      []Rule
	priorities []PriorityRule
	subTables  []SubTable
	byKeyword  map[string]string
}

// New construye el clasificador con las tablas por defecto.
func New() *Classifier {
	return NewWithRules(defaultRules, defaultPriorityRules, defaultSubTables)
}

// NewWithRules construye un clasificador con tablas propias (el orden se respeta tal cual).
func NewWithRules(rules []Rule, priorities []PriorityRule, subTables []SubTable) *Classifier {
	byKeyword := make(map[string]string, len(rules))
	for _, r := range rules {
		if _, ok := byKeyword[r.Keyword]; !ok {
			byKeyword[r.Keyword] = r.Category
		}
	}
	return &Classifier{
		rules:      rules,
		priorities: priorities,
		subTables:  subTables,
		byKeyword:  byKeyword,
	}
}

// Classify devuelve la categoría del ítem. Total y determinista: nunca falla.
// Primera regla que coincide → prioridades → subcategoría; sin coincidencia → Synthesize.
func (c *Classifier) Classify(itemName string) entity.Category {
	lower := strings.ToLower(strings.TrimSpace(itemName))
	if lower == "" {
		return entity.CategoryOther
	}
	for _, r := range c.rules {
		if strings.Contains(lower, r.Keyword) {
			category := c.applyPriority(lower, r.Category)
			return c.refine(lower, entity.Category(category))
		}
	}
	return c.Synthesize(itemName)
}

// Matches indica si alguna regla coincide con el nombre (sin síntesis).
func (c *Classifier) Matches(itemName string) bool {
	lower := strings.ToLower(itemName)
	for _, r := range c.rules {
		if strings.Contains(lower, r.Keyword) {
			return true
		}
	}
	return false
}

// Candidates todas las categorías distintas (ya refinadas) cuyas palabras clave aparecen
// en el nombre, en el orden de la tabla. Entrada del resolvedor de ambigüedades.
// Si una regla de prioridad aplica, todas colapsan a la categoría dominante.
func (c *Classifier) Candidates(itemName string) []entity.Category {
	lower := strings.ToLower(strings.TrimSpace(itemName))
	if lower == "" {
		return nil
	}
	seen := make(map[entity.Category]bool)
	var out []entity.Category
	for _, r := range c.rules {
		if !strings.Contains(lower, r.Keyword) {
			continue
		}
		category := c.refine(lower, entity.Category(c.applyPriority(lower, r.Category)))
		if seen[category] {
			continue
		}
		seen[category] = true
		out = append(out, category)
	}
	return out
}

// Refine agrega la subcategoría si la base tiene tabla y el nombre contiene una de sus claves.
// Una categoría ya jerárquica se devuelve sin cambios.
func (c *Classifier) Refine(itemName string, category entity.Category) entity.Category {
	return c.refine(strings.ToLower(itemName), category)
}

func (c *Classifier) refine(lower string, category entity.Category) entity.Category {
	if category.IsHierarchical() {
		return category
	}
	base := category.Base()
	for _, table := range c.subTables {
		if table.Base != base {
			continue
		}
		for _, sr := range table.Rules {
			if strings.Contains(lower, sr.Keyword) {
				return entity.NewCategory(base, sr.Sub)
			}
		}
		break
	}
	return category
}

func (c *Classifier) applyPriority(lower, category string) string {
	for _, p := range c.priorities {
		if !strings.Contains(lower, p.Dominant) {
			continue
		}
		for _, d := range p.Dominated {
			if strings.Contains(lower, d) {
				if dominant, ok := c.byKeyword[p.Dominant]; ok {
					return dominant
				}
			}
		}
	}
	return category
}

// Synthesize crea una categoría de una palabra a partir de la primera palabra significativa
// (longitud > 2, no numérica, no unidad ni palabra vacía). Sin candidata → "Other".
func (c *Classifier) Synthesize(itemName string) entity.Category {
	for _, field := range strings.Fields(itemName) {
		word := strings.TrimFunc(field, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		lower := strings.ToLower(word)
		if len([]rune(lower)) <= 2 || skipWords[lower] || measurementToken.MatchString(lower) {
			continue
		}
		// cases.Caser no es seguro entre goroutines: uno por llamada.
		return entity.Category(cases.Title(language.English).String(lower))
	}
	return entity.CategoryOther
}

// AllCategories categorías conocidas (principales y jerárquicas), ordenadas.
func (c *Classifier) AllCategories() []entity.Category {
	set := make(map[entity.Category]bool)
	for _, r := range c.rules {
		category := entity.Category(r.Category)
		set[category] = true
		set[entity.Category(category.Base())] = true
	}
	for _, t := range c.subTables {
		set[entity.Category(t.Base)] = true
		for _, sr := range t.Rules {
			set[entity.NewCategory(t.Base, sr.Sub)] = true
		}
	}
	out := make([]entity.Category, 0, len(set))
	for category := range set {
		out = append(out, category)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// MainCategories categorías principales de la tabla de reglas, ordenadas.
func (c *Classifier) MainCategories() []string {
	set := make(map[string]bool)
	for _, r := range c.rules {
		set[entity.Category(r.Category).Base()] = true
	}
	out := make([]string, 0, len(set))
	for base := range set {
		out = append(out, base)
	}
	sort.Strings(out)
	return out
}

// Search categorías que contienen query (sin distinguir mayúsculas), máximo limit.
func (c *Classifier) Search(query string, limit int) []entity.Category {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	q := strings.ToLower(strings.TrimSpace(query))
	var out []entity.Category
	for _, category := range c.AllCategories() {
		if strings.Contains(strings.ToLower(category.String()), q) {
			out = append(out, category)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// ValidateCategory acepta categorías conocidas, jerárquicas bien formadas
// o personalizadas de una sola palabra con mayúscula inicial.
func (c *Classifier) ValidateCategory(category entity.Category) bool {
	if category == "" {
		return false
	}
	for _, known := range c.AllCategories() {
		if known == category {
			return true
		}
	}
	if category.IsHierarchical() {
		return category.Valid()
	}
	s := category.String()
	first := []rune(s)[0]
	return !strings.Contains(s, " ") && unicode.IsUpper(first)
}
