// Package ambiguity resuelve ítems que coinciden con varias categorías (o con ninguna)
// aplicando una jerarquía fija de familias, y registra cada resolución en un caché consultivo.
package ambiguity

import (
	"time"

	"github.com/jhoicas/inventory-assistant/internal/domain/classifier"
	"github.com/jhoicas/inventory-assistant/internal/domain/entity"
)

// Method forma en que se resolvió la categoría.
type Method string

// Métodos de resolución.
const (
	MethodSingle         Method = "single"
	MethodPriorityRules  Method = "priority_rules"
	MethodFirstCandidate Method = "first_candidate"
	MethodSynthesized    Method = "synthesized"
)

// FamilyPriority jerarquía de familias, de mayor a menor prioridad.
var FamilyPriority = []string{
	"Safety Equipment",
	"Tools",
	"Electrical",
	"Plumbing",
	"Paint",
	"Carpentry",
	"Steel",
	"Construction Materials",
}

// Resolution resultado de resolver un ítem.
type Resolution struct {
	Category   entity.Category
	Method     Method
	Candidates []entity.Category
}

// Synthesized indica que ninguna regla coincidió y se creó una categoría nueva.
func (r Resolution) Synthesized() bool { return r.Method == MethodSynthesized }

// Ambiguous indica que hubo más de un candidato.
func (r Resolution) Ambiguous() bool { return len(r.Candidates) > 1 }

// Resolver resolvedor de ambigüedades. Seguro para uso concurrente.
type Resolver struct {
	classifier *classifier.Classifier
	cache      *Cache
	now        func() time.Time
}

// NewResolver crea el resolvedor. cache nil crea uno propio.
func NewResolver(c *classifier.Classifier, cache *Cache) *Resolver {
	if cache == nil {
		cache = NewCache()
	}
	return &Resolver{classifier: c, cache: cache, now: time.Now}
}

// Cache caché de auditoría del resolvedor.
func (r *Resolver) Cache() *Cache { return r.cache }

// ResolveItem resuelve usando los candidatos que el clasificador detecta en el nombre.
func (r *Resolver) ResolveItem(itemName string) Resolution {
	return r.Resolve(itemName, r.classifier.Candidates(itemName))
}

// Category atajo de ResolveItem que devuelve solo la categoría.
func (r *Resolver) Category(itemName string) entity.Category {
	return r.ResolveItem(itemName).Category
}

// Resolve: sin candidatos → categoría sintetizada; uno → ese; varios → la familia de mayor
// prioridad presente (conservando la subcategoría) o, si ninguna, el primero.
// Las resoluciones ambiguas y sintetizadas se registran; el caché nunca se consulta aquí.
func (r *Resolver) Resolve(itemName string, candidates []entity.Category) Resolution {
	res := Resolution{Candidates: candidates}
	switch len(candidates) {
	case 0:
		res.Category, res.Method = r.classifier.Synthesize(itemName), MethodSynthesized
	case 1:
		res.Category, res.Method = candidates[0], MethodSingle
		return res
	default:
		res.Category, res.Method = byFamilyPriority(candidates)
	}

	r.cache.Record(Entry{
		ItemName:   itemName,
		Resolved:   res.Category,
		Candidates: append([]entity.Category(nil), candidates...),
		Method:     res.Method,
		Timestamp:  r.now().UTC(),
	})
	return res
}

func byFamilyPriority(candidates []entity.Category) (entity.Category, Method) {
	for _, family := range FamilyPriority {
		for _, c := range candidates {
			if c.Base() == family {
				return c, MethodPriorityRules
			}
		}
	}
	return candidates[0], MethodFirstCandidate
}
