package ambiguity

import (
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/inventory-assistant/internal/domain/entity"
)

// Entry resolución registrada para auditoría.
type Entry struct {
	ItemName   string            `json:"item_name"`
	Resolved   entity.Category   `json:"resolved_category"`
	Candidates []entity.Category `json:"detected_categories"`
	Method     Method            `json:"resolution_method"`
	Timestamp  time.Time         `json:"timestamp"`
}

// SynthesizedCategory categoría creada a partir de un nombre sin coincidencias.
type SynthesizedCategory struct {
	Category    entity.Category `json:"category"`
	CreatedFrom string          `json:"created_from"`
	UsageCount  int             `json:"usage_count"`
	Timestamp   time.Time       `json:"timestamp"`
}

// Stats resumen del caché.
type Stats struct {
	AmbiguousItemsHandled int               `json:"ambiguous_items_handled"`
	NewCategoriesCreated  int               `json:"new_categories_created"`
	AmbiguousItems        []string          `json:"ambiguous_items"`
	NewCategories         []entity.Category `json:"new_categories"`
	Timestamp             time.Time         `json:"cache_timestamp"`
}

// Cache caché consultivo de resoluciones, de vida igual al proceso.
// Seguro para lectura/escritura concurrente; nunca se usa para evitar una resolución.
type Cache struct {
	mu          sync.RWMutex
	entries     map[string]Entry
	synthesized map[entity.Category]SynthesizedCategory
}

// NewCache crea un caché vacío.
func NewCache() *Cache {
	return &Cache{
		entries:     make(map[string]Entry),
		synthesized: make(map[entity.Category]SynthesizedCategory),
	}
}

// Record guarda (o reemplaza) la resolución de un ítem.
func (c *Cache) Record(e Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[e.ItemName] = e
	if e.Method != MethodSynthesized {
		return
	}
	s, ok := c.synthesized[e.Resolved]
	if !ok {
		s = SynthesizedCategory{Category: e.Resolved, CreatedFrom: e.ItemName, Timestamp: e.Timestamp}
	}
	s.UsageCount++
	c.synthesized[e.Resolved] = s
}

// Get devuelve la resolución registrada para el ítem.
func (c *Cache) Get(itemName string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[itemName]
	return e, ok
}

// Entries copia de todas las entradas ordenadas por nombre de ítem.
func (c *Cache) Entries() []Entry {
	c.mu.RLock()
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e)
	}
	c.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ItemName < out[j].ItemName })
	return out
}

// NewCategories categorías sintetizadas ordenadas.
func (c *Cache) NewCategories() []SynthesizedCategory {
	c.mu.RLock()
	out := make([]SynthesizedCategory, 0, len(c.synthesized))
	for _, s := range c.synthesized {
		out = append(out, s)
	}
	c.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// Len número de ítems registrados.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats cuenta ítems ambiguos (no sintetizados) y categorías nuevas.
func (c *Cache) Stats() Stats {
	st := Stats{Timestamp: time.Now().UTC()}
	for _, e := range c.Entries() {
		if e.Method == MethodSynthesized {
			continue
		}
		st.AmbiguousItems = append(st.AmbiguousItems, e.ItemName)
	}
	for _, s := range c.NewCategories() {
		st.NewCategories = append(st.NewCategories, s.Category)
	}
	st.AmbiguousItemsHandled = len(st.AmbiguousItems)
	st.NewCategoriesCreated = len(st.NewCategories)
	return st
}

// Clear vacía el caché.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]Entry)
	c.synthesized = make(map[entity.Category]SynthesizedCategory)
}
