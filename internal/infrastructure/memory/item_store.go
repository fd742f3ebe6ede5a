// Package memory implementa el almacén de ítems en memoria (modo desarrollo y pruebas).
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventory-assistant/internal/domain"
	"github.com/jhoicas/inventory-assistant/internal/domain/entity"
	"github.com/jhoicas/inventory-assistant/internal/domain/repository"
)

var _ repository.ItemStore = (*ItemStore)(nil)

// FailFunc decide si una operación debe fallar; op es el nombre del método.
type FailFunc func(op, itemName string) error

// ItemStore almacén en memoria indexado por nombre (sin distinguir mayúsculas).
type ItemStore struct {
	mu        sync.RWMutex
	items     map[string]*entity.Item
	movements []*entity.StockMovement
	fail      FailFunc
	now       func() time.Time
}

// NewItemStore crea el almacén con ítems iniciales opcionales.
func NewItemStore(seed ...*entity.Item) *ItemStore {
	s := &ItemStore{items: make(map[string]*entity.Item), now: time.Now}
	for _, it := range seed {
		cp := *it
		if cp.ID == "" {
			cp.ID = uuid.NewString()
		}
		s.items[key(cp.Name)] = &cp
	}
	return s
}

// FailWith instala una función de fallos (nil la quita).
func (s *ItemStore) FailWith(f FailFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = f
}

// Unavailable FailFunc que hace fallar la operación op (o todas si op es "") como no disponible.
func Unavailable(op string) FailFunc {
	return func(o, _ string) error {
		if op == "" || o == op {
			return fmt.Errorf("memory store %s: %w", o, domain.ErrStoreUnavailable)
		}
		return nil
	}
}

func (s *ItemStore) check(op, name string) error {
	if s.fail == nil {
		return nil
	}
	return s.fail(op, name)
}

func key(name string) string { return strings.ToLower(strings.TrimSpace(name)) }

// FetchAllItems copia de todos los ítems ordenados por nombre.
func (s *ItemStore) FetchAllItems(ctx context.Context) ([]*entity.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check("FetchAllItems", ""); err != nil {
		return nil, err
	}
	out := make([]*entity.Item, 0, len(s.items))
	for _, it := range s.items {
		cp := *it
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// CreateOrUpdateItem crea el ítem o actualiza los campos no vacíos.
func (s *ItemStore) CreateOrUpdateItem(ctx context.Context, name string, fields entity.ItemFields) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("CreateOrUpdateItem", name); err != nil {
		return "", err
	}
	if strings.TrimSpace(name) == "" {
		return "", domain.ErrInvalidInput
	}
	it, ok := s.items[key(name)]
	if !ok {
		it = &entity.Item{ID: uuid.NewString(), Name: strings.TrimSpace(name)}
		s.items[key(name)] = it
	}
	if fields.Category != "" {
		it.Category = fields.Category
	}
	if !fields.UnitSize.IsZero() {
		it.UnitSize = fields.UnitSize
	}
	if fields.UnitType != "" {
		it.UnitType = fields.UnitType
	}
	if fields.Location != "" {
		it.Location = fields.Location
	}
	it.UpdatedAt = s.now().UTC()
	return it.ID, nil
}

// AppendMovement guarda una copia del movimiento y ajusta el saldo del ítem si existe.
func (s *ItemStore) AppendMovement(ctx context.Context, movement *entity.StockMovement) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("AppendMovement", movement.ItemName); err != nil {
		return "", err
	}
	cp := *movement
	if cp.ID == "" {
		cp.ID = uuid.NewString()
	}
	s.movements = append(s.movements, &cp)
	if it, ok := s.items[key(cp.ItemName)]; ok {
		it.OnHand = it.OnHand.Add(cp.SignedBaseQuantity)
	}
	return cp.ID, nil
}

// UpdateItemCategory cambia la categoría; false si el ítem no existe.
func (s *ItemStore) UpdateItemCategory(ctx context.Context, name string, category entity.Category) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("UpdateItemCategory", name); err != nil {
		return false, err
	}
	it, ok := s.items[key(name)]
	if !ok {
		return false, nil
	}
	it.Category = category
	it.UpdatedAt = s.now().UTC()
	return true, nil
}

// Movements copia de los movimientos registrados, en orden de llegada.
func (s *ItemStore) Movements() []*entity.StockMovement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.StockMovement, len(s.movements))
	for i, m := range s.movements {
		cp := *m
		out[i] = &cp
	}
	return out
}

// Item devuelve una copia del ítem por nombre.
func (s *ItemStore) Item(name string) (*entity.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.items[key(name)]
	if !ok {
		return nil, false
	}
	cp := *it
	return &cp, true
}
