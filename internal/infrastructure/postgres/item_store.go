package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-assistant/internal/domain"
	"github.com/jhoicas/inventory-assistant/internal/domain/entity"
	"github.com/jhoicas/inventory-assistant/internal/domain/repository"
)

//go:embed schema.sql
var schemaSQL string

var _ repository.ItemStore = (*ItemStore)(nil)

// ItemStore implementación del almacén de ítems sobre PostgreSQL (usable con pool o tx).
// El nombre del ítem es la clave natural; se compara sin distinguir mayúsculas (name_key).
type ItemStore struct {
	q   Querier
	now func() time.Time
}

// NewItemStore construye el adaptador. Pasar pool o tx (Querier).
func NewItemStore(q Querier) *ItemStore {
	return &ItemStore{q: q, now: time.Now}
}

// EnsureSchema crea las tablas si no existen.
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schemaSQL); err != nil {
		return storeError("ensure schema", err)
	}
	return nil
}

func nameKey(name string) string { return strings.ToLower(strings.TrimSpace(name)) }

// FetchAllItems lista todos los ítems ordenados por nombre.
func (s *ItemStore) FetchAllItems(ctx context.Context) ([]*entity.Item, error) {
	query := `
		SELECT id, name, category, unit_size, unit_type, location, on_hand, updated_at
		FROM items ORDER BY name`
	rows, err := s.q.Query(ctx, query)
	if err != nil {
		return nil, storeError("fetch items", err)
	}
	defer rows.Close()

	var out []*entity.Item
	for rows.Next() {
		var (
			it  entity.Item
			cat string
		)
		if err := rows.Scan(&it.ID, &it.Name, &cat, &it.UnitSize, &it.UnitType, &it.Location, &it.OnHand, &it.UpdatedAt); err != nil {
			return nil, storeError("scan item", err)
		}
		it.Category = entity.Category(cat)
		out = append(out, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("fetch items", err)
	}
	return out, nil
}

// CreateOrUpdateItem inserta el ítem o actualiza solo los campos no vacíos. Devuelve el ID.
func (s *ItemStore) CreateOrUpdateItem(ctx context.Context, name string, fields entity.ItemFields) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("create or update item: %w", domain.ErrInvalidInput)
	}
	unitSize := fields.UnitSize
	unitType := fields.UnitType
	if !unitSize.GreaterThan(decimal.Zero) || unitType == "" {
		unitSize, unitType = decimal.Zero, ""
	}

	query := `
		INSERT INTO items (id, name, name_key, category, unit_size, unit_type, location, updated_at)
		VALUES ($1, $2, $3, $4, CASE WHEN $5::numeric > 0 THEN $5::numeric ELSE 1 END,
		        COALESCE(NULLIF($6, ''), 'piece'), $7, $8)
		ON CONFLICT (name_key) DO UPDATE SET
			category   = COALESCE(NULLIF(EXCLUDED.category, ''), items.category),
			unit_size  = CASE WHEN $5::numeric > 0 THEN EXCLUDED.unit_size ELSE items.unit_size END,
			unit_type  = CASE WHEN $6 <> '' THEN EXCLUDED.unit_type ELSE items.unit_type END,
			location   = COALESCE(NULLIF(EXCLUDED.location, ''), items.location),
			updated_at = EXCLUDED.updated_at
		RETURNING id`
	var id string
	err := s.q.QueryRow(ctx, query,
		uuid.New().String(), name, nameKey(name), fields.Category.String(),
		unitSize, unitType, fields.Location, s.now().UTC(),
	).Scan(&id)
	if err != nil {
		return "", storeError("create or update item", err)
	}
	return id, nil
}

// AppendMovement inserta el movimiento y ajusta el saldo del ítem en una sola sentencia.
func (s *ItemStore) AppendMovement(ctx context.Context, m *entity.StockMovement) (string, error) {
	id := m.ID
	if id == "" {
		id = uuid.New().String()
	}
	query := `
		WITH ins AS (
			INSERT INTO stock_movements (
				id, batch_id, item_name, movement_type, quantity, unit, signed_base_quantity,
				unit_size, unit_type, category, location, from_location, to_location, status,
				reason, source, user_id, user_name, project, driver_name, note, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
			RETURNING id
		), upd AS (
			UPDATE items SET on_hand = on_hand + $7, updated_at = $22 WHERE name_key = $23
		)
		SELECT id FROM ins`
	var out string
	err := s.q.QueryRow(ctx, query,
		id, m.BatchID, m.ItemName, string(m.MovementType), m.Quantity, m.Unit, m.SignedBaseQuantity,
		m.UnitSize, m.UnitType, m.Category.String(), m.Location, m.FromLocation, m.ToLocation, string(m.Status),
		m.Reason, m.Source, m.UserID, m.UserName, m.Project, m.DriverName, m.Note, m.Timestamp,
		nameKey(m.ItemName),
	).Scan(&out)
	if err != nil {
		return "", storeError("append movement", err)
	}
	return out, nil
}

// UpdateItemCategory cambia la categoría; false si el ítem no existe.
func (s *ItemStore) UpdateItemCategory(ctx context.Context, name string, category entity.Category) (bool, error) {
	query := `UPDATE items SET category = $1, updated_at = $2 WHERE name_key = $3`
	tag, err := s.q.Exec(ctx, query, category.String(), s.now().UTC(), nameKey(name))
	if err != nil {
		return false, storeError("update item category", err)
	}
	return tag.RowsAffected() > 0, nil
}
