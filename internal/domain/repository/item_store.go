package repository

import (
	"context"

	"github.com/jhoicas/inventory-assistant/internal/domain/entity"
)

// ItemStore define el puerto hacia el almacén de registros externo (DIP).
// Las implementaciones envuelven domain.ErrStoreUnavailable cuando el almacén no responde,
// distinto de domain.ErrNotFound.
type ItemStore interface {
	FetchAllItems(ctx context.Context) ([]*entity.Item, error)
	CreateOrUpdateItem(ctx context.Context, name string, fields entity.ItemFields) (string, error)
	AppendMovement(ctx context.Context, movement *entity.StockMovement) (string, error)
	// UpdateItemCategory devuelve false si el ítem no existe.
	UpdateItemCategory(ctx context.Context, name string, category entity.Category) (bool, error)
}
