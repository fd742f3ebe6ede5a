package ports

import (
	"context"

	"github.com/jhoicas/inventory-assistant/internal/domain/entity"
)

// DeliveryNote datos de la remisión de un lote (una línea por movimiento registrado).
type DeliveryNote struct {
	BatchID      string
	MovementType entity.MovementType
	Project      string
	Driver       string
	FromLocation string
	ToLocation   string
	UserName     string
	Movements    []*entity.StockMovement
	Summary      string
}

// DeliveryNoteGenerator genera el documento imprimible de un lote (PDF).
type DeliveryNoteGenerator interface {
	Generate(ctx context.Context, note *DeliveryNote) ([]byte, error)
}
