package ports

import (
	"context"
	"io"

	"github.com/jhoicas/inventory-assistant/internal/domain/entity"
)

// CategorySnapshot categoría original de un ítem antes de migrarlo.
type CategorySnapshot struct {
	ItemName         string
	OriginalCategory entity.Category
	NewCategory      entity.Category
}

// SnapshotStore serializa los respaldos de una migración para poder revertirla después.
// El motor no guarda respaldos propios: el llamador conserva el archivo.
type SnapshotStore interface {
	Export(ctx context.Context, w io.Writer, rows []CategorySnapshot) error
	Import(ctx context.Context, r io.Reader) ([]CategorySnapshot, error)
}
