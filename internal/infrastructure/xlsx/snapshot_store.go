// Package xlsx guarda y lee los respaldos de migración de categorías como libros de Excel.
package xlsx

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/inventory-assistant/internal/application/ports"
	"github.com/jhoicas/inventory-assistant/internal/domain"
	"github.com/jhoicas/inventory-assistant/internal/domain/entity"
)

// SheetName hoja donde se escriben los respaldos.
const SheetName = "category_backup"

var headers = []string{"item_name", "original_category", "new_category"}

var _ ports.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore respaldos de migración en formato .xlsx (una fila por ítem).
type SnapshotStore struct{}

// NewSnapshotStore crea el adaptador.
func NewSnapshotStore() *SnapshotStore { return &SnapshotStore{} }

// Export escribe el libro con encabezados y una fila por respaldo.
func (s *SnapshotStore) Export(ctx context.Context, w io.Writer, rows []ports.CategorySnapshot) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return fmt.Errorf("xlsx: encabezado %s: %w", h, err)
		}
	}

	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		r := i + 2
		set := func(col int, value string) error {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			return f.SetCellStr(SheetName, cell, value)
		}
		if err := set(1, row.ItemName); err != nil {
			return fmt.Errorf("xlsx: fila %d: %w", r, err)
		}
		if err := set(2, row.OriginalCategory.String()); err != nil {
			return fmt.Errorf("xlsx: fila %d: %w", r, err)
		}
		if err := set(3, row.NewCategory.String()); err != nil {
			return fmt.Errorf("xlsx: fila %d: %w", r, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return nil
}

// Import lee un libro exportado. Las columnas se ubican por encabezado; las filas sin
// nombre de ítem se omiten. Una categoría original vacía es válida (el ítem no tenía).
func (s *SnapshotStore) Import(ctx context.Context, r io.Reader) ([]ports.CategorySnapshot, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("xlsx: abrir libro: %w: %w", domain.ErrInvalidInput, err)
	}
	defer f.Close()

	sheet := SheetName
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx: leer hoja %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return []ports.CategorySnapshot{}, nil
	}

	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	nameIdx, ok := cols["item_name"]
	if !ok {
		return nil, fmt.Errorf("xlsx: falta la columna item_name: %w", domain.ErrInvalidInput)
	}
	origIdx, ok := cols["original_category"]
	if !ok {
		return nil, fmt.Errorf("xlsx: falta la columna original_category: %w", domain.ErrInvalidInput)
	}
	newIdx, hasNew := cols["new_category"]

	out := make([]ports.CategorySnapshot, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := cell(row, nameIdx)
		if name == "" {
			continue
		}
		snap := ports.CategorySnapshot{ItemName: name, OriginalCategory: entity.Category(cell(row, origIdx))}
		if hasNew {
			snap.NewCategory = entity.Category(cell(row, newIdx))
		}
		out = append(out, snap)
	}
	return out, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
