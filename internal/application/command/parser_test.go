package command_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-assistant/internal/application/command"
	"github.com/jhoicas/inventory-assistant/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Parámetros
// ──────────────────────────────────────────────────────────────────────────────

func TestParse_ParametrosDelComando(t *testing.T) {
	text := "/out project: Tower 2, driver: Mike, from: yard, to: site b, date: 2025-03-14, logged by: Ana, category: Paint\n" +
		"paint, 5 cans"

	pc := command.Parse(text, entity.MovementTypeOUT)
	require.True(t, pc.OK())
	assert.Equal(t, entity.MovementTypeOUT, pc.MovementType)
	assert.Equal(t, "Tower 2", pc.Meta.Project)
	assert.Equal(t, "Mike", pc.Meta.Driver)
	assert.Equal(t, "yard", pc.Meta.FromLocation)
	assert.Equal(t, "site b", pc.Meta.ToLocation)
	assert.Equal(t, "2025-03-14", pc.Meta.Date)
	assert.Equal(t, "Ana", pc.Meta.LoggedBy)
	assert.Equal(t, "Paint", pc.Meta.Category)
	require.Len(t, pc.Items, 1)
}

func TestParse_ParametrosOpcionalesVacios(t *testing.T) {
	pc := command.Parse("/in cement, 100 bags", entity.MovementTypeIN)
	require.True(t, pc.OK())
	assert.Empty(t, pc.Meta.Project)
	assert.Empty(t, pc.Meta.Driver)
	assert.Empty(t, pc.Meta.ToLocation)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ítems
// ──────────────────────────────────────────────────────────────────────────────

func TestParse_ItemsPorLineaYPuntoYComa(t *testing.T) {
	text := "/in project: Site A, driver: John; cement, 100 bags; sand, 2.5kg\n" +
		"Steel Beam 6m, 10 pieces, urgent\n" +
		"paint 20ltrs, 4"

	pc := command.Parse(text, entity.MovementTypeIN)
	require.True(t, pc.OK())
	require.Len(t, pc.Items, 4)

	tests := []struct {
		name string
		qty  string
		unit string
		note string
	}{
		{"cement", "100", "bags", ""},
		{"sand", "2.5", "kg", ""},
		{"Steel Beam 6m", "10", "pieces", "urgent"},
		{"paint 20ltrs", "4", "", ""},
	}
	for i, tt := range tests {
		it := pc.Items[i]
		assert.Equal(t, tt.name, it.Name)
		assert.True(t, decimal.RequireFromString(tt.qty).Equal(it.Quantity), "cantidad de %s", tt.name)
		assert.Equal(t, tt.unit, it.Unit)
		assert.Equal(t, tt.note, it.Note)
	}
	assert.Equal(t, "Site A", pc.Meta.Project)
	assert.Equal(t, "John", pc.Meta.Driver)
}

func TestParse_UnidadTrasComa_FormatoDeLaAyuda(t *testing.T) {
	hint := command.FormatHint(entity.MovementTypeOUT)
	assert.Equal(t, "Check command format: /out project: Name, driver: Name, to: Destination; item, quantity, unit", hint)

	pc := command.Parse("/out project: P, driver: D, to: site b; paint, 5, ltrs", entity.MovementTypeOUT)
	require.True(t, pc.OK())
	require.Len(t, pc.Items, 1)
	assert.Equal(t, "paint", pc.Items[0].Name)
	assert.True(t, decimal.NewFromInt(5).Equal(pc.Items[0].Quantity))
	assert.Equal(t, "ltrs", pc.Items[0].Unit)
	assert.Empty(t, pc.Items[0].Note)
}

func TestParse_UnidadTrasComa_ConNota(t *testing.T) {
	pc := command.Parse("/in cement, 10, bags, for slab\nsand, 3, urgent\nglue, 2, Cans", entity.MovementTypeIN)
	require.True(t, pc.OK())
	require.Len(t, pc.Items, 3)

	assert.Equal(t, "bags", pc.Items[0].Unit)
	assert.Equal(t, "for slab", pc.Items[0].Note)

	assert.Empty(t, pc.Items[1].Unit, "urgent no es unidad")
	assert.Equal(t, "urgent", pc.Items[1].Note)

	assert.Equal(t, "Cans", pc.Items[2].Unit)
	assert.Empty(t, pc.Items[2].Note)
}

func TestParse_AjusteConSigno(t *testing.T) {
	pc := command.Parse("/adjust from: yard\ncement, -3 bags\nsand, +2 kg", entity.MovementTypeADJUST)
	require.True(t, pc.OK())
	require.Len(t, pc.Items, 2)
	assert.True(t, decimal.NewFromInt(-3).Equal(pc.Items[0].Quantity))
	assert.True(t, decimal.NewFromInt(2).Equal(pc.Items[1].Quantity))
}

func TestParse_SinItems_ErrorDeParseo(t *testing.T) {
	pc := command.Parse("/in project: Site A, driver: John", entity.MovementTypeIN)
	assert.False(t, pc.OK())
	assert.Empty(t, pc.Items)
	require.Len(t, pc.Errors, 1)
	assert.Equal(t, entity.ErrorKindParsing, pc.Errors[0].Kind)
	assert.Equal(t, command.MsgNoItems, pc.Errors[0].Message)
}

func TestParse_Duplicados_ErrorDeParseo(t *testing.T) {
	pc := command.Parse("/in cement, 1 bags; Cement, 2 bags; sand, 1 kg", entity.MovementTypeIN)
	assert.False(t, pc.OK())
	assert.Len(t, pc.Items, 3)
	assert.Equal(t, []string{"Cement"}, pc.Duplicates)
	require.Len(t, pc.Errors, 1)
	assert.Contains(t, pc.Errors[0].Message, command.MsgDuplicates)
	assert.Equal(t, []string{command.SuggestDuplicates}, command.Suggestions(entity.MovementTypeIN, pc.Errors))
}

func TestParse_SeccionesDeLote_ErrorDeParseo(t *testing.T) {
	text := "/in -batch 1- project: Alpha, driver: Joe\ncement, 5 bags\n-batch 2- project: Beta, driver: Ann\nsand, 3 kg"

	pc := command.Parse(text, entity.MovementTypeIN)
	assert.False(t, pc.OK())
	require.Len(t, pc.Errors, 1)
	assert.Equal(t, entity.ErrorKindParsing, pc.Errors[0].Kind)
	assert.Equal(t, command.MsgSections, pc.Errors[0].Message)
	assert.Equal(t, []string{command.SuggestSections}, command.Suggestions(entity.MovementTypeIN, pc.Errors))
}

func TestParse_GuionEnNombreNoEsSeccion(t *testing.T) {
	pc := command.Parse("/in anti-batch 2 mix, 4 bags", entity.MovementTypeIN)
	assert.True(t, pc.OK())
	require.Len(t, pc.Items, 1)
}
