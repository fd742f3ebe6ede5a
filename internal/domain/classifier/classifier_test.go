package classifier_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-assistant/internal/domain/classifier"
	"github.com/jhoicas/inventory-assistant/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Classify: primera coincidencia, prioridades y subcategorías
// ──────────────────────────────────────────────────────────────────────────────

func TestClassify_Tabla(t *testing.T) {
	c := classifier.New()

	cases := []struct {
		name string
		want entity.Category
	}{
		{"Paint 20ltrs", "Paint"},
		{"Interior Paint white", "Paint > Interior Paint"},
		{"Copper Wire 2.5mm", "Electrical > Cables"},
		{"PVC Pipe", "Plumbing > Pipes"},
		{"Cement", "Construction Materials"},
		{"Steel Beam", "Steel > Beams"},
		{"Toilet Seat", "Toilet Items > Toilet Seats"},
		{"LED Bulb 9W", "Lamps and Bulbs > LED Bulbs"},
		{"Safety Helmet", "Safety Equipment"},
		{"Claw Hammer", "Tools"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, c.Classify(tc.name))
		})
	}
}

func TestClassify_PrioridadDominante(t *testing.T) {
	c := classifier.New()

	assert.Equal(t, entity.Category("Paint"), c.Classify("Electrical Paint"),
		"paint domina a electrical")
	// 'wire' aparece antes en la tabla, pero 'pipe' domina a 'wire'
	assert.Equal(t, entity.Category("Plumbing > Pipes"), c.Classify("Pipe wire clamp"))
	assert.Equal(t, entity.Category("Tools > Power Tools"), c.Classify("Power Tool Set"))
}

func TestClassify_Determinista(t *testing.T) {
	c := classifier.New()
	names := []string{"Electrical Paint", "cement", "Widget 50kg", "", "pipe wire", "Ñandú"}
	for _, n := range names {
		first := c.Classify(n)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, c.Classify(n), "Classify(%q) debe ser determinista", n)
		}
		assert.True(t, first.Valid(), "la categoría de %q debe ser válida", n)
	}
}

func TestClassify_SinCoincidenciaSintetiza(t *testing.T) {
	c := classifier.New()

	assert.Equal(t, entity.Category("Widget"), c.Classify("Widget 50kg"))
	assert.Equal(t, entity.Category("Gizmo"), c.Classify("20ltrs gizmo"))
	assert.Equal(t, entity.CategoryOther, c.Classify("12 kg"))
	assert.Equal(t, entity.CategoryOther, c.Classify("   "))
	assert.False(t, c.Matches("Widget 50kg"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Candidates
// ──────────────────────────────────────────────────────────────────────────────

func TestCandidates_OrdenDeTablaSinDuplicados(t *testing.T) {
	c := classifier.New()

	got := c.Candidates("copper wire cable")
	assert.Equal(t, []entity.Category{"Electrical > Cables", "Steel"}, got)

	assert.Empty(t, c.Candidates("widget"))
	assert.Equal(t, []entity.Category{"Construction Materials"}, c.Candidates("cement"))
}

func TestCandidates_UnicoCoincideConClassify(t *testing.T) {
	c := classifier.New()
	for _, n := range []string{"cement", "Steel Beam", "Interior Paint", "Toilet Seat", "Claw Hammer"} {
		cands := c.Candidates(n)
		require.Len(t, cands, 1, n)
		assert.Equal(t, c.Classify(n), cands[0], n)
	}
}

func TestCandidates_PrioridadColapsaAlDominante(t *testing.T) {
	c := classifier.New()

	got := c.Candidates("PVC pipe for wire")
	assert.Equal(t, []entity.Category{"Plumbing > Pipes"}, got)
	assert.Equal(t, c.Classify("PVC pipe for wire"), got[0])

	got = c.Candidates("Electrical Paint")
	require.Len(t, got, 1)
	assert.Equal(t, c.Classify("Electrical Paint"), got[0])
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo, búsqueda y validación
// ──────────────────────────────────────────────────────────────────────────────

func TestAllCategories_IncluyePrincipalesYJerarquicas(t *testing.T) {
	c := classifier.New()
	all := c.AllCategories()

	assert.Contains(t, all, entity.Category("Electrical"))
	assert.Contains(t, all, entity.Category("Electrical > Cables"))
	assert.Contains(t, all, entity.Category("Steel > Structural"))
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1], all[i], "debe estar ordenado y sin duplicados")
	}
}

func TestMainCategories(t *testing.T) {
	mains := classifier.New().MainCategories()
	assert.Contains(t, mains, "Electrical")
	assert.Contains(t, mains, "Construction Materials")
	for _, m := range mains {
		assert.NotContains(t, m, entity.CategorySeparator)
	}
}

func TestSearch_LimiteYCoincidencia(t *testing.T) {
	c := classifier.New()

	got := c.Search("PAINT", 3)
	require.Len(t, got, 3)
	for _, cat := range got {
		assert.True(t, strings.Contains(strings.ToLower(cat.String()), "paint"), cat)
	}
	assert.LessOrEqual(t, len(c.Search("e", 0)), classifier.DefaultSearchLimit)
	assert.Empty(t, c.Search("zzz", 5))
}

func TestValidateCategory(t *testing.T) {
	c := classifier.New()

	cases := map[entity.Category]bool{
		"Paint":               true,
		"Electrical > Cables": true,
		"Custom > Thing":      true,
		"Widget":              true,
		"widget":              false,
		"Two Words":           false,
		"A > B > C":           false,
		"":                    false,
	}
	for cat, want := range cases {
		assert.Equal(t, want, c.ValidateCategory(cat), fmt.Sprintf("ValidateCategory(%q)", cat))
	}
}

func TestNewWithRules_TablaPropia(t *testing.T) {
	c := classifier.NewWithRules(
		[]classifier.Rule{{Keyword: "bolt", Category: "Fasteners"}},
		nil,
		[]classifier.SubTable{{Base: "Fasteners", Rules: []classifier.SubRule{{Keyword: "hex", Sub: "Hex"}}}},
	)
	assert.Equal(t, entity.Category("Fasteners > Hex"), c.Classify("Hex Bolt M8"))
	assert.Equal(t, entity.Category("Paint"), c.Classify("Paint"), "sin regla: se sintetiza")
}
