package batch_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-assistant/internal/application/batch"
	"github.com/jhoicas/inventory-assistant/internal/domain/ambiguity"
	"github.com/jhoicas/inventory-assistant/internal/domain/classifier"
	"github.com/jhoicas/inventory-assistant/internal/domain/entity"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

var batchIDPattern = regexp.MustCompile(`^BATCH_[0-9A-F]{8}_\d+$`)

func newBuilder() *batch.Builder {
	return batch.NewBuilder(ambiguity.NewResolver(classifier.New(), nil), func() time.Time { return fixedNow })
}

func TestNewBatchID_Formato(t *testing.T) {
	a := batch.NewBatchID(fixedNow)
	b := batch.NewBatchID(fixedNow)
	assert.Regexp(t, batchIDPattern, a)
	assert.NotEqual(t, a, b)
	assert.Contains(t, a, "_1741944600")
}

func TestBuild_In_SignoPositivoYUbicaciones(t *testing.T) {
	req := batch.Request{
		MovementType: entity.MovementTypeIN,
		Items:        []entity.ItemDraft{draft("cement", 100, "bags"), draft("Paint 20ltrs", 5, "")},
		Meta:         batch.Metadata{Project: "Site A", Driver: "John", FromLocation: "supplier depot", UserID: "7", UserName: "Ana"},
	}
	built := newBuilder().Build(req, map[string]string{"paint 20ltrs": "yard"})

	require.Len(t, built.Movements, 2)
	assert.Regexp(t, batchIDPattern, built.BatchID)

	cement := built.Movements[0]
	assert.Equal(t, entity.Category("Construction Materials"), cement.Category)
	assert.True(t, decimal.NewFromInt(100).Equal(cement.SignedBaseQuantity))
	assert.True(t, decimal.NewFromInt(100).Equal(cement.Quantity))
	assert.Equal(t, "bags", cement.Unit)
	assert.Equal(t, entity.DefaultUnit, entity.UnitDescriptor{Size: cement.UnitSize, Type: cement.UnitType})
	assert.Equal(t, "Supplier Depot", cement.FromLocation)
	assert.Equal(t, "Warehouse", cement.ToLocation)
	assert.Equal(t, "Warehouse", cement.Location)
	assert.Equal(t, entity.MovementStatusRequested, cement.Status)
	assert.Equal(t, "Restocking", cement.Reason)
	assert.Equal(t, entity.SourceTelegram, cement.Source)
	assert.Equal(t, "Site A", cement.Project)
	assert.Equal(t, "John", cement.DriverName)

	paint := built.Movements[1]
	assert.Equal(t, "Yard", paint.ToLocation, "ubicación preferida del ítem")
	assert.Equal(t, "cans", paint.Unit)
	assert.Equal(t, "ltrs", paint.UnitType)
	assert.True(t, decimal.NewFromInt(20).Equal(paint.UnitSize))

	for _, m := range built.Movements {
		assert.Equal(t, built.BatchID, m.BatchID)
		assert.Equal(t, fixedNow, m.Timestamp)
		assert.Equal(t, "7", m.UserID)
	}
	assert.Equal(t, built.BatchID, built.GlobalParameters[entity.ParamBatchID])
}

func TestBuild_Out_SignoNegativoYDefaults(t *testing.T) {
	req := batch.Request{
		MovementType: entity.MovementTypeOUT,
		Items:        []entity.ItemDraft{draft("PVC Pipe", 12, "m")},
		Meta:         batch.Metadata{ToLocation: "site c"},
	}
	built := newBuilder().Build(req, nil)

	m := built.Movements[0]
	assert.True(t, decimal.NewFromInt(-12).Equal(m.SignedBaseQuantity))
	assert.True(t, decimal.NewFromInt(12).Equal(m.Quantity))
	assert.Equal(t, "Warehouse", m.FromLocation)
	assert.Equal(t, "Site C", m.ToLocation)
	assert.Equal(t, "Warehouse", m.Location)
	assert.Equal(t, "Required", m.Reason)
	assert.Equal(t, batch.DefaultProject, m.Project)
	assert.Equal(t, batch.DefaultDriver, m.DriverName)
	assert.Equal(t, batch.DefaultProject, built.GlobalParameters[entity.ParamProject])
	assert.Equal(t, "Site C", built.GlobalParameters[entity.ParamToLocation])
}

func TestBuild_Adjust_ConservaSigno(t *testing.T) {
	req := batch.Request{
		MovementType: entity.MovementTypeADJUST,
		Items:        []entity.ItemDraft{draft("cement", -3, "bags"), draft("sand", 2, "kg")},
		Meta:         batch.Metadata{FromLocation: "main warehouse"},
	}
	built := newBuilder().Build(req, nil)

	assert.True(t, decimal.NewFromInt(-3).Equal(built.Movements[0].SignedBaseQuantity))
	assert.True(t, decimal.NewFromInt(3).Equal(built.Movements[0].Quantity))
	assert.True(t, decimal.NewFromInt(2).Equal(built.Movements[1].SignedBaseQuantity))
	assert.Equal(t, "Main Warehouse", built.Movements[0].FromLocation)
	assert.Equal(t, built.Movements[0].FromLocation, built.Movements[0].ToLocation)
	assert.Equal(t, "Adjustment", built.Movements[0].Reason)
	assert.Equal(t, "Main Warehouse", built.GlobalParameters[entity.ParamLocation])
	assert.NotContains(t, built.GlobalParameters, entity.ParamProject)
}

func TestBuild_CategoriaSintetizada_RegistraFallback(t *testing.T) {
	built := newBuilder().Build(batch.Request{
		MovementType: entity.MovementTypeIN,
		Items:        []entity.ItemDraft{draft("gizmo deluxe", 2, "")},
	}, nil)

	assert.Equal(t, entity.Category("Gizmo"), built.Movements[0].Category)
	require.Len(t, built.Warnings, 1)
	assert.Equal(t, entity.ErrorKindClassificationFallback, built.Warnings[0].Kind)
	assert.Equal(t, 0, built.Warnings[0].EntryIndex)
}

func TestBuild_CategoriaForzada(t *testing.T) {
	built := newBuilder().Build(batch.Request{
		MovementType: entity.MovementTypeIN,
		Items:        []entity.ItemDraft{draft("gizmo", 2, ""), draft("cement", 1, "bags")},
		Meta:         batch.Metadata{Category: "Hardware"},
	}, nil)

	for _, m := range built.Movements {
		assert.Equal(t, entity.Category("Hardware"), m.Category)
	}
	assert.Empty(t, built.Warnings)
	assert.Equal(t, "Hardware", built.GlobalParameters[entity.ParamCategory])
}

func TestBuild_PrioridadDominanteCoincideConClassify(t *testing.T) {
	c := classifier.New()
	names := []string{"PVC pipe for wire", "Electrical Paint", "Power Tool Set"}
	drafts := make([]entity.ItemDraft, 0, len(names))
	for _, n := range names {
		drafts = append(drafts, draft(n, 1, ""))
	}
	built := newBuilder().Build(batch.Request{MovementType: entity.MovementTypeIN, Items: drafts}, nil)

	require.Len(t, built.Movements, len(names))
	assert.Equal(t, entity.Category("Plumbing > Pipes"), built.Movements[0].Category)
	for i, n := range names {
		assert.Equal(t, c.Classify(n), built.Movements[i].Category, n)
	}
	assert.Empty(t, built.Warnings)
}

func TestStockMovement_ToRecord(t *testing.T) {
	built := newBuilder().Build(batch.Request{
		MovementType: entity.MovementTypeOUT,
		Items:        []entity.ItemDraft{draft("cement", 4, "bags")},
		Meta:         batch.Metadata{ToLocation: "site a", Project: "Tower"},
	}, nil)

	rec := built.Movements[0].ToRecord()
	assert.Equal(t, "OUT", rec["movement_type"])
	assert.Equal(t, "-4", rec["signed_base_quantity"])
	assert.Equal(t, "REQUESTED", rec["status"])
	assert.Equal(t, "Site A", rec["to_location"])
	assert.Equal(t, "Tower", rec["project"])
	assert.NotContains(t, rec, "note")
	assert.NotContains(t, rec, "id")
}
