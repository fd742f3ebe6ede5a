package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-assistant/internal/application/ports"
	"github.com/jhoicas/inventory-assistant/internal/domain"
	"github.com/jhoicas/inventory-assistant/internal/domain/entity"
	"github.com/jhoicas/inventory-assistant/internal/infrastructure/pdf"
)

func TestGenerate_RemisionPDF(t *testing.T) {
	note := &ports.DeliveryNote{
		BatchID:      "BATCH_1A2B3C4D_1741944600",
		MovementType: entity.MovementTypeOUT,
		Project:      "Tower",
		Driver:       "Mike",
		FromLocation: "Warehouse",
		ToLocation:   "Site B",
		UserName:     "Ana",
		Movements: []*entity.StockMovement{{
			ItemName:           "cement",
			Quantity:           decimal.NewFromInt(3),
			SignedBaseQuantity: decimal.NewFromInt(-3),
			Unit:               "bags",
			Category:           "Construction Materials",
			Timestamp:          time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
		}},
	}

	out, err := pdf.NewDeliveryNoteGenerator().Generate(context.Background(), note)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "el documento es un PDF")
}

func TestGenerate_SinMovimientos(t *testing.T) {
	_, err := pdf.NewDeliveryNoteGenerator().Generate(context.Background(), &ports.DeliveryNote{BatchID: "B"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
