package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cafe-inventory/internal/application/dto"
	"github.com/jhoicas/cafe-inventory/internal/infrastructure/pdf"
)

func TestGenerateInventoryReport_ProducesPDF(t *testing.T) {
	g := pdf.NewMarotoReportGenerator()
	items := []dto.InventoryItemResponse{
		{ID: "item_2_abc1234", Name: "Oat Milk", Quantity: 2, Unit: "Carton", Date: "2024-01-01", CreatedAt: 2},
		{ID: "item_1_def5678", Name: "Espresso Beans", Quantity: 5, Unit: "kg", Date: "2024-01-01", CreatedAt: 1},
	}

	out, err := g.GenerateInventoryReport(context.Background(), items, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateInventoryReport_EmptyCollection(t *testing.T) {
	out, err := pdf.NewMarotoReportGenerator().GenerateInventoryReport(context.Background(), nil, time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestGenerateInventoryReport_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pdf.NewMarotoReportGenerator().GenerateInventoryReport(ctx, nil, time.Now())
	assert.ErrorIs(t, err, context.Canceled)
}
