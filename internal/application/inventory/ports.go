package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/cafe-inventory/internal/application/dto"
	"github.com/jhoicas/cafe-inventory/internal/application/notify"
)

// Notifier emite avisos visibles para el usuario (éxito de alta, fallo de guardado, etc.).
type Notifier interface {
	Notify(level notify.Level, message string) notify.Notification
}

// ReportGenerator produce la representación PDF del inventario.
type ReportGenerator interface {
	GenerateInventoryReport(ctx context.Context, items []dto.InventoryItemResponse, generatedAt time.Time) ([]byte, error)
}
