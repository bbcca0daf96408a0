package inventory

import (
	"context"
	"fmt"
	"time"
)

// ReportUseCase genera el informe PDF del inventario actual.
type ReportUseCase struct {
	manager   *Manager
	generator ReportGenerator
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(manager *Manager, generator ReportGenerator) *ReportUseCase {
	return &ReportUseCase{manager: manager, generator: generator, now: time.Now}
}

// Generate devuelve los bytes del PDF.
func (uc *ReportUseCase) Generate(ctx context.Context) ([]byte, error) {
	list := uc.manager.List()
	pdf, err := uc.generator.GenerateInventoryReport(ctx, list.Items, uc.now())
	if err != nil {
		return nil, fmt.Errorf("informe de inventario: %w", err)
	}
	return pdf, nil
}
