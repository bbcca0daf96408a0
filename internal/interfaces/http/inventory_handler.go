package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cafe-inventory/internal/application/dto"
	"github.com/jhoicas/cafe-inventory/internal/application/inventory"
)

// InventoryHandler maneja la API JSON del inventario (protegido).
type InventoryHandler struct {
	manager *inventory.Manager
	report  *inventory.ReportUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(manager *inventory.Manager, report *inventory.ReportUseCase) *InventoryHandler {
	return &InventoryHandler{manager: manager, report: report}
}

// List GET /api/inventory, más reciente primero.
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.manager.List())
}

// Create POST /api/inventory registra una entrada.
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInventoryItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.manager.Add(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete DELETE /api/inventory/:id.
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.manager.Remove(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Report GET /api/inventory/report.pdf.
func (h *InventoryHandler) Report(c *fiber.Ctx) error {
	pdf, err := h.report.Generate(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="inventory.pdf"`)
	return c.Send(pdf)
}

// Units GET /api/units?q= sugerencias de unidad.
func (h *InventoryHandler) Units(c *fiber.Ctx) error {
	return c.JSON(dto.UnitSuggestionsResponse{Units: inventory.UnitSuggestions(c.Query("q"))})
}
