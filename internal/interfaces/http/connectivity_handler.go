package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cafe-inventory/internal/application/connectivity"
	"github.com/jhoicas/cafe-inventory/internal/application/dto"
)

// ConnectivityHandler expone y recibe el estado de red.
type ConnectivityHandler struct {
	monitor *connectivity.Monitor
}

// NewConnectivityHandler construye el handler.
func NewConnectivityHandler(monitor *connectivity.Monitor) *ConnectivityHandler {
	return &ConnectivityHandler{monitor: monitor}
}

// Get GET /api/connectivity.
func (h *ConnectivityHandler) Get(c *fiber.Ctx) error {
	return c.JSON(dto.ConnectivityResponse{Online: h.monitor.IsOnline()})
}

// Put PUT /api/connectivity recibe navigator.onLine del navegador.
func (h *ConnectivityHandler) Put(c *fiber.Ctx) error {
	var in dto.ConnectivityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Online == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "online es requerido"})
	}
	h.monitor.Set(*in.Online)
	return c.JSON(dto.ConnectivityResponse{Online: h.monitor.IsOnline()})
}
