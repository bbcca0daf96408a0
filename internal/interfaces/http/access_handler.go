package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cafe-inventory/internal/application/access"
	"github.com/jhoicas/cafe-inventory/internal/application/connectivity"
	"github.com/jhoicas/cafe-inventory/internal/application/dto"
)

// Mensajes del formulario de acceso.
const (
	MsgIncorrectPassword = "Incorrect password. Please try again."
	MsgMustConnectOnce   = "You need to be online to log in for the first time."
)

// AccessHandler expone la puerta de acceso por contraseña compartida.
type AccessHandler struct {
	gate    *access.Gate
	monitor *connectivity.Monitor
}

// NewAccessHandler construye el handler.
func NewAccessHandler(gate *access.Gate, monitor *connectivity.Monitor) *AccessHandler {
	return &AccessHandler{gate: gate, monitor: monitor}
}

// Status GET /api/access: estado de acceso del dispositivo.
func (h *AccessHandler) Status(c *fiber.Ctx) error {
	return c.JSON(h.status(c))
}

// Login POST /api/access/login verifica la contraseña compartida.
func (h *AccessHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ctx := c.UserContext()
	if !h.gate.CanAttemptLogin(ctx, h.monitor.IsOnline()) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "OFFLINE_FIRST_LOGIN", Message: MsgMustConnectOnce})
	}
	if !h.gate.CheckPassword(ctx, in.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_PASSWORD", Message: MsgIncorrectPassword})
	}
	return c.JSON(h.status(c))
}

// Logout POST /api/access/logout retira el acceso de este dispositivo.
func (h *AccessHandler) Logout(c *fiber.Ctx) error {
	h.gate.Logout(c.UserContext())
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AccessHandler) status(c *fiber.Ctx) dto.AccessStatusResponse {
	ctx := c.UserContext()
	return dto.AccessStatusResponse{
		HasAccess:       h.gate.HasAccess(ctx),
		CanAttemptLogin: h.gate.CanAttemptLogin(ctx, h.monitor.IsOnline()),
	}
}
