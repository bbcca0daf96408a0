package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cafe-inventory/internal/application/access"
	"github.com/jhoicas/cafe-inventory/internal/application/dto"
)

// RequireAccess deja pasar solo si el dispositivo tiene la marca de acceso.
// Con redirectTo vacío responde 401 JSON (API); si no, redirige (páginas).
func RequireAccess(gate *access.Gate, redirectTo string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if gate.HasAccess(c.UserContext()) {
			return c.Next()
		}
		if redirectTo != "" {
			return c.Redirect(redirectTo, fiber.StatusSeeOther)
		}
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "acceso requerido"})
	}
}

// ServiceWorkerHeaders permite que /sw.js controle todo el origen y evita que quede cacheado.
func ServiceWorkerHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Service-Worker-Allowed", "/")
		c.Set(fiber.HeaderCacheControl, "no-cache")
		return c.Next()
	}
}
