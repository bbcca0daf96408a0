package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"

	"github.com/jhoicas/cafe-inventory/internal/application/access"
	"github.com/jhoicas/cafe-inventory/internal/application/connectivity"
	"github.com/jhoicas/cafe-inventory/internal/application/inventory"
	"github.com/jhoicas/cafe-inventory/internal/application/notify"
	"github.com/jhoicas/cafe-inventory/pkg/logger"
	"github.com/jhoicas/cafe-inventory/web"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Inventory     *inventory.Manager
	Report        *inventory.ReportUseCase
	Gate          *access.Gate
	Monitor       *connectivity.Monitor
	Notifications *notify.Hub
	Log           *logger.Logger
}

// Router registra páginas, API JSON y archivos de la PWA.
func Router(app *fiber.App, deps RouterDeps) error {
	pages, err := NewPageHandler(deps)
	if err != nil {
		return err
	}
	staticFS := nethttp.FS(web.Static())

	// PWA (público)
	app.Get("/sw.js", ServiceWorkerHeaders(), func(c *fiber.Ctx) error {
		return filesystem.SendFile(c, staticFS, "sw.js")
	})
	app.Get("/manifest.json", func(c *fiber.Ctx) error {
		return filesystem.SendFile(c, staticFS, "manifest.json")
	})
	app.Get("/fallback.html", func(c *fiber.Ctx) error {
		return filesystem.SendFile(c, staticFS, "fallback.html")
	})
	app.Use("/static", filesystem.New(filesystem.Config{Root: staticFS}))

	// Páginas
	app.Get("/", pages.Root)
	app.Get("/enter-password", pages.EnterPassword)
	app.Post("/enter-password", pages.SubmitPassword)
	app.Post("/logout", pages.Logout)

	protectedPages := app.Group("/inventory", RequireAccess(deps.Gate, "/enter-password"))
	protectedPages.Get("/", pages.Inventory)
	protectedPages.Post("/items", pages.AddItem)
	protectedPages.Post("/items/:id/delete", pages.DeleteItem)

	api := app.Group("/api")

	// Acceso (público)
	accessHandler := NewAccessHandler(deps.Gate, deps.Monitor)
	api.Get("/access", accessHandler.Status)
	api.Post("/access/login", accessHandler.Login)
	api.Post("/access/logout", accessHandler.Logout)

	// Conectividad (público: el navegador reporta navigator.onLine antes de entrar)
	connHandler := NewConnectivityHandler(deps.Monitor)
	api.Get("/connectivity", connHandler.Get)
	api.Put("/connectivity", connHandler.Put)

	// Rutas protegidas (requieren la marca de acceso del dispositivo); una ruta
	// desconocida bajo /api responde 404.
	guard := RequireAccess(deps.Gate, "")

	inventoryHandler := NewInventoryHandler(deps.Inventory, deps.Report)
	invGroup := api.Group("/inventory", guard)
	invGroup.Get("/", inventoryHandler.List)
	invGroup.Post("/", inventoryHandler.Create)
	invGroup.Get("/report.pdf", inventoryHandler.Report)
	invGroup.Delete("/:id", inventoryHandler.Delete)
	api.Get("/units", guard, inventoryHandler.Units)

	notificationHandler := NewNotificationHandler(deps.Notifications)
	api.Get("/notifications", guard, notificationHandler.List)

	return nil
}
