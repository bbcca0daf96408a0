package http

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cafe-inventory/internal/application/access"
	"github.com/jhoicas/cafe-inventory/internal/application/connectivity"
	"github.com/jhoicas/cafe-inventory/internal/application/dto"
	"github.com/jhoicas/cafe-inventory/internal/application/inventory"
	"github.com/jhoicas/cafe-inventory/internal/application/notify"
	"github.com/jhoicas/cafe-inventory/internal/domain"
	"github.com/jhoicas/cafe-inventory/internal/domain/entity"
	"github.com/jhoicas/cafe-inventory/pkg/logger"
	"github.com/jhoicas/cafe-inventory/web"
)

// noticeCookie guarda el último aviso mostrado a este navegador.
const noticeCookie = "cafe_notice_since"

const (
	pageEnterPassword = "enter_password.html"
	pageInventory     = "inventory.html"
)

// PageHandler renderiza las páginas HTML (plantillas embebidas).
type PageHandler struct {
	manager *inventory.Manager
	gate    *access.Gate
	monitor *connectivity.Monitor
	hub     *notify.Hub
	log     *logger.Logger
	tmpl    map[string]*template.Template
}

type pageData struct {
	Online        bool
	Notifications []dto.NotificationResponse

	// enter-password
	CanAttemptLogin bool
	Error           string

	// inventory
	Items  []dto.InventoryItemResponse
	Units  []string
	Form   itemForm
	Errors map[string]string
}

type itemForm struct {
	Name     string
	Quantity string
	Unit     string
	Date     string
}

// NewPageHandler parsea las plantillas; cada página se combina con layout.html.
func NewPageHandler(deps RouterDeps) (*PageHandler, error) {
	funcs := template.FuncMap{"formatDate": formatDate}
	tmpl := make(map[string]*template.Template, 2)
	for _, name := range []string{pageEnterPassword, pageInventory} {
		t, err := template.New("layout.html").Funcs(funcs).
			ParseFS(web.Templates, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("plantilla %s: %w", name, err)
		}
		tmpl[name] = t
	}
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	return &PageHandler{
		manager: deps.Inventory,
		gate:    deps.Gate,
		monitor: deps.Monitor,
		hub:     deps.Notifications,
		log:     log.Component("pages"),
		tmpl:    tmpl,
	}, nil
}

// Root redirige según la marca de acceso.
func (h *PageHandler) Root(c *fiber.Ctx) error {
	if h.gate.HasAccess(c.UserContext()) {
		return c.Redirect("/inventory", fiber.StatusSeeOther)
	}
	return c.Redirect("/enter-password", fiber.StatusSeeOther)
}

// EnterPassword muestra el formulario, o el aviso de primera conexión si no hay red.
func (h *PageHandler) EnterPassword(c *fiber.Ctx) error {
	ctx := c.UserContext()
	if h.gate.HasAccess(ctx) {
		return c.Redirect("/inventory", fiber.StatusSeeOther)
	}
	return h.render(c, fiber.StatusOK, pageEnterPassword, pageData{
		CanAttemptLogin: h.gate.CanAttemptLogin(ctx, h.monitor.IsOnline()),
	})
}

// SubmitPassword verifica la contraseña enviada por el formulario.
func (h *PageHandler) SubmitPassword(c *fiber.Ctx) error {
	ctx := c.UserContext()
	if !h.gate.CanAttemptLogin(ctx, h.monitor.IsOnline()) {
		return h.render(c, fiber.StatusForbidden, pageEnterPassword, pageData{CanAttemptLogin: false})
	}
	if h.gate.CheckPassword(ctx, c.FormValue("password")) {
		return c.Redirect("/inventory", fiber.StatusSeeOther)
	}
	return h.render(c, fiber.StatusUnauthorized, pageEnterPassword, pageData{
		CanAttemptLogin: true,
		Error:           MsgIncorrectPassword,
	})
}

// Logout retira la marca de acceso y vuelve al formulario.
func (h *PageHandler) Logout(c *fiber.Ctx) error {
	h.gate.Logout(c.UserContext())
	return c.Redirect("/enter-password", fiber.StatusSeeOther)
}

// Inventory muestra el formulario (cantidad 1 y fecha de hoy por defecto) y la lista.
func (h *PageHandler) Inventory(c *fiber.Ctx) error {
	return h.renderInventory(c, fiber.StatusOK, itemForm{Quantity: "1", Date: h.manager.Today()}, nil)
}

// AddItem procesa el formulario de alta.
func (h *PageHandler) AddItem(c *fiber.Ctx) error {
	form := itemForm{
		Name:     c.FormValue("name"),
		Quantity: c.FormValue("quantity"),
		Unit:     c.FormValue("unit"),
		Date:     c.FormValue("date"),
	}
	qty, err := strconv.Atoi(form.Quantity)
	if err != nil {
		return h.renderInventory(c, fiber.StatusBadRequest, form, map[string]string{"quantity": "Quantity must be a number"})
	}
	_, err = h.manager.Add(c.UserContext(), dto.CreateInventoryItemRequest{
		Name:     form.Name,
		Quantity: qty,
		Unit:     form.Unit,
		Date:     form.Date,
	})
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return h.renderInventory(c, fiber.StatusBadRequest, form, ve.Fields)
		}
		return err
	}
	return c.Redirect("/inventory", fiber.StatusSeeOther)
}

// DeleteItem elimina una entrada; un ID desconocido solo se registra.
func (h *PageHandler) DeleteItem(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.manager.Remove(c.UserContext(), id); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		h.log.Warn().Str("id", id).Msg("baja de entrada inexistente")
	}
	return c.Redirect("/inventory", fiber.StatusSeeOther)
}

func (h *PageHandler) renderInventory(c *fiber.Ctx, status int, form itemForm, fieldErrors map[string]string) error {
	if fieldErrors == nil {
		fieldErrors = map[string]string{}
	}
	return h.render(c, status, pageInventory, pageData{
		Items:  h.manager.List().Items,
		Units:  inventory.CommonUnits,
		Form:   form,
		Errors: fieldErrors,
	})
}

// render completa el estado común (conectividad y avisos nuevos) y escribe la página.
func (h *PageHandler) render(c *fiber.Ctx, status int, page string, data pageData) error {
	data.Online = h.monitor.IsOnline()

	since, _ := strconv.ParseUint(c.Cookies(noticeCookie), 10, 64)
	data.Notifications = toNotificationResponses(h.hub.Since(since))
	c.Cookie(&fiber.Cookie{
		Name:     noticeCookie,
		Value:    strconv.FormatUint(h.hub.Last(), 10),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	var buf bytes.Buffer
	if err := h.tmpl[page].ExecuteTemplate(&buf, "layout.html", data); err != nil {
		h.log.Error().Err(err).Str("page", page).Msg("renderizar página")
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}

// formatDate muestra YYYY-MM-DD como "Jan 2, 2006"; si no parsea, devuelve el texto tal cual.
func formatDate(s string) string {
	t, err := time.Parse(entity.DateLayout, s)
	if err != nil {
		return s
	}
	return t.Format("Jan 2, 2006")
}
