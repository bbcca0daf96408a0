package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/jhoicas/cafe-inventory/internal/application/dto"
	"github.com/jhoicas/cafe-inventory/internal/application/notify"
	"github.com/jhoicas/cafe-inventory/internal/domain"
	"github.com/jhoicas/cafe-inventory/internal/domain/entity"
	"github.com/jhoicas/cafe-inventory/internal/domain/repository"
	"github.com/jhoicas/cafe-inventory/pkg/logger"
	"github.com/jhoicas/cafe-inventory/pkg/validator"
)

// Mensajes visibles para el usuario.
const (
	MsgItemAdded   = "Item added successfully"
	MsgItemRemoved = "Item removed"
	MsgSaveFailed  = "Failed to save inventory items. Changes are kept until the app is closed."
)

// Config parámetros de carga. LoadRetryDelay debe ser > 0.
type Config struct {
	LoadRetries    int
	LoadRetryDelay time.Duration
}

// Manager refleja en memoria la colección del almacenamiento local y la mantiene
// sincronizada en cada alta o baja. Las mutaciones se serializan con un mutex.
type Manager struct {
	mu       sync.RWMutex
	store    repository.InventoryStore
	notifier Notifier
	log      *logger.Logger
	cfg      Config
	items    []entity.InventoryItem // más reciente primero
	now      func() time.Time
}

// Option ajusta el Manager en construcción.
type Option func(*Manager)

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager construye el gestor. La colección queda vacía hasta Initialize.
func NewManager(store repository.InventoryStore, notifier Notifier, log *logger.Logger, cfg Config, opts ...Option) *Manager {
	if cfg.LoadRetryDelay <= 0 {
		cfg.LoadRetryDelay = time.Second
	}
	if cfg.LoadRetries < 0 {
		cfg.LoadRetries = 0
	}
	m := &Manager{
		store:    store,
		notifier: notifier,
		log:      log.Component("inventory"),
		cfg:      cfg,
		items:    []entity.InventoryItem{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Initialize carga la colección. Los fallos de lectura se reintentan un número acotado de
// veces con espera fija, sin importar la conectividad; los datos corruptos no se reintentan.
// Si la carga no prospera la colección queda vacía y solo se registra el error.
// Devuelve error únicamente si ctx se cancela.
func (m *Manager) Initialize(ctx context.Context) error {
	var loaded []entity.InventoryItem
	attempt := 0
	backoff := retry.WithMaxRetries(uint64(m.cfg.LoadRetries), retry.NewConstant(m.cfg.LoadRetryDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		items, err := m.store.Load(ctx)
		if err != nil {
			if errors.Is(err, domain.ErrStorageUnavailable) {
				m.log.Warn().Err(err).Int("attempt", attempt).Msg("carga de inventario fallida, reintentando")
				return retry.RetryableError(err)
			}
			return err
		}
		loaded = items
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		m.log.Error().Err(err).Int("attempts", attempt).Msg("inventario no disponible; se inicia con colección vacía")
		loaded = []entity.InventoryItem{}
	}

	loaded = normalize(loaded, m.log)

	m.mu.Lock()
	m.items = loaded
	m.mu.Unlock()

	m.log.Info().Int("items", len(loaded)).Msg("inventario cargado")
	return nil
}

// Add asigna ID y CreatedAt, antepone la entrada y guarda la colección.
// Un fallo de guardado no se propaga: el estado en memoria se conserva y se emite un aviso.
func (m *Manager) Add(ctx context.Context, in dto.CreateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Unit = strings.TrimSpace(in.Unit)
	in.Date = strings.TrimSpace(in.Date)

	m.mu.Lock()
	if in.Date == "" {
		in.Date = m.now().Format(entity.DateLayout)
	}
	if err := validator.Validate(in); err != nil {
		m.mu.Unlock()
		return nil, toValidationError(err)
	}

	createdAt := m.now().UnixMilli()
	if len(m.items) > 0 && createdAt <= m.items[0].CreatedAt {
		// Mantiene el orden estrictamente descendente aunque dos altas caigan en el mismo milisegundo.
		createdAt = m.items[0].CreatedAt + 1
	}
	item := entity.InventoryItem{
		ID:        m.newID(createdAt),
		Name:      in.Name,
		Quantity:  in.Quantity,
		Unit:      in.Unit,
		Date:      in.Date,
		CreatedAt: createdAt,
	}
	next := make([]entity.InventoryItem, 0, len(m.items)+1)
	next = append(next, item)
	next = append(next, m.items...)
	m.items = next
	saveErr := m.store.Save(ctx, m.snapshot())
	m.mu.Unlock()

	m.afterSave(saveErr, MsgItemAdded)
	m.log.Debug().Str("id", item.ID).Str("name", item.Name).Msg("entrada agregada")
	return toItemResponse(item), nil
}

// Remove elimina la entrada con ese ID conservando el orden del resto.
func (m *Manager) Remove(ctx context.Context, id string) error {
	m.mu.Lock()
	idx := -1
	for i, it := range m.items {
		if it.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.mu.Unlock()
		return domain.ErrNotFound
	}
	next := make([]entity.InventoryItem, 0, len(m.items)-1)
	next = append(next, m.items[:idx]...)
	next = append(next, m.items[idx+1:]...)
	m.items = next
	saveErr := m.store.Save(ctx, m.snapshot())
	m.mu.Unlock()

	m.afterSave(saveErr, MsgItemRemoved)
	m.log.Debug().Str("id", id).Msg("entrada eliminada")
	return nil
}

// Items devuelve una copia de la colección, más reciente primero.
func (m *Manager) Items() []entity.InventoryItem {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot()
}

// List devuelve la colección como DTO, más reciente primero.
func (m *Manager) List() *dto.InventoryListResponse {
	snap := m.Items()
	items := make([]dto.InventoryItemResponse, 0, len(snap))
	for _, it := range snap {
		items = append(items, *toItemResponse(it))
	}
	return &dto.InventoryListResponse{Items: items, Total: len(items)}
}

// Len cantidad de entradas en memoria.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Today fecha por defecto del formulario.
func (m *Manager) Today() string {
	return m.now().Format(entity.DateLayout)
}

func (m *Manager) afterSave(err error, okMsg string) {
	if err != nil {
		m.log.Error().Err(err).Msg("no se pudo guardar el inventario")
		m.notifier.Notify(notify.LevelError, MsgSaveFailed)
		return
	}
	m.notifier.Notify(notify.LevelSuccess, okMsg)
}

// snapshot copia la colección; requiere m.mu tomado.
func (m *Manager) snapshot() []entity.InventoryItem {
	out := make([]entity.InventoryItem, len(m.items))
	copy(out, m.items)
	return out
}

// newID genera item_<ms>_<7 hex> único dentro de la colección; requiere m.mu tomado.
func (m *Manager) newID(createdAt int64) string {
	for {
		suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:7]
		id := fmt.Sprintf("item_%d_%s", createdAt, suffix)
		if !m.hasID(id) {
			return id
		}
	}
}

func (m *Manager) hasID(id string) bool {
	for _, it := range m.items {
		if it.ID == id {
			return true
		}
	}
	return false
}

// normalize ordena por CreatedAt desc y descarta IDs repetidos (gana la primera aparición).
func normalize(items []entity.InventoryItem, log *logger.Logger) []entity.InventoryItem {
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt > items[j].CreatedAt })
	seen := make(map[string]struct{}, len(items))
	out := make([]entity.InventoryItem, 0, len(items))
	for _, it := range items {
		if _, dup := seen[it.ID]; dup {
			log.Warn().Str("id", it.ID).Msg("entrada duplicada descartada")
			continue
		}
		seen[it.ID] = struct{}{}
		out = append(out, it)
	}
	return out
}

var fieldMessages = map[string]string{
	"name":     "Item name is required",
	"quantity": "Quantity must be at least 0",
	"unit":     "Unit is required",
	"date":     "Date is required",
}

func toValidationError(err error) error {
	fes := validator.FieldErrors(err)
	if len(fes) == 0 {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	fields := make(map[string]string, len(fes))
	for _, fe := range fes {
		msg, ok := fieldMessages[fe.Field]
		if !ok || (fe.Tag != "required" && fe.Tag != "gte") {
			msg = validator.Message(fe)
		}
		fields[fe.Field] = msg
	}
	return &domain.ValidationError{Fields: fields}
}

func toItemResponse(it entity.InventoryItem) *dto.InventoryItemResponse {
	return &dto.InventoryItemResponse{
		ID:        it.ID,
		Name:      it.Name,
		Quantity:  it.Quantity,
		Unit:      it.Unit,
		Date:      it.Date,
		CreatedAt: it.CreatedAt,
	}
}
