package inventory_test

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cafe-inventory/internal/application/dto"
	"github.com/jhoicas/cafe-inventory/internal/application/inventory"
	"github.com/jhoicas/cafe-inventory/internal/application/notify"
	"github.com/jhoicas/cafe-inventory/internal/domain"
	"github.com/jhoicas/cafe-inventory/internal/domain/entity"
	"github.com/jhoicas/cafe-inventory/internal/infrastructure/localstore"
	"github.com/jhoicas/cafe-inventory/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const itemsKey = "cafe-inventory-items"

var idPattern = regexp.MustCompile(`^item_\d+_[0-9a-f]{7}$`)

type fixture struct {
	kv      *localstore.MemoryKV
	store   *localstore.InventoryStore
	hub     *notify.Hub
	manager *inventory.Manager
}

func newFixture(t *testing.T, opts ...inventory.Option) *fixture {
	t.Helper()
	kv := localstore.NewMemoryKV()
	store := localstore.NewInventoryStore(kv, itemsKey, logger.Nop())
	hub := notify.NewHub(logger.Nop(), 0)
	cfg := inventory.Config{LoadRetries: 3, LoadRetryDelay: time.Millisecond}
	m := inventory.NewManager(store, hub, logger.Nop(), cfg, opts...)
	require.NoError(t, m.Initialize(context.Background()))
	return &fixture{kv: kv, store: store, hub: hub, manager: m}
}

// reload simula recargar la aplicación sobre el mismo almacenamiento.
func (f *fixture) reload(t *testing.T) *inventory.Manager {
	t.Helper()
	cfg := inventory.Config{LoadRetries: 0, LoadRetryDelay: time.Millisecond}
	m := inventory.NewManager(f.store, f.hub, logger.Nop(), cfg)
	require.NoError(t, m.Initialize(context.Background()))
	return m
}

func oatMilk() dto.CreateInventoryItemRequest {
	return dto.CreateInventoryItemRequest{Name: "Oat Milk", Quantity: 2, Unit: "Carton", Date: "2024-01-01"}
}

// flakyStore falla las primeras n cargas con el error indicado.
type flakyStore struct {
	mu    sync.Mutex
	fails int
	err   error
	calls int
	items []entity.InventoryItem
}

func (s *flakyStore) Load(context.Context) ([]entity.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.calls <= s.fails {
		return []entity.InventoryItem{}, s.err
	}
	return s.items, nil
}

func (s *flakyStore) Save(context.Context, []entity.InventoryItem) error { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Add
// ──────────────────────────────────────────────────────────────────────────────

func TestAdd_OatMilk(t *testing.T) {
	f := newFixture(t)

	out, err := f.manager.Add(context.Background(), oatMilk())
	require.NoError(t, err)

	list := f.manager.List()
	require.Equal(t, 1, list.Total)
	got := list.Items[0]
	assert.Equal(t, "Oat Milk", got.Name)
	assert.Equal(t, 2, got.Quantity)
	assert.Equal(t, "Carton", got.Unit)
	assert.Equal(t, "2024-01-01", got.Date)
	assert.Regexp(t, idPattern, got.ID)
	assert.NotZero(t, got.CreatedAt)
	assert.Equal(t, *out, got)
}

func TestAdd_PersisteTrasRecarga(t *testing.T) {
	addTime := time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)
	f := newFixture(t, inventory.WithClock(func() time.Time { return addTime }))

	before := f.reload(t).Len()
	out, err := f.manager.Add(context.Background(), oatMilk())
	require.NoError(t, err)

	reloaded := f.reload(t).List()
	require.Equal(t, before+1, reloaded.Total, "exactamente una entrada nueva")
	assert.Equal(t, out.ID, reloaded.Items[0].ID)
	assert.Equal(t, addTime.UnixMilli(), reloaded.Items[0].CreatedAt, "createdAt es el instante del alta")
}

func TestAdd_IDsUnicosYOrdenDescendente(t *testing.T) {
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	f := newFixture(t, inventory.WithClock(func() time.Time { return fixed }))

	ids := map[string]bool{}
	for i := 0; i < 25; i++ {
		out, err := f.manager.Add(context.Background(), oatMilk())
		require.NoError(t, err)
		assert.False(t, ids[out.ID], "ID repetido %s", out.ID)
		ids[out.ID] = true
	}

	items := f.manager.List().Items
	for i := 1; i < len(items); i++ {
		assert.Greater(t, items[i-1].CreatedAt, items[i].CreatedAt,
			"el orden debe ser estrictamente descendente por createdAt aun con el mismo reloj")
	}
}

func TestAdd_FechaPorDefectoHoy(t *testing.T) {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.Local)
	f := newFixture(t, inventory.WithClock(func() time.Time { return now }))

	in := oatMilk()
	in.Date = ""
	out, err := f.manager.Add(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14", out.Date)
	assert.Equal(t, "2025-03-14", f.manager.Today())
}

func TestAdd_ValidacionRechazada(t *testing.T) {
	f := newFixture(t)

	_, err := f.manager.Add(context.Background(), dto.CreateInventoryItemRequest{
		Name: "   ", Quantity: -1, Unit: "", Date: "2024-01-01",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "Item name is required", ve.Fields["name"])
	assert.Equal(t, "Quantity must be at least 0", ve.Fields["quantity"])
	assert.Equal(t, "Unit is required", ve.Fields["unit"])
	assert.Equal(t, 0, f.manager.Len(), "una entrada inválida no modifica el estado")
}

func TestAdd_EscrituraFallida_NoEscapaError(t *testing.T) {
	f := newFixture(t)
	f.kv.FailWrites(errors.New("QuotaExceededError"))
	last := f.hub.Last()

	out, err := f.manager.Add(context.Background(), oatMilk())
	require.NoError(t, err, "el fallo de guardado no se propaga al llamador")
	require.NotNil(t, out)

	assert.Equal(t, 1, f.manager.Len(), "la memoria refleja la entrada nueva")

	notes := f.hub.Since(last)
	require.Len(t, notes, 1)
	assert.Equal(t, notify.LevelError, notes[0].Level)
	assert.Equal(t, inventory.MsgSaveFailed, notes[0].Message)
}

func TestAdd_AvisoDeExito(t *testing.T) {
	f := newFixture(t)
	_, err := f.manager.Add(context.Background(), oatMilk())
	require.NoError(t, err)

	notes := f.hub.Since(0)
	require.NotEmpty(t, notes)
	assert.Equal(t, notify.LevelSuccess, notes[len(notes)-1].Level)
	assert.Equal(t, inventory.MsgItemAdded, notes[len(notes)-1].Message)
}

// ──────────────────────────────────────────────────────────────────────────────
// Remove
// ──────────────────────────────────────────────────────────────────────────────

func TestRemove_ConservaOrdenDelResto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	var ids []string
	for _, name := range []string{"Beans", "Cups", "Lids", "Syrup"} {
		in := oatMilk()
		in.Name = name
		out, err := f.manager.Add(ctx, in)
		require.NoError(t, err)
		ids = append(ids, out.ID)
	}
	// Orden en pantalla: Syrup, Lids, Cups, Beans.
	require.NoError(t, f.manager.Remove(ctx, ids[2]))

	var names []string
	for _, it := range f.reload(t).List().Items {
		assert.NotEqual(t, ids[2], it.ID)
		names = append(names, it.Name)
	}
	assert.Equal(t, []string{"Syrup", "Cups", "Beans"}, names)
}

func TestRemove_IDInexistente(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.manager.Remove(context.Background(), "item_0_missing"), domain.ErrNotFound)
}

func TestRemove_EscrituraFallida(t *testing.T) {
	f := newFixture(t)
	out, err := f.manager.Add(context.Background(), oatMilk())
	require.NoError(t, err)

	f.kv.FailWrites(errors.New("storage disabled"))
	require.NoError(t, f.manager.Remove(context.Background(), out.ID))
	assert.Equal(t, 0, f.manager.Len())

	notes := f.hub.Since(0)
	assert.Equal(t, notify.LevelError, notes[len(notes)-1].Level)
}

// ──────────────────────────────────────────────────────────────────────────────
// Initialize
// ──────────────────────────────────────────────────────────────────────────────

func TestInitialize_ReintentaFallosDeLectura(t *testing.T) {
	store := &flakyStore{
		fails: 2,
		err:   domain.ErrStorageUnavailable,
		items: []entity.InventoryItem{{ID: "item_1_a", Name: "Beans", Unit: "Bag", Date: "2024-01-01", CreatedAt: 1}},
	}
	m := inventory.NewManager(store, notify.NewHub(logger.Nop(), 0), logger.Nop(),
		inventory.Config{LoadRetries: 3, LoadRetryDelay: time.Millisecond})

	require.NoError(t, m.Initialize(context.Background()))
	assert.Equal(t, 3, store.calls)
	assert.Equal(t, 1, m.Len())
}

func TestInitialize_ReintentosAcotados(t *testing.T) {
	store := &flakyStore{fails: 100, err: domain.ErrStorageUnavailable}
	m := inventory.NewManager(store, notify.NewHub(logger.Nop(), 0), logger.Nop(),
		inventory.Config{LoadRetries: 2, LoadRetryDelay: time.Millisecond})

	require.NoError(t, m.Initialize(context.Background()), "la carga fallida no es fatal")
	assert.Equal(t, 3, store.calls, "un intento inicial más dos reintentos")
	assert.Equal(t, 0, m.Len())
}

func TestInitialize_DatosCorruptosSinReintento(t *testing.T) {
	store := &flakyStore{fails: 100, err: domain.ErrCorruptData}
	m := inventory.NewManager(store, notify.NewHub(logger.Nop(), 0), logger.Nop(),
		inventory.Config{LoadRetries: 5, LoadRetryDelay: time.Millisecond})

	require.NoError(t, m.Initialize(context.Background()))
	assert.Equal(t, 1, store.calls)
	assert.Equal(t, 0, m.Len())
}

func TestInitialize_ContextoCancelado(t *testing.T) {
	store := &flakyStore{fails: 100, err: domain.ErrStorageUnavailable}
	m := inventory.NewManager(store, notify.NewHub(logger.Nop(), 0), logger.Nop(),
		inventory.Config{LoadRetries: 10, LoadRetryDelay: time.Hour})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, m.Initialize(ctx), context.DeadlineExceeded)
}

func TestInitialize_OrdenaYDescartaDuplicados(t *testing.T) {
	store := &flakyStore{items: []entity.InventoryItem{
		{ID: "item_1_a", Name: "old", CreatedAt: 1},
		{ID: "item_3_c", Name: "new", CreatedAt: 3},
		{ID: "item_1_a", Name: "dup", CreatedAt: 1},
		{ID: "item_2_b", Name: "mid", CreatedAt: 2},
	}}
	m := inventory.NewManager(store, notify.NewHub(logger.Nop(), 0), logger.Nop(), inventory.Config{})
	require.NoError(t, m.Initialize(context.Background()))

	var names []string
	for _, it := range m.List().Items {
		names = append(names, it.Name)
	}
	assert.Equal(t, []string{"new", "mid", "old"}, names)
}
