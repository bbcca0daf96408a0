package localstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cafe-inventory/internal/domain"
	"github.com/jhoicas/cafe-inventory/internal/domain/entity"
	"github.com/jhoicas/cafe-inventory/internal/infrastructure/localstore"
	"github.com/jhoicas/cafe-inventory/pkg/logger"
)

const itemsKey = "cafe-inventory-items"

func TestInventoryStore_GuardarYCargar(t *testing.T) {
	ctx := context.Background()
	kv := localstore.NewMemoryKV()
	store := localstore.NewInventoryStore(kv, itemsKey, logger.Nop())

	in := []entity.InventoryItem{
		{ID: "item_2_b", Name: "Oat Milk", Quantity: 2, Unit: "Carton", Date: "2024-01-01", CreatedAt: 2},
		{ID: "item_1_a", Name: "Beans", Quantity: 0, Unit: "Bag", Date: "2024-01-01", CreatedAt: 1},
	}
	require.NoError(t, store.Save(ctx, in))

	out, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out, "el orden persistido se conserva")
}

func TestInventoryStore_FormatoPersistido(t *testing.T) {
	ctx := context.Background()
	kv := localstore.NewMemoryKV()
	store := localstore.NewInventoryStore(kv, itemsKey, logger.Nop())

	require.NoError(t, store.Save(ctx, []entity.InventoryItem{
		{ID: "item_1_abc", Name: "Oat Milk", Quantity: 2, Unit: "Carton", Date: "2024-01-01", CreatedAt: 1704067200000},
	}))

	raw, ok, err := kv.Get(ctx, itemsKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t,
		`[{"id":"item_1_abc","name":"Oat Milk","quantity":2,"unit":"Carton","date":"2024-01-01","createdAt":1704067200000}]`,
		raw)
}

func TestInventoryStore_ClaveAusente(t *testing.T) {
	store := localstore.NewInventoryStore(localstore.NewMemoryKV(), itemsKey, logger.Nop())
	out, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestInventoryStore_DatosCorruptos_FallaSuave(t *testing.T) {
	ctx := context.Background()
	kv := localstore.NewMemoryKV()
	require.NoError(t, kv.Set(ctx, itemsKey, "not-json"))
	store := localstore.NewInventoryStore(kv, itemsKey, logger.Nop())

	out, err := store.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrCorruptData)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestInventoryStore_LecturaFallida_FallaSuave(t *testing.T) {
	kv := localstore.NewMemoryKV()
	kv.FailReads(errors.New("disk unplugged"))
	store := localstore.NewInventoryStore(kv, itemsKey, logger.Nop())

	out, err := store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.Empty(t, out)
}

func TestInventoryStore_EscrituraFallida(t *testing.T) {
	kv := localstore.NewMemoryKV()
	kv.FailWrites(errors.New("QuotaExceededError"))
	store := localstore.NewInventoryStore(kv, itemsKey, logger.Nop())

	err := store.Save(context.Background(), []entity.InventoryItem{{ID: "x", Name: "n", Unit: "u", Date: "2024-01-01"}})
	assert.ErrorIs(t, err, domain.ErrStorageWrite)
}
