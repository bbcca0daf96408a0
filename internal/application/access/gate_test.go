package access_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cafe-inventory/internal/application/access"
	"github.com/jhoicas/cafe-inventory/internal/infrastructure/localstore"
	"github.com/jhoicas/cafe-inventory/pkg/logger"
)

const flagKey = "coffeeAccess"

func newGate() (*access.Gate, *localstore.MemoryKV) {
	kv := localstore.NewMemoryKV()
	g := access.NewGate(kv, access.Config{Password: "hillsongcoffee", FlagKey: flagKey}, logger.Nop())
	return g, kv
}

func TestCheckPassword_Correcta_PersisteBandera(t *testing.T) {
	g, kv := newGate()
	ctx := context.Background()

	assert.True(t, g.CheckPassword(ctx, "hillsongcoffee"))
	assert.True(t, g.HasAccess(ctx))

	v, ok, err := kv.Get(ctx, flagKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", v, "la bandera se guarda como el literal \"true\"")
}

func TestCheckPassword_Incorrecta_NoTocaBandera(t *testing.T) {
	ctx := context.Background()
	for _, candidate := range []string{"", "hillsong", "HILLSONGCOFFEE", "hillsongcoffee ", "otra"} {
		g, kv := newGate()
		assert.False(t, g.CheckPassword(ctx, candidate), "candidato %q", candidate)
		_, ok, err := kv.Get(ctx, flagKey)
		require.NoError(t, err)
		assert.False(t, ok)
	}

	// Con acceso ya concedido, un intento fallido no lo revoca.
	g, _ := newGate()
	require.True(t, g.CheckPassword(ctx, "hillsongcoffee"))
	assert.False(t, g.CheckPassword(ctx, "mala"))
	assert.True(t, g.HasAccess(ctx))
}

func TestLogout_BorraBandera(t *testing.T) {
	g, _ := newGate()
	ctx := context.Background()
	require.True(t, g.CheckPassword(ctx, "hillsongcoffee"))

	g.Logout(ctx)
	assert.False(t, g.HasAccess(ctx))
}

func TestHasAccess_ValorDistintoOIlegible(t *testing.T) {
	g, kv := newGate()
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, flagKey, "yes"))
	assert.False(t, g.HasAccess(ctx), "solo el literal true concede acceso")

	require.NoError(t, kv.Set(ctx, flagKey, "true"))
	kv.FailReads(errors.New("SecurityError"))
	assert.False(t, g.HasAccess(ctx), "una lectura fallida equivale a sin acceso")
}

func TestCheckPassword_FalloAlGuardar_SigueSiendoCorrecta(t *testing.T) {
	g, kv := newGate()
	kv.FailWrites(errors.New("private mode"))
	assert.True(t, g.CheckPassword(context.Background(), "hillsongcoffee"))
}

func TestCanAttemptLogin(t *testing.T) {
	g, _ := newGate()
	ctx := context.Background()

	assert.True(t, g.CanAttemptLogin(ctx, true))
	assert.False(t, g.CanAttemptLogin(ctx, false), "primer ingreso sin conexión no permitido")

	require.True(t, g.CheckPassword(ctx, "hillsongcoffee"))
	assert.True(t, g.CanAttemptLogin(ctx, false))
}

func TestCheckPassword_SecretoVacio(t *testing.T) {
	g := access.NewGate(localstore.NewMemoryKV(), access.Config{FlagKey: flagKey}, logger.Nop())
	assert.False(t, g.CheckPassword(context.Background(), ""))
}
