package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cafe-inventory/pkg/config"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:3000", cfg.HTTP.Addr())
	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, "cafe-inventory-items", cfg.Storage.ItemsKey)
	assert.Equal(t, "coffeeAccess", cfg.Storage.AccessKey)
	assert.Equal(t, "hillsongcoffee", cfg.Access.Password)
	assert.Equal(t, 3, cfg.Inventory.LoadRetries)
	assert.Equal(t, time.Second, cfg.Inventory.LoadRetryDelay)
	assert.Equal(t, 10*time.Second, cfg.Connectivity.ProbeInterval)
	assert.Equal(t, 2*time.Second, cfg.Connectivity.ProbeTimeout)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("HTTP_PORT", "8080")
	v.Set("STORAGE_DRIVER", "MEMORY")
	v.Set("ACCESS_PASSWORD", "flatwhite")
	v.Set("INVENTORY_LOAD_RETRIES", 0)
	v.Set("CONNECTIVITY_PROBE_ADDR", "")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, "flatwhite", cfg.Access.Password)
	assert.Equal(t, 0, cfg.Inventory.LoadRetries)
	assert.Empty(t, cfg.Connectivity.ProbeAddr)
}

func TestFromViper_Invalid(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value any
	}{
		{"driver desconocido", "STORAGE_DRIVER", "redis"},
		{"contraseña vacía", "ACCESS_PASSWORD", ""},
		{"reintentos negativos", "INVENTORY_LOAD_RETRIES", -1},
		{"espera nula", "INVENTORY_LOAD_RETRY_DELAY_MS", 0},
		{"clave de items vacía", "STORAGE_ITEMS_KEY", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := viper.New()
			v.Set(tc.key, tc.value)
			_, err := config.FromViper(v)
			assert.Error(t, err)
		})
	}
}
