package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
// Se construye una sola vez en main y se inyecta a cada componente; no hay estado global.
type Config struct {
	App          AppConfig
	HTTP         HTTPConfig
	Storage      StorageConfig
	Access       AccessConfig
	Inventory    InventoryConfig
	Connectivity ConnectivityConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string // trace, debug, info, warn, error
}

// HTTPConfig configuración del servidor HTTP local.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StorageConfig describe el espacio clave/valor local del dispositivo.
type StorageConfig struct {
	Driver     string // "file" (por defecto) o "memory"
	Dir        string
	Namespace  string
	QuotaBytes int64 // 0 = sin límite
	ItemsKey   string
	AccessKey  string
}

// AccessConfig clave compartida única de acceso. Es un literal en texto plano, sin hash.
type AccessConfig struct {
	Password string
}

// InventoryConfig parámetros del gestor de inventario.
type InventoryConfig struct {
	LoadRetries    int
	LoadRetryDelay time.Duration
}

// ConnectivityConfig parámetros del sondeo de red. ProbeAddr vacío desactiva el sondeo.
type ConnectivityConfig struct {
	ProbeAddr     string
	ProbeInterval time.Duration
	ProbeTimeout  time.Duration
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, STORAGE_DIR, ACCESS_PASSWORD, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return FromViper(v)
}

// FromViper construye la configuración desde una instancia de Viper ya poblada (útil en tests).
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "cafe-inventory"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "127.0.0.1"),
			Port: getInt(v, "HTTP_PORT", 3000),
		},
		Storage: StorageConfig{
			Driver:     strings.ToLower(getString(v, "STORAGE_DRIVER", "file")),
			Dir:        getString(v, "STORAGE_DIR", "./data"),
			Namespace:  getString(v, "STORAGE_NAMESPACE", "cafe-inventory"),
			QuotaBytes: int64(getInt(v, "STORAGE_QUOTA_BYTES", 5*1024*1024)),
			ItemsKey:   getString(v, "STORAGE_ITEMS_KEY", "cafe-inventory-items"),
			AccessKey:  getString(v, "STORAGE_ACCESS_KEY", "coffeeAccess"),
		},
		Access: AccessConfig{
			Password: getString(v, "ACCESS_PASSWORD", "hillsongcoffee"),
		},
		Inventory: InventoryConfig{
			LoadRetries:    getInt(v, "INVENTORY_LOAD_RETRIES", 3),
			LoadRetryDelay: time.Duration(getInt(v, "INVENTORY_LOAD_RETRY_DELAY_MS", 1000)) * time.Millisecond,
		},
		Connectivity: ConnectivityConfig{
			ProbeAddr:     getString(v, "CONNECTIVITY_PROBE_ADDR", "1.1.1.1:53"),
			ProbeInterval: time.Duration(getInt(v, "CONNECTIVITY_PROBE_INTERVAL_SECONDS", 10)) * time.Second,
			ProbeTimeout:  time.Duration(getInt(v, "CONNECTIVITY_PROBE_TIMEOUT_MS", 2000)) * time.Millisecond,
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case "file", "memory":
	default:
		return fmt.Errorf("config: STORAGE_DRIVER inválido %q (file|memory)", c.Storage.Driver)
	}
	if c.Storage.Driver == "file" && c.Storage.Dir == "" {
		return fmt.Errorf("config: STORAGE_DIR requerido con driver file")
	}
	if c.Storage.Namespace == "" || c.Storage.ItemsKey == "" || c.Storage.AccessKey == "" {
		return fmt.Errorf("config: namespace y claves de almacenamiento no pueden estar vacíos")
	}
	if c.Access.Password == "" {
		return fmt.Errorf("config: ACCESS_PASSWORD no puede estar vacío")
	}
	if c.Inventory.LoadRetries < 0 {
		return fmt.Errorf("config: INVENTORY_LOAD_RETRIES debe ser >= 0")
	}
	if c.Inventory.LoadRetryDelay <= 0 {
		return fmt.Errorf("config: INVENTORY_LOAD_RETRY_DELAY_MS debe ser > 0")
	}
	if c.Connectivity.ProbeAddr != "" && c.Connectivity.ProbeInterval <= 0 {
		return fmt.Errorf("config: CONNECTIVITY_PROBE_INTERVAL_SECONDS debe ser > 0")
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
