// Package access implementa la puerta de acceso con una única clave compartida.
// No hay usuarios, hash ni rotación: la clave llega por configuración y se compara
// tal cual. El permiso concedido se guarda como bandera en el espacio local.
package access

import (
	"context"
	"crypto/subtle"

	"github.com/jhoicas/cafe-inventory/internal/domain/repository"
	"github.com/jhoicas/cafe-inventory/pkg/logger"
)

// grantedValue valor literal persistido cuando el acceso fue concedido.
const grantedValue = "true"

// Config clave compartida y clave de almacenamiento de la bandera.
type Config struct {
	Password string
	FlagKey  string
}

// Gate compara la clave enviada con el secreto y persiste la bandera de acceso.
type Gate struct {
	kv  repository.KeyValueStore
	cfg Config
	log *logger.Logger
}

// NewGate construye la puerta de acceso.
func NewGate(kv repository.KeyValueStore, cfg Config, log *logger.Logger) *Gate {
	return &Gate{kv: kv, cfg: cfg, log: log.Component("access")}
}

// CheckPassword es true exactamente cuando candidate coincide con el secreto.
// Si coincide persiste la bandera; si no, la bandera queda intacta.
func (g *Gate) CheckPassword(ctx context.Context, candidate string) bool {
	if g.cfg.Password == "" {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(candidate), []byte(g.cfg.Password)) != 1 {
		g.log.Info().Msg("clave rechazada")
		return false
	}
	if err := g.kv.Set(ctx, g.cfg.FlagKey, grantedValue); err != nil {
		// La clave es correcta aunque la bandera no sobreviva a un reinicio.
		g.log.Error().Err(err).Msg("no se pudo guardar la bandera de acceso")
	}
	return true
}

// Logout borra la bandera de acceso.
func (g *Gate) Logout(ctx context.Context) {
	if err := g.kv.Remove(ctx, g.cfg.FlagKey); err != nil {
		g.log.Error().Err(err).Msg("no se pudo borrar la bandera de acceso")
	}
}

// HasAccess lee la bandera; ausente o ilegible equivale a false.
func (g *Gate) HasAccess(ctx context.Context) bool {
	v, ok, err := g.kv.Get(ctx, g.cfg.FlagKey)
	if err != nil {
		g.log.Error().Err(err).Msg("no se pudo leer la bandera de acceso")
		return false
	}
	return ok && v == grantedValue
}

// CanAttemptLogin aplica la política de primer ingreso: un dispositivo que nunca obtuvo
// acceso no puede intentar ingresar sin conexión.
func (g *Gate) CanAttemptLogin(ctx context.Context, online bool) bool {
	return online || g.HasAccess(ctx)
}
