package connectivity

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/cafe-inventory/internal/application/notify"
	"github.com/jhoicas/cafe-inventory/pkg/logger"
)

// Mensajes de transición visibles para el usuario.
const (
	MsgBackOnline = "You are back online! Your data has been synchronized."
	MsgOffline    = "You are offline. Changes will be saved locally."
)

// Prober responde si la red es alcanzable en este momento.
type Prober interface {
	Probe(ctx context.Context) bool
}

// Notifier emite avisos para el usuario.
type Notifier interface {
	Notify(level notify.Level, message string) notify.Notification
}

// Monitor expone la conectividad como estado observable. Cada transición emite
// exactamente un aviso; las señales repetidas se ignoran.
type Monitor struct {
	mu       sync.Mutex
	online   bool
	subs     map[uint64]func(online bool)
	nextSub  uint64
	prober   Prober
	notifier Notifier
	log      *logger.Logger
	interval time.Duration
}

// NewMonitor construye el monitor. Hasta Start el estado es "en línea".
// prober puede ser nil: entonces solo cambian el estado las llamadas a Set.
func NewMonitor(prober Prober, notifier Notifier, log *logger.Logger, interval time.Duration) *Monitor {
	return &Monitor{
		online:   true,
		subs:     map[uint64]func(bool){},
		prober:   prober,
		notifier: notifier,
		log:      log.Component("connectivity"),
		interval: interval,
	}
}

// Start toma el estado inicial del prober sin emitir avisos.
func (m *Monitor) Start(ctx context.Context) {
	if m.prober == nil {
		return
	}
	online := m.prober.Probe(ctx)
	m.mu.Lock()
	m.online = online
	m.mu.Unlock()
	m.log.Info().Bool("online", online).Msg("estado inicial de conectividad")
}

// Run sondea periódicamente hasta que ctx termine.
func (m *Monitor) Run(ctx context.Context) {
	if m.prober == nil || m.interval <= 0 {
		return
	}
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Set(m.prober.Probe(ctx))
		}
	}
}

// IsOnline estado actual.
func (m *Monitor) IsOnline() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// Set aplica una señal de conectividad. Devuelve true si hubo transición.
func (m *Monitor) Set(online bool) bool {
	m.mu.Lock()
	if m.online == online {
		m.mu.Unlock()
		return false
	}
	m.online = online
	subs := make([]func(bool), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	if online {
		m.notifier.Notify(notify.LevelSuccess, MsgBackOnline)
		m.syncAfterOffline()
	} else {
		m.notifier.Notify(notify.LevelWarning, MsgOffline)
	}
	for _, fn := range subs {
		fn(online)
	}
	return true
}

// Subscribe registra fn para cada transición. La función devuelta da de baja la
// suscripción y se puede llamar más de una vez.
func (m *Monitor) Subscribe(fn func(online bool)) (unsubscribe func()) {
	m.mu.Lock()
	m.nextSub++
	id := m.nextSub
	m.subs[id] = fn
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			m.mu.Unlock()
		})
	}
}

// Subscribers cantidad de suscripciones activas.
func (m *Monitor) Subscribers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs)
}

// syncAfterOffline no transfiere datos: no existe un almacén remoto con el cual reconciliar.
func (m *Monitor) syncAfterOffline() {
	m.log.Info().Msg("Syncing data after being offline")
}
