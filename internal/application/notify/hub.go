// Package notify concentra los avisos dirigidos al usuario (equivalentes a los "toasts"
// de la interfaz). Cada aviso se guarda en un buffer acotado y se registra en el log.
package notify

import (
	"sync"
	"time"

	"github.com/jhoicas/cafe-inventory/pkg/logger"
)

// Level severidad del aviso.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// DefaultCapacity avisos retenidos por defecto.
const DefaultCapacity = 50

// Notification un aviso para el usuario. ID es monótono creciente.
type Notification struct {
	ID        uint64
	Level     Level
	Message   string
	CreatedAt time.Time
}

// Hub guarda los últimos avisos emitidos.
type Hub struct {
	mu       sync.Mutex
	buf      []Notification
	capacity int
	seq      uint64
	log      *logger.Logger
	now      func() time.Time
}

// NewHub construye el hub. capacity <= 0 usa DefaultCapacity.
func NewHub(log *logger.Logger, capacity int) *Hub {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Hub{
		capacity: capacity,
		log:      log.Component("notify"),
		now:      time.Now,
	}
}

// Notify emite un aviso y lo devuelve.
func (h *Hub) Notify(level Level, message string) Notification {
	h.mu.Lock()
	h.seq++
	n := Notification{ID: h.seq, Level: level, Message: message, CreatedAt: h.now()}
	h.buf = append(h.buf, n)
	if len(h.buf) > h.capacity {
		h.buf = append(h.buf[:0:0], h.buf[len(h.buf)-h.capacity:]...)
	}
	h.mu.Unlock()

	ev := h.log.Info()
	switch level {
	case LevelWarning:
		ev = h.log.Warn()
	case LevelError:
		ev = h.log.Error()
	}
	ev.Uint64("notification_id", n.ID).Str("level", string(level)).Msg(message)
	return n
}

// Since devuelve los avisos con ID mayor que id, en orden de emisión.
func (h *Hub) Since(id uint64) []Notification {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Notification, 0, len(h.buf))
	for _, n := range h.buf {
		if n.ID > id {
			out = append(out, n)
		}
	}
	return out
}

// Last devuelve el ID del último aviso emitido (0 si no hay).
func (h *Hub) Last() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.seq
}
