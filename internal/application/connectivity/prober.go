package connectivity

import (
	"context"
	"net"
	"time"
)

// DialProber considera la red alcanzable si logra abrir una conexión TCP a Addr.
type DialProber struct {
	Addr    string
	Timeout time.Duration
}

// NewDialProber construye el prober. timeout <= 0 usa 2s.
func NewDialProber(addr string, timeout time.Duration) *DialProber {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &DialProber{Addr: addr, Timeout: timeout}
}

// Probe intenta la conexión y la cierra de inmediato.
func (p *DialProber) Probe(ctx context.Context) bool {
	dialer := &net.Dialer{Timeout: p.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", p.Addr)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
