// Package metrics expone el estado de la aplicación en formato Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cafe"

// Sources lecturas que se publican en cada scrape. Un campo nil no se registra.
type Sources struct {
	Items         func() int
	Online        func() bool
	Notifications func() uint64
}

// NewRegistry crea un registro propio (sin el global) con las métricas del runtime y de Sources.
func NewRegistry(s Sources) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if s.Items != nil {
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "inventory_items",
			Help:      "Entradas de inventario en memoria.",
		}, func() float64 { return float64(s.Items()) }))
	}
	if s.Online != nil {
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "online",
			Help:      "1 si la red es alcanzable, 0 si no.",
		}, func() float64 {
			if s.Online() {
				return 1
			}
			return 0
		}))
	}
	if s.Notifications != nil {
		reg.MustRegister(prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Avisos emitidos desde el arranque.",
		}, func() float64 { return float64(s.Notifications()) }))
	}
	return reg
}

// Handler sirve el registro para /metrics.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}
