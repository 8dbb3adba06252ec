// Package dashboard publishes named numeric values for the drive team.
package dashboard

import (
	"maps"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// A Dashboard accepts named values. Writes must not block the control loop.
type Dashboard interface {
	PutNumber(key string, value float64)
	PutBool(key string, value bool)
}

// Noop discards every value.
type Noop struct{}

// PutNumber does nothing.
func (Noop) PutNumber(string, float64) {}

// PutBool does nothing.
func (Noop) PutBool(string, bool) {}

// Prometheus exposes every key as a sample of one gauge vector, labelled by
// key. Booleans are published as 0 or 1.
type Prometheus struct {
	registry *prometheus.Registry
	values   *prometheus.GaugeVec

	mu   sync.Mutex
	last map[string]float64
}

var _ Dashboard = &Prometheus{}

// NewPrometheus returns a dashboard backed by its own registry so several
// robots can coexist in one process.
func NewPrometheus(namespace string) *Prometheus {
	values := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dashboard_value",
			Help:      "Latest value published to the driver station dashboard.",
		},
		[]string{"key"},
	)
	registry := prometheus.NewRegistry()
	registry.MustRegister(values)
	return &Prometheus{registry: registry, values: values, last: map[string]float64{}}
}

// PutNumber sets the gauge for key.
func (p *Prometheus) PutNumber(key string, value float64) {
	p.values.WithLabelValues(key).Set(value)
	p.mu.Lock()
	p.last[key] = value
	p.mu.Unlock()
}

// PutBool sets the gauge for key to 1 or 0.
func (p *Prometheus) PutBool(key string, value bool) {
	v := 0.0
	if value {
		v = 1
	}
	p.PutNumber(key, v)
}

// Number returns the last value published under key.
func (p *Prometheus) Number(key string) (float64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.last[key]
	return v, ok
}

// Values returns a copy of the last value published under every key.
func (p *Prometheus) Values() map[string]float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return maps.Clone(p.last)
}

// Registry returns the registry holding the dashboard gauges, for serving
// with promhttp or gathering in tests.
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// Gauge returns the collector for key.
func (p *Prometheus) Gauge(key string) prometheus.Gauge {
	return p.values.WithLabelValues(key)
}
