// Package metrics gates prometheus collection. Collectors registered on a
// disabled Registry are dropped so callers never branch on configuration.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	registry *prometheus.Registry
	enabled  bool
}

// New returns a Registry that already carries the go runtime and process collectors when enabled.
func New(enabled bool) *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		enabled:  enabled,
	}
	r.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Registry) Enabled() bool {
	return r.enabled
}

func (r *Registry) MustRegister(cs ...prometheus.Collector) {
	if r.enabled {
		r.registry.MustRegister(cs...)
	}
}

// Gatherer exposes the collected families, mostly for tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
