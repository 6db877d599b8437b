// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	RedirectOK         = "ok"
	RedirectUnresolved = "unresolved"
)

// Collector owns the process registry and the counters the service emits.
type Collector struct {
	registry      *prometheus.Registry
	httpResponses *prometheus.CounterVec
	redirects     *prometheus.CounterVec
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		httpResponses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "linkhive_http_responses_total",
			Help: "HTTP responses by status code.",
		}, []string{"status_code"}),
		redirects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "linkhive_redirects_total",
			Help: "Short-link redirects by outcome.",
		}, []string{"outcome"}),
	}

	c.registry.MustRegister(c.httpResponses, c.redirects)
	return c
}

func (c *Collector) RecordHTTPStatus(status int) {
	c.httpResponses.WithLabelValues(strconv.Itoa(status)).Inc()
}

func (c *Collector) RecordRedirect(outcome string) {
	c.redirects.WithLabelValues(outcome).Inc()
}

// Handler serves the exposition endpoint for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
