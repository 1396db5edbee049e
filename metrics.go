package worksite

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "worksite"

// Metrics holds the app's Prometheus registry and domain counters. Each App
// has its own registry so several apps can live in one process.
type Metrics struct {
	Registry *prometheus.Registry

	// FeedRequests counts feed lookups by cache result (hit, miss).
	FeedRequests *prometheus.CounterVec
	// SkippedBlocks counts content blocks left out of a rendered post, by block type.
	SkippedBlocks *prometheus.CounterVec
}

// NewMetrics creates a registry with Go runtime collectors and the app counters.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		FeedRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "feed_requests_total",
				Help:      "Feed lookups by cache result",
			},
			[]string{"result"},
		),
		SkippedBlocks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "skipped_blocks_total",
				Help:      "Content blocks not rendered, by block type",
			},
			[]string{"type"},
		),
	}
}

// Middleware records request counts and latencies.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:                 metricsNamespace,
		Registerer:                m.Registry,
		DoNotUseRequestPathFor404: true,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	})
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() echo.HandlerFunc {
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: m.Registry})
}
