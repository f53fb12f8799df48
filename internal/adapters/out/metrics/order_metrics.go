// Package metrics exposes board activity and HTTP traffic as Prometheus metrics.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"kds/internal/core/domain/model/order"
	"kds/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "kds"

// OrderMetrics counts committed board changes. It is an ports.OrderEventPublisher
// so it can sit next to other sinks behind the unit of work.
type OrderMetrics struct {
	events      *prometheus.CounterVec
	transitions *prometheus.CounterVec
	swept       prometheus.Counter

	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

var _ ports.OrderEventPublisher = (*OrderMetrics)(nil)

// NewOrderMetrics registers all collectors on reg. A nil reg uses a fresh registry.
func NewOrderMetrics(reg *prometheus.Registry) (*OrderMetrics, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &OrderMetrics{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_events_total",
			Help:      "Committed order changes by type and source channel.",
		}, []string{"type", "source"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_transitions_total",
			Help:      "Committed status transitions.",
		}, []string{"from", "to"}),
		swept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_swept_total",
			Help:      "Finished orders removed by the retention sweep.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"method", "route", "code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		gatherer: reg,
	}

	for _, c := range []prometheus.Collector{m.events, m.transitions, m.swept, m.requests, m.latency} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Publish never fails.
func (m *OrderMetrics) Publish(_ context.Context, events ...order.ChangedEvent) error {
	for _, e := range events {
		source := e.Source.String()
		if source == "" {
			source = "none"
		}
		m.events.WithLabelValues(string(e.Type), source).Inc()

		switch e.Type {
		case order.ChangeStatusChanged:
			m.transitions.WithLabelValues(e.OldStatus.String(), e.NewStatus.String()).Inc()
		case order.ChangeSwept:
			m.swept.Add(float64(e.Removed))
		}
	}
	return nil
}

// Handler serves the registry in the Prometheus text format.
func (m *OrderMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Middleware records one sample per request, labelled with the route template.
// Errors are rendered here so the recorded code is the one sent to the client.
func (m *OrderMetrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}
			code := c.Response().Status

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			m.requests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
			m.latency.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}
