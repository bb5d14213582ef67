package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "dinedash"

// Metrics holds the application collectors.
type Metrics struct {
	registry *prometheus.Registry

	OrdersSubmitted  *prometheus.CounterVec
	OrderRevenue     prometheus.Counter
	OrderTransitions *prometheus.CounterVec
	FoliosSettled    *prometheus.CounterVec
	FolioRevenue     prometheus.Counter
	Payouts          prometheus.Counter
	PayoutAmount     prometheus.Counter
	LowStockItems    prometheus.Gauge
	PersistFailures  *prometheus.CounterVec
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
}

// New registers every collector on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return newMetrics(reg)
}

func newMetrics(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		OrdersSubmitted: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_submitted_total",
			Help:      "Carts committed, by order type and whether they merged into an open tab.",
		}, []string{"type", "merged"}),
		OrderRevenue: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_revenue_total",
			Help:      "Sum of submitted cart totals.",
		}),
		OrderTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_status_transitions_total",
			Help:      "Order status changes, by target status.",
		}, []string{"status"}),
		FoliosSettled: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "folios_settled_total",
			Help:      "Bookings settled at checkout, by payment method.",
		}, []string{"payment_method"}),
		FolioRevenue: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "folio_revenue_total",
			Help:      "Sum of settled folio totals.",
		}),
		Payouts: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payroll_payouts_total",
			Help:      "Salary payouts confirmed.",
		}),
		PayoutAmount: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payroll_payout_amount_total",
			Help:      "Sum of confirmed salary payouts.",
		}),
		LowStockItems: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "inventory_low_stock_items",
			Help:      "Inventory items at or below their minimum level.",
		}),
		PersistFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_persist_failures_total",
			Help:      "Failed snapshot writes, by snapshot key.",
		}, []string{"kind"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests, by method, route and status code.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
