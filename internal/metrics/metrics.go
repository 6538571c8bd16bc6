// Package metrics defines the Prometheus collectors exported by the server.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "splitsaga"

// Metrics holds the collectors used by the RPC layer and the ledger service.
type Metrics struct {
	registry *prometheus.Registry

	rpcRequests *prometheus.CounterVec
	rpcDuration *prometheus.HistogramVec
	purchases   *prometheus.CounterVec
	settlements prometheus.Histogram
}

// New creates a registry with the process and Go collectors plus the
// application collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		rpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls handled, by procedure and result code.",
		}, []string{"procedure", "code"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC handling latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		purchases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "purchases_total",
			Help:      "Purchases added or removed.",
		}, []string{"op"}),
		settlements: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "settlements_per_simplification",
			Help:      "Number of settlements emitted by one debt simplification.",
			Buckets:   prometheus.LinearBuckets(0, 2, 10),
		}),
	}
	reg.MustRegister(m.rpcRequests, m.rpcDuration, m.purchases, m.settlements)
	return m
}

// ObserveRPC records one finished RPC call. code is "ok" on success.
func (m *Metrics) ObserveRPC(procedure, code string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.rpcRequests.WithLabelValues(procedure, code).Inc()
	m.rpcDuration.WithLabelValues(procedure).Observe(elapsed.Seconds())
}

// PurchaseAdded counts a stored purchase.
func (m *Metrics) PurchaseAdded() {
	if m == nil {
		return
	}
	m.purchases.WithLabelValues("add").Inc()
}

// PurchaseRemoved counts a deleted purchase.
func (m *Metrics) PurchaseRemoved() {
	if m == nil {
		return
	}
	m.purchases.WithLabelValues("remove").Inc()
}

// ObserveSettlements records the size of a simplification result.
func (m *Metrics) ObserveSettlements(n int) {
	if m == nil {
		return
	}
	m.settlements.Observe(float64(n))
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
