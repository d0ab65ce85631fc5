package store

import "github.com/prometheus/client_golang/prometheus"

// Metrics is a private counters registry scoped to one Engine. It is
// passive: nothing in this package binds a socket or starts an HTTP
// server. A host process can pull *prometheus.Registry via
// Engine.Metrics().Registry() and mount it on its own exporter.
type Metrics struct {
	registry *prometheus.Registry

	found    *prometheus.CounterVec
	inserted *prometheus.CounterVec

	transactionsBegun      prometheus.Counter
	transactionsCommitted  prometheus.Counter
	transactionsRolledBack prometheus.Counter
}

func newMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		found: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "srctrail_store_found_total",
			Help: "Find-or-insert primitives that returned an existing row.",
		}, []string{"entity"}),
		inserted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "srctrail_store_inserted_total",
			Help: "Find-or-insert primitives that inserted a new row.",
		}, []string{"entity"}),
		transactionsBegun: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "srctrail_store_transactions_begun_total",
			Help: "Transactions started.",
		}),
		transactionsCommitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "srctrail_store_transactions_committed_total",
			Help: "Transactions committed.",
		}),
		transactionsRolledBack: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "srctrail_store_transactions_rolledback_total",
			Help: "Transactions rolled back.",
		}),
	}
	m.registry.MustRegister(m.found, m.inserted, m.transactionsBegun, m.transactionsCommitted, m.transactionsRolledBack)
	return m
}

func (m *Metrics) recordFound(entity string) {
	m.found.WithLabelValues(entity).Inc()
}

func (m *Metrics) recordInserted(entity string) {
	m.inserted.WithLabelValues(entity).Inc()
}

// Registry returns the prometheus registry backing these counters.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
