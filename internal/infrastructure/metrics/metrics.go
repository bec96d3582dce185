package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics. It implements usecase.Recorder and
// rabbitmq.PublishRecorder.
type Metrics struct {
	// Consumption metrics
	EntriesConsumed *prometheus.CounterVec

	// Reconciliation metrics
	ReconciliationRuns *prometheus.CounterVec
	EntriesReconciled  *prometheus.CounterVec

	// Broker metrics
	PublishAttempts *prometheus.CounterVec

	// Ledger mark-consolidated metrics
	MarkRequested  prometheus.Counter
	MarkMatched    prometheus.Counter
	MarkMismatches prometheus.Counter
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the metrics on reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		EntriesConsumed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cashflow_entries_consumed_total",
				Help: "Entry events consumed by outcome",
			},
			[]string{"outcome"},
		),
		ReconciliationRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cashflow_reconciliation_runs_total",
				Help: "Reconciliation runs by status",
			},
			[]string{"status"},
		),
		EntriesReconciled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cashflow_entries_reconciled_total",
				Help: "Entries handled by reconciliation, applied or skipped",
			},
			[]string{"result"},
		),
		PublishAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cashflow_publish_attempts_total",
				Help: "Broker publish attempts by queue and result",
			},
			[]string{"queue", "result"},
		),
		MarkRequested: factory.NewCounter(prometheus.CounterOpts{
			Name: "cashflow_mark_consolidated_requested_total",
			Help: "Entry ids received in mark-consolidated events",
		}),
		MarkMatched: factory.NewCounter(prometheus.CounterOpts{
			Name: "cashflow_mark_consolidated_matched_total",
			Help: "Entries matched by mark-consolidated updates",
		}),
		MarkMismatches: factory.NewCounter(prometheus.CounterOpts{
			Name: "cashflow_mark_consolidated_mismatches_total",
			Help: "Mark-consolidated updates whose matched count differed from the request",
		}),
	}
}

func (m *Metrics) EntryConsumed(outcome string) {
	m.EntriesConsumed.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ReconciliationRun(status string, applied, skipped int) {
	m.ReconciliationRuns.WithLabelValues(status).Inc()
	m.EntriesReconciled.WithLabelValues("applied").Add(float64(applied))
	m.EntriesReconciled.WithLabelValues("skipped").Add(float64(skipped))
}

func (m *Metrics) EntriesMarkedConsolidated(requested int, matched int64) {
	m.MarkRequested.Add(float64(requested))
	m.MarkMatched.Add(float64(matched))
	if int64(requested) != matched {
		m.MarkMismatches.Inc()
	}
}

func (m *Metrics) PublishAttempted(queue string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.PublishAttempts.WithLabelValues(queue, result).Inc()
}
