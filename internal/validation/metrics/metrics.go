package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the validation engine.
type Metrics struct {
	// Verdicts by validity and risk level
	Verdicts *prometheus.CounterVec

	// Blocking errors by check category
	CheckFailures *prometheus.CounterVec

	// Collaborator failures by operation
	SystemFailures *prometheus.CounterVec

	// Single-transaction validation latency
	ValidateLatency prometheus.Histogram

	// Batch size distribution
	BatchSize prometheus.Histogram
}

// New creates a Metrics instance with all validation engine metrics registered.
func New() *Metrics {
	return &Metrics{
		Verdicts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "riskgate_validation_verdicts_total",
			Help: "Total validation verdicts by validity and risk level",
		}, []string{"valid", "risk_level"}),

		CheckFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "riskgate_validation_check_failures_total",
			Help: "Total blocking errors by check category",
		}, []string{"category"}), // category: amount, accounts, velocity, business_rules, aml, fraud

		SystemFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "riskgate_validation_system_failures_total",
			Help: "Total collaborator failures by operation",
		}, []string{"operation"}),

		ValidateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "riskgate_validation_duration_seconds",
			Help:    "Duration of single-transaction validation including collaborator calls",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),

		BatchSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "riskgate_validation_batch_size",
			Help:    "Number of transactions per batch validation",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250},
		}),
	}
}

// IncrementVerdict records a validation outcome.
func (m *Metrics) IncrementVerdict(valid string, riskLevel string) {
	if m != nil {
		m.Verdicts.WithLabelValues(valid, riskLevel).Inc()
	}
}

// IncrementCheckFailure records a blocking error in a check category.
func (m *Metrics) IncrementCheckFailure(category string) {
	if m != nil {
		m.CheckFailures.WithLabelValues(category).Inc()
	}
}

// IncrementSystemFailure records a collaborator failure.
func (m *Metrics) IncrementSystemFailure(operation string) {
	if m != nil {
		m.SystemFailures.WithLabelValues(operation).Inc()
	}
}

// ObserveValidateLatency records the duration of a single validation.
func (m *Metrics) ObserveValidateLatency(d time.Duration) {
	if m != nil {
		m.ValidateLatency.Observe(d.Seconds())
	}
}

// ObserveBatchSize records the size of a validated batch.
func (m *Metrics) ObserveBatchSize(n int) {
	if m != nil {
		m.BatchSize.Observe(float64(n))
	}
}
