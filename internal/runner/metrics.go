package runner

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects per-run oracle and score series in a private registry.
// A nil *Metrics records nothing.
type Metrics struct {
	benchmark string
	registry  *prometheus.Registry
	calls     *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	scores    *prometheus.HistogramVec
}

// NewMetrics builds the collectors for one benchmark run.
func NewMetrics(benchmark string) *Metrics {
	m := &Metrics{
		benchmark: benchmark,
		registry:  prometheus.NewRegistry(),
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "omnibench_oracle_calls_total",
				Help: "Oracle calls by outcome.",
			},
			[]string{"benchmark", "outcome"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "omnibench_oracle_latency_seconds",
				Help:    "Oracle latency in seconds by phase (ttft, end_to_end).",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 16, 32, 64},
			},
			[]string{"benchmark", "phase"},
		),
		scores: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "omnibench_sample_score",
				Help:    "Per-sample metric values.",
				Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
			},
			[]string{"benchmark", "metric"},
		),
	}
	m.registry.MustRegister(m.calls, m.latency, m.scores)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) observeCall(success bool, ttft, endToEnd time.Duration) {
	if m == nil {
		return
	}
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	m.calls.WithLabelValues(m.benchmark, outcome).Inc()
	if !success {
		return
	}
	m.latency.WithLabelValues(m.benchmark, "ttft").Observe(ttft.Seconds())
	m.latency.WithLabelValues(m.benchmark, "end_to_end").Observe(endToEnd.Seconds())
}

func (m *Metrics) observeScore(metric string, value float64) {
	if m == nil {
		return
	}
	m.scores.WithLabelValues(m.benchmark, metric).Observe(value)
}

// WriteTextfile writes the registry in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
