package observability

import (
	"net/http"
	"strconv"

	"github.com/aretw0/dfsm/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors fed by run lifecycle events.
type Metrics struct {
	registry *prometheus.Registry

	Runs        *prometheus.CounterVec
	Steps       *prometheus.CounterVec
	RunDuration *prometheus.HistogramVec
	RunLength   *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dfsm_runs_total",
				Help: "Total number of finished runs by outcome",
			},
			[]string{"machine", "outcome", "kind"},
		),
		Steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dfsm_transitions_total",
				Help: "Total number of transitions taken",
			},
			[]string{"machine", "from", "symbol", "to"},
		),
		RunDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dfsm_run_duration_seconds",
				Help:    "Duration of runs",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"machine"},
		),
		RunLength: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dfsm_run_input_symbols",
				Help:    "Number of input symbols per run",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
			[]string{"machine"},
		),
	}
	m.registry.MustRegister(m.Runs, m.Steps, m.RunDuration, m.RunLength)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the collected metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(e *domain.StepEvent) {
			m.Steps.WithLabelValues(e.Machine, e.From, e.Symbol, e.To).Inc()
		},
		OnRunEnd: func(e *domain.RunEvent) {
			m.Runs.WithLabelValues(e.Machine, outcome(e), domain.Kind(e.Err)).Inc()
			m.RunDuration.WithLabelValues(e.Machine).Observe(e.Duration.Seconds())
			m.RunLength.WithLabelValues(e.Machine).Observe(float64(e.InputLength))
		},
	}
}

func outcome(e *domain.RunEvent) string {
	switch {
	case e.Err != nil:
		return "error"
	case e.Accepted:
		return "accepted"
	default:
		return "rejected"
	}
}

// StepLabel renders a step index for log lines.
func StepLabel(index int) string {
	return "input[" + strconv.Itoa(index) + "]"
}
