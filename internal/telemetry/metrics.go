package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Garsondee/Squid-Sense/internal/tournament"
)

const namespace = "squid"

// RoundMetrics records tournament progress as Prometheus metrics. It
// implements tournament.Observer.
type RoundMetrics struct {
	rounds       *prometheus.CounterVec
	eliminations *prometheus.CounterVec
	warnings     *prometheus.CounterVec
	completed    prometheus.Counter
	alive        prometheus.Gauge
}

// NewRoundMetrics registers the round metrics on reg.
func NewRoundMetrics(reg prometheus.Registerer) *RoundMetrics {
	f := promauto.With(reg)
	return &RoundMetrics{
		// Labels: round
		rounds: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tournament",
			Name:      "rounds_total",
			Help:      "Rounds played",
		}, []string{"round"}),
		// Labels: round
		eliminations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tournament",
			Name:      "eliminations_total",
			Help:      "Competitors eliminated per round",
		}, []string{"round"}),
		// Labels: round, kind (empty_field, final_not_head_to_head)
		warnings: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tournament",
			Name:      "warnings_total",
			Help:      "Degenerate round conditions",
		}, []string{"round", "kind"}),
		completed: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tournament",
			Name:      "completed_total",
			Help:      "Tournaments that reached the completed state",
		}),
		alive: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "tournament",
			Name:      "alive",
			Help:      "Competitors alive after the most recent round",
		}),
	}
}

// ObserveStep implements tournament.Observer.
func (m *RoundMetrics) ObserveStep(_ string, step tournament.Step) {
	round := step.Round.String()
	m.rounds.WithLabelValues(round).Inc()
	m.eliminations.WithLabelValues(round).Add(float64(len(step.Eliminated)))
	for _, w := range step.Warnings {
		m.warnings.WithLabelValues(round, w.Kind.String()).Inc()
	}
	m.alive.Set(float64(step.AliveAfter))
	if step.State == tournament.StageCompleted {
		m.completed.Inc()
	}
}

// Handler serves the metrics gathered by g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
