package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "pickme"

// Metrics groups the tournament counters exported on /metrics.
type Metrics struct {
	TournamentsStarted  prometheus.Counter
	TournamentsFinished prometheus.Counter
	RoundsCompleted     prometheus.Counter
	Selections          prometheus.Counter
	RejectedSelections  *prometheus.CounterVec
	ActiveSessions      prometheus.Gauge
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		TournamentsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tournaments_started_total",
			Help:      "Tournaments started.",
		}),
		TournamentsFinished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tournaments_finished_total",
			Help:      "Tournaments that produced a champion.",
		}),
		RoundsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_completed_total",
			Help:      "Bracket rounds fully drained.",
		}),
		Selections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selections_total",
			Help:      "Accepted winner selections.",
		}),
		RejectedSelections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selections_rejected_total",
			Help:      "Rejected winner selections by reason.",
		}, []string{"reason"}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Tournament sessions currently held in memory.",
		}),
	}

	reg.MustRegister(
		m.TournamentsStarted,
		m.TournamentsFinished,
		m.RoundsCompleted,
		m.Selections,
		m.RejectedSelections,
		m.ActiveSessions,
	)
	return m
}
