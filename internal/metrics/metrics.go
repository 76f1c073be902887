package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	StampsProcessed     *prometheus.CounterVec
	AchievementsCreated prometheus.Counter
}

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		StampsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stamprally_stamps_processed_total",
			Help: "Total stamp submissions by outcome (success or error code)",
		}, []string{"outcome"}),
		AchievementsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stamprally_achievements_created_total",
			Help: "Total bingo line achievements recorded",
		}),
	}
	reg.MustRegister(m.StampsProcessed, m.AchievementsCreated)
	return m
}

// RecordStamp counts one stamp submission. outcome is "success" or one of
// the stamp error codes.
func (m *Metrics) RecordStamp(outcome string) {
	m.StampsProcessed.WithLabelValues(outcome).Inc()
}
