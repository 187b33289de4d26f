package app

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/louisbranch/krishicash/internal/services/game/domain/command"
	"github.com/louisbranch/krishicash/internal/services/game/domain/engine"
)

const metricsNamespace = "krishicash"

const (
	outcomeAccepted = "accepted"
	outcomeRejected = "rejected"

	saveResultOK    = "ok"
	saveResultError = "error"
)

// Metrics counts controller activity. A nil *Metrics records nothing.
type Metrics struct {
	actions    *prometheus.CounterVec
	rejections *prometheus.CounterVec
	advisories *prometheus.CounterVec
	months     prometheus.Counter
	games      *prometheus.CounterVec
	saves      *prometheus.CounterVec
}

// NewMetrics builds the collectors and registers them with reg. A nil reg
// leaves them unregistered, which tests use to inspect counters directly.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "actions_total",
			Help:      "Game actions dispatched, by action and outcome.",
		}, []string{"action", "outcome"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "rejections_total",
			Help:      "Rejected game actions, by rejection code.",
		}, []string{"code"}),
		advisories: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "advisories_total",
			Help:      "Advisories raised by accepted actions, by kind.",
		}, []string{"kind"}),
		months: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "months_completed_total",
			Help:      "Months closed with endMonth.",
		}),
		games: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "games_finished_total",
			Help:      "Finished games, by result tone.",
		}, []string{"tone"}),
		saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "saves_total",
			Help:      "Save attempts, by result.",
		}, []string{"result"}),
	}
	if reg != nil {
		reg.MustRegister(m.actions, m.rejections, m.advisories, m.months, m.games, m.saves)
	}
	return m
}

func (m *Metrics) observeDecision(action command.Type, d command.Decision) {
	if m == nil {
		return
	}
	if !d.Accepted() {
		m.actions.WithLabelValues(string(action), outcomeRejected).Inc()
		for _, r := range d.Rejections {
			m.rejections.WithLabelValues(r.Code).Inc()
		}
		return
	}
	m.actions.WithLabelValues(string(action), outcomeAccepted).Inc()
	for _, adv := range d.Advisories {
		m.advisories.WithLabelValues(string(adv.Kind)).Inc()
	}
}

func (m *Metrics) observeMonthEnded(finished bool, outcome engine.Outcome) {
	if m == nil {
		return
	}
	m.months.Inc()
	if finished {
		m.games.WithLabelValues(string(outcome.Tone)).Inc()
	}
}

func (m *Metrics) observeSave(err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.saves.WithLabelValues(saveResultError).Inc()
		return
	}
	m.saves.WithLabelValues(saveResultOK).Inc()
}
