package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	NameReminders     = "reminders_total"
	NameSweepDuration = "sweep_duration_seconds"
	LabelOutcome      = "outcome"

	OutcomeDelivered = "delivered"
	OutcomeFailed    = "failed"
	OutcomeDropped   = "dropped"
)

var Reminders = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:      NameReminders,
		Help:      "Total reminder delivery attempts by outcome",
		Namespace: Namespace,
	},
	[]string{LabelOutcome},
)

var SweepDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:      NameSweepDuration,
		Help:      "Duration of reminder sweeps",
		Namespace: Namespace,
		Buckets:   prometheus.DefBuckets,
	},
)
