package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	NameChatEvents = "chat_events_total"
	LabelKind      = "kind"
	LabelStatus    = "status"

	StatusHandled   = "handled"
	StatusFailed    = "failed"
	StatusThrottled = "throttled"
)

var ChatEvents = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:      NameChatEvents,
		Help:      "Total chat events received by kind and status",
		Namespace: Namespace,
	},
	[]string{LabelKind, LabelStatus},
)
