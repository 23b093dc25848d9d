package moderation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const unknownKindLabel = "unknown"

var dispatchCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "moderation_dispatch_total",
	Help: "Number of report dispatches, by action kind and outcome",
}, []string{"action", "outcome"})

var dispatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name: "moderation_dispatch_duration_sec",
	Help: "Duration of report dispatches, including removal verification",
}, []string{"action"})

var verificationCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "moderation_removal_verifications",
	Help: "Results of post-removal visibility checks",
}, []string{"result"})
