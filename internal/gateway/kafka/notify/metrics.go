package notify

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GatewayRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notify_gateway_retries_total",
			Help: "Total number of notify gateway retry attempts",
		},
		[]string{"gateway", "method", "outcome"},
	)

	GatewayRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "notify_gateway_request_duration_seconds",
			Help:    "Duration of notify gateway sends including retries",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"gateway", "method", "outcome"},
	)
)
