package graphql

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "traveladdicts",
	Subsystem: "graphql",
	Name:      "request_duration_seconds",
	Help:      "Latency of calls to the travel GraphQL API.",
	Buckets:   prometheus.DefBuckets,
}, []string{"operation", "outcome"})

func observe(operation, outcome string, d time.Duration) {
	requestDuration.WithLabelValues(operation, outcome).Observe(d.Seconds())
}
