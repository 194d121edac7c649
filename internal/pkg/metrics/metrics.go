// Package metrics exposes Prometheus collectors for commands and upstream calls.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	commandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "block_scanner",
		Name:      "commands_total",
		Help:      "Commands handled, by command name and outcome.",
	}, []string{"command", "outcome"})

	upstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "block_scanner",
		Name:      "upstream_requests_total",
		Help:      "Upstream API requests, by service and outcome.",
	}, []string{"service", "outcome"})

	upstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "block_scanner",
		Name:      "upstream_request_duration_seconds",
		Help:      "Upstream API request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"service"})
)

// ObserveCommand records a handled command.
func ObserveCommand(command, outcome string) {
	commandsTotal.WithLabelValues(command, outcome).Inc()
}

// ObserveUpstream records one upstream round trip.
func ObserveUpstream(service, outcome string, started time.Time) {
	upstreamRequestsTotal.WithLabelValues(service, outcome).Inc()
	upstreamDuration.WithLabelValues(service).Observe(time.Since(started).Seconds())
}
