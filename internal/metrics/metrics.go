// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cpmsdash_upstream_requests_total",
		Help: "Requests sent to the CPMS API",
	}, []string{"method", "status"})

	UpstreamLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cpmsdash_upstream_latency_seconds",
		Help:    "Latency of CPMS API requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	ForcedLogoutsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cpmsdash_forced_logouts_total",
		Help: "Sessions cleared after an unauthorized response",
	})

	CacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cpmsdash_query_cache_lookups_total",
		Help: "Query cache lookups by namespace and result",
	}, []string{"namespace", "result"})

	CacheInvalidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cpmsdash_query_cache_invalidations_total",
		Help: "Query cache entries marked stale by mutations",
	}, []string{"namespace"})

	QueryRetriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cpmsdash_query_retries_total",
		Help: "Retries of failed queries and mutations",
	}, []string{"kind"})

	RemoteCommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cpmsdash_remote_commands_total",
		Help: "Remote OCPP commands dispatched by type and outcome",
	}, []string{"command", "outcome"})
)

// StatusClass buckets an HTTP status as "2xx", "4xx" and so on. Zero means no response.
func StatusClass(code int) string {
	if code <= 0 {
		return "error"
	}
	return strconv.Itoa(code/100) + "xx"
}
