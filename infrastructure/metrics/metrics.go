package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counters for the backend client and the run-status poller. Registered
// on the default registry; Handler serves them on /metrics.
var (
	BackendRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stockpilot_backend_requests_total",
		Help: "Requests issued to the catering backend, by HTTP method.",
	}, []string{"method"})

	BackendErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stockpilot_backend_errors_total",
		Help: "Backend requests that failed in transport or returned non-2xx.",
	})

	PollCycles = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stockpilot_run_poll_cycles_total",
		Help: "Completed run-status poll cycles.",
	})

	PollFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stockpilot_run_poll_failures_total",
		Help: "Run-status poll cycles that failed and kept the stale snapshot.",
	})

	StalePollsDiscarded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stockpilot_run_poll_stale_discarded_total",
		Help: "Poll responses discarded because the tracked manifest changed.",
	})
)

// Handler exposes the default prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
