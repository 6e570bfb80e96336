// Package metrics provides Prometheus metrics for the scoutscore service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Custom registry to avoid the default Go runtime collectors
var registry = prometheus.NewRegistry()

var (
	// ScoreSaves counts successfully persisted score writes
	ScoreSaves = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: "scoutscore",
		Name:      "score_saves_total",
		Help:      "Number of score writes persisted to the database.",
	})

	// ScoreSaveFailures counts score writes rejected by the database
	ScoreSaveFailures = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: "scoutscore",
		Name:      "score_save_failures_total",
		Help:      "Number of score writes that failed and await retry.",
	})

	// ScoreRetries counts manual retry attempts
	ScoreRetries = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: "scoutscore",
		Name:      "score_retries_total",
		Help:      "Number of manual score save retries.",
	})

	// WSClients tracks currently connected websocket clients
	WSClients = promauto.With(registry).NewGauge(prometheus.GaugeOpts{
		Namespace: "scoutscore",
		Name:      "ws_clients",
		Help:      "Currently connected websocket clients.",
	})

	// HTTPRequests counts served HTTP requests by route pattern and status class
	HTTPRequests = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: "scoutscore",
		Name:      "http_requests_total",
		Help:      "HTTP requests served.",
	}, []string{"code"})
)

// Handler returns the /metrics endpoint handler
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
