// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "wikiquiz"

// Label values shared by the collectors below.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"

	VariantDesktop = "desktop"
	VariantMobile  = "mobile"
)

var (
	// PageFetches counts fetch attempts per URL variant and outcome.
	PageFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "page_fetches_total",
		Help:      "Wikipedia page fetch attempts by URL variant and outcome.",
	}, []string{"variant", "outcome"})

	// ModelAttempts counts calls to each candidate model.
	ModelAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "model_attempts_total",
		Help:      "Generation attempts per candidate model and outcome (success, error, empty, bad_json).",
	}, []string{"model", "outcome"})

	// Generations counts end-to-end generation requests by the error code
	// they ended with, or "success".
	Generations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "generations_total",
		Help:      "Quiz generation requests by result.",
	}, []string{"result"})

	// GenerationDuration observes the time spent in a generation request.
	GenerationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "generation_duration_seconds",
		Help:      "Time from request to stored quiz.",
		Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
	})
)

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
