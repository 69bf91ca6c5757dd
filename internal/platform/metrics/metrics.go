// Package metrics holds the process-wide prometheus collectors
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// LLM call outcomes
const (
	OutcomeAccepted    = "accepted"
	OutcomeDisabled    = "disabled"
	OutcomeFailed      = "failed"
	OutcomeTimeout     = "timeout"
	OutcomeEmpty       = "empty"
	OutcomeUnparseable = "unparseable"
	OutcomeRejected    = "rejected"
)

// Result sources
const (
	SourceLLM       = "llm"
	SourceHeuristic = "heuristic"
)

var (
	LLMCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "verdian_llm_calls_total",
			Help: "Generation calls by outcome",
		},
		[]string{"service", "outcome"},
	)

	LLMCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "verdian_llm_call_duration_seconds",
			Help:    "Duration of generation calls in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"service"},
	)

	Results = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "verdian_results_total",
			Help: "Answers served by where they came from",
		},
		[]string{"service", "source"},
	)

	PayloadRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "verdian_payload_rejected_total",
			Help: "Requests refused because the document was over the byte limit",
		},
		[]string{"service"},
	)
)

// Handler serves the default registry in the exposition format
func Handler() http.Handler { return promhttp.Handler() }
