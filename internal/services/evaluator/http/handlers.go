// Package http provides http transport for the evaluator
package http

import (
	stdhttp "net/http"

	phttp "verdian/internal/platform/net/http"
	"verdian/internal/services/evaluator/domain"
)

// Register mounts evaluator endpoints on the given router
func Register(r phttp.Router, s domain.EvaluatorPort) {
	h := &handlers{svc: s}

	// price and keywords for a document
	phttp.PostJSON(r, "/evaluate", h.evaluate)

	// best catalog entry for a topic
	phttp.PostJSON(r, "/match_topic", h.matchTopic)
}

type handlers struct{ svc domain.EvaluatorPort }

func (h *handlers) evaluate(r *stdhttp.Request, in domain.EvaluateInput) (any, error) {
	return h.svc.Evaluate(r.Context(), in)
}

func (h *handlers) matchTopic(r *stdhttp.Request, in domain.MatchTopicInput) (any, error) {
	return h.svc.MatchTopic(r.Context(), in)
}
