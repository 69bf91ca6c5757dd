// Package http provides http transport for the creator
package http

import (
	stdhttp "net/http"

	phttp "verdian/internal/platform/net/http"
	"verdian/internal/services/creator/domain"
)

// Register mounts creator endpoints on the given router
func Register(r phttp.Router, s domain.AssistantPort) {
	h := &handlers{svc: s}

	// title, summary, keywords and price for a draft
	phttp.PostJSON(r, "/assist", h.assist)
}

type handlers struct{ svc domain.AssistantPort }

func (h *handlers) assist(r *stdhttp.Request, in domain.AssistInput) (any, error) {
	return h.svc.Assist(r.Context(), in)
}
