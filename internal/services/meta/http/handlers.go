// Package http serves the operational endpoints every binary exposes
package http

import (
	stdhttp "net/http"

	"verdian/internal/core/version"
	"verdian/internal/platform/metrics"
	phttp "verdian/internal/platform/net/http"
)

// Health is the body of GET /healthz
type Health struct {
	Status string `json:"status"`
	Gemini bool   `json:"gemini"`
}

// Register mounts /healthz, /version and /metrics. credential reports whether a
// generation credential is configured, whether or not the client came up
func Register(r phttp.Router, service string, credential bool) {
	phttp.GetJSON(r, "/healthz", func(*stdhttp.Request) (any, error) {
		return Health{Status: "ok", Gemini: credential}, nil
	})
	phttp.GetJSON(r, "/version", func(*stdhttp.Request) (any, error) {
		return version.Info(service), nil
	})
	r.Handle("/metrics", metrics.Handler())
}
