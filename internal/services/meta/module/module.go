// Package module wires the operational endpoints into a binary using modkit
package module

import (
	"verdian/internal/modkit"
	phttp "verdian/internal/platform/net/http"
	metahttp "verdian/internal/services/meta/http"
)

// Module implements the meta module
type Module struct {
	built      modkit.Built
	service    string
	credential bool
	profiler   bool
}

// New constructs the meta module for the named binary
func New(deps modkit.Deps, service string, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("meta")}, opts...)...)
	_, credential := deps.Cfg.Prefix("GEMINI_").Secret("API_KEY")
	return &Module{
		built:      b,
		service:    service,
		credential: credential,
		profiler:   deps.Cfg.MayBool("HTTP_PROFILER", false),
	}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return m.built.Name }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return nil }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r phttp.Router) {
	modkit.MountUnder(r, m.built, func(rr phttp.Router) {
		metahttp.Register(rr, m.service, m.credential)
		phttp.MountProfiler(rr, "/debug", m.profiler)
	})
}
