// Package module wires the creator into a service binary using modkit
package module

import (
	"verdian/internal/core/delegate"
	"verdian/internal/modkit"
	phttp "verdian/internal/platform/net/http"
	"verdian/internal/services/creator/domain"
	crhttp "verdian/internal/services/creator/http"
	"verdian/internal/services/creator/service"
)

// Ports exposed by the creator module
type Ports struct {
	Assistant domain.AssistantPort
}

// Module implements the creator module
type Module struct {
	deps  modkit.Deps
	built modkit.Built
	ports Ports
}

// New constructs the creator module. gen may be nil, in which case every
// answer comes from the heuristics
func New(deps modkit.Deps, gen delegate.Generator, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName(service.Name)}, opts...)...)
	svc := service.New(service.Config{
		Generator: gen,
		Timeout:   deps.Cfg.MayDuration("GEMINI_TIMEOUT", delegate.DefaultTimeout),
	})
	return &Module{deps: deps, built: b, ports: Ports{Assistant: svc}}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return m.built.Name }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// GenerationEnabled reports whether answers may come from the generation service
func (m *Module) GenerationEnabled() bool { return m.ports.Assistant.GenerationEnabled() }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r phttp.Router) {
	modkit.MountUnder(r, m.built, func(rr phttp.Router) {
		crhttp.Register(rr, m.ports.Assistant)
	})
}
