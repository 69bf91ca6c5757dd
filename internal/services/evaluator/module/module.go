// Package module wires the evaluator into a service binary using modkit
package module

import (
	"verdian/internal/adapters/catalog"
	"verdian/internal/core/delegate"
	"verdian/internal/modkit"
	phttp "verdian/internal/platform/net/http"
	"verdian/internal/services/evaluator/domain"
	evhttp "verdian/internal/services/evaluator/http"
	"verdian/internal/services/evaluator/service"
)

// Ports exposed by the evaluator module
type Ports struct {
	Evaluator domain.EvaluatorPort
}

// Module implements the evaluator module
type Module struct {
	deps  modkit.Deps
	built modkit.Built
	ports Ports
}

// New constructs the evaluator module. gen may be nil, in which case every
// answer comes from the heuristics
func New(deps modkit.Deps, gen delegate.Generator, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName(service.Name)}, opts...)...)
	o := FromConfig(deps.Cfg)

	var cat domain.CatalogPort = catalog.New(catalog.Config{
		BaseURL: o.CatalogURL,
		Timeout: o.CatalogTimeout,
		Retries: uint64(max(o.CatalogRetries, 0)),
	})
	if p, ok := b.Ports.(domain.CatalogPort); ok {
		cat = p
	}

	svc := service.New(service.Config{
		Generator: gen,
		Timeout:   o.GenerationTimeout,
		Catalog:   cat,
	})
	return &Module{deps: deps, built: b, ports: Ports{Evaluator: svc}}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return m.built.Name }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// GenerationEnabled reports whether answers may come from the generation service
func (m *Module) GenerationEnabled() bool { return m.ports.Evaluator.GenerationEnabled() }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r phttp.Router) {
	modkit.MountUnder(r, m.built, func(rr phttp.Router) {
		evhttp.Register(rr, m.ports.Evaluator)
	})
}
