package modkit

import (
	"verdian/internal/platform/logger"
	phttp "verdian/internal/platform/net/http"
)

// Module is the common surface for service modules that can mount routes and expose ports
// keep this tiny so modules stay decoupled
type Module interface {
	// MountRoutes mounts HTTP routes under the provided router seam
	MountRoutes(r phttp.Router)
	// Ports returns a module specific port set for cross wiring
	Ports() any
	// Name returns the module name
	Name() string
}

// MountAll mounts every module in order and logs what went where
func MountAll(deps Deps, r phttp.Router, mods ...Module) {
	log := deps.Log
	if log == nil {
		log = logger.Get()
	}
	for _, m := range mods {
		m.MountRoutes(r)
		log.Debug().Str("module", m.Name()).Msg("module mounted")
	}
}

// MountUnder mounts register under prefix with the module middlewares applied.
// An empty prefix mounts at the current level inside a group so middlewares stay scoped
func MountUnder(r phttp.Router, b Built, register func(phttp.Router)) {
	mount := func(rr phttp.Router) {
		for _, mw := range b.Mw {
			rr.Use(mw)
		}
		register(rr)
	}
	if b.Prefix == "" || b.Prefix == "/" {
		r.Group(mount)
		return
	}
	r.Route(b.Prefix, mount)
}
