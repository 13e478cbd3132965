// Package module wires the lookup service into the API using modkit
package module

import (
	"net/http"

	modkit "lotlens/internal/modkit"
	"lotlens/internal/modkit/httpkit"
	"lotlens/internal/platform/clock"
	str "lotlens/internal/platform/strings"
	"lotlens/internal/services/lookup/domain"
	lookuphttp "lotlens/internal/services/lookup/http"
	lookupsvc "lotlens/internal/services/lookup/service"
)

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc lookupsvc.Service
}

// New constructs a lookup module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("lookup"), modkit.WithPrefix("/lookup")}, opts...)...)

	ports, ok := b.Ports.(domain.Ports)
	if !ok {
		panic("lookup module: expected WithPorts(lookup/domain.Ports)")
	}
	if ports.Dispatcher == nil {
		panic("lookup module: Ports missing Dispatcher")
	}

	cfg := FromConfig(deps.Cfg)
	svc := lookupsvc.New(ports.Dispatcher, clock.System(), cfg.ServiceConfig())

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		lookuphttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// PortSet is what the lookup module registers for cross-module wiring
type PortSet struct {
	Service lookupsvc.Service
}

// Ports exposes the lookup service for cross-module wiring
func (m *Module) Ports() any { return PortSet{Service: m.svc} }
