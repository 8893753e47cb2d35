// Package module wires the ingestion pipeline into the API using modkit
package module

import (
	"net/http"

	modkit "tsudoi/internal/modkit"
	"tsudoi/internal/modkit/httpkit"
	str "tsudoi/internal/platform/strings"
	evrepo "tsudoi/internal/services/events/repo"
	"tsudoi/internal/services/ingest/domain"
	ingesthttp "tsudoi/internal/services/ingest/http"
	"tsudoi/internal/services/ingest/scrape"
	"tsudoi/internal/services/ingest/service"
	"tsudoi/internal/services/ingest/sources"
)

// Ports exposed by the ingest module
type Ports struct {
	Pipeline domain.Service
}

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc domain.Service
}

// New constructs the ingest module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("ingest"), modkit.WithPrefix("/ingest")}, opts...)...)

	mo := FromConfig(deps.Cfg)
	svc := service.New(
		sources.Default(),
		scrape.New(),
		evrepo.NewPG(),
		deps.PG,
		deps.PG,
		service.WithDelay(mo.Delay),
	)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Pipeline: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		ingesthttp.Register(r, m.svc)
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

// Ports returns the module port set
func (m *Module) Ports() any { return m.ports }
