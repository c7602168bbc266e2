// Package module wires comments into the API using modkit
package module

import (
	"net/http"

	"replyhub/internal/adapters/notion"
	modkit "replyhub/internal/modkit"
	"replyhub/internal/modkit/httpkit"
	"replyhub/internal/platform/net/middleware"
	str "replyhub/internal/platform/strings"
	authdom "replyhub/internal/services/auth/domain"
	chttp "replyhub/internal/services/comments/http"
	csvc "replyhub/internal/services/comments/service"
	"replyhub/internal/services/replygen"
)

// Module implements the comments module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc csvc.Service
}

// Ports declares the injected port(s) for this module
type Ports struct {
	Tokens authdom.TokenPort

	// Guard is optional; nil leaves the pipeline route open
	Guard middleware.AuthPort
}

// New constructs the comments module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("comments"),
		modkit.WithPrefix("/comments"),
	}, opts...)...)

	o := FromConfig(deps.Cfg)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Tokens == nil {
		panic("comments module requires Tokens port (from services/auth)")
	}

	gen, err := replygen.New(o.Replygen)
	if err != nil {
		panic("comments module: " + err.Error())
	}

	ws := notion.NewClient(injected.Tokens, o.Client)
	svc := csvc.New(ws, gen, o.DatabaseID)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptCommentsPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		chttp.Register(r, m.svc, injected.Guard)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
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
