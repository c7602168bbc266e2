// Package module wires auth into the API using modkit
package module

import (
	"net/http"

	modkit "replyhub/internal/modkit"
	"replyhub/internal/modkit/httpkit"
	"replyhub/internal/platform/net/middleware"
	str "replyhub/internal/platform/strings"
	authhttp "replyhub/internal/services/auth/http"
	authrepo "replyhub/internal/services/auth/repo"
	authsvc "replyhub/internal/services/auth/service"
)

// Module implements the auth module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc authsvc.Service
}

// New constructs the auth module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("auth"), modkit.WithPrefix("/auth")}, opts...)...)

	cfg := FromConfig(deps.Cfg)
	svc := authsvc.New(deps.PG, authrepo.NewPG(), cfg)

	// guard for mutating routes; nil means unguarded (no service key configured)
	var guard middleware.AuthPort
	if cfg.ServiceKey != "" {
		guard = httpkit.NewPortFunc(svc.VerifyKey)
	}

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Tokens: adaptAuthPort{svc: svc}, Guard: guard}

	external := b.Register
	m.register = func(r httpkit.Router) {
		authhttp.Register(r, m.svc, guard)
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
