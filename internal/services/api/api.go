// Package api provides the HTTP API for the application
package api

import (
	"replyhub/internal/platform/config"
	"replyhub/internal/platform/logger"
	phttp "replyhub/internal/platform/net/http"
	"replyhub/internal/platform/net/middleware"
	"replyhub/internal/platform/store"

	"replyhub/internal/modkit"
	"replyhub/internal/modkit/httpkit"
	"replyhub/internal/modkit/module"
	"replyhub/internal/modkit/swaggerkit"

	metamod "replyhub/internal/services/api/meta/module"
	authdom "replyhub/internal/services/auth/domain"
	authmod "replyhub/internal/services/auth/module"
	commentsmod "replyhub/internal/services/comments/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
	}

	// Construct auth first and extract its token and guard ports
	auth := authmod.New(deps)
	tokens := module.MustPortsOf[authdom.TokenPort](auth)
	guard, _ := module.PortsOf[middleware.AuthPort](auth)

	// Inject the token source and the route guard into the comments module
	comments := commentsmod.New(
		deps,
		modkit.WithPorts(commentsmod.Ports{
			Tokens: tokens,
			Guard:  guard,
		}),
	)

	mods := []module.Module{
		metamod.New(deps),
		auth,
		comments,
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
