// Package api provides the HTTP API for the application
package api

import (
	"lotlens/internal/platform/config"
	"lotlens/internal/platform/logger"
	phttp "lotlens/internal/platform/net/http"

	"lotlens/internal/modkit"
	"lotlens/internal/modkit/httpkit"
	"lotlens/internal/modkit/module"
	"lotlens/internal/modkit/swaggerkit"

	"lotlens/internal/adapters/cadastral"
	metamod "lotlens/internal/services/api/meta/module"
	lookupdom "lotlens/internal/services/lookup/domain"
	lookupmod "lotlens/internal/services/lookup/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
	}

	// One cadastral client serves both the lookup dispatcher and the
	// readiness probe (CADASTRAL_*)
	cadCfg := opt.Config.Prefix("CADASTRAL_")
	cad := cadastral.NewClient(cadastral.Options{
		BaseURL:   cadCfg.MustString("BASE_URL"),
		UserAgent: cadCfg.MayString("USER_AGENT", "lotlens-api"),
		Timeout:   cadCfg.MayDuration("TIMEOUT", 0),
	})

	mods := []module.Module{
		metamod.New(deps, modkit.WithPorts(cad)),
		lookupmod.New(deps, modkit.WithPorts(lookupdom.Ports{Dispatcher: cad})),
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
