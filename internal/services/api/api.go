// Package api provides the HTTP API for the application
package api

import (
	"smartjotter/internal/platform/config"
	"smartjotter/internal/platform/logger"
	phttp "smartjotter/internal/platform/net/http"

	"smartjotter/internal/modkit"
	"smartjotter/internal/modkit/httpkit"
	"smartjotter/internal/modkit/module"
	"smartjotter/internal/modkit/swaggerkit"

	metamod "smartjotter/internal/services/api/meta/module"

	// Dispatch module (owns the Dispatcher port)
	dispatchmod "smartjotter/internal/services/dispatch/module"
	jottermod "smartjotter/internal/services/jotter/module"
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

	// Construct the dispatch module first and extract its Dispatcher port
	dispatch := dispatchmod.New(deps)
	disp := module.MustPortsOf[dispatchmod.Ports](dispatch).Dispatcher

	// Inject that Dispatcher into the jotter module
	jotter := jottermod.New(
		deps,
		modkit.WithPorts(jottermod.Ports{
			Dispatcher: disp,
		}),
	)

	mods := []module.Module{
		metamod.New(deps),
		dispatch, // include dispatch so its ports are registered
		jotter,   // pipeline module that depends on the dispatcher port
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
