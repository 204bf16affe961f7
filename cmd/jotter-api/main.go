// @title         Smart Jotter API
// @version       0.1.0
// @description   Capture-to-booking pipeline: text or handwriting in, reviewed booking record out

package main

import (
	"context"

	"smartjotter/internal/platform/config"
	"smartjotter/internal/platform/logger"
	phttp "smartjotter/internal/platform/net/http"

	"smartjotter/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	l := logger.Get()

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// mount our API; pipeline and adapter settings live under JOTTER_,
	// INK_, LLM_ and HOSTAPP_ at the top level
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
		},
	)

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
