// @title         Lotlens API
// @version       0.1.0
// @description   Cadastral lookup and parcel sellability scoring

package main

import (
	"context"

	"lotlens/internal/platform/config"
	"lotlens/internal/platform/logger"
	phttp "lotlens/internal/platform/net/http"

	"lotlens/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*); module and adapter
	// config (LOOKUP_*, CADASTRAL_*) reads off the root
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	l := logger.Get()

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// mount our API
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
