// Package api composes the HTTP API for the application
package api

import (
	"tsudoi/internal/platform/config"
	"tsudoi/internal/platform/logger"
	phttp "tsudoi/internal/platform/net/http"
	"tsudoi/internal/platform/net/middleware"
	"tsudoi/internal/platform/store"

	"tsudoi/internal/modkit"
	"tsudoi/internal/modkit/httpkit"
	"tsudoi/internal/modkit/module"

	ingestmod "tsudoi/internal/services/ingest/module"
)

// Options are the API options
type Options struct {
	Config config.Conf
	Store  *store.Store
	Logger *logger.Logger

	// Auth guards the operator surface; nil leaves it open (dev only)
	Auth middleware.AuthPort
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
	}

	mods := []module.Module{
		ingestmod.New(deps),
	}

	// versioned API with a common middleware stack; the whole operator
	// surface sits behind bearer auth
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		httpkit.Protected(api, opt.Auth, func(protected httpkit.Router) {
			for _, m := range mods {
				module.Register(m.Name(), m.Ports())
				m.MountRoutes(protected)
			}
		})
	})
}
