package main

import (
	"context"
	"crypto/subtle"

	"tsudoi/internal/modkit/httpkit"
	"tsudoi/internal/platform/config"
	perr "tsudoi/internal/platform/errors"
	"tsudoi/internal/platform/logger"
	phttp "tsudoi/internal/platform/net/http"
	"tsudoi/internal/platform/store"

	"tsudoi/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")

	// bring up logging early
	l := logger.Get()

	st, err := store.Open(
		context.Background(),
		store.Config{
			AppName: "tsudoi",
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", true),
			},
		},
		store.WithLogger(*l),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// single shared operator token; the id it maps to is attributed on imports
	token := apiCfg.MustString("TOKEN")
	operatorID := apiCfg.MustString("OPERATOR_ID")
	auth := httpkit.NewPortFunc(func(got string) (string, error) {
		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			return "", perr.Unauthorizedf("invalid bearer token")
		}
		return operatorID, nil
	})

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config: apiCfg,
			Store:  st,
			Logger: l,
			Auth:   auth,
		},
	)

	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
