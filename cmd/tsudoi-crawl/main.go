package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/google/uuid"

	"tsudoi/internal/platform/config"
	perr "tsudoi/internal/platform/errors"
	"tsudoi/internal/platform/logger"
	"tsudoi/internal/platform/store"

	evrepo "tsudoi/internal/services/events/repo"
	"tsudoi/internal/services/ingest/domain"
	"tsudoi/internal/services/ingest/scrape"
	"tsudoi/internal/services/ingest/service"
	"tsudoi/internal/services/ingest/sources"
)

func main() {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")

	l := logger.Get()

	var (
		fRegion   = flag.String("region", "", "limit the run to one source, by region label or url fragment")
		fCommit   = flag.Bool("commit", false, "import every non-duplicate candidate instead of just previewing")
		fOperator = flag.String("operator", "", "operator uuid attributed on imported events (required with -commit)")
		fDelay    = flag.Duration("delay", time.Second, "politeness delay between source fetches")
	)
	flag.Parse()

	if *fCommit {
		if _, err := uuid.Parse(*fOperator); err != nil {
			l.Fatal().Str("operator", *fOperator).Msg("-commit requires a valid -operator uuid")
		}
	}

	st, err := store.Open(context.Background(), store.Config{
		AppName: "tsudoi",
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	svc := service.New(
		sources.Default(),
		scrape.New(),
		evrepo.NewPG(),
		st.PG,
		st.PG,
		service.WithDelay(*fDelay),
	)

	ctx := context.Background()

	var preview []domain.ImportableEvent
	if *fRegion != "" {
		preview, err = svc.PreviewRegion(ctx, *fRegion)
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			l.Fatal().Str("region", *fRegion).Msg("no source matches the given region")
		}
	} else {
		preview, err = svc.PreviewAll(ctx)
	}
	if err != nil {
		l.Fatal().Err(err).Msg("preview failed")
	}

	enc := json.NewEncoder(os.Stdout)
	for _, ev := range preview {
		if err := enc.Encode(ev); err != nil {
			l.Fatal().Err(err).Msg("encode failed")
		}
	}

	if !*fCommit {
		l.Info().Int("candidates", len(preview)).Msg("preview only, nothing imported")
		return
	}

	selection := make([]domain.ImportableEvent, 0, len(preview))
	for _, ev := range preview {
		if !ev.IsDuplicate {
			selection = append(selection, ev)
		}
	}

	res, err := svc.CommitSelected(ctx, *fOperator, selection)
	if err != nil {
		l.Fatal().Err(err).Msg("commit failed")
	}
	l.Info().
		Int("candidates", len(preview)).
		Int("selected", len(selection)).
		Int("imported", res.Imported).
		Msg("crawl finished")
}
