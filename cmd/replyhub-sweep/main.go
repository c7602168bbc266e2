// Command replyhub-sweep runs one pass of the reply pipeline and exits
package main

import (
	"context"
	"flag"
	"log"

	"github.com/google/uuid"

	"replyhub/internal/modkit"
	"replyhub/internal/modkit/module"
	"replyhub/internal/modkit/repokit"
	"replyhub/internal/platform/config"
	perr "replyhub/internal/platform/errors"
	"replyhub/internal/platform/logger"
	"replyhub/internal/platform/store"

	authdom "replyhub/internal/services/auth/domain"
	authmod "replyhub/internal/services/auth/module"
	cdom "replyhub/internal/services/comments/domain"
	commentsmod "replyhub/internal/services/comments/module"
)

func main() {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	l := logger.Get()

	st, err := store.Open(context.Background(), store.Config{
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 2)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	var (
		batches = flag.Int("batches", 0, "max batches to process (0 = until exhausted)")
		size    = flag.Int("size", 0, "batch size (0 = default)")
		dryRun  = flag.Bool("dry-run", false, "generate but do not write replies")
	)
	flag.Parse()

	if *batches < 0 || *size < 0 {
		log.Fatal("batches/size must be >= 0")
	}

	// fail fast if the store does not answer
	repokit.MustGuard(context.Background(), st)

	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		Log: *l,
	}

	auth := authmod.New(deps)
	comments := commentsmod.New(
		deps,
		modkit.WithPorts(commentsmod.Ports{
			Tokens: module.MustPortsOf[authdom.TokenPort](auth),
		}),
	)

	module.Register(auth.Name(), auth.Ports())
	module.Register(comments.Name(), comments.Ports())

	run := uuid.NewString()
	svc := module.MustPortsOf[cdom.ServicePort](comments)

	out, err := svc.ProcessUnreplied(context.Background(), cdom.ProcessInput{
		MaxBatches: *batches,
		BatchSize:  *size,
		DryRun:     *dryRun,
	})
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			l.Info().Str("run", run).Msg("no unreplied comments found")
			return
		}
		l.Fatal().Err(err).Str("run", run).Msg("sweep failed")
	}

	l.Info().
		Str("run", run).
		Int("batches", out.BatchesProcessed).
		Int("processed", out.TotalProcessed).
		Bool("more", out.HasMore).
		Bool("dry_run", out.DryRun).
		Msg("sweep complete")
}
