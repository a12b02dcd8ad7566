package main

import (
	"context"
	"database/sql"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"pytech_site/internal/adapters/catalog"
	"pytech_site/internal/adapters/observability"
	redisad "pytech_site/internal/adapters/redis"
	"pytech_site/internal/app"
	"pytech_site/internal/domain"
	"pytech_site/internal/shared"
	mysqlrepo "pytech_site/internal/storage/mysql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv, "warmer")

	log.Info().
		Str("source", cfg.CatalogSource).
		Str("version", cfg.CatalogVersion).
		Int("workers", cfg.WarmWorkers).
		Msg("warmer starting")

	var source domain.CatalogReader
	switch cfg.CatalogSource {
	case shared.CatalogMySQL:
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		source = mysqlrepo.New(db)
	default:
		client, err := catalog.New(cfg.CatalogBaseURL, cfg.CatalogKey, cfg.CatalogRPS)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize catalog client")
		}
		source = client
	}

	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cache.Close()
	if err := cache.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("redis ping failed; nothing to warm")
	}

	start := time.Now()
	w := app.NewWarmer(app.NewResolver(source, cache, cfg.CatalogVersion, cfg.CacheTTL), cfg.WarmWorkers)
	rep, err := w.Warm(ctx)

	ev := log.Info()
	if err != nil {
		ev = log.Error().Err(err)
	}
	ev.
		Int("services", rep.Services).
		Int("cities", rep.Cities).
		Int("pages", rep.Pages).
		Interface("by_status", rep.ByStatus).
		Dur("took", time.Since(start)).
		Msg("warm completed")
}
