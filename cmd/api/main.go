package main

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"pytech_site/internal/adapters/catalog"
	server "pytech_site/internal/adapters/http_server"
	"pytech_site/internal/adapters/observability"
	redisad "pytech_site/internal/adapters/redis"
	"pytech_site/internal/adapters/whatsapp"
	"pytech_site/internal/app"
	"pytech_site/internal/domain"
	"pytech_site/internal/shared"
	mysqlrepo "pytech_site/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "api")

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")
	repo := mysqlrepo.New(db)

	// catalog + cache
	var source domain.CatalogReader = repo
	if cfg.CatalogSource == shared.CatalogHTTP {
		client, err := catalog.New(cfg.CatalogBaseURL, cfg.CatalogKey, cfg.CatalogRPS)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize catalog client")
		}
		source = client
	}
	log.Info().Str("source", cfg.CatalogSource).Str("version", cfg.CatalogVersion).Msg("catalog configured")

	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	if err := cache.Ping(pingCtx); err != nil {
		log.Warn().Err(err).Msg("redis unreachable; serving straight from the catalog")
	}
	cancel()

	resolver := app.NewResolver(source, cache, cfg.CatalogVersion, cfg.CacheTTL)
	warnUnmappedIcons(resolver)

	// intake sinks
	link, err := whatsapp.New(cfg.Operator, cfg.PhoneRegion)
	if err != nil {
		// a nil link fails every hand-off, which surfaces as a Failed submission
		log.Error().Err(err).Msg("operator number unusable; enquiries will fail")
	}

	site := app.SiteProfile{
		Brand:      cfg.SiteName,
		BaseURL:    cfg.SiteURL,
		Phone:      cfg.SitePhone,
		Email:      cfg.SiteEmail,
		PriceRange: app.DefaultSiteProfile().PriceRange,
		Address:    app.DefaultSiteProfile().Address,
	}

	// http
	srv := server.New()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Resolver:  resolver,
		Synth:     app.NewSynthesizer(site, cfg.MetaDescriptionMax),
		Directory: app.NewDirectory(resolver, cfg.CityPickerLimit),
		Intake:    app.NewIntake(link, repo, cfg.SiteName),
		SiteURL:   cfg.SiteURL,
	})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}

// warnUnmappedIcons is best effort: an unreachable catalog at boot is not fatal.
func warnUnmappedIcons(r *app.Resolver) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	services, err := r.ListServices(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("could not list services at startup")
		return
	}
	if missing := app.UnmappedIcons(services); len(missing) > 0 {
		log.Warn().Strs("services", missing).Msg("services without an icon; using the generic icon")
	}
}
