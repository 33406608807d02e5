package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gregjones/httpcache"
	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	githubadapter "github.com/ericfisherdev/starterhub/internal/adapter/driven/github"
	sqliteadapter "github.com/ericfisherdev/starterhub/internal/adapter/driven/sqlite"
	httphandler "github.com/ericfisherdev/starterhub/internal/adapter/driving/http"
	webhandler "github.com/ericfisherdev/starterhub/internal/adapter/driving/web"
	"github.com/ericfisherdev/starterhub/internal/application"
	"github.com/ericfisherdev/starterhub/internal/config"
)

const pruneInterval = time.Hour

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration.
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"github_org", cfg.GitHubOrg,
		"template_repo", cfg.TemplateRepo,
		"config_path", cfg.ConfigPath,
		"listing_ttl", cfg.ListingTTL,
		"cache_db_path", cfg.CacheDBPath,
		"authenticated", cfg.HasGitHubToken(),
	)
	if !cfg.HasGitHubToken() {
		slog.Warn("no github token configured, unauthenticated rate limits apply")
	}

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open the persistent response cache when a path is configured.
	var respCache httpcache.Cache
	if cfg.CacheDBPath != "" {
		db, err := sqliteadapter.NewDB(ctx, cfg.CacheDBPath)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := db.Close(); closeErr != nil {
				slog.Error("error closing database", "error", closeErr)
			}
		}()
		slog.Info("database opened", "path", db.Path())

		version, err := sqliteadapter.RunMigrations(db.Writer)
		if err != nil {
			return err
		}
		slog.Info("migrations complete", "schema_version", version)

		sqlCache := sqliteadapter.NewResponseCache(db, cfg.CacheRetention)
		if cfg.CacheRetention > 0 {
			go pruneLoop(ctx, sqlCache, cfg.CacheRetention)
		}
		slog.Info("response cache persisted", "retention", cfg.CacheRetention)
		respCache = sqlCache
	}

	// 4. Create GitHub client.
	ghClient := githubadapter.NewClient(cfg.GitHubToken, respCache, cfg.HTTPTimeout)

	// 5. Create catalog service.
	catalog := application.NewCatalogService(ghClient, application.CatalogOptions{
		Org:          cfg.GitHubOrg,
		TemplateRepo: cfg.TemplateRepo,
		ConfigPath:   cfg.ConfigPath,
		Concurrency:  cfg.FetchConcurrency,
		ListingTTL:   cfg.ListingTTL,
	})

	// 6. Register API and GUI routes.
	mux := http.NewServeMux()
	apiHandler := httphandler.NewHandler(catalog, webhandler.RenderReadme, cfg.CacheMaxAge, cfg.StaleWhileRevalidate, slog.Default())
	httphandler.RegisterRoutes(mux, apiHandler)

	webHandler := webhandler.NewHandler(catalog, cfg.GitHubOrg, slog.Default())
	webhandler.RegisterRoutes(mux, webHandler)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           httphandler.Wrap(mux, slog.Default()),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
			stop()
		}
	}()

	// 7. Warm the listing cache so the first visitor does not pay for the fan-out.
	go func() {
		starters, err := catalog.ListStarters(ctx)
		if err != nil {
			slog.Warn("initial catalog load failed", "error", err)
			return
		}
		slog.Info("initial catalog loaded", "starters", len(starters))
	}()

	slog.Info("starterhub started", "listen_addr", cfg.ListenAddr, "github_org", cfg.GitHubOrg)

	// 8. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	// 9. Graceful shutdown with 10s timeout.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}

// pruneLoop drops cached upstream responses older than maxAge, once at
// startup and then every pruneInterval until ctx is cancelled.
func pruneLoop(ctx context.Context, cache *sqliteadapter.ResponseCache, retention time.Duration) {
	prune := func() {
		n, err := cache.Prune(ctx, time.Now().Add(-retention))
		if err != nil {
			if ctx.Err() == nil {
				slog.Error("response cache prune failed", "error", err)
			}
			return
		}
		if n > 0 {
			slog.Info("response cache pruned", "entries", n)
		}
	}

	prune()

	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			prune()
		}
	}
}
