package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cadencehq/cadence/internal/adapters/catalog"
	"github.com/cadencehq/cadence/internal/adapters/directory"
	"github.com/cadencehq/cadence/internal/adapters/http/api"
	"github.com/cadencehq/cadence/internal/adapters/http/swagger"
	"github.com/cadencehq/cadence/internal/adapters/notify"
	"github.com/cadencehq/cadence/internal/adapters/repository"
	app "github.com/cadencehq/cadence/internal/app"
	"github.com/cadencehq/cadence/internal/config"
	"github.com/cadencehq/cadence/internal/domain/scoring"
	"github.com/cadencehq/cadence/pkg/logger"
	"github.com/cadencehq/cadence/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Entry and nudge stores share one backend.
	var store interface {
		repository.EntryStore
		repository.NudgeStore
	}
	switch cfg.StoreDriver {
	case "sqlite":
		sqliteStore, err := repository.NewSQLiteStore(cfg.StorePath)
		if err != nil {
			log.Error(ctx, "failed to open store", logger.String("path", cfg.StorePath), logger.Error(err))
			return
		}
		log.Info(ctx, "using sqlite store", logger.String("path", cfg.StorePath))
		store = sqliteStore
	default:
		log.Info(ctx, "using in-memory store")
		store = repository.NewMemoryStore()
	}

	// Directory backend: the upstream API when configured, otherwise the
	// dev in-memory directory.
	var dir directory.Directory
	if cfg.DirectoryBaseURL != "" {
		dir = directory.NewClient(cfg.DirectoryBaseURL, cfg.DirectoryAPIKey,
			directory.WithCache(cfg.DirectoryCacheSize, time.Duration(cfg.DirectoryCacheTTLSeconds)*time.Second),
		)
	} else {
		log.Warn(ctx, "no directory configured; using empty in-memory directory")
		dir = directory.NewMemoryDirectory(nil)
	}

	// Project catalog with periodic reload.
	projects := catalog.New(ctx, cfg.CatalogPath,
		catalog.WithReloadInterval(time.Duration(cfg.CatalogReloadSeconds)*time.Second),
	)
	projects.Start(ctx)

	var sink notify.Sink
	switch cfg.EmailProvider {
	case "sendgrid":
		sink = notify.NewSendgridSink(cfg.SendgridAPIKey, cfg.EmailFrom, cfg.EmailSubjectPrefix)
	default:
		sink = notify.NewConsoleSink(logger.Named("notify"))
	}

	// Create and start the service with configuration options
	svc := app.New(
		app.WithLogger(log),
		app.WithEntryStore(store),
		app.WithNudgeStore(store),
		app.WithDirectory(dir),
		app.WithProjectSource(projects),
		app.WithSink(sink),
		app.WithNotifyWorkers(cfg.NotifyWorkers),
		app.WithNotifyQueueSize(cfg.NotifyQueueSize),
		app.WithScoringOptions(
			scoring.WithWindowWeeks(cfg.ScoreWindowWeeks),
			scoring.WithGraceDays(cfg.ScoreGraceDays),
			scoring.WithVacuousScore(cfg.ScoreVacuous),
			scoring.WithNudgePenalty(cfg.NudgePenalty),
			scoring.WithNudgeLookbackWeeks(cfg.NudgeLookbackWeeks),
		),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// API docs under /api-docs
	swagger.Register(ctx, mux)

	// Prometheus metrics.
	mux.Handle("/metrics", metrics.Handler())

	// Business API routes with the service dependency.
	ident := api.Identity{
		Header:      cfg.IdentityHeader,
		Debug:       cfg.Debug,
		DevIdentity: cfg.DevIdentity,
	}
	api.NewServer(svc, ident).Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			stop()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}
