package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/KBRglobal/travi-final-website-sub003/internal/ai"
	"github.com/KBRglobal/travi-final-website-sub003/internal/api"
	"github.com/KBRglobal/travi-final-website-sub003/internal/config"
	"github.com/KBRglobal/travi-final-website-sub003/internal/feeds"
	"github.com/KBRglobal/travi-final-website-sub003/internal/jobs"
	"github.com/KBRglobal/travi-final-website-sub003/internal/models"
	"github.com/KBRglobal/travi-final-website-sub003/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	dataDir := flag.String("data-dir", "./data", "path to data directory")
	flag.Parse()

	// Load configuration (auto-creates default if missing).
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Ensure data directory exists.
	if err := os.MkdirAll(*dataDir, 0o755); err != nil {
		slog.Error("failed to create data directory", "error", err)
		os.Exit(1)
	}

	// Open database with WAL mode and pragmas.
	db, err := storage.OpenDatabase(filepath.Join(*dataDir, "travi.db"))
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run schema migrations.
	if err := storage.RunMigrations(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Create store and seed default feed sources.
	store := storage.NewStore(db)
	if err := store.SeedDefaults(context.Background()); err != nil {
		slog.Error("failed to seed defaults", "error", err)
		os.Exit(1)
	}

	// Create AI provider (nil if no API key -- draft and translation jobs
	// check for this and fail cleanly).
	var aiProvider ai.AIProvider
	if cfg.AI.APIKey != "" {
		aiProvider, err = ai.NewProvider(ai.ProviderConfig{
			Provider: cfg.AI.Provider,
			APIKey:   cfg.AI.APIKey,
			Model:    cfg.AI.Model,
		})
		if err != nil {
			slog.Error("failed to create AI provider", "error", err)
			os.Exit(1)
		}
		slog.Info("AI provider configured", "provider", cfg.AI.Provider, "model", cfg.AI.Model)
	} else {
		slog.Warn("no AI provider API key configured, drafting and translation jobs will fail")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Feed fetcher and the ingestion pipeline shared by the refresh
	// endpoint and the feed_refresh job.
	fetcher := feeds.NewFetcher()
	ingestor := feeds.NewIngestor(store, fetcher, cfg)

	// Jobs left running by a previous process that died mid-job would
	// otherwise be stuck: unclaimable and uncancellable.
	requeued, err := store.RequeueRunningJobs(context.Background())
	if err != nil {
		slog.Error("failed to requeue interrupted jobs", "error", err)
		os.Exit(1)
	}
	if requeued > 0 {
		slog.Info("requeued interrupted jobs", "count", requeued)
	}

	// Background job runner for drafts, translations, and feed refreshes.
	runner := jobs.NewRunner(store, aiProvider, ingestor)
	runner.Start(ctx)
	defer runner.Stop()

	// Enqueue a feed refresh on the configured interval. The runner picks
	// it up so refreshes show in the job history like everything else.
	if cfg.Feeds.RefreshIntervalMinutes > 0 {
		go scheduleFeedRefresh(ctx, store, time.Duration(cfg.Feeds.RefreshIntervalMinutes)*time.Minute)
	}

	router := api.NewRouter(store, fetcher, ingestor, cfg)

	// Localhost only; the admin dashboard is not meant to be exposed.
	addr := fmt.Sprintf("localhost:%d", cfg.Server.Port)
	server := &http.Server{Addr: addr, Handler: router}

	go func() {
		slog.Info("starting server", "addr", "http://"+addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}

// scheduleFeedRefresh enqueues a feed_refresh job every interval until the
// context is cancelled.
func scheduleFeedRefresh(ctx context.Context, store *storage.Store, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := store.CreateJob(ctx, models.JobKindFeedRefresh, ""); err != nil {
				slog.Error("failed to enqueue feed refresh", "error", err)
			}
		}
	}
}
