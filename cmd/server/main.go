package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/killstats/internal/api"
	"github.com/vytor/killstats/internal/config"
	"github.com/vytor/killstats/internal/db"
	"github.com/vytor/killstats/internal/logger"
	"github.com/vytor/killstats/internal/registry"
	"github.com/vytor/killstats/internal/repository/sqlite"
	"github.com/vytor/killstats/internal/scheduler"
	"github.com/vytor/killstats/internal/services"
	"github.com/vytor/killstats/internal/source"
	"github.com/vytor/killstats/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithFormat(logger.ParseFormat(cfg.LogFormat)),
		logger.WithColors(cfg.LogFormat != "json"),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("Kill Stats Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("default_world=%s", cfg.DefaultWorld)
	log.Debug("stats_timezone=%s", cfg.StatsTimezone)
	log.Debug("rate_limit_enabled=%t", cfg.RateLimitEnabled)
	log.Debug("max_dump_bytes=%d", cfg.MaxDumpBytes)
	log.Debug("worker_count=%d", cfg.WorkerCount)
	log.Debug("queue_size=%d", cfg.QueueSize)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Open database
	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Initialize repositories and services
	worldRepo := sqlite.NewWorldRepository(database.DB)
	bossRepo := sqlite.NewBossRepository(database.DB)
	killRepo := sqlite.NewKillRepository(database.DB)
	uploadRepo := sqlite.NewUploadRepository(database.DB)

	ingestService := services.NewIngestService(worldRepo, bossRepo, killRepo, uploadRepo, time.Now)
	dumpService := services.NewDumpService(worldRepo, uploadRepo, cfg.DefaultWorld, time.Now)
	statsService := services.NewStatsService(worldRepo, bossRepo, killRepo, uploadRepo, cfg.DefaultWorld, cfg.Location(), time.Now)
	registryService := services.NewRegistryService(bossRepo, worldRepo)

	if cfg.RegistryFile != "" {
		names, err := registry.Load(cfg.RegistryFile)
		if err != nil {
			log.Error("failed to load boss registry: %v", err)
			os.Exit(1)
		}
		added, err := registryService.Seed(ctx, names)
		if err != nil {
			log.Error("failed to seed boss registry: %v", err)
			os.Exit(1)
		}
		log.Info("boss registry seeded: file=%s, listed=%d, added=%d", cfg.RegistryFile, len(names), added)
	}

	// Background jobs
	pool := worker.NewPool(cfg.WorkerCount, cfg.QueueSize)
	pool.Start(ctx)

	sched := scheduler.New(pool)
	if cfg.DumpSourceURL != "" {
		fetch := &worker.FetchDumpJob{
			Fetcher:  source.New(cfg.DumpSourceURL, cfg.MaxDumpBytes),
			Ingester: ingestService,
		}
		if err := sched.Add(cfg.FetchSchedule, fetch); err != nil {
			log.Error("failed to schedule dump fetch: %v", err)
			os.Exit(1)
		}
		log.Info("remote dump fetch scheduled: url=%s, schedule=%s", cfg.DumpSourceURL, cfg.FetchSchedule)
	}
	if cfg.UploadRetention > 0 {
		prune := &worker.PruneUploadsJob{Pruner: uploadRepo, Keep: cfg.UploadRetention}
		if err := sched.Add(cfg.PruneSchedule, prune); err != nil {
			log.Error("failed to schedule upload pruning: %v", err)
			os.Exit(1)
		}
		log.Info("upload pruning scheduled: keep=%d, schedule=%s", cfg.UploadRetention, cfg.PruneSchedule)
	}
	sched.Start()

	srv := &api.Server{
		IngestService:     ingestService,
		DumpService:       dumpService,
		StatsService:      statsService,
		RegistryService:   registryService,
		Readiness:         database,
		CORSAllowOrigins:  cfg.CORSAllowOrigins,
		RateLimitEnabled:  cfg.RateLimitEnabled,
		RateLimitRequests: cfg.RateLimitRequests,
		RateLimitWindow:   cfg.RateLimitWindow,
		MaxDumpBytes:      cfg.MaxDumpBytes,
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping scheduler")
	select {
	case <-sched.Stop().Done():
	case <-shutdownCtx.Done():
		log.Warn("scheduler did not stop in time")
	}

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping worker pool")
	cancel()
	pool.Stop()

	log.Info("===========================================")
	log.Info("Kill Stats Server Stopped")
	log.Info("===========================================")
}
