package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dadddeck/pack-engine/internal/bootstrap"
	"github.com/dadddeck/pack-engine/internal/catalog"
	"github.com/dadddeck/pack-engine/internal/concurrency"
	"github.com/dadddeck/pack-engine/internal/config"
	"github.com/dadddeck/pack-engine/internal/database"
	"github.com/dadddeck/pack-engine/internal/entropy"
	"github.com/dadddeck/pack-engine/internal/event"
	"github.com/dadddeck/pack-engine/internal/pack"
	"github.com/dadddeck/pack-engine/internal/pity"
	"github.com/dadddeck/pack-engine/internal/rarity"
	"github.com/dadddeck/pack-engine/internal/ratelimit"
	"github.com/dadddeck/pack-engine/internal/scheduler"
	"github.com/dadddeck/pack-engine/internal/server"
	"github.com/dadddeck/pack-engine/internal/violation"
	"github.com/dadddeck/pack-engine/internal/worker"
)

// Database pool sizing
const (
	dbMaxConnections  = 10
	dbMaxConnIdleTime = 5 * time.Minute
	dbMaxConnLifetime = time.Hour
)

// shutdownTimeout bounds how long in-flight draws may take to drain.
const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Logger setup failed", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	if err := run(cfg); err != nil {
		slog.Error("Engine failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	connString := cfg.GetDBConnString()

	if err := database.Migrate(connString); err != nil {
		return err
	}

	dbPool, err := database.NewPool(connString, dbMaxConnections, dbMaxConnIdleTime, dbMaxConnLifetime)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	// Probability configuration fails fast: a malformed table must never
	// silently substitute defaults.
	tables, err := rarity.Load(cfg.PackTablesPath)
	if err != nil {
		return err
	}
	thresholds, err := pity.LoadThresholds(cfg.PityThresholdsPath)
	if err != nil {
		return err
	}

	repos := bootstrap.InitializeRepositories(dbPool)

	eventBus := event.NewMemoryBus()
	event.SubscribePersistence(eventBus, repos.SecurityEvents)

	catalogService, err := catalog.NewService(repos.Card)
	if err != nil {
		return err
	}
	// Every rollable rarity needs at least one card before serving draws.
	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := catalogService.ValidateCoverage(startupCtx, tables.RollableRarities()); err != nil {
		return err
	}

	rotator, err := entropy.NewRotator(cfg.SeedRotationInterval)
	if err != nil {
		return err
	}
	nonces, err := entropy.NewNonceGuard(entropy.NonceCacheSize)
	if err != nil {
		return err
	}

	pityService := pity.NewService(repos.Pity, thresholds)
	limiter := ratelimit.NewService(cfg.RateLimitMax, cfg.RateLimitWindow, cfg.RateLimitBurst,
		ratelimit.WithActionMax(ratelimit.ActionVerifyPack, cfg.RateLimitVerifyMax))
	violationService := violation.NewService(repos.Violation, eventBus, cfg.ViolationWindow)

	packService, err := pack.NewService(
		tables,
		pityService,
		limiter,
		violationService,
		catalogService,
		rotator,
		nonces,
		eventBus,
		concurrency.NewLockManager(),
	)
	if err != nil {
		return err
	}

	// Retention cleanup runs in the background; standing lookback depends on
	// ledger rows surviving at least as long as the longest timed ban.
	workerPool := worker.NewPool(1, 4)
	workerPool.Start()
	defer workerPool.Stop()

	sched := scheduler.New(workerPool)
	defer sched.Stop()
	retention := time.Duration(cfg.RetentionDays) * 24 * time.Hour
	sched.Schedule(cfg.CleanupInterval, worker.NewRetentionJob(repos.Violation, repos.SecurityEvents, retention))

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, packService, violationService, repos.SecurityEvents, rotator)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		slog.Info("Signal received", "signal", sig)
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	bootstrap.GracefulShutdown(shutdownCtx, srv)

	return nil
}
