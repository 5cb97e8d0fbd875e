package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/sourcegraph/conc"

	"github.com/matchpool/tournament-engine/internal/app"
	"github.com/matchpool/tournament-engine/internal/config"
	"github.com/matchpool/tournament-engine/internal/observability"
	"github.com/matchpool/tournament-engine/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel).With(
		"service", cfg.ServiceName,
		"env", cfg.AppEnv,
	)
	logging.SetDefault(logger)
	defer logger.Sync() //nolint:errcheck

	shutdownUptrace, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}

	stopPyroscope, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		os.Exit(1)
	}

	pprofServer, err := observability.StartPprofServer(cfg, logger)
	if err != nil {
		logger.Error("start pprof", "error", err)
		os.Exit(1)
	}

	engine, err := app.NewEngine(cfg, logger)
	if err != nil {
		logger.Error("build engine", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// One sweep right away so a fresh deployment does not wait a full
	// interval for its first ranking.
	var initial conc.WaitGroup
	initial.Go(func() {
		runSweep(ctx, engine, logger)
	})
	initial.Wait()

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		logger.Error("create scheduler", "error", err)
		os.Exit(1)
	}

	if _, err := scheduler.NewJob(
		gocron.DurationJob(cfg.SweepInterval),
		gocron.NewTask(func() {
			runSweep(ctx, engine, logger)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		logger.Error("schedule sweep job", "error", err)
		os.Exit(1)
	}

	scheduler.Start()
	logger.Info("sweeper started", "interval", cfg.SweepInterval.String(), "workers", cfg.SweepWorkers)

	<-ctx.Done()
	logger.Info("shutting down")

	if err := scheduler.Shutdown(); err != nil {
		logger.Error("scheduler shutdown failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := engine.Shutdown(shutdownCtx); err != nil {
		logger.Error("engine shutdown failed", "error", err)
	}
	if err := observability.StopPprofServer(pprofServer, logger, 5*time.Second); err != nil {
		logger.Error("pprof shutdown failed", "error", err)
	}
	if err := stopPyroscope(); err != nil {
		logger.Error("pyroscope shutdown failed", "error", err)
	}
	if err := shutdownUptrace(shutdownCtx); err != nil {
		logger.Error("uptrace shutdown failed", "error", err)
	}

	logger.Info("sweeper stopped")
}

func runSweep(ctx context.Context, engine *app.Engine, logger *logging.Logger) {
	if ctx.Err() != nil {
		return
	}
	result, err := engine.Sweeper.Sweep(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "sweep failed", "error", err)
		return
	}
	if result.FailedCount > 0 || result.SkippedCount > 0 {
		logger.WarnContext(ctx, "sweep completed with issues",
			"failed", result.FailedCount,
			"skipped", result.SkippedCount,
		)
	}
}
