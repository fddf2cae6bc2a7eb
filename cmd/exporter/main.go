// Command exporter fetches new Bitunix futures trades and writes them to a
// TradeZella Generic Template CSV, advancing a local checkpoint so each run
// exports only trades it has not exported before.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kaifri/BitunixTradezellaSync/internal/api"
	"github.com/kaifri/BitunixTradezellaSync/internal/archive"
	"github.com/kaifri/BitunixTradezellaSync/internal/config"
	"github.com/kaifri/BitunixTradezellaSync/internal/export"
	"github.com/kaifri/BitunixTradezellaSync/internal/state"
	"github.com/kaifri/BitunixTradezellaSync/internal/version"
)

// Exit codes, so schedulers can tell failure classes apart.
const (
	exitOK          = 0 // new trades exported
	exitConfig      = 1 // bad credentials/config, nothing was attempted
	exitPersistence = 2 // checkpoint or output write failed
	exitPartial     = 3 // fetch stopped early; any partial batch was exported
	exitNothingNew  = 4 // clean run, no trades newer than the checkpoint
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to YAML config file (optional, defaults apply)")
	credentialsPath := flag.String("credentials", "credentials.json", "path to credentials JSON file")
	outputPath := flag.String("output", "", "output CSV path (default: new_trades_<timestamp>.csv)")
	interval := flag.Duration("interval", 0, "re-run every interval (0 = one-shot); overrides config")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("starting exporter",
		"version", version.Version,
		"commit", version.Commit,
	)

	var cfg *config.ExporterConfig
	var err error
	if *configPath != "" {
		cfg, err = config.LoadAndValidate(*configPath)
		if err != nil {
			logger.Error("failed to load config", "error", err)
			return exitConfig
		}
	} else {
		cfg = config.Default()
	}
	if *interval > 0 {
		cfg.Schedule.Interval = *interval
	}

	// Credentials load fully before any network call; a bad key pair or
	// start_time aborts here with the checkpoint untouched.
	creds, startMs, err := config.LoadCredentials(*credentialsPath)
	if err != nil {
		logger.Error("failed to load credentials", "error", err, "path", *credentialsPath)
		return exitConfig
	}
	logger.Info("credentials loaded", "path", *credentialsPath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	client := api.NewClient(
		cfg.API.BaseURL,
		creds,
		api.WithLogger(logger),
		api.WithTimeout(cfg.API.Timeout),
		api.WithRetries(cfg.API.MaxRetries, cfg.API.RetryBackoff),
		api.WithPageLimit(cfg.API.PageLimit),
	)

	store := state.NewStore(cfg.State.Path, startMs, logger)

	var archiver export.Archiver
	if cfg.Archive.Enabled {
		arc, err := archive.Connect(ctx, cfg.Archive.DB, logger)
		if err != nil {
			logger.Error("failed to connect trade archive", "error", err)
			return exitConfig
		}
		defer arc.Close()
		archiver = arc
		logger.Info("trade archive connected",
			"host", cfg.Archive.DB.Host,
			"database", cfg.Archive.DB.Name,
		)
	}

	runner := export.NewRunner(
		export.RunnerConfig{OutputDir: cfg.Export.OutputDir},
		client,
		store,
		export.NewCSVWriter(logger),
		archiver,
		logger,
	)

	if cfg.Schedule.Interval > 0 {
		return runScheduled(ctx, cfg.Schedule.Interval, runner, logger)
	}

	outcome, err := runner.Run(ctx, *outputPath)
	if err != nil {
		logger.Error("export failed", "error", err)
		return exitPersistence
	}

	switch {
	case outcome.Partial:
		return exitPartial
	case outcome.Rows == 0:
		logger.Info("no new trades since last export")
		return exitNothingNew
	default:
		return exitOK
	}
}

// runScheduled runs the export loop until a shutdown signal arrives.
func runScheduled(ctx context.Context, interval time.Duration, runner *export.Runner, logger *slog.Logger) int {
	scheduler := export.NewScheduler(interval, runner, logger)
	if err := scheduler.Start(ctx); err != nil {
		logger.Error("failed to start scheduler", "error", err)
		return exitPersistence
	}

	<-ctx.Done()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer stopCancel()
	if err := scheduler.Stop(stopCtx); err != nil {
		logger.Warn("scheduler stop timed out", "error", err)
	}

	logger.Info("exporter stopped")
	return exitOK
}
