package export

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/kaifri/BitunixTradezellaSync/internal/api"
	"github.com/kaifri/BitunixTradezellaSync/internal/model"
)

// TradeFetcher retrieves trades strictly newer than the given checkpoint.
type TradeFetcher interface {
	FetchTrades(ctx context.Context, since int64) api.FetchResult
}

// CheckpointStore loads and saves the last-exported timestamp.
type CheckpointStore interface {
	Load() (int64, error)
	Save(ts int64) error
}

// RowWriter writes normalized rows to an output file.
type RowWriter interface {
	Write(path string, rows []Row) error
}

// Archiver records exported trades in a secondary sink.
type Archiver interface {
	ArchiveTrades(ctx context.Context, trades []model.Trade) error
}

// RunnerConfig holds run orchestration settings.
type RunnerConfig struct {
	OutputDir string // Directory for default-named output files ("" = cwd)
}

// Runner sequences one export run end to end. The checkpoint is written
// only after the CSV file has been durably written: reversing that order
// would risk silently losing trades on a crash between the two writes.
type Runner struct {
	cfg      RunnerConfig
	fetcher  TradeFetcher
	store    CheckpointStore
	writer   RowWriter
	archiver Archiver // may be nil
	logger   *slog.Logger
}

// NewRunner creates a Runner. archiver may be nil to disable archiving.
func NewRunner(
	cfg RunnerConfig,
	fetcher TradeFetcher,
	store CheckpointStore,
	writer RowWriter,
	archiver Archiver,
	logger *slog.Logger,
) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		cfg:      cfg,
		fetcher:  fetcher,
		store:    store,
		writer:   writer,
		archiver: archiver,
		logger:   logger,
	}
}

// Outcome summarizes a completed run.
type Outcome struct {
	RunID      string         // Unique id carried on this run's log lines
	OutputPath string         // "" when nothing was exported
	Rows       int            // Rows written to the output file
	Checkpoint int64          // Checkpoint after the run (ms since epoch)
	Stop       api.StopReason // Why the fetch stopped, StopNone when complete
	Partial    bool           // True when the fetch stopped early
}

// Run executes one export: checkpoint load, fetch, normalize, CSV write,
// optional archive, checkpoint save. outputPath "" derives a timestamped
// default name.
//
// A partial fetch is still exported and the checkpoint advances to the
// maximum timestamp actually written, never past unfetched data; the next
// run resumes from there with no gaps and no duplicates. Errors returned
// here are persistence failures; fetch-side trouble surfaces as
// Outcome.Partial instead.
func (r *Runner) Run(ctx context.Context, outputPath string) (Outcome, error) {
	runID := uuid.NewString()
	logger := r.logger.With("run_id", runID)
	outcome := Outcome{RunID: runID}

	since, err := r.store.Load()
	if err != nil {
		return outcome, fmt.Errorf("load checkpoint: %w", err)
	}
	outcome.Checkpoint = since

	logger.Info("starting export", "checkpoint_ms", since)

	result := r.fetcher.FetchTrades(ctx, since)
	outcome.Stop = result.Stop
	outcome.Partial = !result.Complete()

	if len(result.Trades) == 0 {
		logger.Info("no new trades since last export",
			"checkpoint_ms", since,
			"partial", outcome.Partial,
		)
		return outcome, nil
	}

	rows := Transform(result.Trades)

	if outputPath == "" {
		outputPath = filepath.Join(r.cfg.OutputDir, DefaultFilename(time.Now().UTC()))
	}
	if err := r.writer.Write(outputPath, rows); err != nil {
		return outcome, fmt.Errorf("write output: %w", err)
	}
	outcome.OutputPath = outputPath
	outcome.Rows = len(rows)

	// Best effort: the CSV is the primary durable output, so an archive
	// failure must not hold the checkpoint back and force a re-export.
	if r.archiver != nil {
		if err := r.archiver.ArchiveTrades(ctx, result.Trades); err != nil {
			logger.Error("trade archive failed", "error", err, "count", len(result.Trades))
		}
	}

	latest := since
	for _, tr := range result.Trades {
		if tr.Ctime > latest {
			latest = tr.Ctime
		}
	}
	if err := r.store.Save(latest); err != nil {
		return outcome, fmt.Errorf("save checkpoint: %w", err)
	}
	outcome.Checkpoint = latest

	logger.Info("export complete",
		"rows", outcome.Rows,
		"output", outcome.OutputPath,
		"checkpoint_ms", outcome.Checkpoint,
		"partial", outcome.Partial,
	)
	return outcome, nil
}
