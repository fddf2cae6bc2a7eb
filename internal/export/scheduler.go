package export

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Scheduler re-runs the export on a fixed interval. One process, one run in
// flight at a time, ordered, no overlap — which is what keeps the
// single-writer assumption on the checkpoint file intact.
type Scheduler struct {
	interval time.Duration
	runner   *Runner
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler creates a Scheduler.
func NewScheduler(interval time.Duration, runner *Runner, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		interval: interval,
		runner:   runner,
		logger:   logger,
	}
}

// Start begins the export loop. The first run happens immediately.
func (s *Scheduler) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.run()

	s.logger.Info("export scheduler started", "interval", s.interval)
	return nil
}

// Stop gracefully shuts down the scheduler, waiting for an in-flight run.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("export scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.runOnce()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.runOnce()
		}
	}
}

// runOnce executes one export cycle; failures are logged and the loop
// continues, since a later cycle resumes from the unchanged checkpoint.
func (s *Scheduler) runOnce() {
	start := time.Now()

	outcome, err := s.runner.Run(s.ctx, "")
	if err != nil {
		s.logger.Error("export cycle failed", "error", err, "duration", time.Since(start))
		return
	}

	s.logger.Info("export cycle complete",
		"rows", outcome.Rows,
		"partial", outcome.Partial,
		"duration", time.Since(start),
	)
}
