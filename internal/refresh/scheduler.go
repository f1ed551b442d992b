package refresh

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Refresher repopulates the cached indexer payloads of one chain.
type Refresher interface {
	Refresh(ctx context.Context, chainID int64) error
}

// Scheduler periodically refreshes every configured chain.
type Scheduler struct {
	cron     *cron.Cron
	svc      Refresher
	chainIDs []int64
	timeout  time.Duration
	logger   *slog.Logger
}

// NewScheduler creates a scheduler for chainIDs. Each run is bounded by timeout.
func NewScheduler(svc Refresher, chainIDs []int64, timeout time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		svc:      svc,
		chainIDs: chainIDs,
		timeout:  timeout,
		logger:   logger,
	}
}

// Start registers the refresh job on schedule and starts the cron loop.
// An empty schedule leaves the scheduler idle.
func (s *Scheduler) Start(schedule string) error {
	if schedule == "" {
		s.logger.Info("cache refresh disabled")
		return nil
	}
	if _, err := s.cron.AddFunc(schedule, func() { s.RunOnce(context.Background()) }); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}
	s.cron.Start()
	s.logger.Info("cache refresh scheduled", "schedule", schedule, "chains", s.chainIDs)
	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("cache refresh stopped")
}

// RunOnce refreshes every chain sequentially. Failures are logged per chain.
func (s *Scheduler) RunOnce(ctx context.Context) {
	for _, id := range s.chainIDs {
		runCtx := ctx
		cancel := func() {}
		if s.timeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, s.timeout)
		}
		start := time.Now()
		err := s.svc.Refresh(runCtx, id)
		cancel()
		if err != nil {
			s.logger.WarnContext(ctx, "scheduled refresh failed",
				"chain_id", id,
				"error", err,
			)
			continue
		}
		s.logger.DebugContext(ctx, "scheduled refresh completed",
			"chain_id", id,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
