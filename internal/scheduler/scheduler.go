package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"replay_fetcher/internal/domain"
	"replay_fetcher/internal/logging"
)

// Syncer defines the interface for sync operations.
type Syncer interface {
	Sync(ctx context.Context) (*domain.RunStats, error)
}

type Scheduler struct {
	syncer   Syncer
	interval time.Duration
	timeout  time.Duration
	logger   zerolog.Logger
}

func NewScheduler(syncer Syncer, interval, timeout time.Duration, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		syncer:   syncer,
		interval: interval,
		timeout:  timeout,
		logger:   logging.Named(logger, "scheduler"),
	}
}

// Start runs a sync immediately and then once per interval until ctx ends.
// Runs never overlap.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.interval).Msg("scheduler started")

	s.runSync(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runSync(ctx)
		}
	}
}

func (s *Scheduler) runSync(ctx context.Context) {
	syncCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		syncCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	stats, err := s.syncer.Sync(syncCtx)
	if err != nil {
		s.logger.Error().Err(err).Msg("sync failed")
	}
	if stats != nil {
		s.logger.Info().
			Str("run_id", stats.RunID).
			Int("identities", len(stats.Identities)).
			Int("failed", stats.Failed).
			Dur("duration", stats.Duration).
			Msg("sync run finished")
	}
}
