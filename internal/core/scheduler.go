package core

// scheduler.go runs history retention in the background.
//
// The job runs once on start and then every Interval, deleting entries older
// than Retention. Failures are logged and the scheduler keeps running.

import (
	"context"
	"log/slog"
	"time"
)

// PruneConfig holds the history retention settings.
type PruneConfig struct {
	Retention time.Duration // Entries older than this are removed (default: 720h)
	Interval  time.Duration // How often to run (default: 1h)
}

const (
	DefaultHistoryRetention = 30 * 24 * time.Hour
	DefaultPruneInterval    = time.Hour
)

// StartPruneScheduler prunes history now and then every cfg.Interval until
// ctx is cancelled. It blocks; run it in its own goroutine.
func (s *Service) StartPruneScheduler(ctx context.Context, cfg PruneConfig) {
	if cfg.Retention <= 0 {
		cfg.Retention = DefaultHistoryRetention
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultPruneInterval
	}

	slog.Info("history prune scheduler started",
		"retention", cfg.Retention.String(),
		"interval", cfg.Interval.String(),
	)

	s.runPruneJob(ctx, cfg)

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("history prune scheduler stopped")
			return
		case <-ticker.C:
			s.runPruneJob(ctx, cfg)
		}
	}
}

// runPruneJob performs one prune pass.
func (s *Service) runPruneJob(ctx context.Context, cfg PruneConfig) {
	start := time.Now()
	cutoff := start.Add(-cfg.Retention)

	removed, err := s.store.Prune(ctx, cutoff)
	if err != nil {
		slog.Error("history prune failed", "error", err)
		return
	}

	slog.Info("pruned history entries",
		"entries_removed", removed,
		"cutoff", cutoff.Format(time.RFC3339),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
