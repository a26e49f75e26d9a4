package core

// scheduler.go runs periodic resyncs so the database follows the spreadsheet
// without a manual trigger.
//
// The scheduler is long-running and context-aware for graceful shutdown. A
// failed run is logged and the next tick tries again.

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// StartSyncScheduler syncs immediately and then every interval until ctx is
// cancelled. It blocks; run it in its own goroutine.
func (s *Service) StartSyncScheduler(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	slog.Info("sync scheduler started", "interval", interval.String())

	s.runScheduledSync(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("sync scheduler stopped")
			return
		case <-ticker.C:
			s.runScheduledSync(ctx)
		}
	}
}

func (s *Service) runScheduledSync(ctx context.Context) {
	// A started run is not cut off by shutdown; serve waits for it instead.
	res, err := s.Sync(context.WithoutCancel(ctx))
	switch {
	case err == nil:
		slog.Info("scheduled sync completed",
			"components", res.Components,
			"new_ids", res.NewIDs,
			"duration_ms", res.DurationMS,
		)
	case errors.Is(err, ErrSyncInProgress):
		slog.Info("scheduled sync skipped", "error", err)
	default:
		slog.Error("scheduled sync failed", "error", err, "code", MapError(err).Code)
	}
}
