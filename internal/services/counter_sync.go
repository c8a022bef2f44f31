package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/backend"
)

// StartCounterSync runs a goroutine that periodically writes the derived
// report count of every project user back into reports_count.
func StartCounterSync(b backend.Backend, interval time.Duration, done chan struct{}) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				SyncCounters(context.Background(), b)
			case <-done:
				return
			}
		}
	}()
}

// SyncCounters performs one sync pass.
func SyncCounters(ctx context.Context, b backend.Backend) {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	changed, err := b.SyncReportCounts(ctx)
	if err != nil {
		slog.Error("report count sync failed", "error", err)
		return
	}
	if changed > 0 {
		slog.Info("report count sync completed", "updated", changed)
	}
}
