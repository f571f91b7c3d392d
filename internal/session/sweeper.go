package session

import (
	"context"
	"log/slog"
	"time"
)

const sweepInterval = 5 * time.Minute

// StartSweeper runs a background goroutine that periodically garbage-collects
// expired sessions from the fallback store. Redis expires its own keys; the
// in-process store only expires lazily on read, so idle sessions would
// otherwise linger until restart.
func StartSweeper(ctx context.Context, store *MemoryStore) {
	ticker := time.NewTicker(sweepInterval)
	go func() {
		defer ticker.Stop()
		slog.Info("session sweeper started", "interval", sweepInterval)

		for {
			select {
			case <-ctx.Done():
				slog.Info("session sweeper stopped")
				return
			case <-ticker.C:
				if removed := store.Sweep(); removed > 0 {
					slog.Debug("swept expired fallback sessions", "removed", removed)
				}
			}
		}
	}()
}
