package session

import (
	"context"
	"log/slog"

	"github.com/shakauthossain/nh-buddy/internal/domain"
)

// FailoverStore wraps a durable Store and degrades per call to the
// in-process fallback when the durable call fails. Durable failures are
// logged and never surface to callers; they only downgrade durability for
// that one call.
//
// The two stores can diverge while Redis flaps. That is accepted: the
// session is a bounded recency window, not a ledger, and the fallback is
// explicitly best-effort.
type FailoverStore struct {
	durable  Store // nil when the service starts without Redis
	fallback *MemoryStore
}

// NewFailover builds the degrading store. durable may be nil.
func NewFailover(durable Store, fallback *MemoryStore) *FailoverStore {
	return &FailoverStore{durable: durable, fallback: fallback}
}

// Append writes to the durable store, falling back locally on failure.
func (s *FailoverStore) Append(ctx context.Context, userID string, role domain.Role, content string) error {
	if s.durable != nil {
		err := s.durable.Append(ctx, userID, role, content)
		if err == nil {
			return nil
		}
		slog.Warn("durable session append failed, using fallback", "user_id", userID, "error", err)
	}
	return s.fallback.Append(ctx, userID, role, content)
}

// Read reads from the durable store, falling back locally on failure.
func (s *FailoverStore) Read(ctx context.Context, userID string) ([]domain.Turn, error) {
	if s.durable != nil {
		turns, err := s.durable.Read(ctx, userID)
		if err == nil {
			return turns, nil
		}
		slog.Warn("durable session read failed, using fallback", "user_id", userID, "error", err)
	}
	return s.fallback.Read(ctx, userID)
}

// Clear clears both stores so a durable outage cannot resurrect a session
// that was ended while degraded.
func (s *FailoverStore) Clear(ctx context.Context, userID string) error {
	if s.durable != nil {
		if err := s.durable.Clear(ctx, userID); err != nil {
			slog.Warn("durable session clear failed", "user_id", userID, "error", err)
		}
	}
	return s.fallback.Clear(ctx, userID)
}
