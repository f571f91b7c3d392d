// Package session provides bounded per-user conversation history storage.
//
// The durable backend is Redis; every operation degrades transparently to an
// in-process store when Redis is unavailable, so callers never see a storage
// error on the chat path.
package session

import (
	"context"

	"github.com/shakauthossain/nh-buddy/internal/domain"
)

// Store persists the bounded conversation history for a user.
type Store interface {
	// Append adds a turn, trims the history to the configured maximum and
	// refreshes the sliding TTL. The append-trim-refresh sequence is a
	// single logical unit with respect to concurrent callers on the same
	// user.
	Append(ctx context.Context, userID string, role domain.Role, content string) error

	// Read returns the history oldest-to-newest, at most the configured
	// maximum of turns. An absent or expired session reads as empty.
	Read(ctx context.Context, userID string) ([]domain.Turn, error)

	// Clear removes all turns and TTL bookkeeping for the user. Idempotent.
	Clear(ctx context.Context, userID string) error
}
