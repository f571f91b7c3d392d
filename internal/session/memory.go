package session

import (
	"context"
	"sync"
	"time"

	"github.com/shakauthossain/nh-buddy/internal/domain"
)

type memorySession struct {
	turns     []domain.Turn
	lastWrite time.Time
}

// MemoryStore is the in-process fallback Store. It mirrors the Redis
// trim/TTL semantics locally: expiry is checked lazily on read and expired
// sessions are garbage-collected by Sweep. State does not survive restart.
type MemoryStore struct {
	mu         sync.Mutex
	sessions   map[string]*memorySession
	maxHistory int
	ttl        time.Duration
	now        func() time.Time
}

// NewMemory creates an in-process store with the given bounds.
func NewMemory(maxHistory int, ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions:   make(map[string]*memorySession),
		maxHistory: maxHistory,
		ttl:        ttl,
		now:        time.Now,
	}
}

func (s *MemoryStore) expired(sess *memorySession) bool {
	return s.now().Sub(sess.lastWrite) > s.ttl
}

// Append adds a turn, trims to the newest maxHistory entries and refreshes
// the sliding TTL.
func (s *MemoryStore) Append(_ context.Context, userID string, role domain.Role, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok || s.expired(sess) {
		sess = &memorySession{}
		s.sessions[userID] = sess
	}

	sess.turns = append(sess.turns, domain.Turn{
		Role:      role,
		Content:   content,
		Timestamp: s.now().UTC(),
	})
	if len(sess.turns) > s.maxHistory {
		sess.turns = sess.turns[len(sess.turns)-s.maxHistory:]
	}
	sess.lastWrite = s.now()
	return nil
}

// Read returns the history oldest-to-newest. An expired session reads as
// empty and is removed.
func (s *MemoryStore) Read(_ context.Context, userID string) ([]domain.Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return nil, nil
	}
	if s.expired(sess) {
		delete(s.sessions, userID)
		return nil, nil
	}

	turns := make([]domain.Turn, len(sess.turns))
	copy(turns, sess.turns)
	return turns, nil
}

// Clear removes the user's session. Idempotent.
func (s *MemoryStore) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, userID)
	return nil
}

// Sweep removes every expired session and reports how many were collected.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for userID, sess := range s.sessions {
		if s.expired(sess) {
			delete(s.sessions, userID)
			removed++
		}
	}
	return removed
}

// Len reports the number of live sessions. Expired-but-unswept sessions
// still count; Sweep or Read collects them.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
