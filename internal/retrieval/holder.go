package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
)

// Holder is the current-index reference. Rebuilds construct a complete new
// index and swap the pointer; concurrent readers keep searching the old
// index without blocking.
type Holder struct {
	current atomic.Pointer[indexRef]
	path    string
}

type indexRef struct {
	index Index
}

// NewHolder loads the corpus from path and builds the initial index.
func NewHolder(path string) (*Holder, error) {
	h := &Holder{path: path}
	if err := h.Rebuild(); err != nil {
		return nil, err
	}
	return h, nil
}

// Search queries whatever index is current.
func (h *Holder) Search(ctx context.Context, query string, k int) ([]Document, error) {
	return h.current.Load().index.Search(ctx, query, k)
}

// Rebuild reloads the corpus from disk, builds a fresh index and swaps it
// in atomically.
func (h *Holder) Rebuild() error {
	entries, err := LoadCSV(h.path)
	if err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}

	idx := NewLexicalIndex(entries)
	h.current.Store(&indexRef{index: idx})
	slog.Info("faq index rebuilt", "entries", idx.Len())
	return nil
}

// Swap replaces the current index directly. Used by tests and by callers
// that build indexes from sources other than the CSV corpus.
func (h *Holder) Swap(idx Index) {
	h.current.Store(&indexRef{index: idx})
}
