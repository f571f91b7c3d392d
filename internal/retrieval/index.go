// Package retrieval provides the FAQ corpus and similarity search behind
// generated answers.
package retrieval

import "context"

// Document is one scored retrieval result.
type Document struct {
	Text  string
	Score float64
}

// Index searches a corpus and returns at most k documents ordered by
// descending score. Implementations are immutable after construction;
// rebuilds swap a whole new Index in through a Holder.
type Index interface {
	Search(ctx context.Context, query string, k int) ([]Document, error)
}
