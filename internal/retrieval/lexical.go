package retrieval

import (
	"context"
	"sort"
	"strings"
)

// Entry is one FAQ item in the corpus.
type Entry struct {
	ID       string
	Prompt   string
	Response string
}

// LexicalIndex scores FAQ entries by token overlap with the query. It is
// the simple lexical variant of the Index capability; a vector-similarity
// engine slots in behind the same interface.
type LexicalIndex struct {
	entries []Entry
	tokens  []map[string]struct{} // per-entry token set over prompt+response
}

// NewLexicalIndex builds an immutable index over the entries.
func NewLexicalIndex(entries []Entry) *LexicalIndex {
	idx := &LexicalIndex{
		entries: entries,
		tokens:  make([]map[string]struct{}, len(entries)),
	}
	for i, e := range entries {
		idx.tokens[i] = tokenSet(e.Prompt + " " + e.Response)
	}
	return idx
}

// Len reports the number of indexed entries.
func (idx *LexicalIndex) Len() int {
	return len(idx.entries)
}

// Search returns the k best-overlapping entries, descending by score.
// Entries with no overlap are omitted; an empty corpus or query yields an
// empty result, not an error.
func (idx *LexicalIndex) Search(_ context.Context, query string, k int) ([]Document, error) {
	queryTokens := tokenSet(query)
	if len(queryTokens) == 0 {
		return nil, nil
	}

	type scored struct {
		pos   int
		score float64
	}
	var hits []scored
	for i, set := range idx.tokens {
		overlap := 0
		for tok := range queryTokens {
			if _, ok := set[tok]; ok {
				overlap++
			}
		}
		if overlap == 0 {
			continue
		}
		hits = append(hits, scored{pos: i, score: float64(overlap) / float64(len(queryTokens))})
	}

	sort.SliceStable(hits, func(a, b int) bool { return hits[a].score > hits[b].score })
	if k > 0 && len(hits) > k {
		hits = hits[:k]
	}

	docs := make([]Document, 0, len(hits))
	for _, h := range hits {
		e := idx.entries[h.pos]
		docs = append(docs, Document{
			Text:  "Q: " + e.Prompt + "\nA: " + e.Response,
			Score: h.score,
		})
	}
	return docs, nil
}

func tokenSet(text string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})

	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if len(f) < 2 || stopwords[f] {
			continue
		}
		set[f] = struct{}{}
	}
	return set
}

var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "do": true, "does": true,
	"for": true, "how": true, "in": true, "is": true, "it": true, "me": true,
	"of": true, "on": true, "or": true, "the": true, "to": true,
	"what": true, "you": true, "your": true, "yours": true, "with": true,
}
