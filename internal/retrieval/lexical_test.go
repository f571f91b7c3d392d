package retrieval

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

var testEntries = []Entry{
	{ID: "1", Prompt: "What is your pricing model?", Response: "We quote per project after a discovery call."},
	{ID: "2", Prompt: "Do you build mobile apps?", Response: "Yes, we build native and cross-platform mobile apps."},
	{ID: "3", Prompt: "Where is the team located?", Response: "The team works from Dhaka with remote members."},
}

func TestLexicalSearch_RanksByOverlap(t *testing.T) {
	idx := NewLexicalIndex(testEntries)

	docs, err := idx.Search(context.Background(), "do you build mobile apps", 3)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(docs) == 0 {
		t.Fatal("Expected at least one hit")
	}
	if !strings.Contains(docs[0].Text, "mobile apps") {
		t.Errorf("Best hit should be the mobile apps entry, got %q", docs[0].Text)
	}

	for i := 1; i < len(docs); i++ {
		if docs[i].Score > docs[i-1].Score {
			t.Errorf("Results not ordered by descending score: %v", docs)
		}
	}
}

func TestLexicalSearch_RespectsK(t *testing.T) {
	idx := NewLexicalIndex(testEntries)

	docs, err := idx.Search(context.Background(), "team pricing mobile", 1)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(docs) > 1 {
		t.Errorf("Expected at most 1 result, got %d", len(docs))
	}
}

func TestLexicalSearch_EmptyCorpusAndQuery(t *testing.T) {
	idx := NewLexicalIndex(nil)
	if docs, err := idx.Search(context.Background(), "anything", 3); err != nil || len(docs) != 0 {
		t.Errorf("Empty corpus should return no hits, got %v, %v", docs, err)
	}

	idx = NewLexicalIndex(testEntries)
	if docs, err := idx.Search(context.Background(), "", 3); err != nil || len(docs) != 0 {
		t.Errorf("Empty query should return no hits, got %v, %v", docs, err)
	}
}

func TestParseCSV_HeaderAliases(t *testing.T) {
	csv := "question,answer\nWhat do you charge?,It depends on scope.\n"
	entries, err := parseCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("parseCSV failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].ID == "" {
		t.Error("Expected a generated id for rows without one")
	}
	if entries[0].Prompt != "What do you charge?" {
		t.Errorf("Unexpected prompt %q", entries[0].Prompt)
	}
}

func TestParseCSV_SkipsBlankRows(t *testing.T) {
	csv := "id,prompt,response\na1,Hello?,Hi there.\n,,\nb2,, \n"
	entries, err := parseCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("parseCSV failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected blank rows skipped, got %d entries", len(entries))
	}
}

func TestParseCSV_MissingColumns(t *testing.T) {
	if _, err := parseCSV(strings.NewReader("foo,bar\n1,2\n")); err == nil {
		t.Error("Expected error for csv without prompt/response columns")
	}
}

func TestHolder_MissingFileYieldsEmptyIndex(t *testing.T) {
	h, err := NewHolder(filepath.Join(t.TempDir(), "absent.csv"))
	if err != nil {
		t.Fatalf("NewHolder failed on missing file: %v", err)
	}
	docs, err := h.Search(context.Background(), "anything", 3)
	if err != nil || len(docs) != 0 {
		t.Errorf("Expected empty index, got %v, %v", docs, err)
	}
}

func TestHolder_RebuildSwapsIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faqs.csv")
	if err := os.WriteFile(path, []byte("prompt,response\nOld question?,Old answer.\n"), 0644); err != nil {
		t.Fatal(err)
	}

	h, err := NewHolder(path)
	if err != nil {
		t.Fatalf("NewHolder failed: %v", err)
	}

	if err := os.WriteFile(path, []byte("prompt,response\nFresh question?,Fresh answer.\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := h.Rebuild(); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}

	docs, _ := h.Search(context.Background(), "fresh question", 3)
	if len(docs) == 0 || !strings.Contains(docs[0].Text, "Fresh answer") {
		t.Errorf("Expected the rebuilt index to serve new content, got %v", docs)
	}
}

func TestHolder_ConcurrentSearchDuringSwap(t *testing.T) {
	h := &Holder{}
	h.Swap(NewLexicalIndex(testEntries))

	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			h.Swap(NewLexicalIndex(testEntries))
		}
		close(stop)
	}()

	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					if _, err := h.Search(context.Background(), "mobile apps", 2); err != nil {
						t.Errorf("Search failed during swap: %v", err)
						return
					}
				}
			}
		}()
	}
	wg.Wait()
}
