package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shakauthossain/nh-buddy/internal/domain"
)

func TestMemoryStore_AppendAndRead(t *testing.T) {
	store := NewMemory(7, time.Hour)
	ctx := context.Background()

	if err := store.Append(ctx, "u1", domain.RoleUser, "hi"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := store.Append(ctx, "u1", domain.RoleBot, "hello"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	turns, err := store.Read(ctx, "u1")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("Expected 2 turns, got %d", len(turns))
	}
	if turns[0].Role != domain.RoleUser || turns[0].Content != "hi" {
		t.Errorf("Unexpected first turn: %+v", turns[0])
	}
	if turns[1].Role != domain.RoleBot || turns[1].Content != "hello" {
		t.Errorf("Unexpected second turn: %+v", turns[1])
	}
}

func TestMemoryStore_TrimsOldestFirst(t *testing.T) {
	store := NewMemory(7, time.Hour)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		if err := store.Append(ctx, "u1", domain.RoleUser, fmt.Sprintf("msg-%d", i)); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	turns, err := store.Read(ctx, "u1")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(turns) != 7 {
		t.Fatalf("Expected history capped at 7, got %d", len(turns))
	}
	// Oldest turns discarded first: 5..11 remain.
	for i, turn := range turns {
		want := fmt.Sprintf("msg-%d", i+5)
		if turn.Content != want {
			t.Errorf("Turn %d: expected %q, got %q", i, want, turn.Content)
		}
	}
}

func TestMemoryStore_ReadUnknownUser(t *testing.T) {
	store := NewMemory(7, time.Hour)

	turns, err := store.Read(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(turns) != 0 {
		t.Errorf("Expected empty history, got %d turns", len(turns))
	}
}

func TestMemoryStore_TTLExpiry(t *testing.T) {
	store := NewMemory(7, 30*time.Minute)
	ctx := context.Background()

	current := time.Now()
	store.now = func() time.Time { return current }

	if err := store.Append(ctx, "u1", domain.RoleUser, "hi"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	// Just inside the TTL.
	current = current.Add(29 * time.Minute)
	turns, _ := store.Read(ctx, "u1")
	if len(turns) != 1 {
		t.Fatalf("Expected live session, got %d turns", len(turns))
	}

	// A write slides the TTL window.
	if err := store.Append(ctx, "u1", domain.RoleUser, "still here"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	current = current.Add(29 * time.Minute)
	turns, _ = store.Read(ctx, "u1")
	if len(turns) != 2 {
		t.Fatalf("Expected refreshed session, got %d turns", len(turns))
	}

	// Past the TTL: reads as empty and the record is collected.
	current = current.Add(31 * time.Minute)
	turns, _ = store.Read(ctx, "u1")
	if len(turns) != 0 {
		t.Errorf("Expected expired session to read empty, got %d turns", len(turns))
	}
	if store.Len() != 0 {
		t.Errorf("Expected expired session removed on read, store has %d", store.Len())
	}
}

func TestMemoryStore_Sweep(t *testing.T) {
	store := NewMemory(7, 30*time.Minute)
	ctx := context.Background()

	current := time.Now()
	store.now = func() time.Time { return current }

	store.Append(ctx, "old", domain.RoleUser, "hi")
	current = current.Add(20 * time.Minute)
	store.Append(ctx, "fresh", domain.RoleUser, "hi")
	current = current.Add(15 * time.Minute)

	if removed := store.Sweep(); removed != 1 {
		t.Errorf("Expected 1 swept session, got %d", removed)
	}
	if store.Len() != 1 {
		t.Errorf("Expected 1 remaining session, got %d", store.Len())
	}
}

func TestMemoryStore_ClearIdempotent(t *testing.T) {
	store := NewMemory(7, time.Hour)
	ctx := context.Background()

	store.Append(ctx, "u1", domain.RoleUser, "hi")
	if err := store.Clear(ctx, "u1"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if err := store.Clear(ctx, "u1"); err != nil {
		t.Fatalf("Second Clear failed: %v", err)
	}

	turns, _ := store.Read(ctx, "u1")
	if len(turns) != 0 {
		t.Errorf("Expected empty history after clear, got %d turns", len(turns))
	}
}

func TestMemoryStore_ConcurrentAppends(t *testing.T) {
	store := NewMemory(7, time.Hour)
	ctx := context.Background()

	var wg sync.WaitGroup
	for g := 0; g < 10; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				store.Append(ctx, "shared", domain.RoleUser, fmt.Sprintf("g%d-%d", g, i))
			}
		}(g)
	}
	wg.Wait()

	turns, err := store.Read(ctx, "shared")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(turns) != 7 {
		t.Errorf("Expected exactly 7 turns after concurrent appends, got %d", len(turns))
	}
}
