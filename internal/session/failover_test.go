package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shakauthossain/nh-buddy/internal/domain"
)

// flakyStore fails every call while broken is set.
type flakyStore struct {
	inner  *MemoryStore
	broken bool
}

func (f *flakyStore) Append(ctx context.Context, userID string, role domain.Role, content string) error {
	if f.broken {
		return errors.New("connection refused")
	}
	return f.inner.Append(ctx, userID, role, content)
}

func (f *flakyStore) Read(ctx context.Context, userID string) ([]domain.Turn, error) {
	if f.broken {
		return nil, errors.New("connection refused")
	}
	return f.inner.Read(ctx, userID)
}

func (f *flakyStore) Clear(ctx context.Context, userID string) error {
	if f.broken {
		return errors.New("connection refused")
	}
	return f.inner.Clear(ctx, userID)
}

func TestFailover_DegradesWithoutSurfacingErrors(t *testing.T) {
	durable := &flakyStore{inner: NewMemory(7, time.Hour), broken: true}
	store := NewFailover(durable, NewMemory(7, time.Hour))
	ctx := context.Background()

	if err := store.Append(ctx, "u1", domain.RoleUser, "hi"); err != nil {
		t.Fatalf("Append must not surface durable failure, got %v", err)
	}

	turns, err := store.Read(ctx, "u1")
	if err != nil {
		t.Fatalf("Read must not surface durable failure, got %v", err)
	}
	if len(turns) != 1 || turns[0].Content != "hi" {
		t.Fatalf("Expected the appended turn from the fallback, got %+v", turns)
	}
}

func TestFailover_PrefersDurableWhenHealthy(t *testing.T) {
	durable := &flakyStore{inner: NewMemory(7, time.Hour)}
	fallback := NewMemory(7, time.Hour)
	store := NewFailover(durable, fallback)
	ctx := context.Background()

	if err := store.Append(ctx, "u1", domain.RoleUser, "hi"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if fallback.Len() != 0 {
		t.Error("Healthy durable append must not touch the fallback")
	}

	turns, _ := store.Read(ctx, "u1")
	if len(turns) != 1 {
		t.Fatalf("Expected durable read to return 1 turn, got %d", len(turns))
	}
}

func TestFailover_NilDurableRunsOnFallback(t *testing.T) {
	store := NewFailover(nil, NewMemory(7, time.Hour))
	ctx := context.Background()

	if err := store.Append(ctx, "u1", domain.RoleUser, "hi"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	turns, _ := store.Read(ctx, "u1")
	if len(turns) != 1 {
		t.Errorf("Expected fallback-only operation, got %d turns", len(turns))
	}
}

func TestFailover_ClearClearsBothStores(t *testing.T) {
	durable := &flakyStore{inner: NewMemory(7, time.Hour)}
	fallback := NewMemory(7, time.Hour)
	store := NewFailover(durable, fallback)
	ctx := context.Background()

	// Write while degraded so the fallback holds state, then recover.
	durable.broken = true
	store.Append(ctx, "u1", domain.RoleUser, "hi")
	durable.broken = false
	store.Append(ctx, "u1", domain.RoleUser, "again")

	if err := store.Clear(ctx, "u1"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	if turns, _ := durable.inner.Read(ctx, "u1"); len(turns) != 0 {
		t.Error("Durable store not cleared")
	}
	if turns, _ := fallback.Read(ctx, "u1"); len(turns) != 0 {
		t.Error("Fallback store not cleared")
	}
}
