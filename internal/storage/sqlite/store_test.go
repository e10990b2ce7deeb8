package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/samdwyer/mazecrawl/internal/storage"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "saves.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(""); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestGetMissingSlotReturnsNotFound(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	_, err := store.Get(context.Background(), "mazecrawl-save")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get missing slot error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestPutGetOverwritesSlot(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openTempStore(t)
	if err := store.Put(ctx, "slot", "first"); err != nil {
		t.Fatalf("put first: %v", err)
	}
	if err := store.Put(ctx, "slot", "second"); err != nil {
		t.Fatalf("put second: %v", err)
	}

	got, err := store.Get(ctx, "slot")
	if err != nil {
		t.Fatalf("get slot: %v", err)
	}
	if got != "second" {
		t.Fatalf("payload = %q, want %q", got, "second")
	}
}

func TestDeleteSlot(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openTempStore(t)
	if err := store.Put(ctx, "slot", "payload"); err != nil {
		t.Fatalf("put slot: %v", err)
	}
	if err := store.Delete(ctx, "slot"); err != nil {
		t.Fatalf("delete slot: %v", err)
	}
	if err := store.Delete(ctx, "slot"); err != nil {
		t.Fatalf("delete missing slot: %v", err)
	}
	if _, err := store.Get(ctx, "slot"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get deleted slot error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestReopenKeepsData(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "saves.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.Put(ctx, "slot", "kept"); err != nil {
		t.Fatalf("put slot: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get(ctx, "slot")
	if err != nil {
		t.Fatalf("get slot: %v", err)
	}
	if got != "kept" {
		t.Fatalf("payload = %q, want %q", got, "kept")
	}
}

func TestEmptyKeyRejected(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	if err := store.Put(context.Background(), " ", "v"); err == nil {
		t.Fatal("expected empty key error")
	}
}

func TestNilStoreIsNotConfigured(t *testing.T) {
	t.Parallel()

	var store *Store
	if _, err := store.Get(context.Background(), "slot"); err == nil {
		t.Fatal("expected not configured error")
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close nil store: %v", err)
	}
}
