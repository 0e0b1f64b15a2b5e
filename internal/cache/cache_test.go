package cache

import (
	"context"
	"testing"
	"time"

	"github.com/vileo06/investliu/internal/common"
	"github.com/vileo06/investliu/internal/storage/memory"
)

func setupTestCache(t *testing.T) (*Store, *memory.KVStorage) {
	t.Helper()
	kv := memory.NewKVStorage()
	return New(kv, common.NewSilentLogger(), time.Hour), kv
}

func TestSetAndGet(t *testing.T) {
	store, _ := setupTestCache(t)
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	store.Set(ctx, "k1", payload{Name: "summary", Count: 3}, time.Minute)

	var got payload
	if !store.Get(ctx, "k1", &got) {
		t.Fatal("expected cache hit")
	}
	if got.Name != "summary" || got.Count != 3 {
		t.Errorf("unexpected payload: %+v", got)
	}
}

func TestGetMissingKey(t *testing.T) {
	store, _ := setupTestCache(t)

	var out map[string]interface{}
	if store.Get(context.Background(), "absent", &out) {
		t.Error("expected miss for absent key")
	}
}

func TestExpiredEntryIsMiss(t *testing.T) {
	store, _ := setupTestCache(t)
	ctx := context.Background()

	store.Set(ctx, "k1", "value", time.Nanosecond)
	time.Sleep(5 * time.Millisecond)

	var out string
	if store.Get(ctx, "k1", &out) {
		t.Error("expected miss for expired entry")
	}
}

func TestSetOverwrites(t *testing.T) {
	store, _ := setupTestCache(t)
	ctx := context.Background()

	store.Set(ctx, "k1", "old", time.Minute)
	store.Set(ctx, "k1", "new", time.Minute)

	var out string
	if !store.Get(ctx, "k1", &out) {
		t.Fatal("expected cache hit")
	}
	if out != "new" {
		t.Errorf("expected overwrite, got %q", out)
	}
}

func TestZeroTTLUsesDefault(t *testing.T) {
	store, _ := setupTestCache(t)
	ctx := context.Background()

	store.Set(ctx, "k1", "value", 0)

	var out string
	if !store.Get(ctx, "k1", &out) {
		t.Error("expected hit when default TTL applies")
	}
}

func TestCorruptEnvelopeIsMiss(t *testing.T) {
	store, kv := setupTestCache(t)
	ctx := context.Background()

	if err := kv.Set(ctx, "k1", "not json at all"); err != nil {
		t.Fatal(err)
	}

	var out string
	if store.Get(ctx, "k1", &out) {
		t.Error("expected miss for corrupt envelope")
	}
}

func TestWriteFailureSwallowed(t *testing.T) {
	kv := memory.NewKVStorage()
	kv.FailWrites = true
	store := New(kv, common.NewSilentLogger(), time.Hour)
	ctx := context.Background()

	// Must not panic or surface the error.
	store.Set(ctx, "k1", "value", time.Minute)

	var out string
	if store.Get(ctx, "k1", &out) {
		t.Error("expected miss after failed persist")
	}
}

func TestInvalidate(t *testing.T) {
	store, _ := setupTestCache(t)
	ctx := context.Background()

	store.Set(ctx, "k1", "value", time.Minute)
	store.Invalidate(ctx, "k1")

	var out string
	if store.Get(ctx, "k1", &out) {
		t.Error("expected miss after invalidate")
	}
}

func TestClearExpired(t *testing.T) {
	store, kv := setupTestCache(t)
	ctx := context.Background()

	store.Set(ctx, "fresh", "value", time.Minute)
	store.Set(ctx, "stale1", "value", time.Nanosecond)
	store.Set(ctx, "stale2", "value", time.Nanosecond)
	// Non-envelope entries must survive untouched.
	if err := kv.Set(ctx, "quotes_version", "1.2.0"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)

	removed := store.ClearExpired(ctx)
	if removed != 2 {
		t.Errorf("expected 2 removed, got %d", removed)
	}

	var out string
	if !store.Get(ctx, "fresh", &out) {
		t.Error("fresh entry should survive")
	}
	if _, err := kv.Get(ctx, "quotes_version"); err != nil {
		t.Error("plain value should survive clear expired")
	}
}

func TestClearAll(t *testing.T) {
	store, kv := setupTestCache(t)
	ctx := context.Background()

	store.Set(ctx, "k1", "value", time.Minute)
	if err := kv.Set(ctx, "quotes_version", "1.2.0"); err != nil {
		t.Fatal(err)
	}

	store.ClearAll(ctx)

	if kv.Len() != 0 {
		t.Errorf("expected empty storage, got %d keys", kv.Len())
	}
}
