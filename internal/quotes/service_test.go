package quotes

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vileo06/investliu/internal/cache"
	"github.com/vileo06/investliu/internal/client"
	"github.com/vileo06/investliu/internal/common"
	"github.com/vileo06/investliu/internal/config"
	"github.com/vileo06/investliu/internal/storage/memory"
)

func quotesBody(version string) string {
	return fmt.Sprintf(`{
		"version": %q,
		"categories": {
			"value": {
				"name": "价值投资",
				"quotes": [
					{"id": "v001", "content": "买股票就是买公司。", "author": "老刘"}
				]
			}
		}
	}`, version)
}

func setupService(t *testing.T, baseURL string) (*Service, *memory.KVStorage) {
	t.Helper()
	cfg := config.NewDefaultConfig()
	cfg.Source.BaseURL = baseURL
	cfg.Source.RetryDelay = "5ms"
	cfg.Source.RetryCount = 0
	cfg.Source.RateLimit = 1000

	logger := common.NewSilentLogger()
	kv := memory.NewKVStorage()
	store := cache.New(kv, logger, time.Hour)
	fetcher := client.New(cfg, logger, store)
	return NewService(fetcher, store, kv, logger, 24*time.Hour), kv
}

func TestCheckVersionDetectsUpdate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(quotesBody("1.2.0")))
	}))
	defer srv.Close()

	svc, kv := setupService(t, srv.URL)
	ctx := context.Background()

	status := svc.CheckVersion(ctx)
	if !status.HasUpdate {
		t.Fatal("expected update when local version is absent")
	}
	if status.Version != "1.2.0" {
		t.Errorf("expected version 1.2.0, got %s", status.Version)
	}
	if v, err := kv.Get(ctx, "quotes_version"); err != nil || v != "1.2.0" {
		t.Errorf("expected persisted version 1.2.0, got %q (%v)", v, err)
	}
}

func TestCheckVersionNoUpdateWhenEqual(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(quotesBody("1.2.0")))
	}))
	defer srv.Close()

	svc, kv := setupService(t, srv.URL)
	ctx := context.Background()
	if err := kv.Set(ctx, "quotes_version", "1.2.0"); err != nil {
		t.Fatal(err)
	}

	status := svc.CheckVersion(ctx)
	if status.HasUpdate {
		t.Error("equal versions must not report an update")
	}
	if status.Version != "1.2.0" {
		t.Errorf("expected local version, got %s", status.Version)
	}
}

func TestCheckVersionFetchFailureSwallowed(t *testing.T) {
	svc, kv := setupService(t, "http://127.0.0.1:1")
	ctx := context.Background()
	if err := kv.Set(ctx, "quotes_version", "1.1.0"); err != nil {
		t.Fatal(err)
	}

	status := svc.CheckVersion(ctx)
	if status.HasUpdate {
		t.Error("fetch failure must not report an update")
	}
	if status.Version != "1.1.0" {
		t.Errorf("expected local version on failure, got %s", status.Version)
	}
}

func TestCheckVersionMissingFieldUsesDefault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"categories": {}}`))
	}))
	defer srv.Close()

	svc, _ := setupService(t, srv.URL)

	// No local version (0.0.0) vs implied remote 1.0.0.
	status := svc.CheckVersion(context.Background())
	if !status.HasUpdate {
		t.Error("expected update against implied remote default")
	}
	if status.Version != "1.0.0" {
		t.Errorf("expected default remote version, got %s", status.Version)
	}
}

func TestVersionBumpInvalidatesCache(t *testing.T) {
	var version atomic.Value
	version.Store("1.0.0")
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(quotesBody(version.Load().(string))))
	}))
	defer srv.Close()

	svc, _ := setupService(t, srv.URL)
	ctx := context.Background()

	doc, err := svc.Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Version != "1.0.0" {
		t.Errorf("expected 1.0.0, got %s", doc.Version)
	}

	version.Store("1.1.0")
	doc, err = svc.Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Version != "1.1.0" {
		t.Errorf("expected refreshed document 1.1.0, got %s", doc.Version)
	}
}

func TestGetServesCacheWhenCurrent(t *testing.T) {
	// Counts only non-gate fetches by distinguishing nothing: the gate
	// always fetches, so a stable version means exactly one extra call
	// for the document itself and then gate-only calls.
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(quotesBody("1.0.0")))
	}))
	defer srv.Close()

	svc, _ := setupService(t, srv.URL)
	ctx := context.Background()

	if _, err := svc.Get(ctx); err != nil {
		t.Fatal(err)
	}
	after := atomic.LoadInt32(&calls)

	if _, err := svc.Get(ctx); err != nil {
		t.Fatal(err)
	}
	// Second Get adds exactly one call (the gate), not two.
	if got := atomic.LoadInt32(&calls); got != after+1 {
		t.Errorf("expected cached document read, calls went %d -> %d", after, got)
	}
}

func TestDailyQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(quotesBody("1.0.0")))
	}))
	defer srv.Close()

	svc, _ := setupService(t, srv.URL)

	q, err := svc.DailyQuote(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if q.Content == "" {
		t.Error("expected a quote with content")
	}
}
