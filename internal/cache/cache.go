// Package cache provides a best-effort TTL cache over persistent
// key-value storage. Entries are opaque JSON blobs wrapped in an
// expiration envelope; the cache has no knowledge of document structure.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/vileo06/investliu/internal/common"
	"github.com/vileo06/investliu/internal/interfaces"
)

// DefaultTTL is applied when Set is called without an explicit TTL.
const DefaultTTL = time.Hour

// Entry wraps a cached payload with its expiration window.
// Invariant: the entry is valid for read iff now < ExpiresAt.
type Entry struct {
	Data      json.RawMessage `json:"data"`
	StoredAt  time.Time       `json:"stored_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// Store is a TTL cache persisted through a KeyValueStorage. Persistence
// failures are logged and swallowed: the cache is best-effort and callers
// always have a network or bundled-default path behind it.
type Store struct {
	kv         interfaces.KeyValueStorage
	logger     *common.Logger
	defaultTTL time.Duration
}

// New creates a cache store. A non-positive defaultTTL falls back to
// DefaultTTL (1 hour).
func New(kv interfaces.KeyValueStorage, logger *common.Logger, defaultTTL time.Duration) *Store {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &Store{
		kv:         kv,
		logger:     logger,
		defaultTTL: defaultTTL,
	}
}

// Set stores data under key with the given TTL (ttl <= 0 uses the store
// default). Overwrites any existing entry. Marshal or persistence
// failures are logged, never surfaced.
func (s *Store) Set(ctx context.Context, key string, data interface{}, ttl time.Duration) {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	raw, err := json.Marshal(data)
	if err != nil {
		s.logger.Warn().Str("key", key).Str("error", err.Error()).Msg("cache set: marshal failed")
		return
	}

	now := time.Now()
	entry := Entry{
		Data:      raw,
		StoredAt:  now,
		ExpiresAt: now.Add(ttl),
	}

	blob, err := json.Marshal(entry)
	if err != nil {
		s.logger.Warn().Str("key", key).Str("error", err.Error()).Msg("cache set: envelope marshal failed")
		return
	}

	if err := s.kv.Set(ctx, key, string(blob)); err != nil {
		s.logger.Warn().Str("key", key).Str("error", err.Error()).Msg("cache set: persist failed")
	}
}

// GetRaw returns the cached payload for key if present and unexpired.
// Missing keys, expired entries, corrupted envelopes, and storage read
// failures all synthesize a miss.
func (s *Store) GetRaw(ctx context.Context, key string) (json.RawMessage, bool) {
	blob, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, interfaces.ErrNotFound) {
			s.logger.Warn().Str("key", key).Str("error", err.Error()).Msg("cache get: storage read failed")
		}
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal([]byte(blob), &entry); err != nil {
		return nil, false
	}

	if entry.ExpiresAt.IsZero() || !time.Now().Before(entry.ExpiresAt) {
		return nil, false
	}
	return entry.Data, true
}

// Get unmarshals the cached payload for key into out. Returns false on
// any miss condition; out is untouched in that case.
func (s *Store) Get(ctx context.Context, key string, out interface{}) bool {
	raw, ok := s.GetRaw(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		s.logger.Warn().Str("key", key).Str("error", err.Error()).Msg("cache get: payload unmarshal failed")
		return false
	}
	return true
}

// Invalidate removes a single cache entry. Used by the quotations version
// gate when a newer remote version is detected.
func (s *Store) Invalidate(ctx context.Context, key string) {
	if err := s.kv.Delete(ctx, key); err != nil {
		s.logger.Warn().Str("key", key).Str("error", err.Error()).Msg("cache invalidate failed")
	}
}

// ClearExpired removes every stored entry whose expiration has passed and
// returns the number removed. Keys whose values are not cache envelopes
// (settings, version strings, histories) and individual read or delete
// failures are skipped.
func (s *Store) ClearExpired(ctx context.Context) int {
	all, err := s.kv.GetAll(ctx)
	if err != nil {
		s.logger.Warn().Str("error", err.Error()).Msg("cache clear expired: enumerate failed")
		return 0
	}

	now := time.Now()
	removed := 0
	for key, blob := range all {
		var entry Entry
		if err := json.Unmarshal([]byte(blob), &entry); err != nil {
			continue
		}
		if entry.ExpiresAt.IsZero() || now.Before(entry.ExpiresAt) {
			continue
		}
		if err := s.kv.Delete(ctx, key); err != nil {
			s.logger.Warn().Str("key", key).Str("error", err.Error()).Msg("cache clear expired: delete failed")
			continue
		}
		removed++
	}
	return removed
}

// ClearAll unconditionally wipes all persisted entries, cache envelopes
// and plain values alike. Backs the user-initiated "clear cache" action,
// which on the original client wiped device storage wholesale.
func (s *Store) ClearAll(ctx context.Context) {
	all, err := s.kv.GetAll(ctx)
	if err != nil {
		s.logger.Warn().Str("error", err.Error()).Msg("cache clear all: enumerate failed")
		return
	}
	for key := range all {
		if err := s.kv.Delete(ctx, key); err != nil {
			s.logger.Warn().Str("key", key).Str("error", err.Error()).Msg("cache clear all: delete failed")
		}
	}
}
