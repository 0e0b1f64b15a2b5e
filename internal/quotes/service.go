// Package quotes serves the investment quotations collection. The
// collection is versioned as a whole document; a version gate decides
// whether the locally cached copy is still current before each read.
package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/tidwall/gjson"

	"github.com/vileo06/investliu/internal/cache"
	"github.com/vileo06/investliu/internal/client"
	"github.com/vileo06/investliu/internal/common"
	"github.com/vileo06/investliu/internal/interfaces"
	"github.com/vileo06/investliu/internal/models"
)

const (
	resourcePath = "/laoliu_quotes.json"

	cacheKey   = "quotes_cache"
	versionKey = "quotes_version"

	// defaultLocalVersion is assumed when no version was ever stored.
	defaultLocalVersion = "0.0.0"
	// defaultRemoteVersion is assumed when the fetched document carries
	// no version field.
	defaultRemoteVersion = "1.0.0"
)

// VersionStatus is the result of a version gate check.
type VersionStatus struct {
	HasUpdate bool   `json:"has_update"`
	Version   string `json:"version"`
}

// Service fetches and caches the quotations document.
type Service struct {
	fetcher *client.Client
	cache   *cache.Store
	kv      interfaces.KeyValueStorage
	logger  *common.Logger
	ttl     time.Duration
}

// NewService creates a quotations service. ttl bounds the cached
// document lifetime (24h in the default configuration).
func NewService(fetcher *client.Client, store *cache.Store, kv interfaces.KeyValueStorage, logger *common.Logger, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{
		fetcher: fetcher,
		cache:   store,
		kv:      kv,
		logger:  logger,
		ttl:     ttl,
	}
}

// CheckVersion compares the remote document version against the locally
// stored one. A newer remote invalidates the cached document and
// persists the new version. Any fetch failure is swallowed and reported
// as "no update" with the local version.
func (s *Service) CheckVersion(ctx context.Context) VersionStatus {
	local := s.localVersion(ctx)

	opts := s.fetcher.NewOptions(resourcePath)
	opts.Silent = true
	// No cache key: the gate must see the live document, not the copy
	// it is gating.
	raw, err := s.fetcher.Fetch(ctx, opts)
	if err != nil {
		s.logger.Debug().Str("error", err.Error()).Msg("version check fetch failed")
		return VersionStatus{HasUpdate: false, Version: local}
	}

	remote := gjson.GetBytes(raw, "version").String()
	if remote == "" {
		remote = defaultRemoteVersion
	}

	if CompareVersions(remote, local) <= 0 {
		return VersionStatus{HasUpdate: false, Version: local}
	}

	s.cache.Invalidate(ctx, cacheKey)
	if err := s.kv.Set(ctx, versionKey, remote); err != nil {
		s.logger.Warn().Str("error", err.Error()).Msg("failed to persist quotes version")
	}
	s.logger.Info().Str("local", local).Str("remote", remote).Msg("quotations updated")
	return VersionStatus{HasUpdate: true, Version: remote}
}

// Get returns the quotations document. When the version gate reports no
// update the cached copy is preferred; otherwise the document is fetched
// and the cache repopulated.
func (s *Service) Get(ctx context.Context) (*models.QuotesDocument, error) {
	status := s.CheckVersion(ctx)

	if !status.HasUpdate {
		var doc models.QuotesDocument
		if s.cache.Get(ctx, cacheKey, &doc) {
			return &doc, nil
		}
	}

	raw, err := s.fetcher.FetchByPath(ctx, resourcePath, cacheKey, s.ttl)
	if err != nil {
		return nil, err
	}

	var doc models.QuotesDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.New("quotations document is malformed")
	}
	return &doc, nil
}

// DailyQuote picks one quote deterministically per calendar day, cycling
// through the flattened collection by day of year.
func (s *Service) DailyQuote(ctx context.Context) (*models.Quote, error) {
	doc, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	all := doc.AllQuotes()
	if len(all) == 0 {
		return nil, errors.New("no quotations available")
	}
	idx := time.Now().YearDay() % len(all)
	return &all[idx], nil
}

func (s *Service) localVersion(ctx context.Context) string {
	v, err := s.kv.Get(ctx, versionKey)
	if err != nil || v == "" {
		return defaultLocalVersion
	}
	return v
}
