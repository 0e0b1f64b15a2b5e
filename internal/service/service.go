// Package service is the data layer behind the HTTP and MCP surfaces.
// It resolves each document through the fetch client's read-through
// cache and normalizes scores at the ingestion boundary.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vileo06/investliu/internal/cache"
	"github.com/vileo06/investliu/internal/client"
	"github.com/vileo06/investliu/internal/common"
	"github.com/vileo06/investliu/internal/config"
	"github.com/vileo06/investliu/internal/interfaces"
	"github.com/vileo06/investliu/internal/models"
	"github.com/vileo06/investliu/internal/quotes"
	"github.com/vileo06/investliu/internal/screener"
	"github.com/vileo06/investliu/internal/search"
)

// Resource paths on the data host.
const (
	pathSummary         = "/summary.json"
	pathMarketTiming    = "/market_timing.json"
	pathStocksA         = "/stocks_a.json"
	pathStocksHK        = "/stocks_hk.json"
	pathSearchIndex     = "/stock_search_index.json"
	pathAnalysisSamples = "/analysis_samples.json"
)

// Cache keys.
const (
	keySummary      = "summary_data"
	keyMarketTiming = "market_timing"
	keyStocksA      = "stocks_a"
	keyStocksHK     = "stocks_hk"
	keySearchIndex  = "stock_search"
	keySamples      = "analysis_samples"

	keyStocksLastUpdate = "stocks_last_update"
	keyLastDataUpdate   = "last_data_update"
)

// Service aggregates the precomputed recommendation documents.
type Service struct {
	cfg     *config.Config
	logger  *common.Logger
	fetcher *client.Client
	cache   *cache.Store
	kv      interfaces.KeyValueStorage
	quotes  *quotes.Service
}

func New(cfg *config.Config, logger *common.Logger, fetcher *client.Client, store *cache.Store, kv interfaces.KeyValueStorage, quotesSvc *quotes.Service) *Service {
	return &Service{
		cfg:     cfg,
		logger:  logger,
		fetcher: fetcher,
		cache:   store,
		kv:      kv,
		quotes:  quotesSvc,
	}
}

// Quotes exposes the quotations service.
func (s *Service) Quotes() *quotes.Service {
	return s.quotes
}

// Summary returns the daily market summary.
func (s *Service) Summary(ctx context.Context) (*models.Summary, error) {
	raw, err := s.fetcher.FetchByPath(ctx, pathSummary, keySummary, s.cfg.Storage.GetDefaultTTL())
	if err != nil {
		return nil, err
	}
	var summary models.Summary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil, fmt.Errorf("summary document is malformed: %w", err)
	}
	summary.Normalize()
	return &summary, nil
}

// MarketTiming returns the position/timing advice document.
func (s *Service) MarketTiming(ctx context.Context) (*models.MarketTiming, error) {
	raw, err := s.fetcher.FetchByPath(ctx, pathMarketTiming, keyMarketTiming, s.cfg.Storage.GetDefaultTTL())
	if err != nil {
		return nil, err
	}
	var timing models.MarketTiming
	if err := json.Unmarshal(raw, &timing); err != nil {
		return nil, fmt.Errorf("market timing document is malformed: %w", err)
	}
	return &timing, nil
}

// Stocks returns one market's recommendation list with normalized
// scores. Lists are truncated to at most 100 records.
func (s *Service) Stocks(ctx context.Context, market models.MarketType) (*models.StockList, error) {
	path, key := stockResource(market)
	raw, err := s.fetcher.FetchByPath(ctx, path, key, s.cfg.Storage.GetDefaultTTL())
	if err != nil {
		return nil, err
	}
	var list models.StockList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("stock list document is malformed: %w", err)
	}
	if list.Market == "" {
		list.Market = market
	}
	if len(list.Stocks) > 100 {
		list.Stocks = list.Stocks[:100]
	}
	list.Normalize()
	return &list, nil
}

// FilterStocks applies criteria over one market's list.
func (s *Service) FilterStocks(ctx context.Context, market models.MarketType, criteria *screener.Criteria) ([]models.StockRecord, error) {
	list, err := s.Stocks(ctx, market)
	if err != nil {
		return nil, err
	}
	return screener.Apply(list.Stocks, criteria), nil
}

// PresetStocks applies one of the fixed quick filters over one market's
// list.
func (s *Service) PresetStocks(ctx context.Context, market models.MarketType, preset string) ([]models.StockRecord, error) {
	list, err := s.Stocks(ctx, market)
	if err != nil {
		return nil, err
	}
	return screener.ApplyPreset(list.Stocks, preset), nil
}

// SearchIndex returns the prebuilt search index.
func (s *Service) SearchIndex(ctx context.Context) (*models.SearchIndex, error) {
	raw, err := s.fetcher.FetchByPath(ctx, pathSearchIndex, keySearchIndex, common.FreshnessSearchIndex)
	if err != nil {
		return nil, err
	}
	var index models.SearchIndex
	if err := json.Unmarshal(raw, &index); err != nil {
		return nil, fmt.Errorf("search index document is malformed: %w", err)
	}
	return &index, nil
}

// AnalysisSamples returns the published example analyses.
func (s *Service) AnalysisSamples(ctx context.Context) ([]models.AnalysisRecord, error) {
	raw, err := s.fetcher.FetchByPath(ctx, pathAnalysisSamples, keySamples, s.cfg.Storage.GetDefaultTTL())
	if err != nil {
		return nil, err
	}
	var samples []models.AnalysisRecord
	if err := json.Unmarshal(raw, &samples); err != nil {
		return nil, fmt.Errorf("analysis samples document is malformed: %w", err)
	}
	return samples, nil
}

// Search ranks the query against the prebuilt index. When the index is
// unavailable it degrades to substring filtering over both in-memory
// lists.
func (s *Service) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	index, err := s.SearchIndex(ctx)
	if err == nil && len(index.Stocks) > 0 {
		return search.Search(index, query), nil
	}
	s.logger.Warn().Str("query", query).Msg("search index unavailable, using fallback")

	var records []models.StockRecord
	for _, market := range []models.MarketType{models.MarketA, models.MarketHK} {
		list, err := s.Stocks(ctx, market)
		if err != nil {
			continue
		}
		records = append(records, list.Stocks...)
	}
	matches := search.Fallback(records, query)
	results := make([]models.SearchResult, 0, len(matches))
	for _, r := range matches {
		results = append(results, models.SearchResult{
			SearchIndexEntry: models.SearchIndexEntry{
				Code:     r.Code,
				Name:     r.Name,
				Industry: r.Industry,
				Market:   r.Market,
			},
		})
	}
	return results, nil
}

// Dashboard is the batch load behind the home view.
type Dashboard struct {
	Summary      *models.Summary        `json:"summary"`
	MarketTiming *models.MarketTiming   `json:"market_timing"`
	Quotes       *models.QuotesDocument `json:"quotes,omitempty"`
}

// LoadDashboard fetches summary, market timing, and quotations
// concurrently. All fetches settle before return; any failure surfaces
// as a single aggregate error.
func (s *Service) LoadDashboard(ctx context.Context) (*Dashboard, error) {
	var dash Dashboard

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		summary, err := s.Summary(gctx)
		if err != nil {
			return fmt.Errorf("summary: %w", err)
		}
		dash.Summary = summary
		return nil
	})
	g.Go(func() error {
		timing, err := s.MarketTiming(gctx)
		if err != nil {
			return fmt.Errorf("market timing: %w", err)
		}
		dash.MarketTiming = timing
		return nil
	})
	g.Go(func() error {
		doc, err := s.quotes.Get(gctx)
		if err != nil {
			// Quotations are decorative on the dashboard; their absence
			// must not fail the batch.
			s.logger.Warn().Str("error", err.Error()).Msg("dashboard quotes fetch failed")
			return nil
		}
		dash.Quotes = doc
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &dash, nil
}

// ImportLatest drops the cached documents for one market and re-fetches
// them from the network with an extended retry budget. The other
// market's list is preloaded in the background afterwards.
func (s *Service) ImportLatest(ctx context.Context, market models.MarketType) (*models.StockList, error) {
	for _, key := range []string{keyStocksA, keyStocksHK, keySummary, keyMarketTiming} {
		s.cache.Invalidate(ctx, key)
	}

	path, key := stockResource(market)
	opts := s.fetcher.NewOptions(path)
	opts.RetryCount = 3
	opts.CacheKey = key
	opts.CacheTTL = s.cfg.Storage.GetDefaultTTL()

	raw, err := s.fetcher.Fetch(ctx, opts)
	if err != nil {
		return nil, err
	}
	var list models.StockList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("stock list document is malformed: %w", err)
	}
	if list.Market == "" {
		list.Market = market
	}
	list.Normalize()

	now := time.Now().Format(time.RFC3339)
	if err := s.kv.Set(ctx, keyStocksLastUpdate, now); err != nil {
		s.logger.Warn().Str("error", err.Error()).Msg("failed to persist import timestamp")
	}
	if err := s.kv.Set(ctx, keyLastDataUpdate, now); err != nil {
		s.logger.Warn().Str("error", err.Error()).Msg("failed to persist import timestamp")
	}

	go s.preloadOther(market)

	return &list, nil
}

// LastUpdate returns the recorded import timestamp, or "" when no
// import has run.
func (s *Service) LastUpdate(ctx context.Context) string {
	v, err := s.kv.Get(ctx, keyStocksLastUpdate)
	if err != nil {
		return ""
	}
	return v
}

// NeedsRefresh reports whether the recommendation lists are older than
// their publish cadence. Unknown or unparsable import times count as
// stale.
func (s *Service) NeedsRefresh(ctx context.Context) bool {
	v, err := s.kv.Get(ctx, keyStocksLastUpdate)
	if err != nil {
		return true
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return true
	}
	return !common.IsFresh(t, common.FreshnessStocks)
}

// ClearCache wipes all persisted entries.
func (s *Service) ClearCache(ctx context.Context) {
	s.cache.ClearAll(ctx)
}

// preloadOther warms the cache for the market the user did not import.
// Best effort with a single retry; runs detached from the request.
func (s *Service) preloadOther(imported models.MarketType) {
	other := models.MarketHK
	if imported == models.MarketHK {
		other = models.MarketA
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	path, key := stockResource(other)
	opts := s.fetcher.NewOptions(path)
	opts.RetryCount = 1
	opts.Silent = true
	opts.CacheKey = key
	opts.CacheTTL = s.cfg.Storage.GetDefaultTTL()

	if _, err := s.fetcher.Fetch(ctx, opts); err != nil {
		s.logger.Debug().Str("market", string(other)).Str("error", err.Error()).Msg("preload failed")
	}
}

func stockResource(market models.MarketType) (path, cacheKey string) {
	if market == models.MarketHK {
		return pathStocksHK, keyStocksHK
	}
	return pathStocksA, keyStocksA
}
