// Package app wires all application components together. Configuration,
// storage, the fetch client, and every handler are constructed once here
// and passed by reference; there is no ambient global state.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/vileo06/investliu/internal/analysis"
	"github.com/vileo06/investliu/internal/cache"
	"github.com/vileo06/investliu/internal/client"
	"github.com/vileo06/investliu/internal/common"
	"github.com/vileo06/investliu/internal/config"
	"github.com/vileo06/investliu/internal/handlers"
	"github.com/vileo06/investliu/internal/interfaces"
	"github.com/vileo06/investliu/internal/mcp"
	"github.com/vileo06/investliu/internal/models"
	"github.com/vileo06/investliu/internal/portfolio"
	"github.com/vileo06/investliu/internal/quotes"
	"github.com/vileo06/investliu/internal/search"
	"github.com/vileo06/investliu/internal/service"
	"github.com/vileo06/investliu/internal/settings"
	"github.com/vileo06/investliu/internal/storage"
)

// appConfigKey stores a user-applied base URL override.
const appConfigKey = "app_config"

// App holds all application components and dependencies.
type App struct {
	Config  *config.Config
	Logger  *common.Logger
	Storage interfaces.StorageManager

	Cache   *cache.Store
	Fetcher *client.Client
	Service *service.Service

	// HTTP handlers
	HealthHandler       *handlers.HealthHandler
	VersionHandler      *handlers.VersionHandler
	SummaryHandler      *handlers.SummaryHandler
	MarketTimingHandler *handlers.MarketTimingHandler
	DashboardHandler    *handlers.DashboardHandler
	StocksHandler       *handlers.StocksHandler
	SearchHandler       *handlers.SearchHandler
	QuotesHandler       *handlers.QuotesHandler
	SettingsHandler     *handlers.SettingsHandler
	AnalysisHandler     *handlers.AnalysisHandler
	PortfolioHandler    *handlers.PortfolioHandler
	CacheHandler        *handlers.CacheHandler
	ImportHandler       *handlers.ImportHandler
	MCPHandler          *mcp.Handler
}

// New initializes the application with all dependencies.
func New(cfg *config.Config, logger *common.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
	}

	env := strings.ToLower(strings.TrimSpace(cfg.Environment))
	if cfg.IsDevMode() {
		logger.Warn().Msg("RUNNING IN DEV MODE: bundled fixtures served instead of live data, do not use in production")
	} else if env != "prod" && env != "" {
		logger.Warn().
			Str("environment", cfg.Environment).
			Msg("unrecognized environment value, defaulting to prod behavior")
	}

	manager, err := storage.NewStorageManager(logger, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	a.Storage = manager

	kv := manager.KeyValueStorage()
	a.Cache = cache.New(kv, logger, cfg.Storage.GetDefaultTTL())

	a.applyStoredBaseURL(kv)

	a.Fetcher = client.New(cfg, logger, a.Cache)
	quotesSvc := quotes.NewService(a.Fetcher, a.Cache, kv, logger, cfg.Storage.GetQuotesTTL())
	a.Service = service.New(cfg, logger, a.Fetcher, a.Cache, kv, quotesSvc)

	a.mergeRemoteConfig(kv)

	a.initHandlers(kv)

	logger.Info().Msg("application initialization complete")

	return a, nil
}

// initHandlers initializes all HTTP handlers.
func (a *App) initHandlers(kv interfaces.KeyValueStorage) {
	searchHistory := search.NewHistory(kv, a.Logger, "stock")
	analyses := analysis.NewStore(kv, a.Logger)
	holdings := portfolio.NewManager(kv, a.Logger)
	prefs := settings.NewManager(kv, a.Logger)

	a.HealthHandler = handlers.NewHealthHandler(a.Logger)
	a.VersionHandler = handlers.NewVersionHandler(a.Logger, a.Service)
	a.SummaryHandler = handlers.NewSummaryHandler(a.Logger, a.Service)
	a.MarketTimingHandler = handlers.NewMarketTimingHandler(a.Logger, a.Service)
	a.DashboardHandler = handlers.NewDashboardHandler(a.Logger, a.Service)
	a.StocksHandler = handlers.NewStocksHandler(a.Logger, a.Service)
	a.SearchHandler = handlers.NewSearchHandler(a.Logger, a.Service, searchHistory)
	a.QuotesHandler = handlers.NewQuotesHandler(a.Logger, a.Service)
	a.SettingsHandler = handlers.NewSettingsHandler(a.Logger, prefs)
	a.AnalysisHandler = handlers.NewAnalysisHandler(a.Logger, analyses, a.Service)
	a.PortfolioHandler = handlers.NewPortfolioHandler(a.Logger, holdings, a.Service)
	a.CacheHandler = handlers.NewCacheHandler(a.Logger, a.Cache)
	a.ImportHandler = handlers.NewImportHandler(a.Logger, a.Service)
	a.MCPHandler = mcp.NewHandler(a.Logger, a.Service, analyses)

	a.Logger.Debug().Msg("HTTP handlers initialized")
}

// applyStoredBaseURL restores a previously persisted base URL override.
func (a *App) applyStoredBaseURL(kv interfaces.KeyValueStorage) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	blob, err := kv.Get(ctx, appConfigKey)
	if err != nil {
		return
	}
	var stored models.RemoteConfig
	if err := json.Unmarshal([]byte(blob), &stored); err != nil || stored.BaseURL == "" {
		return
	}
	a.Logger.Info().Str("base_url", stored.BaseURL).Msg("using stored base URL override")
	a.Config.Source.BaseURL = stored.BaseURL
}

// mergeRemoteConfig reads miniprogram_config.json once at startup and
// merges any base URL override over the configured default. Failures
// are logged and ignored; the bundled defaults keep working offline.
func (a *App) mergeRemoteConfig(kv interfaces.KeyValueStorage) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := a.Fetcher.NewOptions("/miniprogram_config.json")
	opts.Silent = true
	opts.RetryCount = 0

	raw, err := a.Fetcher.Fetch(ctx, opts)
	if err != nil {
		a.Logger.Debug().Str("error", err.Error()).Msg("remote config unavailable")
		return
	}

	var remote models.RemoteConfig
	if err := json.Unmarshal(raw, &remote); err != nil {
		a.Logger.Warn().Str("error", err.Error()).Msg("remote config is malformed")
		return
	}
	if remote.BaseURL == "" || remote.BaseURL == a.Config.Source.BaseURL {
		return
	}

	a.Logger.Info().
		Str("base_url", remote.BaseURL).
		Str("update_time", remote.UpdateTime).
		Msg("applying remote base URL override")
	a.Config.Source.BaseURL = remote.BaseURL

	if blob, err := json.Marshal(remote); err == nil {
		if err := kv.Set(ctx, appConfigKey, string(blob)); err != nil {
			a.Logger.Warn().Str("error", err.Error()).Msg("failed to persist base URL override")
		}
	}
}

// Close closes all application resources.
func (a *App) Close() error {
	if a.Storage != nil {
		return a.Storage.Close()
	}
	return nil
}
