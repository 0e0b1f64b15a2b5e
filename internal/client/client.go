// Package client fetches precomputed JSON documents from the static data
// host. It layers retry with fixed delay, a read-through TTL cache, rate
// limiting, an in-flight loading guard, and a dev-mode fixture bypass
// over plain HTTP GET.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/vileo06/investliu/internal/cache"
	"github.com/vileo06/investliu/internal/common"
	"github.com/vileo06/investliu/internal/config"
	"github.com/vileo06/investliu/internal/fixtures"
)

// ErrNoData indicates a 200 response whose body was empty or not valid
// JSON. Callers treat this as "no data" and fall back to cache or
// bundled defaults rather than failing hard.
var ErrNoData = errors.New("no data in response")

const maxBodySize = 8 << 20 // 8MB, documents are small

// Options configures a single fetch. Zero values take the client
// defaults via NewOptions.
type Options struct {
	// URL is an absolute URL; when empty, Path is resolved against the
	// configured base URL.
	URL  string
	Path string

	Method  string
	Headers map[string]string
	Timeout time.Duration

	// Silent suppresses the loading guard around this request.
	Silent bool

	// RetryCount is the number of retries after the first attempt.
	// Negative means "use the configured default".
	RetryCount int

	// CacheKey enables the read-through cache: a fresh entry
	// short-circuits the network; a network success is written back
	// under this key with CacheTTL.
	CacheKey string
	CacheTTL time.Duration
}

// Client performs fetches against the data host.
type Client struct {
	cfg     *config.Config
	logger  *common.Logger
	http    *http.Client
	cache   *cache.Store
	limiter *rate.Limiter
	guard   *LoadingGuard
}

// New creates a fetch client. The cache may be nil, in which case
// read-through caching is disabled.
func New(cfg *config.Config, logger *common.Logger, store *cache.Store) *Client {
	rps := cfg.Source.RateLimit
	if rps <= 0 {
		rps = 10
	}
	return &Client{
		cfg:    cfg,
		logger: logger,
		http: &http.Client{
			Timeout: cfg.Source.GetTimeout(),
		},
		cache:   store,
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
		guard:   NewLoadingGuard(),
	}
}

// Guard exposes the loading guard so callers can observe in-flight state.
func (c *Client) Guard() *LoadingGuard {
	return c.guard
}

// NewOptions fills an Options with the configured defaults for fields
// left at their zero value.
func (c *Client) NewOptions(path string) Options {
	return Options{
		Path:       path,
		Method:     http.MethodGet,
		Timeout:    c.cfg.Source.GetTimeout(),
		RetryCount: c.cfg.Source.RetryCount,
	}
}

// FetchByPath fetches a resource path with default options and
// read-through caching under the given key.
func (c *Client) FetchByPath(ctx context.Context, path, cacheKey string, ttl time.Duration) (json.RawMessage, error) {
	opts := c.NewOptions(path)
	opts.CacheKey = cacheKey
	opts.CacheTTL = ttl
	return c.Fetch(ctx, opts)
}

// Fetch executes a request per opts and returns the raw JSON body.
//
// Order of resolution: dev fixture bypass, cache read, network with
// retries, cache write-back. A cached hit never touches the network.
func (c *Client) Fetch(ctx context.Context, opts Options) (json.RawMessage, error) {
	if opts.Method == "" {
		opts.Method = http.MethodGet
	}
	if opts.RetryCount < 0 {
		opts.RetryCount = c.cfg.Source.RetryCount
	}

	url := c.resolveURL(opts)

	// Dev bypass serves bundled fixtures and skips cache and network
	// entirely. Off unless the process runs with environment=dev.
	if c.cfg.IsDevMode() {
		if data, ok := fixtures.Lookup(pathOf(opts)); ok {
			c.logger.Debug().Str("path", pathOf(opts)).Msg("serving bundled fixture")
			return data, nil
		}
	}

	if opts.CacheKey != "" && c.cache != nil {
		if data, ok := c.cache.GetRaw(ctx, opts.CacheKey); ok {
			c.logger.Debug().Str("key", opts.CacheKey).Msg("cache hit")
			return data, nil
		}
	}

	if !opts.Silent {
		c.guard.Begin(pathOf(opts))
		defer c.guard.End(pathOf(opts))
	}

	data, err := c.fetchWithRetry(ctx, url, opts)
	if err != nil {
		return nil, err
	}

	if opts.CacheKey != "" && c.cache != nil {
		c.cache.Set(ctx, opts.CacheKey, json.RawMessage(data), opts.CacheTTL)
	}
	return data, nil
}

// fetchWithRetry runs the attempt loop: 2xx with a JSON body wins
// immediately, 5xx and transport failures retry after a fixed delay,
// any other status is terminal.
func (c *Client) fetchWithRetry(ctx context.Context, url string, opts Options) (json.RawMessage, error) {
	attempts := opts.RetryCount + 1
	delay := c.cfg.Source.GetRetryDelay()

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &RequestError{URL: url, Class: classify(err), Attempts: attempt, Err: err}
		}

		data, retryable, err := c.doRequest(ctx, url, opts)
		if err == nil {
			return data, nil
		}
		lastErr = err

		if !retryable {
			c.logger.Warn().Str("url", url).Str("error", err.Error()).Msg("request failed, not retryable")
			return nil, &RequestError{URL: url, Class: classify(err), Attempts: attempt, Err: err}
		}
		if attempt == attempts {
			break
		}

		c.logger.Warn().
			Str("url", url).
			Int("attempt", attempt).
			Str("error", err.Error()).
			Msg("request failed, retrying")

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, &RequestError{URL: url, Class: classify(ctx.Err()), Attempts: attempt, Err: ctx.Err()}
		case <-timer.C:
		}
	}

	return nil, &RequestError{URL: url, Class: classify(lastErr), Attempts: attempts, Err: lastErr}
}

// doRequest performs one HTTP attempt. The second return reports
// whether the failure is retryable.
func (c *Client) doRequest(ctx context.Context, url string, opts Options) (json.RawMessage, bool, error) {
	reqCtx := ctx
	cancel := func() {}
	if opts.Timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
	}
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, opts.Method, url, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// Transport-level failure: DNS, refused connection, timeout.
		return nil, true, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, true, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("server returned %d", resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, false, fmt.Errorf("server returned %d", resp.StatusCode)
	}

	if len(body) == 0 || !json.Valid(body) {
		return nil, false, ErrNoData
	}
	return body, false, nil
}

func (c *Client) resolveURL(opts Options) string {
	if opts.URL != "" {
		return opts.URL
	}
	p := opts.Path
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	base := strings.TrimRight(c.cfg.Source.BaseURL, "/")
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return base + p
}

func pathOf(opts Options) string {
	if opts.Path != "" {
		return opts.Path
	}
	return opts.URL
}
