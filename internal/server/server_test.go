package server

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vileo06/investliu/internal/app"
	"github.com/vileo06/investliu/internal/common"
	"github.com/vileo06/investliu/internal/config"
)

func testDataHost(t *testing.T) *httptest.Server {
	t.Helper()
	bodies := map[string]string{
		"/summary.json": `{
			"market_status": {"sentiment": "neutral", "position_suggestion": 0.5},
			"recommendations_count": {"a_stocks": 1, "hk_stocks": 0, "total": 1},
			"top_picks": {}
		}`,
		"/market_timing.json": `{"market_sentiment": "neutral", "recommended_position": 0.6}`,
		"/stocks_a.json": `{
			"market": "A",
			"stocks": [
				{"code": "000001", "name": "平安银行", "market_type": "A", "current_price": 10.85, "pe_ratio": 5.2, "roe": 11.8, "industry": "银行", "recommendation": "buy", "laoliu_score": 82}
			]
		}`,
		"/stocks_hk.json": `{"market": "HK", "stocks": []}`,
		"/stock_search_index.json": `{
			"stocks": {"000001": {"code": "000001", "name": "平安银行", "industry": "银行"}}
		}`,
		"/analysis_samples.json": `[
			{"code": "000001", "name": "平安银行", "market": "A", "score": 82, "evaluation": "低估值高股息", "save_time": "2025-01-14T15:30:00+08:00"}
		]`,
		"/laoliu_quotes.json": `{
			"version": "1.0.0",
			"categories": {"value": {"name": "价值投资", "quotes": [{"id": "v1", "content": "买股票就是买公司。", "author": "老刘"}]}}
		}`,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := bodies[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func setupServer(t *testing.T) *Server {
	t.Helper()
	host := testDataHost(t)

	cfg := config.NewDefaultConfig()
	cfg.Source.BaseURL = host.URL
	cfg.Source.RetryDelay = "5ms"
	cfg.Source.RetryCount = 0
	cfg.Source.RateLimit = 1000
	cfg.Storage.Badger.Path = t.TempDir()

	application, err := app.New(cfg, common.NewSilentLogger())
	if err != nil {
		t.Fatalf("failed to initialize app: %v", err)
	}
	t.Cleanup(func() { application.Close() })

	return New(application)
}

func doRequest(t *testing.T, s *Server, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	s := setupServer(t)
	rec := doRequest(t, s, http.MethodGet, "/api/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["status"] != "ok" {
		t.Errorf("unexpected health response: %v", resp)
	}
}

func TestCorrelationIDHeader(t *testing.T) {
	s := setupServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/health", "")
	if rec.Header().Get("X-Correlation-ID") == "" {
		t.Error("expected generated correlation ID")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "test-correlation-42")
	rec2 := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec2, req)
	if got := rec2.Header().Get("X-Correlation-ID"); got != "test-correlation-42" {
		t.Errorf("expected propagated correlation ID, got %q", got)
	}
}

func TestSecurityHeaders(t *testing.T) {
	s := setupServer(t)
	rec := doRequest(t, s, http.MethodGet, "/api/health", "")
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing X-Content-Type-Options header")
	}
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("missing X-Frame-Options header")
	}
}

func TestUnknownAPIRouteReturnsJSON404(t *testing.T) {
	s := setupServer(t)
	rec := doRequest(t, s, http.MethodGet, "/api/nonsense", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON 404, got content type %q", ct)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s := setupServer(t)
	rec := doRequest(t, s, http.MethodPost, "/api/summary", "{}")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}

func TestVersionEndpointReportsFreshness(t *testing.T) {
	s := setupServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/version", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		QuotesVersion string `json:"quotes_version"`
		DataStale     bool   `json:"data_stale"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.QuotesVersion == "" {
		t.Error("expected a quotes version")
	}
	if !resp.DataStale {
		t.Error("expected stale data before any import")
	}

	doRequest(t, s, http.MethodPost, "/api/import?market=A", "")

	rec = doRequest(t, s, http.MethodGet, "/api/version", "")
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.DataStale {
		t.Error("expected fresh data after import")
	}
}

func TestSummaryEndpoint(t *testing.T) {
	s := setupServer(t)
	rec := doRequest(t, s, http.MethodGet, "/api/summary", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			MarketStatus struct {
				Sentiment string `json:"sentiment"`
			} `json:"market_status"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "ok" || resp.Data.MarketStatus.Sentiment != "neutral" {
		t.Errorf("unexpected summary response: %s", rec.Body.String())
	}
}

func TestStocksEndpointWithFilter(t *testing.T) {
	s := setupServer(t)
	rec := doRequest(t, s, http.MethodGet, "/api/stocks?market=A&min_score=80", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Count int `json:"count"`
		Data  []struct {
			Code  string  `json:"code"`
			Score float64 `json:"score"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 1 || resp.Data[0].Code != "000001" || resp.Data[0].Score != 82 {
		t.Errorf("unexpected stocks response: %s", rec.Body.String())
	}
}

func TestStocksEndpointRejectsBadNumber(t *testing.T) {
	s := setupServer(t)
	rec := doRequest(t, s, http.MethodGet, "/api/stocks?min_pe=abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestSearchEndpointRecordsHistory(t *testing.T) {
	s := setupServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/search?q=平安", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, s, http.MethodGet, "/api/search/history", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Data []string `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Data) != 1 || resp.Data[0] != "平安" {
		t.Errorf("expected recorded history, got %v", resp.Data)
	}
}

func TestSearchEndpointRequiresQuery(t *testing.T) {
	s := setupServer(t)
	rec := doRequest(t, s, http.MethodGet, "/api/search", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	s := setupServer(t)

	rec := doRequest(t, s, http.MethodPut, "/api/settings",
		`{"riskLevel":"high","dataSource":"github","autoRefresh":false,"notifications":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, s, http.MethodGet, "/api/settings", "")
	var resp struct {
		Data struct {
			RiskLevel   string `json:"riskLevel"`
			AutoRefresh bool   `json:"autoRefresh"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data.RiskLevel != "high" || resp.Data.AutoRefresh {
		t.Errorf("unexpected settings: %s", rec.Body.String())
	}
}

func TestCacheClearEndpoint(t *testing.T) {
	s := setupServer(t)

	// Prime the cache, then clear it.
	doRequest(t, s, http.MethodGet, "/api/summary", "")
	rec := doRequest(t, s, http.MethodDelete, "/api/cache", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestQuotesDailyEndpoint(t *testing.T) {
	s := setupServer(t)
	rec := doRequest(t, s, http.MethodGet, "/api/quotes/daily", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data struct {
			Content string `json:"content"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data.Content == "" {
		t.Error("expected a quotation")
	}
}

func TestAnalysisSamplesEndpoint(t *testing.T) {
	s := setupServer(t)
	rec := doRequest(t, s, http.MethodGet, "/api/analysis/samples", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data []struct {
			Code  string  `json:"code"`
			Score float64 `json:"score"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Data) != 1 || resp.Data[0].Code != "000001" || resp.Data[0].Score != 82 {
		t.Errorf("unexpected samples response: %s", rec.Body.String())
	}
}

func TestPortfolioRoundTrip(t *testing.T) {
	s := setupServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/portfolio",
		`{"code":"000001","name":"平安银行","shares":1000,"cost":10,"current":10}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// GET refreshes prices from the cached list (current price 10.85).
	rec = doRequest(t, s, http.MethodGet, "/api/portfolio", "")
	var resp struct {
		Data struct {
			TotalValue float64 `json:"total_value"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if math.Abs(resp.Data.TotalValue-10850) > 0.01 {
		t.Errorf("expected refreshed total value 10850, got %v", resp.Data.TotalValue)
	}

	rec = doRequest(t, s, http.MethodDelete, "/api/portfolio?code=000001", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestImportEndpoint(t *testing.T) {
	s := setupServer(t)
	rec := doRequest(t, s, http.MethodPost, "/api/import?market=A", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Count      int    `json:"count"`
		LastUpdate string `json:"last_update"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 1 || resp.LastUpdate == "" {
		t.Errorf("unexpected import response: %s", rec.Body.String())
	}
}
