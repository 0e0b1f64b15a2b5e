package server

import "net/http"

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// MCP endpoint (JSON-RPC over HTTP)
	if s.app.MCPHandler != nil {
		mux.Handle("/mcp", s.app.MCPHandler)
	}

	// API routes
	mux.HandleFunc("/api/health", s.app.HealthHandler.ServeHTTP)
	mux.HandleFunc("/api/version", s.app.VersionHandler.ServeHTTP)
	mux.HandleFunc("/api/summary", s.app.SummaryHandler.ServeHTTP)
	mux.HandleFunc("/api/market-timing", s.app.MarketTimingHandler.ServeHTTP)
	mux.HandleFunc("/api/dashboard", s.app.DashboardHandler.ServeHTTP)
	mux.HandleFunc("/api/stocks", s.app.StocksHandler.ServeHTTP)
	mux.HandleFunc("/api/search", s.app.SearchHandler.ServeHTTP)
	mux.HandleFunc("/api/search/history", s.app.SearchHandler.ServeHistory)
	mux.HandleFunc("/api/quotes", s.app.QuotesHandler.ServeHTTP)
	mux.HandleFunc("/api/quotes/daily", s.app.QuotesHandler.ServeDaily)
	mux.HandleFunc("/api/settings", s.app.SettingsHandler.ServeHTTP)
	mux.HandleFunc("/api/history/analysis", s.app.AnalysisHandler.ServeHTTP)
	mux.HandleFunc("/api/analysis/samples", s.app.AnalysisHandler.ServeSamples)
	mux.HandleFunc("/api/portfolio", s.app.PortfolioHandler.ServeHTTP)
	mux.HandleFunc("/api/cache", s.app.CacheHandler.ServeHTTP)
	mux.HandleFunc("/api/import", s.app.ImportHandler.ServeHTTP)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.handleNotFound)

	return mux
}

// handleNotFound returns a JSON 404 for unmatched API routes.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":"Not Found","message":"The requested endpoint does not exist"}`))
}
