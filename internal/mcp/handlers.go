package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vileo06/investliu/internal/analysis"
	"github.com/vileo06/investliu/internal/config"
	"github.com/vileo06/investliu/internal/models"
	"github.com/vileo06/investliu/internal/screener"
	"github.com/vileo06/investliu/internal/service"
)

// errorResult creates an error CallToolResult with the given message.
func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}

// jsonResult marshals v into a text content result.
func jsonResult(v interface{}) *mcp.CallToolResult {
	out, err := json.Marshal(v)
	if err != nil {
		return errorResult("failed to encode result")
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(string(out))},
	}
}

func versionHandler(svc *service.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		status := svc.Quotes().CheckVersion(ctx)
		return jsonResult(map[string]interface{}{
			"version":        config.GetVersion(),
			"build":          config.GetBuild(),
			"commit":         config.GetGitCommit(),
			"quotes_version": status.Version,
			"has_update":     status.HasUpdate,
		}), nil
	}
}

func summaryHandler(svc *service.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		summary, err := svc.Summary(ctx)
		if err != nil {
			return errorResult("summary data unavailable: " + err.Error()), nil
		}
		return jsonResult(summary), nil
	}
}

func dailyQuoteHandler(svc *service.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		quote, err := svc.Quotes().DailyQuote(ctx)
		if err != nil {
			return errorResult("quotations unavailable: " + err.Error()), nil
		}
		return jsonResult(quote), nil
	}
}

func searchHandler(svc *service.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := r.GetString("query", "")
		if query == "" {
			return errorResult("query is required"), nil
		}
		results, err := svc.Search(ctx, query)
		if err != nil {
			return errorResult("search unavailable: " + err.Error()), nil
		}
		return jsonResult(map[string]interface{}{
			"query":   query,
			"count":   len(results),
			"results": results,
		}), nil
	}
}

func screenHandler(svc *service.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		market := models.ParseMarket(r.GetString("market", "A"))

		if preset := r.GetString("preset", ""); preset != "" {
			records, err := svc.PresetStocks(ctx, market, preset)
			if err != nil {
				return errorResult("stock data unavailable: " + err.Error()), nil
			}
			return jsonResult(map[string]interface{}{
				"market": market,
				"preset": preset,
				"count":  len(records),
				"stocks": records,
			}), nil
		}

		criteria := &screener.Criteria{
			Industry:       r.GetString("industry", ""),
			Recommendation: models.Recommendation(r.GetString("recommendation", "")),
			SearchKeyword:  r.GetString("keyword", ""),
		}
		setIfGiven(r, "min_price", &criteria.MinPrice)
		setIfGiven(r, "max_price", &criteria.MaxPrice)
		setIfGiven(r, "min_pe", &criteria.MinPE)
		setIfGiven(r, "max_pe", &criteria.MaxPE)
		setIfGiven(r, "min_roe", &criteria.MinROE)
		setIfGiven(r, "min_score", &criteria.MinScore)

		records, err := svc.FilterStocks(ctx, market, criteria)
		if err != nil {
			return errorResult("stock data unavailable: " + err.Error()), nil
		}
		return jsonResult(map[string]interface{}{
			"market": market,
			"count":  len(records),
			"stocks": records,
		}), nil
	}
}

func importHandler(svc *service.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		market := models.ParseMarket(r.GetString("market", "A"))
		list, err := svc.ImportLatest(ctx, market)
		if err != nil {
			return errorResult("import failed: " + err.Error()), nil
		}
		return jsonResult(map[string]interface{}{
			"market":      market,
			"count":       len(list.Stocks),
			"last_update": svc.LastUpdate(ctx),
		}), nil
	}
}

func analysisHistoryHandler(analyses *analysis.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entries := analyses.History(ctx)
		if entries == nil {
			entries = []models.AnalysisHistoryEntry{}
		}
		return jsonResult(entries), nil
	}
}

// setIfGiven copies a numeric argument into a criteria field when the
// caller supplied it. The sentinel distinguishes "absent" from zero.
func setIfGiven(r mcp.CallToolRequest, name string, dest **float64) {
	const absent = -1 << 30
	v := r.GetFloat(name, absent)
	if v == absent {
		return
	}
	*dest = &v
}
