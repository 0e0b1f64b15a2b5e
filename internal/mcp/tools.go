package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vileo06/investliu/internal/analysis"
	"github.com/vileo06/investliu/internal/service"
)

// RegisterTools registers every tool on the MCP server and returns the
// count.
func RegisterTools(s *server.MCPServer, svc *service.Service, analyses *analysis.Store) int {
	s.AddTool(versionTool(), versionHandler(svc))
	s.AddTool(summaryTool(), summaryHandler(svc))
	s.AddTool(dailyQuoteTool(), dailyQuoteHandler(svc))
	s.AddTool(searchTool(), searchHandler(svc))
	s.AddTool(screenTool(), screenHandler(svc))
	s.AddTool(importTool(), importHandler(svc))
	s.AddTool(analysisHistoryTool(), analysisHistoryHandler(analyses))
	return 7
}

func versionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get service version and quotations data version. Use this to verify connectivity."),
	)
}

func summaryTool() mcp.Tool {
	return mcp.NewTool("get_summary",
		mcp.WithDescription("Get the daily market summary: sentiment, position suggestion, recommendation counts, and top picks for A-share and Hong Kong markets."),
	)
}

func dailyQuoteTool() mcp.Tool {
	return mcp.NewTool("get_daily_quote",
		mcp.WithDescription("Get today's investment quotation."),
	)
}

func searchTool() mcp.Tool {
	return mcp.NewTool("search_stocks",
		mcp.WithDescription("Search stocks by code, name, industry, or keyword. Returns the top 10 ranked matches."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Free-text search query, e.g. a stock code or a partial Chinese name."),
		),
	)
}

func screenTool() mcp.Tool {
	return mcp.NewTool("screen_stocks",
		mcp.WithDescription("Filter a market's recommendation list. All given criteria combine with AND; list order is preserved."),
		mcp.WithString("market",
			mcp.Description("Market to screen: A (default) or HK."),
		),
		mcp.WithString("preset",
			mcp.Description("Quick filter preset: high_roe, low_pe, strong_buy, or high_score. Overrides the other criteria."),
		),
		mcp.WithNumber("min_price", mcp.Description("Minimum current price.")),
		mcp.WithNumber("max_price", mcp.Description("Maximum current price.")),
		mcp.WithNumber("min_pe", mcp.Description("Minimum P/E ratio.")),
		mcp.WithNumber("max_pe", mcp.Description("Maximum P/E ratio.")),
		mcp.WithNumber("min_roe", mcp.Description("Minimum ROE percentage.")),
		mcp.WithNumber("min_score", mcp.Description("Minimum score on the 0-100 scale.")),
		mcp.WithString("industry", mcp.Description("Exact industry name, e.g. 银行.")),
		mcp.WithString("recommendation", mcp.Description("Recommendation tier: strong_buy, buy, hold, sell, or strong_sell.")),
		mcp.WithString("keyword", mcp.Description("Substring match against code, name, or industry.")),
	)
}

func importTool() mcp.Tool {
	return mcp.NewTool("import_stock_data",
		mcp.WithDescription("Force a refresh of a market's recommendation list from the data host, bypassing the cache."),
		mcp.WithString("market",
			mcp.Description("Market to import: A (default) or HK."),
		),
	)
}

func analysisHistoryTool() mcp.Tool {
	return mcp.NewTool("get_analysis_history",
		mcp.WithDescription("List recently saved stock analyses, most recent first."),
	)
}
