package models

import "math"

// MarketStatus summarizes overall market sentiment within the summary feed.
type MarketStatus struct {
	Sentiment          string   `json:"sentiment"`
	PositionSuggestion float64  `json:"position_suggestion"`
	Signals            []string `json:"signals,omitempty"`
}

// RecommendationsCount tallies recommended stocks per market.
type RecommendationsCount struct {
	AStocks  int `json:"a_stocks"`
	HKStocks int `json:"hk_stocks"`
	Total    int `json:"total"`
}

// TopPicks lists the highest-rated records per market.
type TopPicks struct {
	AStocks  []StockRecord `json:"a_stocks,omitempty"`
	HKStocks []StockRecord `json:"hk_stocks,omitempty"`
}

// Summary is the summary.json document: the landing-page digest of the
// recommendation pipeline's latest run.
type Summary struct {
	UpdateTime            string               `json:"update_time,omitempty"`
	MarketStatus          MarketStatus         `json:"market_status"`
	RecommendationsCount  RecommendationsCount `json:"recommendations_count"`
	TopPicks              TopPicks             `json:"top_picks"`
	PortfolioRisk         string               `json:"portfolio_risk,omitempty"`
	InvestmentSuggestions []string             `json:"investment_suggestions,omitempty"`
}

// Normalize normalizes top-pick scores in place.
func (s *Summary) Normalize() {
	for i := range s.TopPicks.AStocks {
		s.TopPicks.AStocks[i].Normalize()
	}
	for i := range s.TopPicks.HKStocks {
		s.TopPicks.HKStocks[i].Normalize()
	}
}

// MarketTiming is the market_timing.json document.
type MarketTiming struct {
	MarketSentiment     string   `json:"market_sentiment"`
	RecommendedPosition float64  `json:"recommended_position"`
	Signals             []string `json:"signals,omitempty"`
	AnalysisTime        string   `json:"analysis_time,omitempty"`
}

// PositionTenths converts the 0-1 recommended position into the 0-10
// scale shown to users ("仓位 5 成").
func (m *MarketTiming) PositionTenths() int {
	pos := m.RecommendedPosition
	if pos <= 0 {
		pos = 0.5
	}
	return int(math.Round(pos * 10))
}
