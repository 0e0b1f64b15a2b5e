package models

// SearchIndexEntry is a reduced projection of a StockRecord used for
// free-text lookup without scanning full records.
type SearchIndexEntry struct {
	Code     string     `json:"code"`
	Name     string     `json:"name"`
	Industry string     `json:"industry,omitempty"`
	Market   MarketType `json:"market,omitempty"`
	Keywords []string   `json:"keywords,omitempty"`
}

// SearchIndex is the stock_search_index.json document: a flat index of
// ticker metadata keyed by code.
type SearchIndex struct {
	UpdateTime string                      `json:"update_time,omitempty"`
	Stocks     map[string]SearchIndexEntry `json:"stocks"`
}

// SearchResult is an index entry with its match score.
type SearchResult struct {
	SearchIndexEntry
	Score int `json:"search_score"`
}
