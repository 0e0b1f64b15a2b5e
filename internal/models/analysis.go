package models

import "time"

// AnalysisRecord is a full saved analysis for one stock.
type AnalysisRecord struct {
	Code       string     `json:"code"`
	Name       string     `json:"name"`
	Market     MarketType `json:"market"`
	Score      float64    `json:"score"`
	Evaluation string     `json:"evaluation,omitempty"`
	SavedAt    time.Time  `json:"save_time"`
}

// AnalysisHistoryEntry is the index entry pointing at a separately stored
// AnalysisRecord.
type AnalysisHistoryEntry struct {
	Code  string    `json:"code"`
	Name  string    `json:"name"`
	Score float64   `json:"score"`
	Time  time.Time `json:"time"`
	Key   string    `json:"key"`
}
