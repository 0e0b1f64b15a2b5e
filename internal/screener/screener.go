// Package screener filters stock recommendation lists. All active
// criteria combine with AND; filtering is stable and never reorders the
// input.
package screener

import (
	"strings"

	"github.com/vileo06/investliu/internal/models"
)

// Criteria is a set of optional filter dimensions. A nil field imposes
// no constraint on that dimension.
type Criteria struct {
	MinPrice *float64 `json:"min_price,omitempty"`
	MaxPrice *float64 `json:"max_price,omitempty"`
	MinPE    *float64 `json:"min_pe,omitempty"`
	MaxPE    *float64 `json:"max_pe,omitempty"`
	MinROE   *float64 `json:"min_roe,omitempty"`

	Industry       string                `json:"industry,omitempty"`
	Recommendation models.Recommendation `json:"recommendation,omitempty"`

	// MinScore compares against the normalized 0-100 score.
	MinScore *float64 `json:"min_score,omitempty"`

	// SearchKeyword matches case-insensitively against code, name, or
	// industry.
	SearchKeyword string `json:"search_keyword,omitempty"`
}

// Match reports whether a single record satisfies every active
// criterion. Records missing a field compared by a numeric filter fail
// that filter but are unaffected by unrelated ones.
func (c *Criteria) Match(r *models.StockRecord) bool {
	if c.MinPrice != nil && r.CurrentPrice < *c.MinPrice {
		return false
	}
	if c.MaxPrice != nil && r.CurrentPrice > *c.MaxPrice {
		return false
	}
	if c.MinPE != nil && (r.PERatio == nil || *r.PERatio < *c.MinPE) {
		return false
	}
	if c.MaxPE != nil && (r.PERatio == nil || *r.PERatio > *c.MaxPE) {
		return false
	}
	if c.MinROE != nil && (r.ROE == nil || *r.ROE < *c.MinROE) {
		return false
	}
	if c.Industry != "" && r.Industry != c.Industry {
		return false
	}
	if c.Recommendation != "" && r.Recommendation != c.Recommendation {
		return false
	}
	if c.MinScore != nil && r.Score < *c.MinScore {
		return false
	}
	if c.SearchKeyword != "" && !MatchKeyword(r, c.SearchKeyword) {
		return false
	}
	return true
}

// Apply returns the records matching the criteria, preserving input
// order.
func Apply(records []models.StockRecord, c *Criteria) []models.StockRecord {
	if c == nil {
		c = &Criteria{}
	}
	out := make([]models.StockRecord, 0, len(records))
	for i := range records {
		if c.Match(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}

// MatchKeyword reports whether kw matches the record's code, name, or
// industry by case-insensitive substring containment.
func MatchKeyword(r *models.StockRecord, kw string) bool {
	kw = strings.ToLower(strings.TrimSpace(kw))
	if kw == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Code), kw) ||
		strings.Contains(strings.ToLower(r.Name), kw) ||
		strings.Contains(strings.ToLower(r.Industry), kw)
}

// Preset names for the fixed quick filters.
const (
	PresetHighROE   = "high_roe"
	PresetLowPE     = "low_pe"
	PresetStrongBuy = "strong_buy"
	PresetHighScore = "high_score"
)

// ApplyPreset applies one of the fixed quick filters over the full
// input list. Presets are not composable with each other. Unknown
// preset names return the input unchanged.
func ApplyPreset(records []models.StockRecord, preset string) []models.StockRecord {
	match := presetMatcher(preset)
	if match == nil {
		return records
	}
	out := make([]models.StockRecord, 0, len(records))
	for i := range records {
		if match(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}

func presetMatcher(preset string) func(*models.StockRecord) bool {
	switch preset {
	case PresetHighROE:
		return func(r *models.StockRecord) bool {
			return r.ROE != nil && *r.ROE >= 15
		}
	case PresetLowPE:
		return func(r *models.StockRecord) bool {
			return r.PERatio != nil && *r.PERatio > 0 && *r.PERatio <= 20
		}
	case PresetStrongBuy:
		return func(r *models.StockRecord) bool {
			return r.Recommendation == models.RecommendationStrongBuy ||
				r.Recommendation == models.RecommendationBuy
		}
	case PresetHighScore:
		return func(r *models.StockRecord) bool {
			return r.Score >= 80
		}
	default:
		return nil
	}
}
