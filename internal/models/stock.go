// Package models defines the data documents published by the investliu
// static JSON feeds.
package models

import (
	"regexp"
	"strings"
)

// MarketType identifies which exchange a stock record belongs to.
type MarketType string

const (
	MarketA  MarketType = "A"
	MarketHK MarketType = "HK"
)

// ParseMarket normalizes a market string ("a", "hk", "A", "HK") to a
// MarketType, defaulting to the A-share market.
func ParseMarket(s string) MarketType {
	if strings.EqualFold(strings.TrimSpace(s), string(MarketHK)) {
		return MarketHK
	}
	return MarketA
}

// Recommendation is the advisory tier attached to a stock record.
type Recommendation string

const (
	RecommendationStrongBuy  Recommendation = "strong_buy"
	RecommendationBuy        Recommendation = "buy"
	RecommendationHold       Recommendation = "hold"
	RecommendationSell       Recommendation = "sell"
	RecommendationStrongSell Recommendation = "strong_sell"
)

// DisplayText returns the Chinese display label for a recommendation tier.
// Unknown values fall back to "持有" (hold).
func (r Recommendation) DisplayText() string {
	switch r {
	case RecommendationStrongBuy:
		return "强烈买入"
	case RecommendationBuy:
		return "买入"
	case RecommendationSell:
		return "卖出"
	case RecommendationStrongSell:
		return "强烈卖出"
	default:
		return "持有"
	}
}

// StockRecord is a single precomputed stock recommendation. Records are
// immutable once fetched; a refresh replaces the whole list.
//
// Valuation and quality metrics are nullable since not every issuer has a
// meaningful value (banks without P/S, loss-makers without P/E).
type StockRecord struct {
	Code           string         `json:"code"`
	Name           string         `json:"name"`
	Market         MarketType     `json:"market_type"`
	CurrentPrice   float64        `json:"current_price"`
	ChangePercent  float64        `json:"change_percent"`
	PERatio        *float64       `json:"pe_ratio,omitempty"`
	PBRatio        *float64       `json:"pb_ratio,omitempty"`
	PSRatio        *float64       `json:"ps_ratio,omitempty"`
	DividendYield  *float64       `json:"dividend_yield,omitempty"`
	ROE            *float64       `json:"roe,omitempty"`
	ROA            *float64       `json:"roa,omitempty"`
	DebtRatio      *float64       `json:"debt_ratio,omitempty"`
	Industry       string         `json:"industry,omitempty"`
	Recommendation Recommendation `json:"recommendation,omitempty"`
	Reason         string         `json:"reason,omitempty"`

	// The feeds carry two incompatible score shapes: total_score as a
	// 0-1 fraction in the summary feed and laoliu_score as a 0-100
	// integer in the stock lists. Score is the canonical 0-100 value,
	// populated by Normalize at the ingestion boundary.
	TotalScore  *float64 `json:"total_score,omitempty"`
	LaoliuScore *float64 `json:"laoliu_score,omitempty"`
	Score       float64  `json:"score"`
}

// Normalize resolves the two feed score shapes into the canonical 0-100
// Score. laoliu_score is preferred when present; a fractional total_score
// (<= 1) is scaled by 100.
func (s *StockRecord) Normalize() {
	switch {
	case s.LaoliuScore != nil:
		s.Score = *s.LaoliuScore
	case s.TotalScore != nil && *s.TotalScore <= 1:
		s.Score = *s.TotalScore * 100
	case s.TotalScore != nil:
		s.Score = *s.TotalScore
	}
}

// StockList is one market's full recommendation list document
// (stocks_a.json / stocks_hk.json).
type StockList struct {
	Market     MarketType    `json:"market,omitempty"`
	UpdateTime string        `json:"update_time,omitempty"`
	Stocks     []StockRecord `json:"stocks"`
}

// Normalize normalizes every record's score in place.
func (l *StockList) Normalize() {
	for i := range l.Stocks {
		l.Stocks[i].Normalize()
	}
}

var (
	codePatternA  = regexp.MustCompile(`^\d{6}$`)
	codePatternHK = regexp.MustCompile(`^\d{5}$`)
)

// ValidateStockCode reports whether code is well-formed for the market:
// 6 digits for A-shares, 5 digits for Hong Kong.
func ValidateStockCode(code string, market MarketType) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	if market == MarketHK {
		return codePatternHK.MatchString(code)
	}
	return codePatternA.MatchString(code)
}

// PadStockCode strips non-digits and left-pads with zeros to the market's
// code width (A: 6, HK: 5).
func PadStockCode(code string, market MarketType) string {
	var digits strings.Builder
	for _, r := range strings.TrimSpace(code) {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	code = digits.String()

	width := 6
	if market == MarketHK {
		width = 5
	}
	for len(code) < width {
		code = "0" + code
	}
	return code
}
