package models

import "testing"

func fp(v float64) *float64 { return &v }

func TestNormalize_FractionalTotalScore(t *testing.T) {
	s := StockRecord{TotalScore: fp(0.75)}
	s.Normalize()
	if s.Score != 75 {
		t.Errorf("expected 75, got %v", s.Score)
	}
}

func TestNormalize_LaoliuScorePreferred(t *testing.T) {
	s := StockRecord{TotalScore: fp(0.75), LaoliuScore: fp(82)}
	s.Normalize()
	if s.Score != 82 {
		t.Errorf("expected laoliu_score 82 to win, got %v", s.Score)
	}
}

func TestNormalize_IntegerTotalScore(t *testing.T) {
	s := StockRecord{TotalScore: fp(68)}
	s.Normalize()
	if s.Score != 68 {
		t.Errorf("expected 68, got %v", s.Score)
	}
}

func TestNormalize_NoScore(t *testing.T) {
	s := StockRecord{}
	s.Normalize()
	if s.Score != 0 {
		t.Errorf("expected 0, got %v", s.Score)
	}
}

func TestParseMarket(t *testing.T) {
	cases := map[string]MarketType{
		"a":   MarketA,
		"A":   MarketA,
		"hk":  MarketHK,
		"HK":  MarketHK,
		" hk": MarketHK,
		"":    MarketA,
		"xyz": MarketA,
	}
	for in, want := range cases {
		if got := ParseMarket(in); got != want {
			t.Errorf("ParseMarket(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestValidateStockCode(t *testing.T) {
	cases := []struct {
		code   string
		market MarketType
		want   bool
	}{
		{"000001", MarketA, true},
		{"600036", MarketA, true},
		{"00001", MarketA, false},
		{"0000001", MarketA, false},
		{"60003a", MarketA, false},
		{"00700", MarketHK, true},
		{"0700", MarketHK, false},
		{"000700", MarketHK, false},
		{"", MarketA, false},
	}
	for _, c := range cases {
		if got := ValidateStockCode(c.code, c.market); got != c.want {
			t.Errorf("ValidateStockCode(%q, %v) = %v, want %v", c.code, c.market, got, c.want)
		}
	}
}

func TestPadStockCode(t *testing.T) {
	if got := PadStockCode("1", MarketA); got != "000001" {
		t.Errorf("expected 000001, got %s", got)
	}
	if got := PadStockCode("700", MarketHK); got != "00700" {
		t.Errorf("expected 00700, got %s", got)
	}
	if got := PadStockCode("sh600036", MarketA); got != "600036" {
		t.Errorf("expected 600036, got %s", got)
	}
}

func TestRecommendationDisplayText(t *testing.T) {
	if RecommendationStrongBuy.DisplayText() != "强烈买入" {
		t.Error("unexpected strong_buy label")
	}
	if Recommendation("unknown").DisplayText() != "持有" {
		t.Error("unknown recommendation should fall back to hold")
	}
}

func TestAllQuotes_Deterministic(t *testing.T) {
	doc := QuotesDocument{
		Version: "1.0.0",
		Categories: map[string]QuoteCategory{
			"strategy": {Name: "策略", Quotes: []Quote{{ID: "s1"}, {ID: "s2"}}},
			"masters":  {Name: "大师", Quotes: []Quote{{ID: "m1"}}},
		},
	}

	all := doc.AllQuotes()
	if len(all) != 3 {
		t.Fatalf("expected 3 quotes, got %d", len(all))
	}
	// Categories iterate in sorted key order: masters before strategy.
	if all[0].ID != "m1" || all[1].ID != "s1" || all[2].ID != "s2" {
		t.Errorf("unexpected order: %v, %v, %v", all[0].ID, all[1].ID, all[2].ID)
	}
}

func TestPositionTenths(t *testing.T) {
	m := MarketTiming{RecommendedPosition: 0.7}
	if m.PositionTenths() != 7 {
		t.Errorf("expected 7, got %d", m.PositionTenths())
	}
	empty := MarketTiming{}
	if empty.PositionTenths() != 5 {
		t.Errorf("expected default 5, got %d", empty.PositionTenths())
	}
}
