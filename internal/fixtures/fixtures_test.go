package fixtures

import (
	"encoding/json"
	"testing"
)

func TestLookupKnownPaths(t *testing.T) {
	paths := []string{
		"/summary.json",
		"summary.json",
		"summary",
		"/market_timing.json",
		"/stocks_a.json",
		"/stocks_hk.json",
		"/laoliu_quotes.json",
		"/stock_search_index.json",
		"/analysis_samples.json",
		"/miniprogram_config.json",
	}
	for _, p := range paths {
		data, ok := Lookup(p)
		if !ok {
			t.Errorf("expected fixture for %q", p)
			continue
		}
		if !json.Valid(data) {
			t.Errorf("fixture for %q is not valid JSON", p)
		}
	}
}

func TestLookupUnknownPath(t *testing.T) {
	if _, ok := Lookup("/nonexistent.json"); ok {
		t.Error("expected no fixture for unknown path")
	}
	if _, ok := Lookup(""); ok {
		t.Error("expected no fixture for empty path")
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) < 8 {
		t.Errorf("expected at least 8 bundled datasets, got %d", len(names))
	}
}
