// Package search scores free-text queries against the prebuilt stock
// search index and maintains per-user search history.
package search

import (
	"sort"
	"strings"

	"github.com/vileo06/investliu/internal/models"
)

// MaxResults bounds a result set.
const MaxResults = 10

// Scoring weights. Additive per entry; exact and substring weights for
// the same field are mutually exclusive.
const (
	scoreCodeExact    = 100
	scoreCodeSub      = 80
	scoreNameExact    = 90
	scoreNameSub      = 70
	scoreIndustrySub  = 30
	scoreKeywordMatch = 20
)

// Search ranks index entries against query and returns at most
// MaxResults matches in descending score order. Ties keep the index's
// code order so results are deterministic. Zero-score entries are
// excluded.
func Search(index *models.SearchIndex, query string) []models.SearchResult {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || index == nil || len(index.Stocks) == 0 {
		return nil
	}

	codes := make([]string, 0, len(index.Stocks))
	for code := range index.Stocks {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	var results []models.SearchResult
	for _, code := range codes {
		entry := index.Stocks[code]
		if score := scoreEntry(&entry, query); score > 0 {
			results = append(results, models.SearchResult{
				SearchIndexEntry: entry,
				Score:            score,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > MaxResults {
		results = results[:MaxResults]
	}
	return results
}

func scoreEntry(e *models.SearchIndexEntry, query string) int {
	score := 0

	code := strings.ToLower(e.Code)
	switch {
	case code == query:
		score += scoreCodeExact
	case strings.Contains(code, query):
		score += scoreCodeSub
	}

	name := strings.ToLower(e.Name)
	switch {
	case name == query:
		score += scoreNameExact
	case strings.Contains(name, query):
		score += scoreNameSub
	}

	if e.Industry != "" && strings.Contains(strings.ToLower(e.Industry), query) {
		score += scoreIndustrySub
	}

	for _, kw := range e.Keywords {
		if strings.Contains(strings.ToLower(kw), query) {
			score += scoreKeywordMatch
		}
	}
	return score
}

// Fallback degrades to plain substring containment over an in-memory
// record list when no prebuilt index is available. Results keep input
// order and are truncated to MaxResults.
func Fallback(records []models.StockRecord, query string) []models.StockRecord {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	var out []models.StockRecord
	for i := range records {
		r := &records[i]
		if strings.Contains(strings.ToLower(r.Code), query) ||
			strings.Contains(strings.ToLower(r.Name), query) ||
			strings.Contains(strings.ToLower(r.Industry), query) {
			out = append(out, records[i])
			if len(out) == MaxResults {
				break
			}
		}
	}
	return out
}
