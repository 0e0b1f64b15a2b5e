package common

import "time"

// Freshness TTLs for the fetched data documents. All documents are
// eventually-consistent snapshots published to static hosting; the stock
// and summary feeds refresh roughly hourly while the quotations collection
// only changes when its version string is bumped.
const (
	FreshnessSummary      = 1 * time.Hour
	FreshnessMarketTiming = 1 * time.Hour
	FreshnessStocks       = 1 * time.Hour
	FreshnessSearchIndex  = 24 * time.Hour
	FreshnessQuotes       = 24 * time.Hour
)

// IsFresh returns true if the given timestamp is within the TTL.
func IsFresh(updated time.Time, ttl time.Duration) bool {
	if updated.IsZero() {
		return false
	}
	return time.Since(updated) < ttl
}
