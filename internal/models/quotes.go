package models

import "sort"

// Quote is one investment quotation.
type Quote struct {
	ID       string   `json:"id"`
	Content  string   `json:"content"`
	Author   string   `json:"author"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// QuoteCategory groups quotations under a display name and icon.
type QuoteCategory struct {
	Name   string  `json:"name"`
	Icon   string  `json:"icon,omitempty"`
	Quotes []Quote `json:"quotes"`
}

// QuotesDocument is the laoliu_quotes.json document. The collection is
// versioned as a whole via a semantic-version string; any version increase
// invalidates the locally cached copy.
type QuotesDocument struct {
	Version    string                   `json:"version"`
	UpdateTime string                   `json:"update_time,omitempty"`
	Categories map[string]QuoteCategory `json:"categories"`
}

// AllQuotes flattens all categories into one slice, iterating categories
// in sorted key order so the result is deterministic.
func (d *QuotesDocument) AllQuotes() []Quote {
	keys := make([]string, 0, len(d.Categories))
	for k := range d.Categories {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var all []Quote
	for _, k := range keys {
		all = append(all, d.Categories[k].Quotes...)
	}
	return all
}
