package search

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/vileo06/investliu/internal/common"
	"github.com/vileo06/investliu/internal/interfaces"
)

// MaxHistory bounds the stored search history.
const MaxHistory = 10

// History persists recent search terms, most recent first, deduplicated.
type History struct {
	kv     interfaces.KeyValueStorage
	logger *common.Logger
	key    string
}

// NewHistory creates a search history persisted under
// "<scope>_search_history".
func NewHistory(kv interfaces.KeyValueStorage, logger *common.Logger, scope string) *History {
	if scope == "" {
		scope = "stock"
	}
	return &History{
		kv:     kv,
		logger: logger,
		key:    scope + "_search_history",
	}
}

// Record moves term to the front of the history, dropping any earlier
// occurrence and truncating to MaxHistory. Blank terms are ignored and
// persistence failures are swallowed.
func (h *History) Record(ctx context.Context, term string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}

	terms := h.List(ctx)
	updated := make([]string, 0, len(terms)+1)
	updated = append(updated, term)
	for _, t := range terms {
		if t != term {
			updated = append(updated, t)
		}
	}
	if len(updated) > MaxHistory {
		updated = updated[:MaxHistory]
	}

	blob, err := json.Marshal(updated)
	if err != nil {
		return
	}
	if err := h.kv.Set(ctx, h.key, string(blob)); err != nil {
		h.logger.Warn().Str("error", err.Error()).Msg("failed to persist search history")
	}
}

// List returns the stored history, most recent first. Missing or
// corrupt history reads as empty.
func (h *History) List(ctx context.Context) []string {
	blob, err := h.kv.Get(ctx, h.key)
	if err != nil {
		if !errors.Is(err, interfaces.ErrNotFound) {
			h.logger.Warn().Str("error", err.Error()).Msg("failed to read search history")
		}
		return nil
	}
	var terms []string
	if err := json.Unmarshal([]byte(blob), &terms); err != nil {
		return nil
	}
	return terms
}

// Clear removes the stored history.
func (h *History) Clear(ctx context.Context) {
	if err := h.kv.Delete(ctx, h.key); err != nil {
		h.logger.Warn().Str("error", err.Error()).Msg("failed to clear search history")
	}
}
