package handlers

import (
	"net/http"

	"github.com/vileo06/investliu/internal/cache"
	"github.com/vileo06/investliu/internal/common"
)

// CacheHandler exposes cache maintenance actions.
type CacheHandler struct {
	logger *common.Logger
	store  *cache.Store
}

func NewCacheHandler(logger *common.Logger, store *cache.Store) *CacheHandler {
	return &CacheHandler{logger: logger, store: store}
}

// ServeHTTP handles /api/cache: DELETE wipes everything, POST removes
// only expired entries.
func (h *CacheHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodDelete:
		h.store.ClearAll(r.Context())
		h.logger.Info().Msg("cache cleared")
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	case http.MethodPost:
		removed := h.store.ClearExpired(r.Context())
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"status":  "ok",
			"removed": removed,
		})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
