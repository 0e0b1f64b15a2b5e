package handlers

import (
	"net/http"
	"strings"

	"github.com/vileo06/investliu/internal/common"
	"github.com/vileo06/investliu/internal/search"
	"github.com/vileo06/investliu/internal/service"
)

// SearchHandler serves free-text stock search and the search history.
type SearchHandler struct {
	logger  *common.Logger
	service *service.Service
	history *search.History
}

func NewSearchHandler(logger *common.Logger, svc *service.Service, history *search.History) *SearchHandler {
	return &SearchHandler{logger: logger, service: svc, history: history}
}

// ServeHTTP handles GET /api/search?q=.
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		WriteError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}

	results, err := h.service.Search(r.Context(), query)
	if err != nil {
		h.logger.Warn().Str("error", err.Error()).Msg("search failed")
		WriteError(w, http.StatusBadGateway, "search unavailable")
		return
	}
	h.history.Record(r.Context(), query)

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"query":  query,
		"count":  len(results),
		"data":   results,
	})
}

// ServeHistory handles /api/search/history: GET lists recent terms,
// DELETE clears them.
func (h *SearchHandler) ServeHistory(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		terms := h.history.List(r.Context())
		if terms == nil {
			terms = []string{}
		}
		WriteData(w, terms)
	case http.MethodDelete:
		h.history.Clear(r.Context())
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
