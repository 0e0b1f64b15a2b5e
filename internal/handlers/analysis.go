package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/vileo06/investliu/internal/analysis"
	"github.com/vileo06/investliu/internal/common"
	"github.com/vileo06/investliu/internal/models"
	"github.com/vileo06/investliu/internal/service"
)

// AnalysisHandler serves saved stock analyses and the published
// example analyses.
type AnalysisHandler struct {
	logger  *common.Logger
	store   *analysis.Store
	service *service.Service
}

func NewAnalysisHandler(logger *common.Logger, store *analysis.Store, svc *service.Service) *AnalysisHandler {
	return &AnalysisHandler{logger: logger, store: store, service: svc}
}

// ServeHTTP handles /api/history/analysis: GET lists the history
// index, POST saves a record, DELETE clears everything.
func (h *AnalysisHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		entries := h.store.History(r.Context())
		if entries == nil {
			entries = []models.AnalysisHistoryEntry{}
		}
		WriteData(w, entries)
	case http.MethodPost:
		var record models.AnalysisRecord
		if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid analysis payload")
			return
		}
		if !models.ValidateStockCode(record.Code, record.Market) {
			WriteError(w, http.StatusBadRequest, "invalid stock code")
			return
		}
		key, err := h.store.Save(r.Context(), record)
		if err != nil {
			h.logger.Warn().Str("error", err.Error()).Msg("analysis save failed")
			WriteError(w, http.StatusInternalServerError, "failed to save analysis")
			return
		}
		WriteData(w, map[string]string{"key": key})
	case http.MethodDelete:
		h.store.Clear(r.Context())
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// ServeSamples handles GET /api/analysis/samples.
func (h *AnalysisHandler) ServeSamples(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	samples, err := h.service.AnalysisSamples(r.Context())
	if err != nil {
		h.logger.Warn().Str("error", err.Error()).Msg("analysis samples fetch failed")
		WriteError(w, http.StatusBadGateway, "analysis samples unavailable")
		return
	}
	WriteData(w, samples)
}
