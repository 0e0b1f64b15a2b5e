package handlers

import (
	"net/http"

	"github.com/vileo06/investliu/internal/common"
	"github.com/vileo06/investliu/internal/service"
)

// SummaryHandler serves the daily market summary.
type SummaryHandler struct {
	logger  *common.Logger
	service *service.Service
}

func NewSummaryHandler(logger *common.Logger, svc *service.Service) *SummaryHandler {
	return &SummaryHandler{logger: logger, service: svc}
}

// ServeHTTP handles GET /api/summary.
func (h *SummaryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	summary, err := h.service.Summary(r.Context())
	if err != nil {
		h.logger.Warn().Str("error", err.Error()).Msg("summary fetch failed")
		WriteError(w, http.StatusBadGateway, "summary data unavailable")
		return
	}
	WriteData(w, summary)
}
