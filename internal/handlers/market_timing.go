package handlers

import (
	"net/http"

	"github.com/vileo06/investliu/internal/common"
	"github.com/vileo06/investliu/internal/service"
)

// MarketTimingHandler serves the position/timing advice.
type MarketTimingHandler struct {
	logger  *common.Logger
	service *service.Service
}

func NewMarketTimingHandler(logger *common.Logger, svc *service.Service) *MarketTimingHandler {
	return &MarketTimingHandler{logger: logger, service: svc}
}

// ServeHTTP handles GET /api/market-timing.
func (h *MarketTimingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	timing, err := h.service.MarketTiming(r.Context())
	if err != nil {
		h.logger.Warn().Str("error", err.Error()).Msg("market timing fetch failed")
		WriteError(w, http.StatusBadGateway, "market timing data unavailable")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":          "ok",
		"data":            timing,
		"position_tenths": timing.PositionTenths(),
	})
}
