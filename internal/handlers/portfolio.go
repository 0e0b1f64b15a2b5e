package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/vileo06/investliu/internal/common"
	"github.com/vileo06/investliu/internal/models"
	"github.com/vileo06/investliu/internal/portfolio"
	"github.com/vileo06/investliu/internal/service"
)

// PortfolioHandler serves the user's holdings.
type PortfolioHandler struct {
	logger  *common.Logger
	manager *portfolio.Manager
	service *service.Service
}

func NewPortfolioHandler(logger *common.Logger, manager *portfolio.Manager, svc *service.Service) *PortfolioHandler {
	return &PortfolioHandler{logger: logger, manager: manager, service: svc}
}

// ServeHTTP handles /api/portfolio: GET returns the aggregated summary
// with prices refreshed from the cached lists, POST upserts a holding,
// DELETE removes one by code.
func (h *PortfolioHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		h.refreshPrices(r)
		WriteData(w, h.manager.Summary(r.Context()))
	case http.MethodPost:
		var holding models.Holding
		if err := json.NewDecoder(r.Body).Decode(&holding); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid holding payload")
			return
		}
		if err := h.manager.Upsert(r.Context(), holding); err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteData(w, h.manager.Summary(r.Context()))
	case http.MethodDelete:
		code := strings.TrimSpace(r.URL.Query().Get("code"))
		if code == "" {
			WriteError(w, http.StatusBadRequest, "missing query parameter code")
			return
		}
		if err := h.manager.Remove(r.Context(), code); err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to remove holding")
			return
		}
		WriteData(w, h.manager.Summary(r.Context()))
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// refreshPrices updates holding prices from whichever lists are
// fetchable. Failures leave the last known prices in place.
func (h *PortfolioHandler) refreshPrices(r *http.Request) {
	var records []models.StockRecord
	for _, market := range []models.MarketType{models.MarketA, models.MarketHK} {
		list, err := h.service.Stocks(r.Context(), market)
		if err != nil {
			continue
		}
		records = append(records, list.Stocks...)
	}
	if len(records) == 0 {
		return
	}
	if err := h.manager.UpdatePrices(r.Context(), records); err != nil {
		h.logger.Warn().Str("error", err.Error()).Msg("price refresh failed")
	}
}
