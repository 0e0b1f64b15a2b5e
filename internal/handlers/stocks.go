package handlers

import (
	"net/http"
	"strconv"

	"github.com/vileo06/investliu/internal/common"
	"github.com/vileo06/investliu/internal/models"
	"github.com/vileo06/investliu/internal/screener"
	"github.com/vileo06/investliu/internal/service"
)

// StocksHandler serves the per-market recommendation lists with
// optional filtering.
type StocksHandler struct {
	logger  *common.Logger
	service *service.Service
}

func NewStocksHandler(logger *common.Logger, svc *service.Service) *StocksHandler {
	return &StocksHandler{logger: logger, service: svc}
}

// ServeHTTP handles GET /api/stocks.
//
// Query parameters: market (A|HK, default A), preset, and the filter
// dimensions (min_price, max_price, min_pe, max_pe, min_roe, industry,
// recommendation, min_score, keyword). A preset overrides the filter
// dimensions.
func (h *StocksHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	market := models.ParseMarket(q.Get("market"))

	if preset := q.Get("preset"); preset != "" {
		records, err := h.service.PresetStocks(r.Context(), market, preset)
		if err != nil {
			h.logger.Warn().Str("error", err.Error()).Msg("stock list fetch failed")
			WriteError(w, http.StatusBadGateway, "stock data unavailable")
			return
		}
		writeStocks(w, market, records)
		return
	}

	criteria, err := criteriaFromQuery(q)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	records, err := h.service.FilterStocks(r.Context(), market, criteria)
	if err != nil {
		h.logger.Warn().Str("error", err.Error()).Msg("stock list fetch failed")
		WriteError(w, http.StatusBadGateway, "stock data unavailable")
		return
	}
	writeStocks(w, market, records)
}

func writeStocks(w http.ResponseWriter, market models.MarketType, records []models.StockRecord) {
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"market": market,
		"count":  len(records),
		"data":   records,
	})
}

func criteriaFromQuery(q map[string][]string) (*screener.Criteria, error) {
	get := func(key string) string {
		if v, ok := q[key]; ok && len(v) > 0 {
			return v[0]
		}
		return ""
	}

	c := &screener.Criteria{
		Industry:       get("industry"),
		Recommendation: models.Recommendation(get("recommendation")),
		SearchKeyword:  get("keyword"),
	}

	numeric := []struct {
		key  string
		dest **float64
	}{
		{"min_price", &c.MinPrice},
		{"max_price", &c.MaxPrice},
		{"min_pe", &c.MinPE},
		{"max_pe", &c.MaxPE},
		{"min_roe", &c.MinROE},
		{"min_score", &c.MinScore},
	}
	for _, n := range numeric {
		raw := get(n.key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, &queryError{key: n.key}
		}
		*n.dest = &v
	}
	return c, nil
}

type queryError struct {
	key string
}

func (e *queryError) Error() string {
	return "invalid numeric value for " + e.key
}
