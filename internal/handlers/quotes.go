package handlers

import (
	"net/http"

	"github.com/vileo06/investliu/internal/common"
	"github.com/vileo06/investliu/internal/service"
)

// QuotesHandler serves the quotations collection and the daily quote.
type QuotesHandler struct {
	logger  *common.Logger
	service *service.Service
}

func NewQuotesHandler(logger *common.Logger, svc *service.Service) *QuotesHandler {
	return &QuotesHandler{logger: logger, service: svc}
}

// ServeHTTP handles GET /api/quotes.
func (h *QuotesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	doc, err := h.service.Quotes().Get(r.Context())
	if err != nil {
		h.logger.Warn().Str("error", err.Error()).Msg("quotes fetch failed")
		WriteError(w, http.StatusBadGateway, "quotations unavailable")
		return
	}
	WriteData(w, doc)
}

// ServeDaily handles GET /api/quotes/daily.
func (h *QuotesHandler) ServeDaily(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	quote, err := h.service.Quotes().DailyQuote(r.Context())
	if err != nil {
		h.logger.Warn().Str("error", err.Error()).Msg("daily quote failed")
		WriteError(w, http.StatusBadGateway, "quotations unavailable")
		return
	}
	WriteData(w, quote)
}
