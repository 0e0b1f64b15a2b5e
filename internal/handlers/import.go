package handlers

import (
	"net/http"

	"github.com/vileo06/investliu/internal/common"
	"github.com/vileo06/investliu/internal/models"
	"github.com/vileo06/investliu/internal/service"
)

// ImportHandler triggers a forced refresh of the recommendation lists.
type ImportHandler struct {
	logger  *common.Logger
	service *service.Service
}

func NewImportHandler(logger *common.Logger, svc *service.Service) *ImportHandler {
	return &ImportHandler{logger: logger, service: svc}
}

// ServeHTTP handles POST /api/import?market=.
func (h *ImportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	market := models.ParseMarket(r.URL.Query().Get("market"))
	list, err := h.service.ImportLatest(r.Context(), market)
	if err != nil {
		h.logger.Warn().Str("market", string(market)).Str("error", err.Error()).Msg("import failed")
		WriteError(w, http.StatusBadGateway, "import failed")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"market":      market,
		"count":       len(list.Stocks),
		"last_update": h.service.LastUpdate(r.Context()),
	})
}
