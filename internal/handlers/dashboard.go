package handlers

import (
	"net/http"

	"github.com/vileo06/investliu/internal/common"
	"github.com/vileo06/investliu/internal/service"
)

// DashboardHandler serves the combined home-view payload.
type DashboardHandler struct {
	logger  *common.Logger
	service *service.Service
}

func NewDashboardHandler(logger *common.Logger, svc *service.Service) *DashboardHandler {
	return &DashboardHandler{logger: logger, service: svc}
}

// ServeHTTP handles GET /api/dashboard.
func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	dash, err := h.service.LoadDashboard(r.Context())
	if err != nil {
		h.logger.Warn().Str("error", err.Error()).Msg("dashboard load failed")
		WriteError(w, http.StatusBadGateway, "dashboard data unavailable")
		return
	}
	WriteData(w, dash)
}
