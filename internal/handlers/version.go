package handlers

import (
	"net/http"

	"github.com/vileo06/investliu/internal/common"
	"github.com/vileo06/investliu/internal/config"
	"github.com/vileo06/investliu/internal/service"
)

// VersionHandler reports build information and the quotations document
// version.
type VersionHandler struct {
	logger  *common.Logger
	service *service.Service
}

func NewVersionHandler(logger *common.Logger, svc *service.Service) *VersionHandler {
	return &VersionHandler{logger: logger, service: svc}
}

// ServeHTTP handles GET /api/version.
func (h *VersionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	status := h.service.Quotes().CheckVersion(r.Context())
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"version":        config.GetVersion(),
		"build":          config.GetBuild(),
		"quotes_version": status.Version,
		"has_update":     status.HasUpdate,
		"data_stale":     h.service.NeedsRefresh(r.Context()),
	})
}
