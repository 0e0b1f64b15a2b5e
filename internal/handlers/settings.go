package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/vileo06/investliu/internal/common"
	"github.com/vileo06/investliu/internal/models"
	"github.com/vileo06/investliu/internal/settings"
)

// SettingsHandler serves user preferences.
type SettingsHandler struct {
	logger  *common.Logger
	manager *settings.Manager
}

func NewSettingsHandler(logger *common.Logger, manager *settings.Manager) *SettingsHandler {
	return &SettingsHandler{logger: logger, manager: manager}
}

// ServeHTTP handles /api/settings: GET returns current settings, PUT
// replaces them, DELETE restores defaults.
func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		WriteData(w, h.manager.Get(r.Context()))
	case http.MethodPut:
		var s models.Settings
		if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid settings payload")
			return
		}
		if err := h.manager.Update(r.Context(), s); err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteData(w, s)
	case http.MethodDelete:
		if err := h.manager.Reset(r.Context()); err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to reset settings")
			return
		}
		WriteData(w, h.manager.Get(r.Context()))
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
