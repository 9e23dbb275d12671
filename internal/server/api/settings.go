package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/ayusman/airpaint/internal/app"
	"github.com/ayusman/airpaint/internal/paint"
)

// SettingsHandler handles HTTP requests for engine settings.
type SettingsHandler struct {
	service SettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(s SettingsService) *SettingsHandler {
	return &SettingsHandler{service: s}
}

type settingsResponse struct {
	Settings map[string]string `json:"settings"`
}

type updateSettingsRequest struct {
	Settings map[string]string `json:"settings"`
}

// ServeHTTP implements the http.Handler interface.
func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, settingsResponse{Settings: h.service.Settings()})
	case http.MethodPut:
		h.update(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// update handles PUT /api/settings
func (h *SettingsHandler) update(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.Settings) == 0 {
		writeError(w, http.StatusBadRequest, "At least one setting is required")
		return
	}

	values, err := h.service.UpdateSettings(req.Settings)
	if err != nil {
		if errors.Is(err, app.ErrInvalidSetting) || errors.Is(err, paint.ErrInvalidConfig) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("settings update failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to save settings")
		return
	}

	writeJSON(w, http.StatusOK, settingsResponse{Settings: values})
}
