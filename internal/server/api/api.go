// Package api provides HTTP handlers for the painting state, canvas and
// settings resources.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/ayusman/airpaint/internal/paint"
)

// StateSource exposes the last published engine state.
type StateSource interface {
	Snapshot() paint.Snapshot
}

// Clearer accepts canvas clear requests.
type Clearer interface {
	RequestClear()
}

// SettingsService reads and updates engine tuning values.
type SettingsService interface {
	Settings() map[string]string
	UpdateSettings(values map[string]string) (map[string]string, error)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
