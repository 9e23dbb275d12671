package api

import "net/http"

// StateHandler serves the current engine snapshot.
type StateHandler struct {
	source StateSource
}

// NewStateHandler creates a new StateHandler.
func NewStateHandler(s StateSource) *StateHandler {
	return &StateHandler{source: s}
}

// ServeHTTP handles GET /api/state.
func (h *StateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, h.source.Snapshot())
}
