package api

import "net/http"

// CanvasHandler handles canvas commands.
type CanvasHandler struct {
	canvas Clearer
}

// NewCanvasHandler creates a new CanvasHandler.
func NewCanvasHandler(c Clearer) *CanvasHandler {
	return &CanvasHandler{canvas: c}
}

// ServeHTTP handles POST /api/canvas/clear. The clear is queued and
// applied on the next frame, so the response is 202.
func (h *CanvasHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/api/canvas/clear" {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.canvas.RequestClear()
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}
