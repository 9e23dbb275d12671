package server

import (
	"fmt"
	"net/http"
	"time"
)

// StreamInterval is the polling period for new composited frames (~15 FPS).
const StreamInterval = 66 * time.Millisecond

// FrameSource provides the last composited JPEG frame and its sequence number.
type FrameSource interface {
	Frame() ([]byte, uint64)
}

// StreamHandler serves MJPEG frames published by the paint loop.
type StreamHandler struct {
	frames FrameSource
}

// NewStreamHandler creates a new StreamHandler with the given frame source.
func NewStreamHandler(frames FrameSource) *StreamHandler {
	return &StreamHandler{frames: frames}
}

// ServeHTTP streams MJPEG frames to connected clients. Only frames that
// changed since the last write are sent.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ticker := time.NewTicker(StreamInterval)
	defer ticker.Stop()

	var last uint64
	for {
		data, seq := h.frames.Frame()
		if seq != last && len(data) > 0 {
			last = seq

			// Write MJPEG frame
			fmt.Fprintf(w, "--frame\r\n")
			fmt.Fprintf(w, "Content-Type: image/jpeg\r\n")
			fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", len(data))
			if _, err := w.Write(data); err != nil {
				return
			}
			fmt.Fprintf(w, "\r\n")

			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}
		}

		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
}
