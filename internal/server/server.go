// Package server provides the HTTP preview and control API for Air Painter.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/airpaint/internal/server/api"
)

// Painter is the running paint loop as seen by the server.
type Painter interface {
	api.StateSource
	api.Clearer
	api.SettingsService
	FrameSource
	SessionID() string
}

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Painter   Painter
}

// Server represents the HTTP server for the Air Painter application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
	events *EventsHandler
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	// Painting endpoints need a running loop
	if p := s.config.Painter; p != nil {
		s.mux.Handle("/api/state", api.NewStateHandler(p))
		s.mux.Handle("/api/canvas/", api.NewCanvasHandler(p))
		s.mux.Handle("/api/settings", api.NewSettingsHandler(p))
		s.mux.Handle("/api/stream", NewStreamHandler(p))

		s.events = NewEventsHandler(p)
		s.mux.Handle("/api/events", s.events)
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}
	if s.config.Painter != nil {
		response["session"] = s.config.Painter.SessionID()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}

// Close stops background broadcasting.
func (s *Server) Close() {
	if s.events != nil {
		s.events.Close()
	}
}
