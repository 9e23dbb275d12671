package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/ayusman/airpaint/internal/paint"
	"github.com/ayusman/airpaint/internal/server/api"
	"github.com/gorilla/websocket"
)

// EventsInterval is the state broadcast period (~15 FPS).
const EventsInterval = 66 * time.Millisecond

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// EventsHandler broadcasts engine snapshots via WebSocket whenever the
// tick counter advances.
type EventsHandler struct {
	source  api.StateSource
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
	writeMu sync.Mutex
	stopCh  chan struct{}
	once    sync.Once
}

// NewEventsHandler creates a new EventsHandler and starts broadcasting.
func NewEventsHandler(s api.StateSource) *EventsHandler {
	h := &EventsHandler{
		source:  s,
		clients: make(map[*websocket.Conn]bool),
		stopCh:  make(chan struct{}),
	}
	go h.broadcast()
	return h
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// New clients get the current state right away
	if err := h.send(conn, h.source.Snapshot()); err != nil {
		return
	}

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// Clients returns the number of connected clients.
func (h *EventsHandler) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close stops the broadcast loop.
func (h *EventsHandler) Close() {
	h.once.Do(func() { close(h.stopCh) })
}

// broadcast sends new snapshots to all connected clients.
func (h *EventsHandler) broadcast() {
	ticker := time.NewTicker(EventsInterval)
	defer ticker.Stop()

	var lastTick uint64
	sent := false
	for {
		select {
		case <-h.stopCh:
			return
		case <-ticker.C:
		}

		if h.Clients() == 0 {
			continue
		}

		snap := h.source.Snapshot()
		if sent && snap.Tick == lastTick {
			continue
		}
		lastTick, sent = snap.Tick, true

		h.mu.RLock()
		for conn := range h.clients {
			if err := h.send(conn, snap); err != nil {
				conn.Close()
			}
		}
		h.mu.RUnlock()
	}
}

// send writes one state message. gorilla connections allow a single
// concurrent writer.
func (h *EventsHandler) send(conn *websocket.Conn, snap paint.Snapshot) error {
	msg, err := json.Marshal(map[string]any{
		"state":     snap,
		"timestamp": time.Now().UnixMilli(),
	})
	if err != nil {
		log.Printf("encode state: %v", err)
		return err
	}

	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	conn.SetWriteDeadline(time.Now().Add(time.Second))
	return conn.WriteMessage(websocket.TextMessage, msg)
}
