package e2e

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ayusman/airpaint/internal/app"
	"github.com/ayusman/airpaint/internal/capture"
	"github.com/ayusman/airpaint/internal/detector"
	"github.com/ayusman/airpaint/internal/server"
	"github.com/ayusman/airpaint/internal/store"
	"gocv.io/x/gocv"
)

type state struct {
	Tick  uint64 `json:"tick"`
	Mode  string `json:"mode"`
	Tool  struct {
		Kind      string `json:"kind"`
		Name      string `json:"name"`
		Thickness int    `json:"thickness"`
	} `json:"tool"`
	Stats struct {
		Segments int `json:"segments"`
		Strokes  int `json:"strokes"`
		Clears   int `json:"clears"`
	} `json:"stats"`
}

// waitState polls /api/state until cond holds.
func waitState(t *testing.T, client *http.Client, url string, cond func(state) bool) state {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	var s state
	for time.Now().Before(deadline) {
		resp, err := client.Get(url + "/api/state")
		if err != nil {
			t.Fatalf("GET /api/state error = %v", err)
		}
		s = state{}
		json.NewDecoder(resp.Body).Decode(&s)
		resp.Body.Close()
		if cond(s) {
			return s
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for state, last = %+v", s)
	return s
}

func TestE2E_PaintingSession(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	tmpDir := t.TempDir()
	st, err := store.New(filepath.Join(tmpDir, "data.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer st.Close()

	frame := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(90, 90, 90, 0), 480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	md := detector.NewMockDetector()
	for x := 100.0; x <= 300; x += 50 {
		md.Queue([]detector.HandLandmarks{detector.PointingLandmarks(x, 300)})
	}
	// Pick green from the bar, then rest
	md.Queue([]detector.HandLandmarks{detector.TwoFingerLandmarks(200, 20)})

	application, err := app.New(app.Config{
		Store:        st,
		MotionThresh: -1,
		RecordPath:   filepath.Join(tmpDir, "session.jsonl"),
		Camera:       capture.NewMockCamera([]*gocv.Mat{&frame}, true),
		Detector:     md,
	})
	if err != nil {
		t.Fatalf("app.New() error = %v", err)
	}

	srv := server.New(server.Config{Painter: application})
	defer srv.Close()
	ts := httptest.NewServer(srv)
	defer ts.Close()
	client := ts.Client()

	if err := application.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer application.Stop()

	t.Run("Draw", func(t *testing.T) {
		s := waitState(t, client, ts.URL, func(s state) bool { return s.Tool.Name == "GREEN" })
		if s.Stats.Strokes != 1 || s.Stats.Segments != 4 {
			t.Errorf("stats = %+v, want 1 stroke of 4 segments", s.Stats)
		}
	})

	t.Run("ClearFromAPI", func(t *testing.T) {
		resp, err := client.Post(ts.URL+"/api/canvas/clear", "application/json", nil)
		if err != nil {
			t.Fatalf("POST /api/canvas/clear error = %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusAccepted {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusAccepted)
		}

		s := waitState(t, client, ts.URL, func(s state) bool { return s.Stats.Clears == 1 })
		if s.Tool.Name != "GREEN" {
			t.Errorf("clearing with a brush should keep it, got %s", s.Tool.Name)
		}
	})

	t.Run("UpdateSettings", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/settings",
			strings.NewReader(`{"settings": {"brush_thickness": "14"}}`))
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("PUT /api/settings error = %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}

		waitState(t, client, ts.URL, func(s state) bool { return s.Tool.Thickness == 14 })

		if v, _ := st.Settings().Get(store.KeyBrushThickness); v != "14" {
			t.Errorf("stored brush thickness = %q, want 14", v)
		}
	})

	t.Run("Stream", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/stream", nil)
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("GET /api/stream error = %v", err)
		}
		defer resp.Body.Close()

		r := bufio.NewReader(resp.Body)
		boundary, _ := r.ReadString('\n')
		partType, _ := r.ReadString('\n')
		if strings.TrimSpace(boundary) != "--frame" || strings.TrimSpace(partType) != "Content-Type: image/jpeg" {
			t.Errorf("unexpected part header %q %q", boundary, partType)
		}
	})

	t.Run("Health", func(t *testing.T) {
		resp, _ := client.Get(ts.URL + "/api/health")
		var health map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&health)
		resp.Body.Close()

		if health["session"] != application.SessionID() {
			t.Errorf("session = %v, want %s", health["session"], application.SessionID())
		}
	})
}
