// Package app runs the air painting loop: it reads camera frames, detects the
// hand, drives the paint engine and publishes composited frames and state.
package app

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ayusman/airpaint/internal/canvas"
	"github.com/ayusman/airpaint/internal/capture"
	"github.com/ayusman/airpaint/internal/detector"
	"github.com/ayusman/airpaint/internal/paint"
	"github.com/ayusman/airpaint/internal/store"
	"github.com/google/uuid"
)

// Defaults for the loop.
const (
	// DefaultMotionThreshold is the percentage of changed pixels that
	// counts as motion.
	DefaultMotionThreshold = 1.0
	// DefaultWindow is the preview window title.
	DefaultWindow = "Air Painter"
	// JPEGQuality is used for published preview frames.
	JPEGQuality = 80
)

// Config holds configuration options for the application.
type Config struct {
	Store   *store.Store
	Capture capture.Options
	// MotionThresh gates hand detection on frame changes; negative values
	// disable the gate.
	MotionThresh float64
	// Window is the preview window title; empty runs headless.
	Window string
	// RecordPath, when set, receives every tick's landmarks as JSON lines.
	RecordPath string

	// Camera and Detector override the default devices, mainly for tests.
	Camera   capture.Camera
	Detector detector.Detector
}

// App is the main application that owns the engine and its canvas.
type App struct {
	config    Config
	camera    capture.Camera
	motion    *capture.MotionGate
	detector  detector.Detector
	sessionID string
	started   time.Time

	// Owned by the loop goroutine.
	engine   *paint.Engine
	canvas   *canvas.Mat
	recorder *TrackWriter

	clearCh chan struct{}

	mu       sync.RWMutex
	enabled  bool
	settings map[string]string
	paintCfg paint.Config
	pending  *paint.Config
	snap     paint.Snapshot
	jpeg     []byte
	frameSeq uint64
	stopCh   chan struct{}
	loopDone chan struct{}

	done     chan struct{}
	doneOnce sync.Once
}

// New creates a new App instance with the given configuration.
func New(config Config) (*App, error) {
	threshold := config.MotionThresh
	switch {
	case threshold < 0:
		threshold = 0
	case threshold == 0:
		threshold = DefaultMotionThreshold
	}

	a := &App{
		config:    config,
		camera:    config.Camera,
		motion:    capture.NewMotionGate(threshold, capture.DefaultHold),
		detector:  config.Detector,
		sessionID: uuid.NewString(),
		started:   time.Now(),
		clearCh:   make(chan struct{}, 1),
		enabled:   true,
		settings:  map[string]string{},
		done:      make(chan struct{}),
	}

	if a.camera == nil {
		a.camera = capture.NewCamera(config.Capture)
	}

	if a.detector == nil {
		// Try MediaPipe first, fall back to mock detector
		if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
			a.detector = mp
			log.Println("Using MediaPipe hand detection")
		} else {
			log.Printf("MediaPipe not available (%v), using mock detector", err)
			a.detector = detector.NewMockDetector()
		}
	}

	if config.Store != nil {
		values, err := config.Store.Settings().All()
		if err != nil {
			return nil, fmt.Errorf("load settings: %w", err)
		}
		a.settings = values
	}

	// Validate stored settings against the nominal frame size up front so a
	// bad row fails at startup rather than on the first frame.
	w, h := config.Capture.Width, config.Capture.Height
	if w <= 0 || h <= 0 {
		w, h = capture.DefaultWidth, capture.DefaultHeight
	}
	cfg, err := ApplySettings(paint.ForFrame(w, h), a.settings)
	if err != nil {
		return nil, fmt.Errorf("stored settings: %w", err)
	}
	a.paintCfg = cfg

	return a, nil
}

// SessionID identifies this run in health checks and logs.
func (a *App) SessionID() string {
	return a.sessionID
}

// Uptime returns the time since the app was created.
func (a *App) Uptime() time.Duration {
	return time.Since(a.started)
}

// SetEnabled enables or disables painting. While disabled, frames are
// shown unmodified and the engine is not ticked.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether painting is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// RequestClear asks the loop to wipe the canvas on its next tick. Repeated
// requests before that tick collapse into one.
func (a *App) RequestClear() {
	select {
	case a.clearCh <- struct{}{}:
	default:
	}
}

// Snapshot returns the engine state published after the last tick.
func (a *App) Snapshot() paint.Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snap
}

// Frame returns the last composited JPEG frame and its sequence number.
// The sequence is zero until the first frame is published.
func (a *App) Frame() ([]byte, uint64) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.jpeg, a.frameSeq
}

// Settings returns the effective tuning values.
func (a *App) Settings() map[string]string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.pending != nil {
		return SettingsOf(*a.pending)
	}
	return SettingsOf(a.paintCfg)
}

// UpdateSettings validates and persists new tuning values. They take
// effect on the next tick; the canvas is kept.
func (a *App) UpdateSettings(values map[string]string) (map[string]string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	base := a.paintCfg
	if a.pending != nil {
		base = *a.pending
	}
	cfg, err := ApplySettings(base, values)
	if err != nil {
		return nil, err
	}

	if a.config.Store != nil {
		if err := a.config.Store.Settings().SetAll(values); err != nil {
			return nil, fmt.Errorf("save settings: %w", err)
		}
	}

	for k, v := range values {
		a.settings[k] = v
	}
	a.pending = &cfg
	return SettingsOf(cfg), nil
}

// Start opens the camera and begins the painting loop.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}

	if a.config.RecordPath != "" {
		rec, err := CreateTrack(a.config.RecordPath)
		if err != nil {
			a.camera.Close()
			return err
		}
		a.recorder = rec
		log.Printf("Recording landmarks to %s", a.config.RecordPath)
	}

	a.stopCh = make(chan struct{})
	a.loopDone = make(chan struct{})
	go a.run(a.stopCh, a.loopDone)

	log.Printf("Painting loop started (session %s)", a.sessionID)
	return nil
}

// Stop halts the loop and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	stopCh, loopDone := a.stopCh, a.loopDone
	a.stopCh, a.loopDone = nil, nil
	a.mu.Unlock()

	if stopCh == nil {
		return
	}
	close(stopCh)
	<-loopDone

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.motion.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	if a.recorder != nil {
		if err := a.recorder.Close(); err != nil {
			log.Printf("Error closing track: %v", err)
		}
		a.recorder = nil
	}

	if a.canvas != nil {
		a.canvas.Close()
		a.canvas, a.engine = nil, nil
	}

	a.quit()
	log.Println("Painting loop stopped")
}

// Done is closed when the user quits from the preview window or the app
// is stopped.
func (a *App) Done() <-chan struct{} {
	return a.done
}

func (a *App) quit() {
	a.doneOnce.Do(func() { close(a.done) })
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	return a.detector
}
