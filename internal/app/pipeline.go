package app

import (
	"bytes"
	"log"
	"runtime"
	"time"

	"github.com/ayusman/airpaint/internal/canvas"
	"github.com/ayusman/airpaint/internal/capture"
	"github.com/ayusman/airpaint/internal/detector"
	"github.com/ayusman/airpaint/internal/overlay"
	"github.com/ayusman/airpaint/internal/paint"
	"gocv.io/x/gocv"
)

// Window keys that end the session.
const (
	keyQuit   = 'q'
	keyEscape = 27
)

// run is the painting loop. It reads a frame per tick, runs one engine step
// and shows the result until stopped or the user quits from the window.
func (a *App) run(stop <-chan struct{}, finished chan<- struct{}) {
	defer close(finished)

	// HighGUI windows must be driven from a single OS thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	var window *gocv.Window
	if a.config.Window != "" {
		window = gocv.NewWindow(a.config.Window)
		defer window.Close()
	}

	fps := a.camera.FPS()
	if fps <= 0 {
		fps = capture.DefaultFPS
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			out := a.step(frame, now)
			frame.Close()

			quit := false
			if window != nil {
				window.IMShow(out)
				key := window.WaitKey(1)
				quit = key == keyQuit || key == keyEscape
			}
			out.Close()

			if quit {
				log.Println("Quit requested from preview window")
				a.quit()
				return
			}
		}
	}
}

// step processes one frame and returns the display frame; the caller owns it.
//
// Order per tick:
// 1. Size the engine to the frame (first frame or resolution change)
// 2. Apply pending settings and queued clear requests
// 3. If painting is enabled and the motion gate is open, detect and tick
// 4. Composite the canvas over the frame and draw the overlay
// 5. Publish the snapshot and JPEG for the server and tray
//
// A failed detection skips the engine tick but still renders the canvas.
func (a *App) step(frame *gocv.Mat, now time.Time) gocv.Mat {
	if err := a.ensureEngine(frame.Cols(), frame.Rows()); err != nil {
		log.Printf("Error creating engine: %v", err)
		return frame.Clone()
	}
	a.applyPending()

	select {
	case <-a.clearCh:
		a.engine.Clear()
		log.Println("Canvas cleared on request")
	default:
	}

	if !a.IsEnabled() {
		out := frame.Clone()
		a.publish(out, a.engine.Snapshot())
		return out
	}

	if a.motion.Allow(frame, now) {
		hands, err := a.detector.Detect(frame)
		if err != nil {
			log.Printf("Error detecting hands: %v", err)
		} else {
			a.tick(detector.Primary(hands), now)
		}
	}

	out := gocv.NewMat()
	if err := canvas.Composite(*frame, a.canvas, &out); err != nil {
		log.Printf("Error compositing canvas: %v", err)
		frame.CopyTo(&out)
	}

	snap := a.engine.Snapshot()
	overlay.Draw(&out, a.engine.Config(), snap)
	a.publish(out, snap)
	return out
}

// tick advances the engine and records the landmarks it was given.
func (a *App) tick(hand *detector.HandLandmarks, now time.Time) {
	prevMode, prevTool := a.engine.Mode(), a.engine.Tool()
	res := a.engine.Tick(hand)

	if res.Mode != prevMode {
		log.Printf("Mode %s -> %s", prevMode, res.Mode)
	}
	if tool := a.engine.Tool(); tool != prevTool {
		log.Printf("Tool %s %s (%dpx)", tool.Kind, tool.Name, tool.Thickness)
	}
	if res.Cleared {
		log.Println("Canvas cleared")
	}

	if a.recorder == nil {
		return
	}
	cfg := a.engine.Config()
	err := a.recorder.Write(TrackFrame{
		Tick:   a.engine.Snapshot().Tick,
		TimeMs: now.UnixMilli(),
		Width:  cfg.Width,
		Height: cfg.Height,
		Hand:   hand,
	})
	if err != nil {
		log.Printf("Error recording track, recording stopped: %v", err)
		a.recorder.Close()
		a.recorder = nil
	}
}

// ensureEngine builds the engine and canvas for a frame size. A size change
// starts a fresh canvas.
func (a *App) ensureEngine(width, height int) error {
	if a.engine != nil {
		cfg := a.engine.Config()
		if cfg.Width == width && cfg.Height == height {
			return nil
		}
		log.Printf("Frame size changed from %dx%d to %dx%d, resetting canvas",
			cfg.Width, cfg.Height, width, height)
		a.canvas.Close()
		a.engine, a.canvas = nil, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	cfg, err := ApplySettings(paint.ForFrame(width, height), a.settings)
	if err != nil {
		return err
	}

	c := canvas.NewMat(width, height, cfg.Background)
	e, err := paint.NewEngine(cfg, c)
	if err != nil {
		c.Close()
		return err
	}

	a.engine, a.canvas = e, c
	a.paintCfg = cfg
	a.pending = nil
	log.Printf("Canvas %dx%d, band %dpx, brush %dpx, eraser %dpx",
		width, height, cfg.BandHeight, cfg.BrushThickness, cfg.EraserThickness)
	return nil
}

// applyPending hands settings saved through UpdateSettings to the engine.
func (a *App) applyPending() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.pending == nil {
		return
	}
	cfg := *a.pending
	a.pending = nil

	if err := a.engine.Reconfigure(cfg); err != nil {
		log.Printf("Error applying settings: %v", err)
		return
	}
	a.paintCfg = cfg
	log.Println("Settings applied")
}

// publish stores the snapshot and an encoded copy of out for readers.
func (a *App) publish(out gocv.Mat, snap paint.Snapshot) {
	var data []byte
	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, out, []int{int(gocv.IMWriteJpegQuality), JPEGQuality})
	if err != nil {
		log.Printf("Error encoding frame: %v", err)
	} else {
		data = bytes.Clone(buf.GetBytes())
		buf.Close()
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.snap = snap
	if data != nil {
		a.jpeg = data
		a.frameSeq++
	}
}
