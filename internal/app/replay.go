package app

import (
	"fmt"
	"io"
	"log"

	"github.com/ayusman/airpaint/internal/canvas"
	"github.com/ayusman/airpaint/internal/paint"
)

// ReplayReport summarizes a replayed track.
type ReplayReport struct {
	Frames      int
	HandFrames  int
	Skipped     int
	Transitions int
	Width       int
	Height      int
	Stats       paint.Stats
	Tool        paint.Tool
	Coverage    int // canvas pixels differing from the background at the end
}

// Replay feeds a recorded track through a headless engine drawing on an
// in-memory raster and logs mode and tool changes. The engine is sized from
// the first frame; frames of another size are skipped.
func Replay(r io.Reader, settings map[string]string) (*ReplayReport, error) {
	tracks := NewTrackReader(r)
	report := &ReplayReport{}

	var (
		engine *paint.Engine
		raster *canvas.Raster
	)
	defer func() {
		if raster != nil {
			raster.Close()
		}
	}()

	for {
		f, err := tracks.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if engine == nil {
			cfg, err := ApplySettings(paint.ForFrame(f.Width, f.Height), settings)
			if err != nil {
				return nil, fmt.Errorf("replay config: %w", err)
			}
			raster = canvas.NewRaster(cfg.Width, cfg.Height, cfg.Background)
			engine, err = paint.NewEngine(cfg, raster)
			if err != nil {
				return nil, fmt.Errorf("replay engine: %w", err)
			}
			report.Width, report.Height = cfg.Width, cfg.Height
		}

		if f.Width != report.Width || f.Height != report.Height {
			log.Printf("tick %d: frame %dx%d does not match %dx%d, skipping",
				f.Tick, f.Width, f.Height, report.Width, report.Height)
			report.Skipped++
			continue
		}

		prevMode, prevTool := engine.Mode(), engine.Tool()
		res := engine.Tick(f.Hand)
		report.Frames++
		if res.Hand {
			report.HandFrames++
		}

		if res.Mode != prevMode {
			report.Transitions++
			log.Printf("tick %d: mode %s -> %s", f.Tick, prevMode, res.Mode)
		}
		if tool := engine.Tool(); tool != prevTool {
			log.Printf("tick %d: tool %s %s (%dpx)", f.Tick, tool.Kind, tool.Name, tool.Thickness)
		}
		if res.Cleared {
			log.Printf("tick %d: canvas cleared", f.Tick)
		}
	}

	if engine != nil {
		report.Stats = engine.Snapshot().Stats
		report.Tool = engine.Tool()
		report.Coverage = raster.Coverage()
	}
	return report, nil
}
