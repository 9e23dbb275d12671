// Package overlay draws the selection bar and tool indicators on display frames.
package overlay

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/airpaint/internal/gesture"
	"github.com/ayusman/airpaint/internal/paint"
)

// Draw renders the heads-up display for a snapshot onto frame:
// the fingertip marker, the mode label, the selection bar and the
// current tool swatch.
func Draw(frame *gocv.Mat, cfg paint.Config, snap paint.Snapshot) {
	w, h := frame.Cols(), frame.Rows()

	drawBar(frame, cfg, snap.Hover)

	if snap.Hand {
		radius := snap.Tool.Thickness
		if radius < 2 {
			radius = 2
		}
		gocv.Circle(frame, snap.Cursor.Raw, radius, snap.Tool.Color, -1)
	}

	switch snap.Mode {
	case gesture.ModeSelect:
		gocv.PutText(frame, "Selection Mode", image.Pt(w/2-100, cfg.BandHeight+30), gocv.FontHersheySimplex, 1, paint.White, 2)
	case gesture.ModeDraw:
		gocv.PutText(frame, "Draw Mode", image.Pt(w/2-100, cfg.BandHeight+30), gocv.FontHersheySimplex, 1, labelColor(snap.Tool), 2)
	}

	gocv.Circle(frame, image.Pt(w-20, h-20), 10, snap.Tool.Color, -1)
	gocv.Circle(frame, image.Pt(w-20, h-20), 10, paint.White, 1)
	gocv.PutText(frame, "Current Color/Tool", image.Pt(w-250, h-15), gocv.FontHersheySimplex, 0.6, paint.White, 1)
}

// labelColor keeps the draw label readable while erasing in the background color.
func labelColor(t paint.Tool) color.RGBA {
	if t.Kind == paint.ToolEraser {
		return paint.White
	}
	return t.Color
}

func drawBar(frame *gocv.Mat, cfg paint.Config, hover string) {
	w := frame.Cols()
	band := cfg.BandHeight
	zw := cfg.Palette.ZoneWidth(w)

	gocv.Rectangle(frame, image.Rect(0, 0, w, band), paint.BarColor, -1)

	for i, z := range cfg.Palette {
		x0 := i * zw
		x1 := x0 + zw
		if i == len(cfg.Palette)-1 {
			x1 = w
		}
		if i > 0 {
			gocv.Line(frame, image.Pt(x0, 0), image.Pt(x0, band), paint.White, 1)
		}
		if z.Name == hover {
			gocv.Rectangle(frame, image.Rect(x0+2, 2, x1-2, band-2), paint.White, 2)
		}
		gocv.PutText(frame, z.Name, image.Pt(x0+10, band*2/3), gocv.FontHersheySimplex, 0.7, z.Color, 2)
	}
}
