package paint

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/ayusman/airpaint/internal/detector"
	"github.com/ayusman/airpaint/internal/gesture"
)

// ErrNilSurface is returned when an engine is created without a canvas.
var ErrNilSurface = errors.New("nil surface")

// Surface is the persistent raster the engine draws on.
type Surface interface {
	// Line draws a straight segment between two points.
	Line(from, to image.Point, c color.RGBA, thickness int)
	// Clear resets every pixel to the background color.
	Clear()
}

// Anchor is the last drawn point of the stroke in progress.
type Anchor struct {
	Point image.Point `json:"point"`
	Set   bool        `json:"set"`
}

// Cursor is the fingertip tracking state.
type Cursor struct {
	Raw      image.Point `json:"raw"`
	Smoothed image.Point `json:"smoothed"`
	Anchor   Anchor      `json:"anchor"`
}

// Stats counts canvas activity since the engine was created.
type Stats struct {
	Segments int `json:"segments"`
	Strokes  int `json:"strokes"`
	Clears   int `json:"clears"`
}

// Result describes what a single tick did.
type Result struct {
	Mode     gesture.Mode
	Hand     bool
	Segment  [2]image.Point // valid when Drew is true
	Drew     bool
	Selected *Zone // zone applied this tick, if any
	Cleared  bool
}

// Snapshot is a read-only copy of the engine state for overlays and APIs.
type Snapshot struct {
	Tick    uint64              `json:"tick"`
	Hand    bool                `json:"hand"`
	Mode    gesture.Mode        `json:"mode"`
	Fingers gesture.FingerState `json:"fingers"`
	Cursor  Cursor              `json:"cursor"`
	Tool    Tool                `json:"tool"`
	Hover   string              `json:"hover,omitempty"`
	Stats   Stats               `json:"stats"`
}

// Engine owns the tool, cursor and canvas state. It is not safe for
// concurrent use; one goroutine drives Tick and publishes Snapshots.
type Engine struct {
	config   Config
	surface  Surface
	smoother *gesture.Smoother
	tool     Tool
	cursor   Cursor
	mode     gesture.Mode
	fingers  gesture.FingerState
	hand     bool
	hover    string
	tick     uint64
	stats    Stats
}

// NewEngine creates an engine drawing on s. The smoothed cursor starts at
// the frame center.
func NewEngine(config Config, s Surface) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrNilSurface
	}

	center := image.Pt(config.Width/2, config.Height/2)
	smoother, err := gesture.NewSmoother(config.Alpha, center)
	if err != nil {
		return nil, fmt.Errorf("create smoother: %w", err)
	}

	return &Engine{
		config:   config,
		surface:  s,
		smoother: smoother,
		tool:     config.DefaultTool(),
		cursor:   Cursor{Raw: center, Smoothed: center},
	}, nil
}

// Tick advances the engine by one frame. A nil or incomplete hand resolves
// to idle and ends the current stroke.
func (e *Engine) Tick(hand *detector.HandLandmarks) Result {
	e.tick++
	e.hover = ""

	reading, ok := gesture.Classify(hand)
	if !ok {
		e.hand = false
		e.mode = gesture.ModeIdle
		e.fingers = gesture.FingerState{}
		e.endStroke()
		return Result{Mode: gesture.ModeIdle}
	}

	e.hand = true
	e.fingers = reading.Fingers
	e.cursor.Raw = reading.IndexTip
	e.cursor.Smoothed = e.smoother.Update(reading.IndexTip, !e.cursor.Anchor.Set)
	e.mode = gesture.Resolve(reading.Fingers)

	res := Result{Mode: e.mode, Hand: true}
	switch e.mode {
	case gesture.ModeSelect:
		e.endStroke()
		e.selectTool(&res)
	case gesture.ModeDraw:
		e.drawStroke(&res)
	default:
		e.endStroke()
	}
	return res
}

// InBand reports whether a point lies in the reserved selection band.
func (e *Engine) InBand(p image.Point) bool {
	return p.Y < e.config.BandHeight
}

func (e *Engine) endStroke() {
	e.cursor.Anchor = Anchor{}
}

func (e *Engine) selectTool(res *Result) {
	cur := e.cursor.Smoothed
	if !e.InBand(cur) {
		return
	}

	i, ok := e.config.Palette.ZoneAt(cur.X, e.config.Width)
	if !ok {
		return
	}
	zone := e.config.Palette[i]
	e.hover = zone.Name
	res.Selected = &zone

	switch zone.Kind {
	case ZoneColor:
		e.tool = Tool{Kind: ToolBrush, Name: zone.Name, Color: zone.Color, Thickness: e.config.BrushThickness}
	case ZoneEraser:
		e.tool = Tool{Kind: ToolEraser, Name: zone.Name, Color: e.config.Background, Thickness: e.config.EraserThickness}
	case ZoneClear:
		e.clear()
		res.Cleared = true
	}
}

func (e *Engine) drawStroke(res *Result) {
	cur := e.cursor.Smoothed
	if e.InBand(cur) {
		e.endStroke()
		return
	}

	if !e.cursor.Anchor.Set {
		e.cursor.Anchor = Anchor{Point: cur, Set: true}
		e.stats.Strokes++
		return
	}

	from := e.cursor.Anchor.Point
	e.surface.Line(from, cur, e.tool.Color, e.tool.Thickness)
	e.cursor.Anchor.Point = cur
	e.stats.Segments++

	res.Drew = true
	res.Segment = [2]image.Point{from, cur}
}

// clear wipes the canvas. Clearing while erasing reverts to the default
// brush so the next stroke is visible.
func (e *Engine) clear() {
	e.surface.Clear()
	e.stats.Clears++
	if e.tool.Kind == ToolEraser {
		e.tool = e.config.DefaultTool()
	}
}

// Clear wipes the canvas on request from outside the gesture loop, with the
// same tool fallback as the clear zone. It ends any stroke in progress.
func (e *Engine) Clear() {
	e.endStroke()
	e.clear()
}

// Tool returns the active tool.
func (e *Engine) Tool() Tool {
	return e.tool
}

// Mode returns the mode resolved on the last tick.
func (e *Engine) Mode() gesture.Mode {
	return e.mode
}

// Cursor returns the cursor state.
func (e *Engine) Cursor() Cursor {
	return e.cursor
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Snapshot copies the current state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Tick:    e.tick,
		Hand:    e.hand,
		Mode:    e.mode,
		Fingers: e.fingers,
		Cursor:  e.cursor,
		Tool:    e.tool,
		Hover:   e.hover,
		Stats:   e.stats,
	}
}

// Reconfigure swaps the tuning values of a running engine without touching
// the canvas. The frame size must not change. The active tool keeps its
// kind and color and picks up the new thickness; the stroke in progress ends.
func (e *Engine) Reconfigure(config Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	if config.Width != e.config.Width || config.Height != e.config.Height {
		return fmt.Errorf("%w: frame size changed from %dx%d to %dx%d",
			ErrInvalidConfig, e.config.Width, e.config.Height, config.Width, config.Height)
	}

	smoother, err := gesture.NewSmoother(config.Alpha, e.cursor.Smoothed)
	if err != nil {
		return fmt.Errorf("create smoother: %w", err)
	}

	e.config = config
	e.smoother = smoother
	e.endStroke()

	switch e.tool.Kind {
	case ToolEraser:
		e.tool.Color = config.Background
		e.tool.Thickness = config.EraserThickness
	default:
		e.tool.Thickness = config.BrushThickness
	}
	return nil
}
