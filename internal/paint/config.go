// Package paint implements the air painting engine: it turns per-frame hand
// landmarks into a mode, a smoothed cursor, tool selections and strokes on a
// persistent canvas.
package paint

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/ayusman/airpaint/internal/gesture"
)

// Reference geometry. Derived sizes scale with frame height against this.
const (
	ReferenceWidth  = 640
	ReferenceHeight = 480

	DefaultBrushThickness  = 8
	DefaultEraserThickness = 35
	DefaultBandHeight      = 60
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid paint config")

// Config holds the engine geometry and tuning.
type Config struct {
	Width           int
	Height          int
	Alpha           float64
	BrushThickness  int
	EraserThickness int
	BandHeight      int
	Background      color.RGBA
	Palette         Palette
}

// DefaultConfig returns the configuration for a 640x480 frame.
func DefaultConfig() Config {
	return Config{
		Width:           ReferenceWidth,
		Height:          ReferenceHeight,
		Alpha:           gesture.DefaultAlpha,
		BrushThickness:  DefaultBrushThickness,
		EraserThickness: DefaultEraserThickness,
		BandHeight:      DefaultBandHeight,
		Background:      Background,
		Palette:         DefaultPalette(),
	}
}

// ForFrame returns DefaultConfig resized to a frame, scaling the band and
// stroke widths proportionally to the frame height.
func ForFrame(width, height int) Config {
	cfg := DefaultConfig()
	cfg.Width = width
	cfg.Height = height
	cfg.BandHeight = scale(DefaultBandHeight, height)
	cfg.BrushThickness = scale(DefaultBrushThickness, height)
	cfg.EraserThickness = scale(DefaultEraserThickness, height)
	return cfg
}

func scale(v, height int) int {
	s := v * height / ReferenceHeight
	if s < 1 {
		return 1
	}
	return s
}

// Validate checks the configuration.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: frame size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case !(c.Alpha > 0 && c.Alpha <= 1):
		return fmt.Errorf("%w: alpha %v not in (0, 1]", ErrInvalidConfig, c.Alpha)
	case c.BrushThickness <= 0:
		return fmt.Errorf("%w: brush thickness %d", ErrInvalidConfig, c.BrushThickness)
	case c.EraserThickness <= 0:
		return fmt.Errorf("%w: eraser thickness %d", ErrInvalidConfig, c.EraserThickness)
	case c.BandHeight <= 0 || c.BandHeight > c.Height:
		return fmt.Errorf("%w: band height %d for frame height %d", ErrInvalidConfig, c.BandHeight, c.Height)
	case len(c.Palette) == 0 || len(c.Palette) > c.Width:
		return fmt.Errorf("%w: %d palette zones for width %d", ErrInvalidConfig, len(c.Palette), c.Width)
	}

	if _, ok := c.Palette.FirstColor(); !ok {
		return fmt.Errorf("%w: palette has no color zone", ErrInvalidConfig)
	}
	return nil
}

// DefaultTool returns the brush the engine starts with and falls back to
// after clearing while erasing.
func (c Config) DefaultTool() Tool {
	z, _ := c.Palette.FirstColor()
	return Tool{Kind: ToolBrush, Name: z.Name, Color: z.Color, Thickness: c.BrushThickness}
}
