package gesture

import (
	"errors"
	"fmt"
	"image"
)

// DefaultAlpha weights new samples equally with the smoothed history.
const DefaultAlpha = 0.5

// ErrInvalidAlpha is returned for smoothing factors outside (0, 1].
var ErrInvalidAlpha = errors.New("smoothing factor must be in (0, 1]")

// Smoother applies an exponential moving average to the cursor position.
type Smoother struct {
	alpha    float64
	smoothed image.Point
}

// NewSmoother creates a Smoother whose output starts at origin, normally the
// frame center.
func NewSmoother(alpha float64, origin image.Point) (*Smoother, error) {
	if !(alpha > 0 && alpha <= 1) {
		return nil, fmt.Errorf("alpha %v: %w", alpha, ErrInvalidAlpha)
	}
	return &Smoother{alpha: alpha, smoothed: origin}, nil
}

// Update folds a raw sample into the average and returns the new position.
// When restart is true the output jumps to raw so a new stroke begins
// exactly under the finger. Blended values are truncated toward zero.
func (s *Smoother) Update(raw image.Point, restart bool) image.Point {
	if restart {
		s.smoothed = raw
		return s.smoothed
	}

	s.smoothed = image.Point{
		X: int(s.alpha*float64(raw.X) + (1-s.alpha)*float64(s.smoothed.X)),
		Y: int(s.alpha*float64(raw.Y) + (1-s.alpha)*float64(s.smoothed.Y)),
	}
	return s.smoothed
}

// Point returns the current smoothed position.
func (s *Smoother) Point() image.Point {
	return s.smoothed
}

// Alpha returns the smoothing factor.
func (s *Smoother) Alpha() float64 {
	return s.alpha
}
