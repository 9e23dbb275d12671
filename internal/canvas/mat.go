// Package canvas provides the persistent stroke rasters the paint engine
// draws on and the compositor that merges them onto video frames.
package canvas

import (
	"errors"
	"image"
	"image/color"
	"sync"

	"gocv.io/x/gocv"
)

// ErrSizeMismatch is returned when a frame and canvas differ in size.
var ErrSizeMismatch = errors.New("frame and canvas sizes differ")

// Mat is an OpenCV-backed canvas with the same layout as camera frames
// (8-bit BGR).
type Mat struct {
	mat        gocv.Mat
	background color.RGBA
	mu         sync.RWMutex
}

// NewMat creates a canvas of the given size filled with the background.
func NewMat(width, height int, background color.RGBA) *Mat {
	return &Mat{
		mat:        gocv.NewMatWithSizeFromScalar(scalar(background), height, width, gocv.MatTypeCV8UC3),
		background: background,
	}
}

// scalar converts a color to an OpenCV BGR scalar.
func scalar(c color.RGBA) gocv.Scalar {
	return gocv.NewScalar(float64(c.B), float64(c.G), float64(c.R), 0)
}

// Line draws a segment with the given color and thickness.
func (m *Mat) Line(from, to image.Point, c color.RGBA, thickness int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	gocv.Line(&m.mat, from, to, c, thickness)
}

// Clear resets the canvas to the background color.
func (m *Mat) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mat.SetTo(scalar(m.background))
}

// Background returns the canvas background color.
func (m *Mat) Background() color.RGBA {
	return m.background
}

// Size returns the canvas width and height.
func (m *Mat) Size() (int, int) {
	return m.mat.Cols(), m.mat.Rows()
}

// At returns the color of a pixel.
func (m *Mat) At(x, y int) color.RGBA {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v := m.mat.GetVecbAt(y, x)
	return color.RGBA{R: v[2], G: v[1], B: v[0], A: 255}
}

// Close releases the underlying Mat.
func (m *Mat) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mat.Close()
}

// Composite writes frame into dst with every canvas pixel that differs from
// the background copied over it. Background pixels stay transparent.
func Composite(frame gocv.Mat, c *Mat, dst *gocv.Mat) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if frame.Cols() != c.mat.Cols() || frame.Rows() != c.mat.Rows() {
		return ErrSizeMismatch
	}

	frame.CopyTo(dst)

	bg := scalar(c.background)
	isBackground := gocv.NewMat()
	defer isBackground.Close()
	gocv.InRangeWithScalar(c.mat, bg, bg, &isBackground)

	strokes := gocv.NewMat()
	defer strokes.Close()
	gocv.BitwiseNot(isBackground, &strokes)

	c.mat.CopyToWithMask(dst, strokes)
	return nil
}
