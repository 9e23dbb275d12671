package canvas

import (
	"image"
	"image/color"
	"log"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"
)

// Raster is a pure-Go canvas rendered with gg. Strokes use round caps and
// joins, so consecutive segments of a stroke meet without gaps.
type Raster struct {
	dc         *gg.Context
	background color.RGBA
}

// NewRaster creates a raster canvas filled with the background.
func NewRaster(width, height int, background color.RGBA) *Raster {
	dc := gg.NewContext(width, height)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	dc.ClearWithColor(gg.FromColor(background))
	return &Raster{dc: dc, background: background}
}

// Line draws a segment centered on the given pixels.
func (r *Raster) Line(from, to image.Point, c color.RGBA, thickness int) {
	r.dc.SetColor(c)
	r.dc.SetLineWidth(float64(thickness))
	r.dc.DrawLine(float64(from.X)+0.5, float64(from.Y)+0.5, float64(to.X)+0.5, float64(to.Y)+0.5)
	if err := r.dc.Stroke(); err != nil {
		log.Printf("raster stroke %v->%v: %v", from, to, err)
	}
}

// Clear resets the canvas to the background color.
func (r *Raster) Clear() {
	r.dc.ClearPath()
	r.dc.ClearWithColor(gg.FromColor(r.background))
}

// Background returns the canvas background color.
func (r *Raster) Background() color.RGBA {
	return r.background
}

// Image returns a copy of the canvas pixels.
func (r *Raster) Image() *image.RGBA {
	img, ok := r.dc.Image().(*image.RGBA)
	if ok {
		return img
	}
	b := r.dc.Image().Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, r.dc.Image(), b.Min, draw.Src)
	return rgba
}

// Coverage returns the number of pixels that differ from the background.
func (r *Raster) Coverage() int {
	img := r.Image()
	n := 0
	for y := img.Rect.Min.Y; y < img.Rect.Max.Y; y++ {
		for x := img.Rect.Min.X; x < img.Rect.Max.X; x++ {
			if img.RGBAAt(x, y) != r.background {
				n++
			}
		}
	}
	return n
}

// Close releases the drawing context.
func (r *Raster) Close() error {
	return r.dc.Close()
}

// CompositeImage is the pure-Go counterpart of Composite: canvas pixels that
// differ from the background replace frame pixels, the rest show the frame.
func CompositeImage(frame image.Image, r *Raster) (*image.RGBA, error) {
	canvas := r.Image()
	b := frame.Bounds()
	if b.Dx() != canvas.Rect.Dx() || b.Dy() != canvas.Rect.Dy() {
		return nil, ErrSizeMismatch
	}

	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Rect, frame, b.Min, draw.Src)

	mask := image.NewAlpha(dst.Rect)
	for y := 0; y < canvas.Rect.Dy(); y++ {
		for x := 0; x < canvas.Rect.Dx(); x++ {
			if canvas.RGBAAt(x, y) != r.background {
				mask.SetAlpha(x, y, color.Alpha{A: 255})
			}
		}
	}

	draw.DrawMask(dst, dst.Rect, canvas, image.Point{}, mask, image.Point{}, draw.Src)
	return dst, nil
}
