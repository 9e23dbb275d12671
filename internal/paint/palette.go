package paint

import "image/color"

// ZoneKind identifies what a selection bar zone does.
type ZoneKind int

const (
	// ZoneColor switches to a brush of the zone's color.
	ZoneColor ZoneKind = iota
	// ZoneEraser switches to the eraser.
	ZoneEraser
	// ZoneClear wipes the canvas.
	ZoneClear
)

// Zone is one cell of the selection bar.
type Zone struct {
	Kind  ZoneKind
	Name  string
	Color color.RGBA // brush color for ZoneColor, label color otherwise
}

// Palette is the ordered list of zones laid out left to right across the band.
type Palette []Zone

// Default colors of the selection bar.
var (
	Blue       = color.RGBA{R: 0, G: 160, B: 255, A: 255}
	Green      = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Red        = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	White      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Black      = color.RGBA{A: 255}
	BarColor   = color.RGBA{R: 50, G: 50, B: 50, A: 255}
	Background = Black
)

// DefaultPalette returns Blue, Green, Red, Eraser, Clear.
func DefaultPalette() Palette {
	return Palette{
		{Kind: ZoneColor, Name: "BLUE", Color: Blue},
		{Kind: ZoneColor, Name: "GREEN", Color: Green},
		{Kind: ZoneColor, Name: "RED", Color: Red},
		{Kind: ZoneEraser, Name: "ERASER", Color: White},
		{Kind: ZoneClear, Name: "CLEAR", Color: White},
	}
}

// ZoneWidth returns the width of each zone for a frame of the given width.
func (p Palette) ZoneWidth(width int) int {
	if len(p) == 0 {
		return 0
	}
	return width / len(p)
}

// ZoneAt returns the index of the zone under x in a band of the given width.
// Zones are half-open [i*w, (i+1)*w); the remainder left by integer division
// belongs to the last zone. It returns false when x is outside the band.
func (p Palette) ZoneAt(x, width int) (int, bool) {
	zw := p.ZoneWidth(width)
	if zw == 0 || x < 0 || x >= width {
		return 0, false
	}
	i := x / zw
	if i >= len(p) {
		i = len(p) - 1
	}
	return i, true
}

// FirstColor returns the first color zone, used as the default brush.
func (p Palette) FirstColor() (Zone, bool) {
	for _, z := range p {
		if z.Kind == ZoneColor {
			return z, true
		}
	}
	return Zone{}, false
}
