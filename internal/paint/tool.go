package paint

import (
	"encoding/json"
	"fmt"
	"image/color"
)

// ToolKind tags the active tool so the eraser never depends on comparing
// colors with the background.
type ToolKind int

const (
	// ToolBrush paints in a palette color.
	ToolBrush ToolKind = iota
	// ToolEraser paints in the background color with a wider stroke.
	ToolEraser
)

// String returns the name of the tool kind.
func (k ToolKind) String() string {
	switch k {
	case ToolBrush:
		return "brush"
	case ToolEraser:
		return "eraser"
	default:
		return fmt.Sprintf("tool(%d)", int(k))
	}
}

// Tool is the active drawing tool.
type Tool struct {
	Kind      ToolKind
	Name      string
	Color     color.RGBA
	Thickness int
}

// MarshalJSON encodes the tool with a hex color for API clients.
func (t Tool) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind      string `json:"kind"`
		Name      string `json:"name"`
		Color     string `json:"color"`
		Thickness int    `json:"thickness"`
	}{
		Kind:      t.Kind.String(),
		Name:      t.Name,
		Color:     Hex(t.Color),
		Thickness: t.Thickness,
	})
}

// Hex formats a color as #rrggbb.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
