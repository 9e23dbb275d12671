// Package detector provides hand detection interfaces and types for gesture drawing.
package detector

import "image"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point3D represents a landmark position. X and Y are pixel coordinates
// once a hand has been scaled to its frame; Z is the estimator's relative depth.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Pixel truncates the point to integer pixel coordinates.
func (p Point3D) Pixel() image.Point {
	return image.Point{X: int(p.X), Y: int(p.Y)}
}

// HandLandmarks represents the 21 hand landmarks of one detected hand.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Count      int                   `json:"count"`      // number of valid leading points
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// Complete reports whether all 21 landmarks are present.
// A nil hand is never complete.
func (h *HandLandmarks) Complete() bool {
	return h != nil && h.Count == NumLandmarks
}

// Scaled returns a copy of the hand with normalized [0,1] coordinates
// multiplied by the frame size. Z is left untouched.
func (h *HandLandmarks) Scaled(width, height int) *HandLandmarks {
	if h == nil {
		return nil
	}

	scaled := *h
	for i := 0; i < NumLandmarks; i++ {
		scaled.Points[i].X = h.Points[i].X * float64(width)
		scaled.Points[i].Y = h.Points[i].Y * float64(height)
	}
	return &scaled
}
