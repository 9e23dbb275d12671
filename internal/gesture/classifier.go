// Package gesture turns per-frame hand landmarks into finger states,
// interaction modes and a smoothed cursor.
package gesture

import (
	"image"

	"github.com/ayusman/airpaint/internal/detector"
)

// FingerState holds the extension state of the four non-thumb fingers.
// A finger is extended when its tip is higher on screen than its PIP joint.
type FingerState struct {
	Index  bool `json:"index"`
	Middle bool `json:"middle"`
	Ring   bool `json:"ring"`
	Pinky  bool `json:"pinky"`
}

// Reading is the classifier output for one hand.
type Reading struct {
	Fingers   FingerState
	IndexTip  image.Point
	MiddleTip image.Point
}

// extended compares vertical pixel coordinates; smaller Y is higher on screen.
func extended(hand *detector.HandLandmarks, tip, pip int) bool {
	return hand.Points[tip].Y < hand.Points[pip].Y
}

// Classify derives finger states from a hand. It returns false for a nil or
// incomplete landmark set, which callers treat as no hand detected.
func Classify(hand *detector.HandLandmarks) (Reading, bool) {
	if !hand.Complete() {
		return Reading{}, false
	}

	return Reading{
		Fingers: FingerState{
			Index:  extended(hand, detector.IndexTip, detector.IndexPIP),
			Middle: extended(hand, detector.MiddleTip, detector.MiddlePIP),
			Ring:   extended(hand, detector.RingTip, detector.RingPIP),
			Pinky:  extended(hand, detector.PinkyTip, detector.PinkyPIP),
		},
		IndexTip:  hand.Points[detector.IndexTip].Pixel(),
		MiddleTip: hand.Points[detector.MiddleTip].Pixel(),
	}, true
}
