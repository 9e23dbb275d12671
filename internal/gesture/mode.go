package gesture

import "fmt"

// Mode is the interaction mode resolved for a single frame.
type Mode int

const (
	// ModeIdle pauses drawing: no hand, a fist, an open palm, or any other shape.
	ModeIdle Mode = iota
	// ModeDraw is a lone raised index finger.
	ModeDraw
	// ModeSelect is raised index and middle fingers.
	ModeSelect
)

// String returns the display name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeDraw:
		return "draw"
	case ModeSelect:
		return "select"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// MarshalText encodes the mode by name for JSON snapshots.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Resolve maps finger states to a mode. Ring and pinky are ignored for
// select, so a loosely closed hand with two raised fingers still selects.
func Resolve(f FingerState) Mode {
	switch {
	case f.Index && f.Middle:
		return ModeSelect
	case f.Index && !f.Middle && !f.Ring && !f.Pinky:
		return ModeDraw
	default:
		return ModeIdle
	}
}
