package detector

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []HandLandmarks
	queue [][]HandLandmarks
	err   error
	calls int
	mu    sync.Mutex
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect
// once any queued results are consumed.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
}

// Queue appends per-call results. Each Detect call pops one entry;
// a nil entry means no hand for that frame.
func (m *MockDetector) Queue(results ...[]HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, results...)
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns how many times Detect has been called.
func (m *MockDetector) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if len(m.queue) > 0 {
		next := m.queue[0]
		m.queue = m.queue[1:]
		return next, nil
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Finger column offsets relative to the index finger, in pixels.
// The layout is a right hand seen in a mirrored camera image.
var fingerOffsets = [4]struct {
	mcp, pip, dip, tip int
	dx                 float64
}{
	{IndexMCP, IndexPIP, IndexDIP, IndexTip, 0},
	{MiddleMCP, MiddlePIP, MiddleDIP, MiddleTip, -25},
	{RingMCP, RingPIP, RingDIP, RingTip, -50},
	{PinkyMCP, PinkyPIP, PinkyDIP, PinkyTip, -75},
}

// Pose builds a complete synthetic hand in pixel coordinates. When the index
// finger is extended its tip lands exactly on (x, y). The extended flags are
// ordered index, middle, ring, pinky.
func Pose(x, y float64, extended [4]bool) HandLandmarks {
	hand := HandLandmarks{
		Count:      NumLandmarks,
		Handedness: "Right",
		Score:      0.95,
	}

	hand.Points[Wrist] = Point3D{X: x - 30, Y: y + 160}

	// Thumb tucked to the side; its state is never classified.
	hand.Points[ThumbCMC] = Point3D{X: x + 10, Y: y + 150}
	hand.Points[ThumbMCP] = Point3D{X: x + 25, Y: y + 130}
	hand.Points[ThumbIP] = Point3D{X: x + 35, Y: y + 115}
	hand.Points[ThumbTip] = Point3D{X: x + 40, Y: y + 100}

	for i, f := range fingerOffsets {
		fx := x + f.dx
		hand.Points[f.mcp] = Point3D{X: fx, Y: y + 100}
		if extended[i] {
			hand.Points[f.pip] = Point3D{X: fx, Y: y + 60}
			hand.Points[f.dip] = Point3D{X: fx, Y: y + 30}
			hand.Points[f.tip] = Point3D{X: fx, Y: y}
		} else {
			hand.Points[f.pip] = Point3D{X: fx, Y: y + 80}
			hand.Points[f.dip] = Point3D{X: fx, Y: y + 95}
			hand.Points[f.tip] = Point3D{X: fx, Y: y + 105, Z: -0.02}
		}
	}

	return hand
}

// PointingLandmarks returns a hand with only the index finger raised,
// its tip at (x, y).
func PointingLandmarks(x, y float64) HandLandmarks {
	return Pose(x, y, [4]bool{true, false, false, false})
}

// TwoFingerLandmarks returns a hand with index and middle fingers raised,
// the index tip at (x, y).
func TwoFingerLandmarks(x, y float64) HandLandmarks {
	return Pose(x, y, [4]bool{true, true, false, false})
}

// FistLandmarks returns a closed hand positioned around (x, y).
func FistLandmarks(x, y float64) HandLandmarks {
	return Pose(x, y, [4]bool{})
}

// OpenPalmLandmarks returns a hand with all four fingers raised,
// the index tip at (x, y).
func OpenPalmLandmarks(x, y float64) HandLandmarks {
	return Pose(x, y, [4]bool{true, true, true, true})
}
