package capture

import (
	"image"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// Motion detection constants
const (
	// GaussianBlurSize is the kernel size for Gaussian blur (21x21)
	GaussianBlurSize = 21
	// DiffThreshold is the binary threshold for difference detection
	DiffThreshold = 25
	// DefaultHold keeps the gate open after the last motion so a hand that
	// pauses mid-stroke is still tracked.
	DefaultHold = 2 * time.Second
)

// MotionGate decides whether a frame is worth running hand detection on.
// It compares consecutive frames and stays open for a hold period after the
// last change. A zero threshold disables gating.
type MotionGate struct {
	threshold   float64
	hold        time.Duration
	prevGray    gocv.Mat
	initialized bool
	lastMotion  time.Time
	mu          sync.Mutex
}

// NewMotionGate creates a gate with the given threshold, the percentage of
// pixels that must change to count as motion (1.0 means 1%).
func NewMotionGate(threshold float64, hold time.Duration) *MotionGate {
	return &MotionGate{
		threshold: threshold,
		hold:      hold,
		prevGray:  gocv.NewMat(),
	}
}

// Enabled reports whether the gate filters frames at all.
func (g *MotionGate) Enabled() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.threshold > 0
}

// Allow reports whether frame should be processed at time now.
// The first frame only establishes a baseline and is allowed through.
func (g *MotionGate) Allow(frame *gocv.Mat, now time.Time) bool {
	if !g.Enabled() {
		return true
	}

	moved, _ := g.Detect(frame)
	g.mu.Lock()
	defer g.mu.Unlock()

	if moved || g.lastMotion.IsZero() {
		g.lastMotion = now
		return true
	}
	return now.Sub(g.lastMotion) <= g.hold
}

// Detect analyzes a frame for motion compared to the previous frame.
// Returns whether motion was detected and the percentage of pixels that changed.
//
// Algorithm:
// 1. Convert frame to grayscale
// 2. Apply Gaussian blur (21x21) to reduce noise
// 3. If first frame, store as baseline and return false
// 4. Calculate absolute difference with previous frame
// 5. Threshold the difference (threshold=25)
// 6. Count non-zero pixels / total pixels = changePercent
// 7. Return changePercent > threshold
func (g *MotionGate) Detect(frame *gocv.Mat) (bool, float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if frame == nil || frame.Empty() {
		return false, 0
	}

	gray := gocv.NewMat()
	defer gray.Close()

	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: GaussianBlurSize, Y: GaussianBlurSize}, 0, 0, gocv.BorderDefault)

	if !g.initialized {
		blurred.CopyTo(&g.prevGray)
		g.initialized = true
		return false, 0
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(blurred, g.prevGray, &diff)

	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(diff, &thresh, DiffThreshold, 255, gocv.ThresholdBinary)

	changePercent := float64(gocv.CountNonZero(thresh)) / float64(thresh.Rows()*thresh.Cols()) * 100.0

	blurred.CopyTo(&g.prevGray)

	return changePercent > g.threshold, changePercent
}

// Reset clears the baseline frame and motion history.
func (g *MotionGate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.prevGray.Empty() {
		g.prevGray.Close()
		g.prevGray = gocv.NewMat()
	}
	g.initialized = false
	g.lastMotion = time.Time{}
}

// Close releases resources used by the gate.
func (g *MotionGate) Close() {
	g.Reset()
}

// SetThreshold sets the motion threshold. Zero disables gating;
// negative values are ignored.
func (g *MotionGate) SetThreshold(threshold float64) {
	if threshold < 0 {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.threshold = threshold
}
