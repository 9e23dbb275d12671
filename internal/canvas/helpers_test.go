package canvas

import (
	"image"

	"github.com/ayusman/airpaint/internal/detector"
)

func pointing(p image.Point) detector.HandLandmarks {
	return detector.PointingLandmarks(float64(p.X), float64(p.Y))
}

func twoFinger(p image.Point) detector.HandLandmarks {
	return detector.TwoFingerLandmarks(float64(p.X), float64(p.Y))
}
