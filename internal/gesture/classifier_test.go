package gesture

import (
	"image"
	"testing"

	"github.com/ayusman/airpaint/internal/detector"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		hand detector.HandLandmarks
		want FingerState
	}{
		{
			name: "pointing",
			hand: detector.PointingLandmarks(300, 200),
			want: FingerState{Index: true},
		},
		{
			name: "two fingers",
			hand: detector.TwoFingerLandmarks(300, 200),
			want: FingerState{Index: true, Middle: true},
		},
		{
			name: "fist",
			hand: detector.FistLandmarks(300, 200),
			want: FingerState{},
		},
		{
			name: "open palm",
			hand: detector.OpenPalmLandmarks(300, 200),
			want: FingerState{Index: true, Middle: true, Ring: true, Pinky: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reading, ok := Classify(&tt.hand)
			if !ok {
				t.Fatal("expected complete hand to classify")
			}
			if reading.Fingers != tt.want {
				t.Errorf("Fingers = %+v, want %+v", reading.Fingers, tt.want)
			}
		})
	}
}

func TestClassify_Tips(t *testing.T) {
	hand := detector.TwoFingerLandmarks(300.7, 200.2)

	reading, ok := Classify(&hand)
	if !ok {
		t.Fatal("expected complete hand to classify")
	}
	if reading.IndexTip != (image.Point{X: 300, Y: 200}) {
		t.Errorf("IndexTip = %v, want (300,200)", reading.IndexTip)
	}
	if reading.MiddleTip != hand.Points[detector.MiddleTip].Pixel() {
		t.Errorf("MiddleTip = %v, want %v", reading.MiddleTip, hand.Points[detector.MiddleTip].Pixel())
	}
}

func TestClassify_EqualHeightIsRetracted(t *testing.T) {
	hand := detector.PointingLandmarks(100, 100)
	hand.Points[detector.IndexTip].Y = hand.Points[detector.IndexPIP].Y

	reading, _ := Classify(&hand)
	if reading.Fingers.Index {
		t.Error("expected tip level with PIP to count as retracted")
	}
}

func TestClassify_Incomplete(t *testing.T) {
	t.Run("nil hand", func(t *testing.T) {
		if _, ok := Classify(nil); ok {
			t.Error("expected nil hand to be rejected")
		}
	})

	t.Run("short landmark set", func(t *testing.T) {
		hand := detector.PointingLandmarks(100, 100)
		hand.Count = detector.NumLandmarks - 1

		if _, ok := Classify(&hand); ok {
			t.Error("expected incomplete hand to be rejected")
		}
	})
}
