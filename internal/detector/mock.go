package detector

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	mu    sync.Mutex
	hands []HandLandmarks
	err   error
	calls int
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns how many times Detect has been invoked.
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
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Preset skeleton in pixel space for a right hand, palm facing the camera,
// wrist at the bottom. Y grows downward.
var (
	mockWrist = Point{X: 320, Y: 400}

	mockBases = [4]struct {
		mcp, pip, dip, tip Joint
		base               Point
		spread             float64
	}{
		{IndexMCP, IndexPIP, IndexDIP, IndexTip, Point{X: 350, Y: 300}, 1},
		{MiddleMCP, MiddlePIP, MiddleDIP, MiddleTip, Point{X: 320, Y: 290}, 0},
		{RingMCP, RingPIP, RingDIP, RingTip, Point{X: 290, Y: 300}, -1},
		{LittleMCP, LittlePIP, LittleDIP, LittleTip, Point{X: 265, Y: 315}, -2},
	}
)

// PoseLandmarks builds a hand whose fingers are extended or curled as requested.
// The order is index, middle, ring, little, thumb.
func PoseLandmarks(index, middle, ring, little, thumb bool) HandLandmarks {
	lm := HandLandmarks{
		Joints:     HandJoints{Wrist: mockWrist},
		Handedness: "Right",
		Score:      0.95,
	}

	extended := [4]bool{index, middle, ring, little}
	for i, f := range mockBases {
		b := f.base
		lm.Joints[f.mcp] = b
		if extended[i] {
			lm.Joints[f.pip] = Point{X: b.X + 2*f.spread, Y: b.Y - 50}
			lm.Joints[f.dip] = Point{X: b.X + 4*f.spread, Y: b.Y - 85}
			lm.Joints[f.tip] = Point{X: b.X + 6*f.spread, Y: b.Y - 115}
		} else {
			// Folded back toward the palm.
			lm.Joints[f.pip] = Point{X: b.X, Y: b.Y - 35}
			lm.Joints[f.dip] = Point{X: b.X - 3, Y: b.Y + 10}
			lm.Joints[f.tip] = Point{X: b.X - 8, Y: b.Y + 40}
		}
	}

	lm.Joints[ThumbCMC] = Point{X: 350, Y: 385}
	if thumb {
		lm.Joints[ThumbMP] = Point{X: 380, Y: 360}
		lm.Joints[ThumbIP] = Point{X: 405, Y: 335}
		lm.Joints[ThumbTip] = Point{X: 425, Y: 310}
	} else {
		// Tip tucked back below the IP joint, nearer the index base than the middle base.
		lm.Joints[ThumbMP] = Point{X: 375, Y: 360}
		lm.Joints[ThumbIP] = Point{X: 385, Y: 340}
		lm.Joints[ThumbTip] = Point{X: 365, Y: 370}
	}

	return lm
}

// CountingLandmarks returns the canonical counting pose for digit 0-5.
// Digits outside that range return a fist.
func CountingLandmarks(digit int) HandLandmarks {
	switch digit {
	case 1:
		return PoseLandmarks(true, false, false, false, false)
	case 2:
		return PoseLandmarks(true, true, false, false, false)
	case 3:
		return PoseLandmarks(true, true, true, false, false)
	case 4:
		return PoseLandmarks(true, true, true, true, false)
	case 5:
		return PoseLandmarks(true, true, true, true, true)
	default:
		return PoseLandmarks(false, false, false, false, false)
	}
}

// FistLandmarks returns a closed fist.
func FistLandmarks() HandLandmarks {
	return CountingLandmarks(0)
}

// OpenPalmLandmarks returns an open palm with every finger extended.
func OpenPalmLandmarks() HandLandmarks {
	return CountingLandmarks(5)
}

// LittleFingerLandmarks returns a fist with only the little finger raised.
func LittleFingerLandmarks() HandLandmarks {
	return PoseLandmarks(false, false, false, true, false)
}
