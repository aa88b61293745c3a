// Package detector provides hand detection interfaces and types for finger counting.
package detector

import "fmt"

// Joint identifies one of the 21 hand landmarks.
// Values follow the MediaPipe landmark index order.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
type Joint int

const (
	Wrist Joint = iota
	ThumbCMC
	ThumbMP
	ThumbIP
	ThumbTip
	IndexMCP
	IndexPIP
	IndexDIP
	IndexTip
	MiddleMCP
	MiddlePIP
	MiddleDIP
	MiddleTip
	RingMCP
	RingPIP
	RingDIP
	RingTip
	LittleMCP
	LittlePIP
	LittleDIP
	LittleTip
)

// NumJoints is the number of landmarks in a full hand skeleton.
const NumJoints = 21

var jointNames = [NumJoints]string{
	"wrist",
	"thumb_cmc", "thumb_mp", "thumb_ip", "thumb_tip",
	"index_mcp", "index_pip", "index_dip", "index_tip",
	"middle_mcp", "middle_pip", "middle_dip", "middle_tip",
	"ring_mcp", "ring_pip", "ring_dip", "ring_tip",
	"little_mcp", "little_pip", "little_dip", "little_tip",
}

// Valid reports whether j is one of the 21 known joints.
func (j Joint) Valid() bool {
	return j >= Wrist && j < NumJoints
}

func (j Joint) String() string {
	if !j.Valid() {
		return fmt.Sprintf("joint(%d)", int(j))
	}
	return jointNames[j]
}

// MarshalText encodes the joint by name so it can be used as a JSON map key.
func (j Joint) MarshalText() ([]byte, error) {
	if !j.Valid() {
		return nil, fmt.Errorf("invalid joint %d", int(j))
	}
	return []byte(jointNames[j]), nil
}

// UnmarshalText decodes a joint from its name.
func (j *Joint) UnmarshalText(text []byte) error {
	name := string(text)
	for i, n := range jointNames {
		if n == name {
			*j = Joint(i)
			return nil
		}
	}
	return fmt.Errorf("unknown joint %q", name)
}

// AllJoints returns every joint in index order.
func AllJoints() []Joint {
	joints := make([]Joint, NumJoints)
	for i := range joints {
		joints[i] = Joint(i)
	}
	return joints
}

// Point is a 2D position in the shared layer space (frame pixels).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// HandJoints maps each observed joint of one hand to its position.
// Joints the detector could not localise are simply absent.
type HandJoints map[Joint]Point

// Lookup returns the position of j and whether it was observed.
func (h HandJoints) Lookup(j Joint) (Point, bool) {
	p, ok := h[j]
	return p, ok
}

// HandLandmarks is one detected hand in one frame.
type HandLandmarks struct {
	Joints     HandJoints `json:"joints"`
	Handedness string     `json:"handedness"` // "Left" or "Right"
	Score      float64    `json:"score"`
}
