package gesture

import (
	"fmt"

	"github.com/ayusman/handcount/internal/detector"
)

// Finger identifies one of the five digits of a hand.
type Finger int

// Fingers in resolver order.
const (
	Index Finger = iota
	Middle
	Ring
	Little
	Thumb
	numFingers
)

// Fingers lists every finger in resolver order (index, middle, ring, little, thumb).
var Fingers = [numFingers]Finger{Index, Middle, Ring, Little, Thumb}

var fingerNames = [numFingers]string{"index", "middle", "ring", "little", "thumb"}

func (f Finger) String() string {
	if f < 0 || f >= numFingers {
		return fmt.Sprintf("finger(%d)", int(f))
	}
	return fingerNames[f]
}

// MarshalText encodes the finger by name.
func (f Finger) MarshalText() ([]byte, error) {
	if f < 0 || f >= numFingers {
		return nil, fmt.Errorf("invalid finger %d", int(f))
	}
	return []byte(fingerNames[f]), nil
}

// UnmarshalText decodes a finger from its name.
func (f *Finger) UnmarshalText(text []byte) error {
	for i, n := range fingerNames {
		if n == string(text) {
			*f = Finger(i)
			return nil
		}
	}
	return fmt.Errorf("unknown finger %q", text)
}

// Role is a joint's position along its finger's chain, counted from the tip.
// The thumb's tip, IP, MP and CMC joints fill the same four roles.
type Role int

const (
	Tip      Role = iota // fingertip
	Distal               // DIP, or thumb IP
	Proximal             // PIP, or thumb MP
	Base                 // MCP, or thumb CMC
	numRoles
)

// slot is where a non-wrist joint sits on the hand.
type slot struct {
	finger Finger
	role   Role
}

// jointSlots is the fixed joint→(finger, role) table over the 20 non-wrist joints.
var jointSlots = map[detector.Joint]slot{
	detector.IndexTip: {Index, Tip}, detector.IndexDIP: {Index, Distal},
	detector.IndexPIP: {Index, Proximal}, detector.IndexMCP: {Index, Base},

	detector.MiddleTip: {Middle, Tip}, detector.MiddleDIP: {Middle, Distal},
	detector.MiddlePIP: {Middle, Proximal}, detector.MiddleMCP: {Middle, Base},

	detector.RingTip: {Ring, Tip}, detector.RingDIP: {Ring, Distal},
	detector.RingPIP: {Ring, Proximal}, detector.RingMCP: {Ring, Base},

	detector.LittleTip: {Little, Tip}, detector.LittleDIP: {Little, Distal},
	detector.LittlePIP: {Little, Proximal}, detector.LittleMCP: {Little, Base},

	detector.ThumbTip: {Thumb, Tip}, detector.ThumbIP: {Thumb, Distal},
	detector.ThumbMP: {Thumb, Proximal}, detector.ThumbCMC: {Thumb, Base},
}

// fingerJoints is the inverse of jointSlots.
var fingerJoints = func() [numFingers][numRoles]detector.Joint {
	var out [numFingers][numRoles]detector.Joint
	for j, s := range jointSlots {
		out[s.finger][s.role] = j
	}
	return out
}()

// JointFor returns the joint that fills role r on finger f.
func JointFor(f Finger, r Role) detector.Joint {
	return fingerJoints[f][r]
}

// Locate returns the finger and role of a joint. ok is false for the wrist
// and for unknown identifiers.
func Locate(j detector.Joint) (f Finger, r Role, ok bool) {
	s, ok := jointSlots[j]
	return s.finger, s.role, ok
}

// JointGroup holds the joints of one finger that were observed this frame.
type JointGroup struct {
	Finger Finger
	Joints map[detector.Joint]detector.Point
}

// At returns the point in role r, if it was observed.
func (g JointGroup) At(r Role) (detector.Point, bool) {
	p, ok := g.Joints[JointFor(g.Finger, r)]
	return p, ok
}

// Chain returns the observed points ordered tip, distal, proximal, base.
func (g JointGroup) Chain() []detector.Point {
	chain := make([]detector.Point, 0, numRoles)
	for r := Tip; r < numRoles; r++ {
		if p, ok := g.At(r); ok {
			chain = append(chain, p)
		}
	}
	return chain
}

// Observation is one hand's joints regrouped by finger.
// It is built fresh for every hand and never reused.
type Observation struct {
	Wrist    detector.Point
	HasWrist bool
	Groups   [numFingers]JointGroup
}

// WristPoint returns the wrist position, if it was observed.
func (o *Observation) WristPoint() (detector.Point, bool) {
	return o.Wrist, o.HasWrist
}

// Group returns the joint group for f.
func (o *Observation) Group(f Finger) JointGroup {
	return o.Groups[f]
}

// Classify partitions a hand's joints into per-finger groups plus the wrist.
// Missing joints are left out; unknown identifiers are ignored.
func Classify(joints detector.HandJoints) *Observation {
	obs := &Observation{}
	for _, f := range Fingers {
		obs.Groups[f] = JointGroup{
			Finger: f,
			Joints: make(map[detector.Joint]detector.Point, numRoles),
		}
	}

	for j, p := range joints {
		if j == detector.Wrist {
			obs.Wrist = p
			obs.HasWrist = true
			continue
		}
		s, ok := jointSlots[j]
		if !ok {
			continue
		}
		obs.Groups[s.finger].Joints[j] = p
	}

	return obs
}
