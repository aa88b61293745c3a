package gesture

import "fmt"

// State is the outcome of evaluating one finger.
type State int

const (
	// Indeterminate means the joints needed to decide were not observed.
	Indeterminate State = iota
	Curled
	Extended
)

var stateNames = [...]string{"indeterminate", "curled", "extended"}

func (s State) String() string {
	if s < Indeterminate || s > Extended {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state from its name.
func (s *State) UnmarshalText(text []byte) error {
	for i, n := range stateNames {
		if n == string(text) {
			*s = State(i)
			return nil
		}
	}
	return fmt.Errorf("unknown state %q", text)
}

func boolState(extended bool) State {
	if extended {
		return Extended
	}
	return Curled
}

// EvaluateFinger decides whether an index, middle, ring or little finger is
// extended. It needs all four of the finger's joints plus the wrist.
//
// A finger is extended when both its tip and its distal joint lie farther
// from the wrist than its base.
func EvaluateFinger(obs *Observation, f Finger) State {
	if f == Thumb {
		return EvaluateThumb(obs)
	}

	wrist, ok := obs.WristPoint()
	if !ok {
		return Indeterminate
	}

	g := obs.Group(f)
	tip, okTip := g.At(Tip)
	distal, okDistal := g.At(Distal)
	_, okProximal := g.At(Proximal)
	base, okBase := g.At(Base)
	if !okTip || !okDistal || !okProximal || !okBase {
		return Indeterminate
	}

	baseDist := Distance(base, wrist)
	return boolState(Distance(tip, wrist) > baseDist && Distance(distal, wrist) > baseDist)
}

// EvaluateThumb decides whether the thumb is extended. It needs the thumb
// tip and IP joint, the wrist, and the index and middle finger bases.
//
// The thumb is curled when its tip sits nearer the middle finger's base than
// the index finger's base (folded across the palm), or when its tip is nearer
// the wrist than its IP joint (folded down).
func EvaluateThumb(obs *Observation) State {
	wrist, ok := obs.WristPoint()
	if !ok {
		return Indeterminate
	}

	thumb := obs.Group(Thumb)
	tip, okTip := thumb.At(Tip)
	ip, okIP := thumb.At(Distal)
	indexBase, okIndex := obs.Group(Index).At(Base)
	middleBase, okMiddle := obs.Group(Middle).At(Base)
	if !okTip || !okIP || !okIndex || !okMiddle {
		return Indeterminate
	}

	if Distance(tip, middleBase) < Distance(tip, indexBase) {
		return Curled
	}
	if Distance(tip, wrist) < Distance(ip, wrist) {
		return Curled
	}
	return Extended
}
