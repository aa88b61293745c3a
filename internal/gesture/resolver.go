package gesture

import "fmt"

// Reason explains why a hand produced no digit.
type Reason int

const (
	ReasonNone         Reason = iota // a digit was resolved
	ReasonIncomplete                 // at least one finger was indeterminate
	ReasonUnrecognized               // every finger decided, but not a counting shape
)

var reasonNames = [...]string{"", "incomplete", "unrecognized"}

func (r Reason) String() string {
	if r < ReasonNone || r > ReasonUnrecognized {
		return fmt.Sprintf("reason(%d)", int(r))
	}
	return reasonNames[r]
}

// MarshalText encodes the reason by name.
func (r Reason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Digit is a hand's counting value. OK is false when the hand is indeterminate.
type Digit struct {
	Value  int
	OK     bool
	Reason Reason
}

// NoDigit returns an indeterminate digit with the given reason.
func NoDigit(reason Reason) Digit {
	return Digit{Reason: reason}
}

func (d Digit) String() string {
	if !d.OK {
		return "indeterminate (" + d.Reason.String() + ")"
	}
	return fmt.Sprintf("%d", d.Value)
}

// countingShapes maps the extended pattern (index, middle, ring, little,
// thumb) of each canonical counting gesture to its digit. Fingers are raised
// outward from the index, thumb last.
var countingShapes = map[[numFingers]bool]int{
	{false, false, false, false, false}: 0,
	{true, false, false, false, false}:  1,
	{true, true, false, false, false}:   2,
	{true, true, true, false, false}:    3,
	{true, true, true, true, false}:     4,
	{true, true, true, true, true}:      5,
}

// Resolve maps five finger states, in Fingers order, to a digit.
func Resolve(states [numFingers]State) Digit {
	var pattern [numFingers]bool
	for i, s := range states {
		if s != Extended && s != Curled {
			return NoDigit(ReasonIncomplete)
		}
		pattern[i] = s == Extended
	}

	value, ok := countingShapes[pattern]
	if !ok {
		return NoDigit(ReasonUnrecognized)
	}
	return Digit{Value: value, OK: true}
}
