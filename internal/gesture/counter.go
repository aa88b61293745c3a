// Package gesture classifies hand skeletons into finger counting digits.
//
// Each hand is regrouped by finger, every finger is judged extended or
// curled from its distances to the wrist, and the resulting pattern is
// looked up in the counting table (0-5). A frame's value is the sum of the
// digits of all hands that resolved. Nothing is carried between hands or
// frames, so every function here is safe to call concurrently.
package gesture

import "github.com/ayusman/handcount/internal/detector"

// HandResult is the classification of one hand.
type HandResult struct {
	Observation *Observation
	States      [numFingers]State
	Digit       Digit
}

// FrameCount is the classification of every processed hand in a frame.
type FrameCount struct {
	Hands []HandResult
	Total int
	OK    bool // false when no hand resolved to a digit
}

// CountHand classifies a single hand's joints.
func CountHand(joints detector.HandJoints) HandResult {
	obs := Classify(joints)

	var states [numFingers]State
	for _, f := range []Finger{Index, Middle, Ring, Little} {
		states[f] = EvaluateFinger(obs, f)
	}
	states[Thumb] = EvaluateThumb(obs)

	return HandResult{
		Observation: obs,
		States:      states,
		Digit:       Resolve(states),
	}
}

// CountFrame classifies up to maxHands hands and sums their digits.
// A maxHands of zero or less processes every hand.
func CountFrame(hands []detector.HandLandmarks, maxHands int) FrameCount {
	if maxHands > 0 && len(hands) > maxHands {
		hands = hands[:maxHands]
	}

	fc := FrameCount{Hands: make([]HandResult, 0, len(hands))}
	for i := range hands {
		result := CountHand(hands[i].Joints)
		fc.Hands = append(fc.Hands, result)
		if result.Digit.OK {
			fc.Total += result.Digit.Value
			fc.OK = true
		}
	}
	return fc
}
