package app

import (
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/handcount/internal/detector"
	"github.com/ayusman/handcount/internal/gesture"
	"github.com/ayusman/handcount/internal/overlay"
)

// Hand is one classified hand as published to clients.
type Hand struct {
	Handedness string                           `json:"handedness"`
	Score      float64                          `json:"score"`
	Digit      *int                             `json:"digit"`
	Reason     string                           `json:"reason,omitempty"`
	Fingers    map[gesture.Finger]gesture.State `json:"fingers"`
	Skeleton   overlay.Skeleton                 `json:"skeleton"`
}

// Frame is the published result of one processed camera frame.
// Count is nil when no hand resolved to a digit and the counter should be hidden.
type Frame struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"`
	Count     *int   `json:"count"`
	Hands     []Hand `json:"hands"`
}

// HasCount reports whether the frame has a displayable value.
func (f Frame) HasCount() bool {
	return f.Count != nil
}

// buildFrame classifies hands and packages the result with overlays.
func buildFrame(hands []detector.HandLandmarks, maxHands int, now time.Time) Frame {
	fc := gesture.CountFrame(hands, maxHands)

	frame := Frame{
		ID:        uuid.New().String(),
		Timestamp: now.UnixMilli(),
		Hands:     make([]Hand, 0, len(fc.Hands)),
	}
	if fc.OK {
		total := fc.Total
		frame.Count = &total
	}

	for i, result := range fc.Hands {
		h := Hand{
			Handedness: hands[i].Handedness,
			Score:      hands[i].Score,
			Fingers:    make(map[gesture.Finger]gesture.State, len(gesture.Fingers)),
			Skeleton:   overlay.Build(result.Observation),
		}
		for _, f := range gesture.Fingers {
			h.Fingers[f] = result.States[f]
		}
		if result.Digit.OK {
			d := result.Digit.Value
			h.Digit = &d
		} else {
			h.Reason = result.Digit.Reason.String()
		}
		frame.Hands = append(frame.Hands, h)
	}

	return frame
}
