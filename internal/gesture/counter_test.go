package gesture

import (
	"testing"

	"github.com/ayusman/handcount/internal/detector"
)

func TestCountHand_Scenarios(t *testing.T) {
	tests := []struct {
		name   string
		hand   detector.HandLandmarks
		want   int
		wantOK bool
	}{
		{"fist", detector.FistLandmarks(), 0, true},
		{"index only", detector.CountingLandmarks(1), 1, true},
		{"index and middle", detector.CountingLandmarks(2), 2, true},
		{"three", detector.CountingLandmarks(3), 3, true},
		{"four", detector.CountingLandmarks(4), 4, true},
		{"open palm", detector.OpenPalmLandmarks(), 5, true},
		{"little finger only", detector.LittleFingerLandmarks(), 0, false},
		{"thumb and little", detector.PoseLandmarks(false, false, false, true, true), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CountHand(tt.hand.Joints)

			if result.Digit.OK != tt.wantOK {
				t.Fatalf("expected OK=%v, got %s (states %v)", tt.wantOK, result.Digit, result.States)
			}
			if tt.wantOK && result.Digit.Value != tt.want {
				t.Errorf("expected %d, got %d (states %v)", tt.want, result.Digit.Value, result.States)
			}
			if !tt.wantOK && result.Digit.Reason != ReasonUnrecognized {
				t.Errorf("expected unrecognized, got %s", result.Digit.Reason)
			}
			if result.Observation == nil {
				t.Error("expected observation to be returned")
			}
		})
	}
}

func TestCountHand_MissingWrist(t *testing.T) {
	joints := detector.OpenPalmLandmarks().Joints
	delete(joints, detector.Wrist)

	result := CountHand(joints)

	for _, f := range Fingers {
		if result.States[f] != Indeterminate {
			t.Errorf("%s: expected indeterminate, got %s", f, result.States[f])
		}
	}
	if result.Digit.OK || result.Digit.Reason != ReasonIncomplete {
		t.Errorf("expected incomplete, got %s", result.Digit)
	}
}

func TestCountFrame(t *testing.T) {
	incomplete := detector.OpenPalmLandmarks()
	delete(incomplete.Joints, detector.Wrist)

	t.Run("sums hands and skips indeterminate", func(t *testing.T) {
		fc := CountFrame([]detector.HandLandmarks{detector.CountingLandmarks(3), incomplete}, 2)

		if !fc.OK || fc.Total != 3 {
			t.Errorf("expected total 3, got %d (ok=%v)", fc.Total, fc.OK)
		}
		if len(fc.Hands) != 2 {
			t.Errorf("expected 2 hand results, got %d", len(fc.Hands))
		}
	})

	t.Run("order does not matter", func(t *testing.T) {
		a := CountFrame([]detector.HandLandmarks{detector.CountingLandmarks(2), detector.CountingLandmarks(4)}, 0)
		b := CountFrame([]detector.HandLandmarks{detector.CountingLandmarks(4), detector.CountingLandmarks(2)}, 0)

		if a.Total != 6 || b.Total != 6 {
			t.Errorf("expected 6 both ways, got %d and %d", a.Total, b.Total)
		}
	})

	t.Run("two open palms count to ten", func(t *testing.T) {
		fc := CountFrame([]detector.HandLandmarks{detector.OpenPalmLandmarks(), detector.OpenPalmLandmarks()}, 2)
		if fc.Total != 10 {
			t.Errorf("expected 10, got %d", fc.Total)
		}
	})

	t.Run("fist counts as zero with a value", func(t *testing.T) {
		fc := CountFrame([]detector.HandLandmarks{detector.FistLandmarks()}, 1)
		if !fc.OK || fc.Total != 0 {
			t.Errorf("expected displayable 0, got %d (ok=%v)", fc.Total, fc.OK)
		}
	})

	t.Run("all indeterminate has no value", func(t *testing.T) {
		fc := CountFrame([]detector.HandLandmarks{incomplete, detector.LittleFingerLandmarks()}, 2)
		if fc.OK {
			t.Errorf("expected no value, got %d", fc.Total)
		}
	})

	t.Run("no hands has no value", func(t *testing.T) {
		fc := CountFrame(nil, 2)
		if fc.OK || fc.Total != 0 || len(fc.Hands) != 0 {
			t.Errorf("expected empty result, got %+v", fc)
		}
	})

	t.Run("hands beyond the maximum are ignored", func(t *testing.T) {
		hands := []detector.HandLandmarks{
			detector.CountingLandmarks(1),
			detector.CountingLandmarks(2),
			detector.CountingLandmarks(5),
		}

		fc := CountFrame(hands, 2)

		if len(fc.Hands) != 2 {
			t.Fatalf("expected 2 hand results, got %d", len(fc.Hands))
		}
		if fc.Total != 3 {
			t.Errorf("expected 3, got %d", fc.Total)
		}
	})

	t.Run("does not modify the input", func(t *testing.T) {
		hands := []detector.HandLandmarks{detector.OpenPalmLandmarks()}
		before := len(hands[0].Joints)

		CountFrame(hands, 1)

		if len(hands[0].Joints) != before {
			t.Errorf("input joints changed from %d to %d", before, len(hands[0].Joints))
		}
	})
}
