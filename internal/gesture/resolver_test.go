package gesture

import "testing"

func statesFrom(pattern [numFingers]bool) [numFingers]State {
	var states [numFingers]State
	for i, extended := range pattern {
		states[i] = boolState(extended)
	}
	return states
}

func TestResolve_CountingTable(t *testing.T) {
	tests := []struct {
		pattern [numFingers]bool
		want    int
	}{
		{[numFingers]bool{false, false, false, false, false}, 0},
		{[numFingers]bool{true, false, false, false, false}, 1},
		{[numFingers]bool{true, true, false, false, false}, 2},
		{[numFingers]bool{true, true, true, false, false}, 3},
		{[numFingers]bool{true, true, true, true, false}, 4},
		{[numFingers]bool{true, true, true, true, true}, 5},
	}

	for _, tt := range tests {
		got := Resolve(statesFrom(tt.pattern))
		if !got.OK || got.Value != tt.want {
			t.Errorf("Resolve(%v) = %s, want %d", tt.pattern, got, tt.want)
		}
		if got.Reason != ReasonNone {
			t.Errorf("Resolve(%v) reason = %s, want none", tt.pattern, got.Reason)
		}
	}
}

func TestResolve_AllOtherPatternsUnrecognized(t *testing.T) {
	recognized := 0
	for bits := 0; bits < 1<<numFingers; bits++ {
		var pattern [numFingers]bool
		for i := range pattern {
			pattern[i] = bits&(1<<i) != 0
		}

		got := Resolve(statesFrom(pattern))
		_, canonical := countingShapes[pattern]

		switch {
		case canonical && !got.OK:
			t.Errorf("%v: expected a digit, got %s", pattern, got)
		case !canonical && got.OK:
			t.Errorf("%v: expected indeterminate, got %d", pattern, got.Value)
		case !canonical && got.Reason != ReasonUnrecognized:
			t.Errorf("%v: expected unrecognized, got %s", pattern, got.Reason)
		}
		if got.OK {
			recognized++
		}
	}

	if recognized != 6 {
		t.Errorf("expected 6 recognized patterns, got %d", recognized)
	}
}

func TestResolve_Indeterminate(t *testing.T) {
	t.Run("any indeterminate finger", func(t *testing.T) {
		for i := range Fingers {
			states := statesFrom([numFingers]bool{true, true, true, true, true})
			states[i] = Indeterminate

			got := Resolve(states)
			if got.OK {
				t.Errorf("indeterminate %s: expected no digit, got %d", Fingers[i], got.Value)
			}
			if got.Reason != ReasonIncomplete {
				t.Errorf("indeterminate %s: expected incomplete, got %s", Fingers[i], got.Reason)
			}
		}
	})

	t.Run("zero value states", func(t *testing.T) {
		var states [numFingers]State
		if got := Resolve(states); got.OK {
			t.Errorf("expected no digit, got %d", got.Value)
		}
	})
}

func TestDigit_String(t *testing.T) {
	if got := (Digit{Value: 3, OK: true}).String(); got != "3" {
		t.Errorf("expected 3, got %q", got)
	}
	if got := NoDigit(ReasonUnrecognized).String(); got != "indeterminate (unrecognized)" {
		t.Errorf("unexpected %q", got)
	}
}
