package terminal

import (
	"testing"

	"github.com/3cbsolver/solver/pkg/state"
)

func TestCheckDetectsWin(t *testing.T) {
	d := New()
	s := state.State{Players: [2]state.Player{{Life: 0}, {Life: 20}}, Turn: 1}
	if got := d.Check(s); got != Win1 {
		t.Errorf("Check() = %v, want Win1", got)
	}
}

func TestCheckDetectsMutualLoss(t *testing.T) {
	d := New()
	s := state.State{Players: [2]state.Player{{Life: -1}, {Life: 0}}, Turn: 1}
	if got := d.Check(s); got != Draw {
		t.Errorf("Check() = %v, want Draw", got)
	}
}

func TestCheckDetectsTurnCap(t *testing.T) {
	d := Detector{TurnCap: 5, RepetitionWindow: 0}
	s := state.State{Players: [2]state.Player{{Life: 20}, {Life: 20}}, Turn: 6}
	if got := d.Check(s); got != Draw {
		t.Errorf("Check() = %v, want Draw at turn past cap", got)
	}
}

func TestCheckNotTerminal(t *testing.T) {
	d := New()
	s := state.State{Players: [2]state.Player{{Life: 20}, {Life: 20}}, Turn: 1}
	if got := d.Check(s); got != NotTerminal {
		t.Errorf("Check() = %v, want NotTerminal", got)
	}
}

func TestGrindingRequiresFullWindow(t *testing.T) {
	d := Detector{RepetitionWindow: 3}
	snap := TurnSnapshot{Fingerprint: 1, Life0: 20, Life1: 20}
	if d.Grinding([]TurnSnapshot{snap, snap}) {
		t.Errorf("Grinding() = true with only 2 snapshots, want false (window is 3)")
	}
	if !d.Grinding([]TurnSnapshot{snap, snap, snap}) {
		t.Errorf("Grinding() = false with 3 identical snapshots, want true")
	}
}

func TestGrindingRequiresIdenticalFingerprint(t *testing.T) {
	d := Detector{RepetitionWindow: 3}
	a := TurnSnapshot{Fingerprint: 1, Life0: 20, Life1: 20}
	b := TurnSnapshot{Fingerprint: 2, Life0: 20, Life1: 20}
	if d.Grinding([]TurnSnapshot{a, a, b}) {
		t.Errorf("Grinding() = true with a differing fingerprint in the window, want false")
	}
}

func TestGrindingRequiresStableLife(t *testing.T) {
	d := Detector{RepetitionWindow: 3}
	a := TurnSnapshot{Fingerprint: 1, Life0: 20, Life1: 20}
	b := TurnSnapshot{Fingerprint: 1, Life0: 19, Life1: 20}
	if d.Grinding([]TurnSnapshot{a, a, b}) {
		t.Errorf("Grinding() = true with a life change in the window, want false")
	}
}

func TestGrindingDisabledWhenWindowZero(t *testing.T) {
	d := Detector{RepetitionWindow: 0}
	snap := TurnSnapshot{Fingerprint: 1, Life0: 20, Life1: 20}
	if d.Grinding([]TurnSnapshot{snap, snap, snap}) {
		t.Errorf("Grinding() = true with RepetitionWindow 0, want false (disabled)")
	}
}
