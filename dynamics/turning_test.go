package dynamics

import (
	"testing"

	"github.com/chewxy/math32"
)

const testDt = float32(1.0 / 60.0)

func TestProgressiveFactorJumpsThenEases(t *testing.T) {
	ts := TurnState{}

	ts.update(testDt, 1, false)
	if got := ts.ProgressiveFactor(); got != 0.4 {
		t.Fatalf("expected initial commitment of 0.4, got %v", got)
	}

	for i := 0; float32(i)*testDt < turnHoldMax; i++ {
		ts.update(testDt, 1, false)
	}
	if got := ts.ProgressiveFactor(); math32.Abs(got-1) > 1e-4 {
		t.Fatalf("expected full commitment after %vs of hold, got %v", turnHoldMax, got)
	}
}

func TestProgressiveFactorDecaysQuickly(t *testing.T) {
	ts := TurnState{}
	for i := 0; float32(i)*testDt < turnHoldMax; i++ {
		ts.update(testDt, 1, false)
	}

	// Releasing the lean should clear commitment within a quarter second.
	for i := 0; i < 16; i++ {
		ts.update(testDt, 0, false)
	}
	if got := ts.ProgressiveFactor(); got != 0 {
		t.Fatalf("expected commitment to decay to zero, got %v", got)
	}
}

func TestDirectionFlipResetsHold(t *testing.T) {
	ts := TurnState{}
	for i := 0; i < 30; i++ {
		ts.update(testDt, 1, false)
	}
	ts.update(testDt, -1, false)
	if ts.HoldTime > 2*testDt {
		t.Fatalf("expected hold to reset on direction flip, got %v", ts.HoldTime)
	}
}

func TestSharpTurnRequiresContinuousHold(t *testing.T) {
	ts := TurnState{}
	for held := float32(0); held < tapHoldWindow-testDt; held += testDt {
		ts.update(testDt, 0.9, false)
		if ts.SharpTurnActive() {
			t.Fatalf("sharp turn latched after only %vs", held)
		}
	}
	for i := 0; i < 4; i++ {
		ts.update(testDt, 0.9, false)
	}
	if !ts.SharpTurnActive() {
		t.Fatalf("expected sharp turn after holding past the window")
	}

	ts.update(testDt, 0, false)
	if ts.SharpTurnActive() {
		t.Fatalf("expected sharp turn to release with the input")
	}
}

func TestSharpTurnResetOnEarlyRelease(t *testing.T) {
	ts := TurnState{}
	for i := 0; i < 30; i++ {
		ts.update(testDt, 0.9, false)
	}
	ts.update(testDt, 0, false)

	// The window restarts from zero after a release.
	for i := 0; i < 40; i++ {
		ts.update(testDt, 0.9, false)
	}
	if ts.SharpTurnActive() {
		t.Fatalf("expected the hold window to restart after a release")
	}
}

func TestBrakeBoostRampsWithHold(t *testing.T) {
	ts := TurnState{}
	ts.update(testDt, 0, true)
	early := ts.BrakeBoost()
	if early <= 0 {
		t.Fatalf("expected some boost immediately, got %v", early)
	}

	for held := testDt; held < brakeHoldMax; held += testDt {
		ts.update(testDt, 0, true)
	}
	if got := ts.BrakeBoost(); math32.Abs(got-1) > 1e-4 {
		t.Fatalf("expected full brake boost after %vs, got %v", brakeHoldMax, got)
	}
	if got := ts.AuthorityMultiplier(); math32.Abs(got-brakeTurnBoost) > 1e-3 {
		t.Fatalf("expected authority of %v under full brake hold, got %v", brakeTurnBoost, got)
	}

	ts.update(testDt, 0, false)
	if ts.BrakeBoost() != 0 {
		t.Fatalf("expected boost to clear when brakes release")
	}
}
