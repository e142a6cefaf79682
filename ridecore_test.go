package ridecore

import (
	"testing"

	"github.com/apex-arcade/ridecore/game"
	"github.com/apex-arcade/ridecore/input"
)

func TestStepPipeline(t *testing.T) {
	sim := New(Options{Seed: 42})
	sim.SetRawInput(input.ChannelThrottle, 1)

	var snap = sim.PlayerSnapshot()
	for i := 0; i < 600; i++ {
		snap = sim.Step(1.0 / 60.0)
	}
	if !game.IsFiniteVec(snap.Pos) || !game.IsFinite(snap.Speed) {
		t.Fatalf("expected finite state after 10s, got pos=%v speed=%v", snap.Pos, snap.Speed)
	}
	if snap.Speed <= 5 {
		t.Fatalf("expected throttle to accelerate the bike, speed %v", snap.Speed)
	}
	if sim.TrafficSnapshots() == nil {
		t.Fatalf("expected traffic to populate around the player")
	}
}

func TestTouchPayloadReachesDynamics(t *testing.T) {
	sim := New(Options{})
	sim.ApplyTouchPayload(input.TouchPayload{Mobile: true, Lean: 1})

	var lastLean float32
	for i := 0; i < 120; i++ {
		lastLean = sim.Step(1.0 / 60.0).Lean
	}
	if lastLean <= 0 {
		t.Fatalf("expected sustained lean input to roll the bike, lean %v degrees", lastLean)
	}
}

func TestReplicaRoundTrip(t *testing.T) {
	master := New(Options{Seed: 7})
	replica := New(Options{Seed: 7})
	replica.SetMaster(false)

	var applied bool
	for i := 0; i < 120; i++ {
		master.Step(1.0 / 60.0)
		replica.Step(1.0 / 60.0)
		if batch, ok := master.CollectTrafficRecords(1.0 / 60.0); ok {
			replica.ApplyTrafficRecords(batch)
			applied = true
		}
	}
	if !applied {
		t.Fatalf("master never produced a broadcast")
	}
	// Drain anything the master spawned after the last broadcast.
	if batch, ok := master.CollectTrafficRecords(1); ok {
		replica.ApplyTrafficRecords(batch)
	}
	if len(replica.TrafficSnapshots()) == 0 {
		t.Fatalf("expected replica to mirror master traffic")
	}
	if len(replica.TrafficSnapshots()) != len(master.TrafficSnapshots()) {
		t.Fatalf("expected matching vehicle counts, master=%d replica=%d",
			len(master.TrafficSnapshots()), len(replica.TrafficSnapshots()))
	}
}
