package traffic

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/apex-arcade/ridecore/settings"
)

const testDt = float32(1.0 / 20.0)

// farPlayer keeps the player outside every proximity behavior so tests
// control the population exactly.
var farPlayer = mgl32.Vec3{0, 0, -300}

func quietConfig() settings.Settings {
	cfg := settings.DefaultSettings()
	cfg.Traffic.SpawnChance = 0
	cfg.Traffic.MinNearby = 0
	cfg.Traffic.RemovalDistance = 2000
	return cfg
}

func newQuietSim(seed uint64) *Sim {
	return NewSim(quietConfig(), nil, seed)
}

// addVehicle inserts a fully formed vehicle with a fixed archetype, skipping
// the randomized spawn path.
func addVehicle(s *Sim, arch Archetype, lane, subLane int, z, speed float32) *Vehicle {
	s.nextID++
	id := s.nextID

	base := archetypeTable[0].base
	for _, e := range archetypeTable {
		if e.base.Archetype == arch {
			base = e.base
			break
		}
	}
	base.AccelerationExponent = 4

	fp := typeFootprints[TypeCar]
	v := &Vehicle{
		ID:              id,
		Type:            TypeCar,
		Length:          fp.length,
		Width:           fp.width,
		Lane:            lane,
		SubLane:         subLane,
		TargetLane:      lane,
		TargetSubLane:   subLane,
		Pos:             mgl32.Vec3{ExactLateral(lane, subLane), 0, z},
		Vel:             mgl32.Vec3{0, 0, speed},
		Speed:           speed,
		BaseSpeed:       base.DesiredSpeed,
		Behavior:        base,
		rng:             s.vehicleRNG(id),
		sinceLaneChange: 100,
	}
	s.vehicles.Set(id, v)
	return v
}

func TestSpawnIsDeterministicForSeed(t *testing.T) {
	a := NewSim(settings.DefaultSettings(), nil, 42)
	b := NewSim(settings.DefaultSettings(), nil, 42)
	a.Spawn(10)
	b.Spawn(10)

	sa, sb := a.Snapshots(), b.Snapshots()
	if len(sa) != 10 || len(sb) != 10 {
		t.Fatalf("expected 10 vehicles each, got %d and %d", len(sa), len(sb))
	}
	for i := range sa {
		if sa[i] != sb[i] {
			t.Fatalf("vehicle %d diverged between sims with the same seed:\n%+v\n%+v", i, sa[i], sb[i])
		}
	}
}

func TestSpawnRespectsMaxVehicles(t *testing.T) {
	s := newQuietSim(1)
	s.Spawn(100)
	if got := s.VehicleCount(); got != s.cfg.Traffic.MaxVehicles {
		t.Fatalf("expected population capped at %d, got %d", s.cfg.Traffic.MaxVehicles, got)
	}
}

func TestDespawnBeyondRemovalDistance(t *testing.T) {
	s := newQuietSim(1)
	addVehicle(s, ArchetypeNormal, 1, 1, 2500, 25)
	addVehicle(s, ArchetypeNormal, 1, 1, -250, 25)

	s.Update(testDt, farPlayer, mgl32.Vec3{})
	if got := s.VehicleCount(); got != 1 {
		t.Fatalf("expected the distant vehicle to despawn, have %d vehicles", got)
	}
}

func TestFrontVehiclePrefersSameSubLane(t *testing.T) {
	s := newQuietSim(1)
	rear := addVehicle(s, ArchetypeNormal, 1, 1, 0, 25)
	near := addVehicle(s, ArchetypeNormal, 1, 0, 20, 25)
	far := addVehicle(s, ArchetypeNormal, 1, 1, 28, 25)

	s.recomputeFrontVehicles()

	// 28m in the same sub-lane beats 20m one sub-lane over at its 1.5x
	// effective distance.
	if rear.FrontVehicle != far.ID {
		t.Fatalf("expected front vehicle %d, got %d", far.ID, rear.FrontVehicle)
	}
	if near.FrontVehicle != far.ID {
		t.Fatalf("expected adjacent sub-lane tracking, got %d", near.FrontVehicle)
	}
}

func TestLaneChangeLandsExactly(t *testing.T) {
	s := newQuietSim(1)
	v := addVehicle(s, ArchetypeNormal, 1, 1, 0, 25)
	s.playerPos = farPlayer
	s.startLaneChange(v, 0, 1, false)

	for i := 0; i < 200 && v.changingLanes(); i++ {
		s.updateVehicle(testDt, v)
	}
	if v.changingLanes() {
		t.Fatalf("lane change never completed")
	}
	if v.Lane != 0 || v.SubLane != 1 {
		t.Fatalf("expected lane 0/1, got %d/%d", v.Lane, v.SubLane)
	}
	if v.Pos.X() != ExactLateral(0, 1) {
		t.Fatalf("expected exact slot lateral %v, got %v", ExactLateral(0, 1), v.Pos.X())
	}
	if v.Yaw != 0 {
		t.Fatalf("expected yaw cleared after completion, got %v", v.Yaw)
	}
}

func TestRacerPassesSlowTraffic(t *testing.T) {
	s := newQuietSim(1)
	racer := addVehicle(s, ArchetypeRacer, 1, 1, 0, 30)
	addVehicle(s, ArchetypeNormal, 1, 1, 30, 20)

	for i := 0; i < 200; i++ {
		s.Update(testDt, farPlayer, mgl32.Vec3{})
		if racer.Lane == 0 {
			return
		}
	}
	t.Fatalf("racer never moved left to pass; lane=%d target=%d frustration=%v",
		racer.Lane, racer.TargetLane, racer.Behavior.Frustration)
}

// A racer whose re-attempt interval has elapsed must issue its pass within
// the interval plus one decision tick, no matter how the within-lane shift
// rolls land. Sub-lane shifts run on their own timer and may not displace or
// delay the pass evaluation.
func TestRacerPassDeadline(t *testing.T) {
	deadline := int(0.5/testDt) + 1
	for seed := uint64(1); seed <= 50; seed++ {
		s := newQuietSim(seed)
		racer := addVehicle(s, ArchetypeRacer, 1, 1, 0, 30)
		addVehicle(s, ArchetypeNormal, 1, 1, 20, 15)

		issued := false
		for i := 0; i < deadline; i++ {
			s.Update(testDt, farPlayer, mgl32.Vec3{})
			if racer.TargetLane == 0 || racer.Lane == 0 {
				issued = true
				break
			}
		}
		if !issued {
			t.Fatalf("seed %d: racer missed the pass deadline; target=%d sinceLaneChange=%v",
				seed, racer.TargetLane, racer.sinceLaneChange)
		}
	}
}

func TestLeftLaneHogHoldsLane(t *testing.T) {
	s := newQuietSim(1)
	hog := addVehicle(s, ArchetypeLeftLaneHog, 0, 1, 0, 25)
	addVehicle(s, ArchetypeMiddleLaneCamper, 0, 1, 25, 18)

	for i := 0; float32(i)*testDt < 60; i++ {
		s.Update(testDt, farPlayer, mgl32.Vec3{})
		if hog.Lane != 0 || hog.TargetLane != 0 {
			t.Fatalf("hog left lane 0 at t=%vs", float32(i)*testDt)
		}
	}
}

func TestHogMatchesRightNeighborSpeed(t *testing.T) {
	s := newQuietSim(1)
	hog := addVehicle(s, ArchetypeLeftLaneHog, 0, 1, 0, 28)
	neighbor := addVehicle(s, ArchetypeNormal, 1, 1, 5, 20)

	for i := 0; float32(i)*testDt < 10; i++ {
		s.Update(testDt, farPlayer, mgl32.Vec3{})
	}
	if diff := math32.Abs(hog.Speed - neighbor.Speed); diff > 2 {
		t.Fatalf("expected the hog to pace its right neighbor, speeds %v vs %v", hog.Speed, neighbor.Speed)
	}
}

func TestFrustrationBuildsBehindSlowTraffic(t *testing.T) {
	s := newQuietSim(1)
	follower := addVehicle(s, ArchetypeMiddleLaneCamper, 2, 1, 0, 20)
	addVehicle(s, ArchetypeElderly, 2, 1, 15, 18)

	for i := 0; float32(i)*testDt < 10; i++ {
		s.Update(testDt, farPlayer, mgl32.Vec3{})
	}
	if follower.Behavior.Frustration <= 0 {
		t.Fatalf("expected frustration to build while boxed in")
	}
}

func TestCollisionProbe(t *testing.T) {
	s := newQuietSim(1)
	v := addVehicle(s, ArchetypeNormal, 1, 1, 50, 25)

	if id, hit := s.CheckCollision(mgl32.Vec3{0, 0, 50}, 0.5); !hit || id != v.ID {
		t.Fatalf("expected center probe to hit vehicle %d, got %d hit=%v", v.ID, id, hit)
	}
	if id, hit := s.CheckCollision(mgl32.Vec3{0, 0, 50}, 0); !hit || id != v.ID {
		t.Fatalf("expected zero-radius center probe to hit vehicle %d, got %d hit=%v", v.ID, id, hit)
	}
	if _, hit := s.CheckCollision(mgl32.Vec3{0, 0, 60}, 0.5); hit {
		t.Fatalf("expected clear probe to miss")
	}
	// A probe diagonally off the corner overlaps the plain AABB but sits
	// outside the corner radius.
	if _, hit := s.CheckCollision(mgl32.Vec3{0.85, 0, 52.05}, 0.2); hit {
		t.Fatalf("expected rounded corner to let the probe pass")
	}
	// The same distance straight off the rear edge hits.
	if _, hit := s.CheckCollision(mgl32.Vec3{0, 0, 52.05}, 0.2); !hit {
		t.Fatalf("expected edge probe to hit")
	}
}

func TestReplicaUpdateIsNoOp(t *testing.T) {
	s := NewSim(settings.DefaultSettings(), nil, 1)
	s.SetMaster(false)
	s.Update(testDt, mgl32.Vec3{}, mgl32.Vec3{})
	if s.VehicleCount() != 0 {
		t.Fatalf("replica must not spawn vehicles, got %d", s.VehicleCount())
	}
}

func TestBroadcastDiffsSpawnsAndDespawns(t *testing.T) {
	s := newQuietSim(1)
	s.Spawn(3)

	batch, ok := s.CollectRecords(broadcastInterval)
	if !ok {
		t.Fatalf("expected a due broadcast")
	}
	if len(batch.Spawns) != 3 || len(batch.States) != 3 || len(batch.Despawns) != 0 {
		t.Fatalf("unexpected first batch: %d spawns, %d states, %d despawns",
			len(batch.Spawns), len(batch.States), len(batch.Despawns))
	}

	if _, ok := s.CollectRecords(broadcastInterval / 2); ok {
		t.Fatalf("expected no broadcast before the interval elapses")
	}

	removed := batch.States[0].ID
	s.vehicles.Delete(removed)
	batch, ok = s.CollectRecords(broadcastInterval)
	if !ok {
		t.Fatalf("expected a second broadcast")
	}
	if len(batch.Spawns) != 0 {
		t.Fatalf("expected no new spawns in the second batch, got %d", len(batch.Spawns))
	}
	if len(batch.Despawns) != 1 || batch.Despawns[0] != removed {
		t.Fatalf("expected despawn of %d, got %v", removed, batch.Despawns)
	}
}

func TestReplicaBlendApproachesTarget(t *testing.T) {
	r := newQuietSim(1)
	r.SetMaster(false)

	r.ApplyRecords(RecordBatch{
		Spawns: []SpawnRecord{{ID: 7, Type: TypeCar, Lane: 1, SubLane: 1, Z: 0, Length: 4.4, Width: 1.8}},
		States: []StateRecord{{ID: 7, Lane: 1, SubLane: 1, Pos: mgl32.Vec3{0, 0, 10}}},
	})
	if r.VehicleCount() != 1 {
		t.Fatalf("expected replica to create the vehicle")
	}
	v, _ := r.vehicles.Get(7)

	r.BlendStep(testDt)
	first := v.Pos.Z()
	if first <= 0 || first >= 10 {
		t.Fatalf("expected a partial correction, jumped to %v", first)
	}

	for i := 0; i < 40; i++ {
		r.BlendStep(testDt)
	}
	if v.Pos.Z() < 9 || v.Pos.Z() >= 10 {
		t.Fatalf("expected convergence toward the target without snapping, got %v", v.Pos.Z())
	}

	r.ApplyRecords(RecordBatch{Despawns: []VehicleID{7}})
	if r.VehicleCount() != 0 {
		t.Fatalf("expected despawn record to remove the vehicle")
	}
}
