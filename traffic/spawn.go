package traffic

import (
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/apex-arcade/ridecore/game"
)

const (
	spawnBaseAhead    = float32(60.0)
	spawnAheadPerMS   = float32(4.0)
	spawnAheadCap     = float32(180.0)
	spawnBehindBase   = float32(40.0)
	spawnBehindSpread = float32(60.0)
	spawnMinSpeed     = float32(18.0)
)

// Spawn creates count vehicles immediately, regardless of the per-tick spawn
// roll. Used at session start and by tests.
func (s *Sim) Spawn(count int) {
	for i := 0; i < count; i++ {
		if s.vehicles.Len() >= s.cfg.Traffic.MaxVehicles {
			return
		}
		s.spawnOne()
	}
}

// spawnPass runs the per-tick probabilistic spawn roll plus the
// minimum-nearby-count policy that keeps the road populated around the
// player.
func (s *Sim) spawnPass() {
	if s.vehicles.Len() < s.cfg.Traffic.MaxVehicles && s.rng.Float32() < s.cfg.Traffic.SpawnChance {
		s.spawnOne()
	}

	nearby := 0
	for el := s.vehicles.Front(); el != nil; el = el.Next() {
		if game.Vec3HzDistSqr(el.Value.Pos.Sub(s.playerPos)) <= s.cfg.Traffic.NearbyWindow*s.cfg.Traffic.NearbyWindow {
			nearby++
		}
	}
	for nearby < s.cfg.Traffic.MinNearby && s.vehicles.Len() < s.cfg.Traffic.MaxVehicles {
		s.spawnOne()
		nearby++
	}
}

func (s *Sim) spawnOne() {
	s.nextID++
	id := s.nextID
	rng := s.vehicleRNG(id)

	vt := drawVehicleType(rng)
	fp := typeFootprints[vt]
	lane := rng.Intn(game.LaneCount)
	subLane := drawSubLane(rng, lane)
	behavior := drawPersonality(rng, lane)

	// Spawns bias ahead of the player, farther out the faster the player is
	// moving so new traffic does not pop in at speed.
	playerSpeed := game.Vec3HzDist(s.playerVel)
	aheadDist := spawnBaseAhead + math32.Min(playerSpeed*spawnAheadPerMS, spawnAheadCap)
	var z float32
	if rng.Float32() < s.cfg.Traffic.AheadFraction {
		z = s.playerPos.Z() + aheadDist*(0.5+0.5*rng.Float32())
	} else {
		z = s.playerPos.Z() - (spawnBehindBase + spawnBehindSpread*rng.Float32())
	}

	speed := maxf(behavior.DesiredSpeed*(0.85+0.3*rng.Float32()), spawnMinSpeed)

	v := &Vehicle{
		ID:            id,
		Type:          vt,
		Length:        fp.length,
		Width:         fp.width,
		Lane:          lane,
		SubLane:       subLane,
		TargetLane:    lane,
		TargetSubLane: subLane,
		Pos:           mgl32.Vec3{ExactLateral(lane, subLane), 0, z},
		Speed:         speed,
		BaseSpeed:     behavior.DesiredSpeed,
		Behavior:      behavior,
		rng:           rng,
	}
	v.Vel = mgl32.Vec3{0, 0, v.Speed}
	s.vehicles.Set(id, v)
	s.dbg.Notify(game.DebugModeTraffic, true, "spawned %s vehicle %d (%s) lane=%d/%d z=%.0f",
		vt, id, behavior.Archetype, lane, subLane, z)
}

func drawVehicleType(rng *rand.Rand) VehicleType {
	total := 0
	for _, e := range typeWeights {
		total += e.w
	}
	roll := rng.Intn(total)
	cumulative := 0
	for _, e := range typeWeights {
		cumulative += e.w
		if roll < cumulative {
			return e.t
		}
	}
	return TypeCar
}

// drawSubLane biases lateral positioning by lane: left-lane traffic hugs the
// left side, right-lane traffic the right, middle lane is uniform.
func drawSubLane(rng *rand.Rand, lane int) int {
	roll := rng.Float32()
	switch lane {
	case 0:
		if roll < 0.4 {
			return 0
		} else if roll < 0.8 {
			return 1
		}
		return 2
	case game.LaneCount - 1:
		if roll < 0.2 {
			return 0
		} else if roll < 0.6 {
			return 1
		}
		return 2
	default:
		return rng.Intn(game.SubLanes)
	}
}
