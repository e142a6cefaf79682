package traffic

import (
	"encoding/binary"
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/zeebo/xxh3"

	"github.com/apex-arcade/ridecore/assert"
	"github.com/apex-arcade/ridecore/game"
	"github.com/apex-arcade/ridecore/settings"
)

// Sim owns the traffic vehicle collection exclusively. External code only
// ever reads published snapshots and calls CheckCollision between ticks; it
// never mutates vehicles.
type Sim struct {
	cfg settings.Settings
	dbg *game.Debugger

	vehicles *orderedmap.OrderedMap[VehicleID, *Vehicle]
	nextID   VehicleID

	seed uint64
	rng  *rand.Rand
	now  float32

	master        bool
	snapshotTimer float32
	broadcast     map[VehicleID]struct{}
	targets       map[VehicleID]StateRecord

	playerPos mgl32.Vec3
	playerVel mgl32.Vec3
}

func NewSim(cfg settings.Settings, dbg *game.Debugger, seed uint64) *Sim {
	return &Sim{
		cfg:       cfg,
		dbg:       dbg,
		vehicles:  orderedmap.NewOrderedMap[VehicleID, *Vehicle](),
		seed:      seed,
		rng:       rand.New(rand.NewSource(int64(seed))),
		master:    true,
		broadcast: make(map[VehicleID]struct{}),
		targets:   make(map[VehicleID]StateRecord),
	}
}

// SetMaster toggles whether this peer is authoritative for traffic. Only the
// master spawns and advances vehicles; replicas blend received records.
func (s *Sim) SetMaster(master bool) {
	s.master = master
}

// Master reports whether this peer is the traffic authority.
func (s *Sim) Master() bool {
	return s.master
}

// VehicleCount returns the number of live vehicles.
func (s *Sim) VehicleCount() int {
	return s.vehicles.Len()
}

// vehicleRNG derives a deterministic per-vehicle random stream from the
// session seed and the vehicle id, so agent behavior replays identically for
// a fixed seed regardless of spawn interleaving.
func (s *Sim) vehicleRNG(id VehicleID) *rand.Rand {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], s.seed)
	binary.LittleEndian.PutUint64(buf[8:], uint64(id))
	return rand.New(rand.NewSource(int64(xxh3.Hash(buf[:]))))
}

// Update advances every traffic vehicle by dt. The player's position and
// velocity are environmental inputs only; the player is not a Vehicle.
func (s *Sim) Update(dt float32, playerPos, playerVel mgl32.Vec3) {
	if dt <= 0 || !s.master {
		return
	}
	s.now += dt
	s.playerPos = playerPos
	s.playerVel = playerVel

	s.despawnPass()
	s.spawnPass()
	s.recomputeFrontVehicles()

	for el := s.vehicles.Front(); el != nil; el = el.Next() {
		s.updateVehicle(dt, el.Value)
	}
}

func (s *Sim) despawnPass() {
	var dead []VehicleID
	for el := s.vehicles.Front(); el != nil; el = el.Next() {
		v := el.Value
		if game.Vec3HzDistSqr(v.Pos.Sub(s.playerPos)) > s.cfg.Traffic.RemovalDistance*s.cfg.Traffic.RemovalDistance ||
			v.Age > s.cfg.Traffic.MaxAge {
			dead = append(dead, el.Key)
		}
	}
	for _, id := range dead {
		s.vehicles.Delete(id)
		s.dbg.Notify(game.DebugModeTraffic, true, "despawned vehicle %d", id)
	}
}

// recomputeFrontVehicles rebuilds every vehicle's nearest-ahead reference
// from scratch. Vehicles one sub-lane away count at 1.5x their real distance
// so a same-sub-lane vehicle always wins when present.
func (s *Sim) recomputeFrontVehicles() {
	for el := s.vehicles.Front(); el != nil; el = el.Next() {
		v := el.Value
		v.FrontVehicle = 0
		best := float32(math32.MaxFloat32)
		for oe := s.vehicles.Front(); oe != nil; oe = oe.Next() {
			other := oe.Value
			if other.ID == v.ID || other.Lane != v.Lane {
				continue
			}
			dz := other.Pos.Z() - v.Pos.Z()
			if dz <= 0 {
				continue
			}
			subDiff := other.SubLane - v.SubLane
			if subDiff < 0 {
				subDiff = -subDiff
			}
			if subDiff > 1 {
				continue
			}
			eff := dz
			if subDiff == 1 {
				eff *= 1.5
			}
			if eff < best {
				best = eff
				v.FrontVehicle = other.ID
			}
		}
	}
}

func (s *Sim) updateVehicle(dt float32, v *Vehicle) {
	v.Age += dt
	v.sinceLaneChange += dt
	v.sinceSubLaneShift += dt

	var accel float32
	if front, ok := s.vehicles.Get(v.FrontVehicle); ok && v.FrontVehicle != 0 {
		gap := front.Pos.Z() - v.Pos.Z() - front.Length
		dv := v.Speed - front.Speed
		v.Behavior.updateFrustration(dt, v.Speed)
		accel = idmAccel(&v.Behavior, v.Speed, gap, dv)
		s.considerLaneChange(v, front)
	} else {
		v.Behavior.Frustration = 0
		accel = freeRoadAccel(&v.Behavior, v.Speed)
		s.considerPreferredLane(v)
	}

	s.updateHogBehavior(dt, v)
	s.updatePlayerInteraction(v)

	v.Speed = maxf(v.Speed+accel*dt, 0)
	v.IsBraking = accel < -0.5

	s.advanceLaneChange(dt, v)

	lateral := s.lateralFor(v)
	lateralVel := float32(0)
	if dt > 0 {
		lateralVel = (lateral - v.Pos.X()) / dt
	}
	v.Pos = mgl32.Vec3{lateral, 0, v.Pos.Z() + v.Speed*dt}
	v.Vel = mgl32.Vec3{lateralVel, 0, v.Speed}

	assert.FiniteVec(v.Pos, "traffic vehicle position")
	assert.Finite(v.Speed, "traffic vehicle speed")
}

// lateralFor interpolates the vehicle's lateral position during a lane
// change using a 5th-order smootherstep, with a small transient yaw for
// visual banking.
func (s *Sim) lateralFor(v *Vehicle) float32 {
	from := ExactLateral(v.Lane, v.SubLane)
	if !v.changingLanes() {
		v.Yaw = 0
		return from
	}
	to := ExactLateral(v.TargetLane, v.TargetSubLane)
	t := game.Smootherstep(v.LaneChangeProgress)
	v.Yaw = math32.Sin(v.LaneChangeProgress*math32.Pi) * 0.12 * game.Sign32(to-from)
	return game.Lerp32(from, to, t)
}

// advanceLaneChange drives maneuver progress and snaps exactly on
// completion: lane/subLane take their target values, lateral position lands
// on the exact slot coordinate and progress resets to 0.
func (s *Sim) advanceLaneChange(dt float32, v *Vehicle) {
	if !v.changingLanes() {
		return
	}
	v.LaneChangeProgress += dt / v.LaneChangeDuration
	if v.LaneChangeProgress >= 1 {
		v.Lane = v.TargetLane
		v.SubLane = v.TargetSubLane
		v.LaneChangeProgress = 0
		v.Yaw = 0
		s.dbg.Notify(game.DebugModeTraffic, true, "vehicle %d completed lane change to %d/%d",
			v.ID, v.Lane, v.SubLane)
	}
}
