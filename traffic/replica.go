package traffic

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/apex-arcade/ridecore/game"
)

// Masters broadcast a batch roughly 10 times per second.
const broadcastInterval = float32(0.1)

// SpawnRecord carries everything a replica needs to create a vehicle it has
// never seen before.
type SpawnRecord struct {
	ID        VehicleID
	Type      VehicleType
	Lane      int
	SubLane   int
	Z         float32
	Speed     float32
	BaseSpeed float32
	Length    float32
	Width     float32
}

// StateRecord is the per-vehicle payload of a broadcast batch.
type StateRecord struct {
	ID        VehicleID
	Lane      int
	SubLane   int
	Pos       mgl32.Vec3
	Vel       mgl32.Vec3
	Speed     float32
	Yaw       float32
	IsBraking bool
}

// RecordBatch is one master broadcast: vehicles created since the previous
// batch, current state for every live vehicle, and ids removed since the
// previous batch.
type RecordBatch struct {
	Time     float32
	Spawns   []SpawnRecord
	States   []StateRecord
	Despawns []VehicleID
}

// CollectRecords accumulates dt against the broadcast clock and, when a
// broadcast is due, diffs the live set against the last broadcast set and
// returns the batch to send. Only the master produces batches.
func (s *Sim) CollectRecords(dt float32) (RecordBatch, bool) {
	if !s.master {
		return RecordBatch{}, false
	}
	s.snapshotTimer += dt
	if s.snapshotTimer < broadcastInterval {
		return RecordBatch{}, false
	}
	s.snapshotTimer -= broadcastInterval

	batch := RecordBatch{Time: s.now}
	live := make(map[VehicleID]struct{}, s.vehicles.Len())
	for el := s.vehicles.Front(); el != nil; el = el.Next() {
		v := el.Value
		live[v.ID] = struct{}{}
		if _, seen := s.broadcast[v.ID]; !seen {
			batch.Spawns = append(batch.Spawns, SpawnRecord{
				ID:        v.ID,
				Type:      v.Type,
				Lane:      v.Lane,
				SubLane:   v.SubLane,
				Z:         v.Pos.Z(),
				Speed:     v.Speed,
				BaseSpeed: v.BaseSpeed,
				Length:    v.Length,
				Width:     v.Width,
			})
		}
		// State fields are quantized to millimetre precision to keep the
		// wire payload compressible.
		batch.States = append(batch.States, StateRecord{
			ID:        v.ID,
			Lane:      v.Lane,
			SubLane:   v.SubLane,
			Pos:       roundVec3(v.Pos, 3),
			Vel:       roundVec3(v.Vel, 3),
			Speed:     game.Round32(v.Speed, 3),
			Yaw:       game.Round32(v.Yaw, 3),
			IsBraking: v.IsBraking,
		})
	}
	for id := range s.broadcast {
		if _, ok := live[id]; !ok {
			batch.Despawns = append(batch.Despawns, id)
		}
	}
	s.broadcast = live
	return batch, true
}

// ApplyRecords ingests a master batch on a replica peer. Spawns create
// vehicles, despawns remove them, and state records become blend targets;
// positions are never snapped here.
func (s *Sim) ApplyRecords(batch RecordBatch) {
	if s.master {
		return
	}
	for _, sp := range batch.Spawns {
		if _, ok := s.vehicles.Get(sp.ID); ok {
			continue
		}
		v := &Vehicle{
			ID:            sp.ID,
			Type:          sp.Type,
			Length:        sp.Length,
			Width:         sp.Width,
			Lane:          sp.Lane,
			SubLane:       sp.SubLane,
			TargetLane:    sp.Lane,
			TargetSubLane: sp.SubLane,
			Pos:           mgl32.Vec3{ExactLateral(sp.Lane, sp.SubLane), 0, sp.Z},
			Vel:           mgl32.Vec3{0, 0, sp.Speed},
			Speed:         sp.Speed,
			BaseSpeed:     sp.BaseSpeed,
		}
		s.vehicles.Set(v.ID, v)
		s.dbg.Notify(game.DebugModeTraffic, true, "replica spawned vehicle %d (%s)", v.ID, v.Type)
	}
	for _, id := range batch.Despawns {
		s.vehicles.Delete(id)
		delete(s.targets, id)
	}
	for _, st := range batch.States {
		s.targets[st.ID] = st
	}
}

// BlendStep advances replica vehicles between batches: dead reckoning along
// the last known velocity, then a fractional pull toward the latest target
// so corrections spread over several frames instead of popping.
func (s *Sim) BlendStep(dt float32) {
	if s.master || dt <= 0 {
		return
	}
	blend := s.cfg.Traffic.ReplicaBlend
	for el := s.vehicles.Front(); el != nil; el = el.Next() {
		v := el.Value
		v.Pos = v.Pos.Add(v.Vel.Mul(dt))
		t, ok := s.targets[v.ID]
		if !ok {
			continue
		}
		v.Pos = lerpVec3(v.Pos, t.Pos, blend)
		v.Vel = lerpVec3(v.Vel, t.Vel, blend)
		v.Speed = game.Lerp32(v.Speed, t.Speed, blend)
		v.Yaw = game.Lerp32(v.Yaw, t.Yaw, blend)
		v.Lane = t.Lane
		v.SubLane = t.SubLane
		v.IsBraking = t.IsBraking
	}
}

func roundVec3(v mgl32.Vec3, precision int) mgl32.Vec3 {
	return mgl32.Vec3{
		game.Round32(v.X(), precision),
		game.Round32(v.Y(), precision),
		game.Round32(v.Z(), precision),
	}
}

func lerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return mgl32.Vec3{
		game.Lerp32(a.X(), b.X(), t),
		game.Lerp32(a.Y(), b.Y(), t),
		game.Lerp32(a.Z(), b.Z(), t),
	}
}
