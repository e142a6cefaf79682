package ridecore

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"

	"github.com/apex-arcade/ridecore/dynamics"
	"github.com/apex-arcade/ridecore/game"
	"github.com/apex-arcade/ridecore/input"
	"github.com/apex-arcade/ridecore/settings"
	"github.com/apex-arcade/ridecore/traffic"
)

// Simulation is the top-level tick driver. It owns the input conditioner,
// the bike dynamics simulator and the traffic simulation, and advances them
// in dependency order every Step: conditioned controls feed the bike, and
// the resulting bike state feeds traffic.
type Simulation struct {
	cfg settings.Settings
	log *logrus.Logger
	dbg *game.Debugger

	conditioner *input.Conditioner
	bike        *dynamics.Simulator
	traffic     *traffic.Sim
}

// Options configures a Simulation. The zero value is usable: default
// settings, a fresh logger and seed 0.
type Options struct {
	Settings *settings.Settings
	Log      *logrus.Logger
	Seed     uint64
}

func New(opts Options) *Simulation {
	cfg := settings.DefaultSettings()
	if opts.Settings != nil {
		cfg = *opts.Settings
	}
	log := opts.Log
	if log == nil {
		log = logrus.New()
	}
	dbg := game.NewDebugger(log)

	s := &Simulation{
		cfg:         cfg,
		log:         log,
		dbg:         dbg,
		conditioner: input.NewConditioner(cfg),
		bike:        dynamics.NewSimulator(cfg, dbg),
		traffic:     traffic.NewSim(cfg, dbg, opts.Seed),
	}
	return s
}

// Debugger exposes the shared debug notifier so callers can toggle
// per-subsystem debug output.
func (s *Simulation) Debugger() *game.Debugger { return s.dbg }

// SetRawInput sets a single raw control channel for the next tick.
func (s *Simulation) SetRawInput(ch input.Channel, v float32) {
	s.conditioner.SetRaw(ch, v)
}

// ApplyTouchPayload ingests a structured control update, switching input
// profiles when the payload source changes.
func (s *Simulation) ApplyTouchPayload(p input.TouchPayload) {
	s.conditioner.ApplyTouchPayload(p)
}

func (s *Simulation) ShiftUp()   { s.bike.ShiftUp() }
func (s *Simulation) ShiftDown() { s.bike.ShiftDown() }

// Gear returns the bike's current gear index, 1..6.
func (s *Simulation) Gear() int { return s.bike.Gear() }

// ResetBike restores the bike to the session-start pose. Traffic is left
// untouched.
func (s *Simulation) ResetBike() { s.bike.Reset() }

// SetMaster toggles traffic authority for this peer. Masters simulate and
// broadcast; replicas blend received records.
func (s *Simulation) SetMaster(master bool) { s.traffic.SetMaster(master) }

// Step advances the whole simulation by dt seconds and returns the player
// bike snapshot for this tick. On a replica peer the traffic update is a
// blend step instead of a full simulation pass.
func (s *Simulation) Step(dt float32) dynamics.Snapshot {
	controls := s.conditioner.Update(dt, s.bike.State().Speed())
	snap := s.bike.Step(dt, controls)

	if s.traffic.Master() {
		s.traffic.Update(dt, s.bike.State().Pos, s.bike.State().Vel)
	} else {
		s.traffic.BlendStep(dt)
	}
	return snap
}

// PlayerSnapshot returns the current bike snapshot without advancing.
func (s *Simulation) PlayerSnapshot() dynamics.Snapshot {
	return s.bike.Snapshot()
}

// TrafficSnapshots returns read-only views of every live traffic vehicle.
func (s *Simulation) TrafficSnapshots() []traffic.VehicleSnapshot {
	return s.traffic.Snapshots()
}

// CheckCollision tests a probe circle at pos against all traffic vehicles.
func (s *Simulation) CheckCollision(pos mgl32.Vec3, radius float32) (traffic.VehicleID, bool) {
	return s.traffic.CheckCollision(pos, radius)
}

// CollectTrafficRecords drains the pending traffic broadcast if one is due.
// Returns false between broadcast intervals and always on replica peers.
func (s *Simulation) CollectTrafficRecords(dt float32) (traffic.RecordBatch, bool) {
	return s.traffic.CollectRecords(dt)
}

// ApplyTrafficRecords ingests a master broadcast on a replica peer.
func (s *Simulation) ApplyTrafficRecords(batch traffic.RecordBatch) {
	s.traffic.ApplyRecords(batch)
}
