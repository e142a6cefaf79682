package dynamics

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/apex-arcade/ridecore/game"
)

// WheelSnapshot is the per-wheel slice of a Snapshot.
type WheelSnapshot struct {
	BrakeForce float32
	SlipRatio  float32
	SlipAngle  float32 // radians
	Grip       float32
}

// Snapshot is the read-only per-tick view handed to the presentation, audio
// and VFX layers. Nothing in it aliases simulator state.
type Snapshot struct {
	Pos    mgl32.Vec3
	Orient Orientation
	Vel    mgl32.Vec3
	Speed  float32

	RPM   float32
	Gear  int
	Lean  float32 // degrees
	Steer float32 // degrees

	Wheelie    bool
	Burnout    bool
	SmokeLevel float32

	FrontWheel WheelSnapshot
	RearWheel  WheelSnapshot

	FrontCompression float32
	RearCompression  float32

	SharpTurnActive       bool
	CounterSteeringActive bool
}

// Snapshot builds the current read-only view.
func (s *Simulator) Snapshot() Snapshot {
	return Snapshot{
		Pos:    s.state.Pos,
		Orient: s.state.Orient,
		Vel:    s.state.Vel,
		Speed:  s.state.Speed(),

		RPM:   s.engine.RPM,
		Gear:  s.engine.Gear,
		Lean:  s.state.Orient.Roll * game.RadToDeg,
		Steer: s.front.SteerAngle * game.RadToDeg,

		Wheelie:    s.wheelie,
		Burnout:    s.engine.Burnout,
		SmokeLevel: s.engine.SmokeLevel,

		FrontWheel: WheelSnapshot{
			BrakeForce: s.front.BrakeForce,
			SlipRatio:  s.front.SlipRatio,
			SlipAngle:  s.front.SlipAngle,
			Grip:       s.front.Grip,
		},
		RearWheel: WheelSnapshot{
			BrakeForce: s.rear.BrakeForce,
			SlipRatio:  s.rear.SlipRatio,
			SlipAngle:  s.rear.SlipAngle,
			Grip:       s.rear.Grip,
		},

		FrontCompression: s.frontSusp.Compression,
		RearCompression:  s.rearSusp.Compression,

		SharpTurnActive:       s.turn.SharpTurnActive(),
		CounterSteeringActive: s.counterSteering,
	}
}
