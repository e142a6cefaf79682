package dynamics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/apex-arcade/ridecore/assert"
	"github.com/apex-arcade/ridecore/game"
	"github.com/apex-arcade/ridecore/input"
	"github.com/apex-arcade/ridecore/settings"
)

// Simulator advances the player bike's state one tick at a time. Step is a
// pure function of the simulator's own fields plus one tick of conditioned
// control input; it has no concurrency surface.
type Simulator struct {
	cfg settings.Settings
	dbg *game.Debugger

	state     State
	front     Wheel
	rear      Wheel
	frontSusp Suspension
	rearSusp  Suspension
	engine    Engine
	turn      TurnState

	suspPitch       float32
	wheelie         bool
	counterSteering bool
}

type tickInput struct {
	throttle   float32
	frontBrake float32
	rearBrake  float32
	lean       float32
	steer      float32
}

func NewSimulator(cfg settings.Settings, dbg *game.Debugger) *Simulator {
	s := &Simulator{cfg: cfg, dbg: dbg}
	s.Reset()
	return s
}

// Reset restores the fixed session-start pose: upright, on the ground, with a
// gentle forward roll.
func (s *Simulator) Reset() {
	d := s.cfg.Dynamics
	s.state = State{
		Pos: mgl32.Vec3{0, 0, 0},
		Vel: mgl32.Vec3{0, 0, 5},
	}
	s.front = Wheel{Radius: d.FrontWheelRadius, Inertia: d.FrontWheelInertia, Grip: 1}
	s.rear = Wheel{Radius: d.RearWheelRadius, Inertia: d.RearWheelInertia, Grip: 1}
	s.frontSusp = Suspension{Compression: 0.3, Travel: 0.12, Spring: 80, Damping: 9, AntiDive: 0.35}
	s.rearSusp = Suspension{Compression: 0.3, Travel: 0.13, Spring: 70, Damping: 8, AntiSquat: 0.4}
	s.engine = newEngine(d.IdleRPM, d.MaxRPM, d.GearRatios, d.FinalDrive)
	s.turn = TurnState{}
	s.suspPitch = 0
	s.wheelie = false
	s.counterSteering = false
}

// ShiftUp requests an upshift. The gear index is clamped to the top gear.
func (s *Simulator) ShiftUp() { s.engine.shift(1) }

// ShiftDown requests a downshift. The gear index is clamped to first.
func (s *Simulator) ShiftDown() { s.engine.shift(-1) }

// Gear returns the current gear index, 1..6.
func (s *Simulator) Gear() int { return s.engine.Gear }

// State returns a copy of the current rigid-body state.
func (s *Simulator) State() State { return s.state }

// Step advances the bike by dt seconds under the given conditioned controls
// and returns the resulting read-only snapshot.
func (s *Simulator) Step(dt float32, controls input.Controls) Snapshot {
	if dt <= 0 {
		return s.Snapshot()
	}

	in := tickInput{
		throttle:   game.Clamp32(controls.Throttle, 0, 1),
		frontBrake: game.Clamp32(controls.FrontBrake, 0, 1),
		rearBrake:  game.Clamp32(controls.RearBrake, 0, 1),
		lean:       game.Clamp32(controls.Lean, -1, 1),
		steer:      game.Clamp32(controls.Steer, -1, 1),
	}
	braking := in.frontBrake > 0.05 || in.rearBrake > 0.05

	s.engine.update(dt, in.throttle, s.state.Speed(), &s.rear)
	s.updateWheelRotation(dt)

	s.turn.update(dt, in.lean, braking)
	force := s.accumulateForces(dt, in)
	rollTorque, yawTorque := s.steeringTorques(dt, in)

	s.integrate(dt, force, rollTorque, yawTorque)
	s.updateSuspension(dt, in)
	s.updateTires()
	s.applyConstraints(dt)

	assert.FiniteVec(s.state.Pos, "position")
	assert.FiniteVec(s.state.Vel, "velocity")
	assert.Finite(s.state.Orient.Roll, "roll")
	assert.Finite(s.state.Orient.Yaw, "yaw")

	return s.Snapshot()
}

// integrate applies explicit Euler with distinct per-axis effective inertia.
func (s *Simulator) integrate(dt float32, force mgl32.Vec3, rollTorque, yawTorque float32) {
	st := &s.state
	mass := s.cfg.Dynamics.Mass

	st.Accel = force.Mul(1 / mass)
	st.Vel = st.Vel.Add(st.Accel.Mul(dt))

	// Tire slip lets the velocity vector trail the heading instead of
	// tracking it rigidly; grip closes the gap.
	speed := game.Vec3HzDist(st.Vel)
	if speed > 0.5 {
		avgGrip := (s.front.Grip + s.rear.Grip) * 0.5
		desired := st.Forward().Mul(speed)
		blend := game.Clamp32(velocityAlignRate*avgGrip*dt, 0, 1)
		st.Vel[0] = game.Lerp32(st.Vel[0], desired[0], blend)
		st.Vel[2] = game.Lerp32(st.Vel[2], desired[2], blend)
	}

	st.Pos = st.Pos.Add(st.Vel.Mul(dt))

	st.AngVel.Roll += rollTorque / rollInertia * dt
	st.AngVel.Yaw += yawTorque / yawInertia * dt
	pitchTarget := s.suspPitch
	if s.wheelie {
		pitchTarget -= 0.35
	}
	pitchTorque := (pitchTarget-st.Orient.Pitch)*pitchPGain - st.AngVel.Pitch*pitchDGain
	st.AngVel.Pitch += pitchTorque / pitchInertia * dt

	st.Orient.Roll += st.AngVel.Roll * dt
	st.Orient.Yaw = wrapAngle(st.Orient.Yaw + st.AngVel.Yaw*dt)
	st.Orient.Pitch += st.AngVel.Pitch * dt
}

// applyConstraints clamps the integrated state back into its invariants.
func (s *Simulator) applyConstraints(dt float32) {
	st := &s.state

	// Ground plane.
	if st.Pos.Y() < 0 {
		st.Pos[1] = 0
		if st.Vel.Y() < 0 {
			st.Vel[1] = 0
		}
	}

	// Lean stays inside the physical limit, with extra suppression at
	// walking pace where a real bike cannot hold lean.
	speed := st.Speed()
	limit := game.MaxLeanAngle
	if speed < game.LowSpeedLeanCutoff {
		limit *= speed / game.LowSpeedLeanCutoff
	}
	if math32.Abs(st.Orient.Roll) > limit {
		st.Orient.Roll = game.Sign32(st.Orient.Roll) * limit
		st.AngVel.Roll = 0
	}

	// Global speed limiter: rescale the horizontal velocity, leave vertical
	// untouched.
	if hz := game.Vec3HzDist(st.Vel); hz > game.SpeedLimit {
		scale := game.SpeedLimit / hz
		st.Vel[0] *= scale
		st.Vel[2] *= scale
	}

	st.Orient.Pitch = game.Clamp32(st.Orient.Pitch, -game.MaxPitchAngle, game.MaxPitchAngle)
}
