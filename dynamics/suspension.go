package dynamics

import (
	"github.com/chewxy/math32"

	"github.com/apex-arcade/ridecore/game"
)

// updateSuspension advances both spring states. The front dives under
// braking, reduced by the anti-dive fraction; the rear squats under power,
// reduced by anti-squat. Pitch partially derives from the compression
// differential.
func (s *Simulator) updateSuspension(dt float32, in tickInput) {
	forwardAccel := s.state.Accel.Dot(s.state.Forward())

	decel := math32.Max(-forwardAccel, 0)
	frontTarget := game.Clamp32(0.3+decel/game.Gravity*(1-s.frontSusp.AntiDive*in.frontBrake)*0.6, 0, 1)
	stepSpring(&s.frontSusp, frontTarget, dt)

	accel := math32.Max(forwardAccel, 0)
	rearTarget := game.Clamp32(0.3+accel/game.Gravity*(1-s.rearSusp.AntiSquat*in.throttle)*0.6, 0, 1)
	stepSpring(&s.rearSusp, rearTarget, dt)

	s.suspPitch = (s.rearSusp.Compression - s.frontSusp.Compression) * suspPitchFactor

	wasWheelie := s.wheelie
	s.wheelie = forwardAccel > wheelieMinAccel &&
		s.engine.Gear <= wheelieMaxGear &&
		in.throttle > wheelieMinThrottle &&
		s.state.Speed() > wheelieMinSpeed && s.state.Speed() < wheelieMaxSpeed
	s.dbg.Notify(game.DebugModeDynamics, s.wheelie != wasWheelie,
		"wheelie=%v accel=%.1f gear=%d", s.wheelie, forwardAccel, s.engine.Gear)
}

func stepSpring(susp *Suspension, target, dt float32) {
	susp.Velocity += ((target-susp.Compression)*susp.Spring - susp.Velocity*susp.Damping) * dt
	susp.Compression = game.Clamp32(susp.Compression+susp.Velocity*dt, 0, 1)
}
