package dynamics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/apex-arcade/ridecore/game"
)

// accumulateForces gathers every linear force acting on the bike for one tick
// and returns the total. Wheel loads, brake forces and the burnout state are
// updated as a side effect.
func (s *Simulator) accumulateForces(dt float32, in tickInput) mgl32.Vec3 {
	st := &s.state
	speed := st.Speed()
	mass := s.cfg.Dynamics.Mass
	fwd := st.Forward()
	right := st.Right()

	var force mgl32.Vec3

	// Aerodynamic drag, quadratic in speed. The coefficient itself steps up
	// above 100 and again above 150 mph, which produces the top-speed wall.
	mph := speed * game.MPHPerMS
	drag := s.cfg.Dynamics.DragFactor
	if mph > 100 {
		drag *= 1.3
	}
	if mph > 150 {
		drag *= 1.6
	}
	if speed > 0.01 {
		hzDir := mgl32.Vec3{st.Vel.X(), 0, st.Vel.Z()}.Normalize()
		force = force.Sub(hzDir.Mul(drag*speed*speed + rollingResistance))
	}

	downforce := s.cfg.Dynamics.DownforceFactor * speed * speed
	force[1] -= downforce

	s.updateLoads(downforce)

	// Burnout: throttle and rear brake together at low speed spins the rear
	// wheel in place instead of driving forward.
	wasBurnout := s.engine.Burnout
	s.engine.Burnout = in.throttle > 0 && in.rearBrake > 0 && speed < burnoutSpeedLimit
	driveEfficiency := float32(1.0)
	if s.engine.Burnout {
		driveEfficiency = burnoutDriveEfficiency
		const rpmToRadPerSec = float32(0.10471975511965977)
		s.rear.AngularVelocity = s.engine.RPM * rpmToRadPerSec / (s.engine.Ratio() * s.engine.FinalDrive)
		s.rear.SlipRatio = burnoutSlipRatio
		s.engine.SmokeLevel = game.Clamp32(s.engine.SmokeLevel+burnoutSmokeRampRate*dt, 0, 1)
	} else {
		s.engine.SmokeLevel = game.Clamp32(s.engine.SmokeLevel-smokeDecayRate*dt, 0, 1)
	}
	s.dbg.Notify(game.DebugModeDynamics, s.engine.Burnout != wasBurnout,
		"burnout=%v speed=%.1f", s.engine.Burnout, speed)

	// Drive force from rear torque, capped by available traction.
	driveForce := s.rear.DriveTorque / s.rear.Radius * driveEfficiency
	traction := s.rear.Grip * s.rear.Load * 1.2
	if driveForce > traction {
		driveForce = traction
	}
	force = force.Add(fwd.Mul(driveForce))

	// Braking from both wheels, held under a combined 1.2g ceiling by
	// scaling both wheels down proportionally. ABS feel, not lockup.
	s.front.BrakeForce = in.frontBrake * frontBrakeForce
	s.rear.BrakeForce = in.rearBrake * rearBrakeForce
	totalBrake := s.front.BrakeForce + s.rear.BrakeForce
	if maxBrake := maxBrakeDecelG * game.Gravity * mass; totalBrake > maxBrake {
		scale := maxBrake / totalBrake
		s.front.BrakeForce *= scale
		s.rear.BrakeForce *= scale
		totalBrake = maxBrake
	}
	if speed > 0.05 && totalBrake > 0 {
		// Never brake past a standstill in one tick.
		if stopForce := mass * speed / dt; totalBrake > stopForce {
			totalBrake = stopForce
		}
		hzDir := mgl32.Vec3{st.Vel.X(), 0, st.Vel.Z()}.Normalize()
		force = force.Sub(hzDir.Mul(totalBrake))
	}

	// Cornering from lean. Off throttle the front has more grip to spend, so
	// the effective radius tightens considerably.
	roll := st.Orient.Roll
	if speed > 1 && math32.Abs(roll) > 0.02 {
		radiusMult := offThrottleTightening - (offThrottleTightening-1)*game.Clamp32(in.throttle, 0, 1)
		tanArg := roll * maxf(s.turn.ProgressiveFactor(), 0.3) * radiusMult
		tanArg = game.Clamp32(tanArg, -1.2, 1.2)
		if t := math32.Abs(math32.Tan(tanArg)); t > 1e-4 {
			radius := speed * speed * cornerRadiusK / (game.Gravity * t)
			lateral := mass * speed * speed / radius
			if limit := s.front.Grip * s.front.Load * 1.2; lateral > limit {
				lateral = limit
			}
			force = force.Add(right.Mul(lateral * game.Sign32(roll)))
		}
	}

	// Camber thrust from the leaned contact patch.
	force = force.Add(right.Mul(roll * game.RadToDeg * camberThrustPerDegree * 0.01 * speed))

	force[1] -= mass * game.Gravity

	return force
}

// updateLoads splits the bike's weight across the axles, transferring load
// with longitudinal acceleration.
func (s *Simulator) updateLoads(downforce float32) {
	mass := s.cfg.Dynamics.Mass
	static := mass * game.Gravity * 0.5
	forwardAccel := s.state.Accel.Dot(s.state.Forward())
	transfer := mass * forwardAccel * cgHeight / wheelbase

	s.front.Load = math32.Max(static-transfer+downforce*0.5, 0)
	s.rear.Load = math32.Max(static+transfer+downforce*0.5, 0)
}

// updateWheelRotation keeps wheel spin kinematically consistent with road
// speed. The rear is left alone during a burnout, where it is force-spun.
func (s *Simulator) updateWheelRotation(dt float32) {
	speed := s.state.Speed()
	s.front.AngularVelocity = speed / s.front.Radius
	if !s.engine.Burnout {
		s.rear.AngularVelocity = speed / s.rear.Radius
	}

	s.front.RotationAngle = wrapAngle(s.front.RotationAngle + s.front.AngularVelocity*dt)
	s.rear.RotationAngle = wrapAngle(s.rear.RotationAngle + s.rear.AngularVelocity*dt)
}

func wrapAngle(a float32) float32 {
	const twoPi = 2 * math32.Pi
	a = math32.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	return a
}

// wrapSignedAngle normalizes a into (-pi, pi].
func wrapSignedAngle(a float32) float32 {
	a = wrapAngle(a)
	if a > math32.Pi {
		a -= 2 * math32.Pi
	}
	return a
}
