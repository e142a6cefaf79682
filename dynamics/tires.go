package dynamics

import (
	"github.com/chewxy/math32"

	"github.com/apex-arcade/ridecore/game"
)

// updateTires recomputes slip ratios, lateral slip angles and the grip curve
// for both wheels.
func (s *Simulator) updateTires() {
	speed := s.state.Speed()
	roll := math32.Abs(s.state.Orient.Roll)

	// Lateral slip is the angle between where a wheel points and where its
	// contact patch actually travels. Below walking pace the velocity
	// direction is too noisy to mean anything.
	var bodySlip float32
	if speed > 0.5 {
		velYaw := math32.Atan2(s.state.Vel.X(), s.state.Vel.Z())
		bodySlip = wrapSignedAngle(velYaw - s.state.Orient.Yaw)
	}
	s.front.SlipAngle = wrapSignedAngle(bodySlip - s.front.SteerAngle)
	s.rear.SlipAngle = bodySlip

	updateWheelSlip(&s.front, speed, roll, false)
	updateWheelSlip(&s.rear, speed, roll, s.engine.Burnout)
}

func updateWheelSlip(w *Wheel, speed, roll float32, forcedSlip bool) {
	if !forcedSlip {
		surface := w.AngularVelocity * w.Radius
		if speed > 0.1 {
			w.SlipRatio = game.Clamp32((surface-speed)/speed, -1, 1)
		} else {
			w.SlipRatio = 0
		}
	}

	w.Grip = gripFromSlip(math32.Abs(w.SlipRatio))

	// Near maximum lean the contact patch is running out of tire.
	if edge := 0.8 * game.MaxLeanAngle; roll > edge {
		frac := (roll - edge) / (0.2 * game.MaxLeanAngle)
		w.Grip *= 1 - 0.5*game.Clamp32(frac, 0, 1)
	}
	w.Grip = game.Clamp32(w.Grip, 0, 1)
}

// gripFromSlip is a three-segment curve: full grip below 0.1 slip, a linear
// falloff to 0.3, then a shallower falloff beyond.
func gripFromSlip(slip float32) float32 {
	switch {
	case slip < 0.1:
		return 1
	case slip < 0.3:
		return 1 - (slip-0.1)*2.5
	default:
		return math32.Max(0.5-(slip-0.3)*0.5, 0.1)
	}
}
