package dynamics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/apex-arcade/ridecore/game"
)

// Orientation holds three independent Euler angles in radians. Roll is lean.
type Orientation struct {
	Pitch float32
	Yaw   float32
	Roll  float32
}

// State is the rigid-body-like state of the player bike.
type State struct {
	Pos    mgl32.Vec3
	Vel    mgl32.Vec3
	Accel  mgl32.Vec3
	Orient Orientation
	AngVel Orientation
}

// Speed returns the horizontal speed in m/s.
func (s State) Speed() float32 {
	return game.Vec3HzDist(s.Vel)
}

// Forward returns the horizontal unit vector the bike is pointed along.
func (s State) Forward() mgl32.Vec3 {
	sin, cos := math32.Sincos(s.Orient.Yaw)
	return mgl32.Vec3{sin, 0, cos}
}

// Right returns the horizontal unit vector pointing to the bike's right.
func (s State) Right() mgl32.Vec3 {
	sin, cos := math32.Sincos(s.Orient.Yaw)
	return mgl32.Vec3{cos, 0, -sin}
}

// Wheel is the per-wheel sub-state. The front wheel carries the steer angle,
// the rear carries drive torque.
type Wheel struct {
	Radius  float32
	Inertia float32

	AngularVelocity float32
	RotationAngle   float32
	SlipRatio       float32
	SlipAngle       float32
	Load            float32
	Grip            float32
	SteerAngle      float32
	DriveTorque     float32
	BrakeForce      float32
}

// SpinMomentum returns the wheel's angular momentum I*w, used for the
// gyroscopic coupling terms.
func (w *Wheel) SpinMomentum() float32 {
	return w.Inertia * w.AngularVelocity
}

// Suspension is one axle's spring state. Compression is normalized to [0, 1].
type Suspension struct {
	Compression float32
	Velocity    float32
	Travel      float32
	Spring      float32
	Damping     float32
	AntiDive    float32
	AntiSquat   float32
}
