package dynamics

import (
	"github.com/chewxy/math32"

	"github.com/apex-arcade/ridecore/game"
)

// Engine models the powertrain: rpm, a six-speed gearbox with a shift-cut
// clutch, and the torque pipeline that feeds the rear wheel.
type Engine struct {
	RPM      float32
	Gear     int
	Clutch   float32
	Throttle float32

	IdleRPM    float32
	MaxRPM     float32
	GearRatios []float32
	FinalDrive float32

	Burnout    bool
	SmokeLevel float32

	clutchRamp   float32
	boostTimer   float32
	prevThrottle float32
}

// baseTorqueCurve is the rpm → N*m map of the engine, linearly interpolated.
var baseTorqueCurve = [][2]float32{
	{0, 40},
	{1200, 55},
	{4000, 72},
	{7000, 85},
	{9500, 92},
	{11500, 88},
	{13500, 70},
}

func newEngine(idle, max float32, ratios []float32, finalDrive float32) Engine {
	return Engine{
		RPM:        idle,
		Gear:       1,
		Clutch:     1,
		clutchRamp: 1,
		IdleRPM:    idle,
		MaxRPM:     max,
		GearRatios: ratios,
		FinalDrive: finalDrive,
	}
}

// Ratio returns the current gear ratio.
func (e *Engine) Ratio() float32 {
	idx := e.Gear - 1
	if idx < 0 {
		idx = 0
	} else if idx >= len(e.GearRatios) {
		idx = len(e.GearRatios) - 1
	}
	return e.GearRatios[idx]
}

func (e *Engine) shift(delta int) {
	gear := e.Gear + delta
	if gear < 1 {
		gear = 1
	} else if gear > len(e.GearRatios) {
		gear = len(e.GearRatios)
	}
	if gear == e.Gear {
		return
	}
	e.Gear = gear
	// Shift cut: the clutch drops fully and re-engages over time.
	e.Clutch = 0
	e.clutchRamp = 0
}

// update advances the powertrain one tick and deposits drive torque on the
// rear wheel.
func (e *Engine) update(dt, throttle, speed float32, rear *Wheel) {
	e.Throttle = throttle
	// Re-engagement eases in and out so the clutch bite is not abrupt at
	// either end of the ramp.
	e.clutchRamp = game.Clamp32(e.clutchRamp+clutchEngageRate*dt, 0, 1)
	e.Clutch = game.SineEaseInOut(e.clutchRamp)

	// Wheel speed converted back through the drivetrain.
	const radPerSecToRPM = float32(9.549296585513721)
	targetRPM := rear.AngularVelocity * radPerSecToRPM * e.Ratio() * e.FinalDrive
	targetRPM = game.Clamp32(targetRPM, e.IdleRPM, e.MaxRPM)

	if throttle > 0 {
		e.RPM += (targetRPM - e.RPM) * game.Clamp32(e.Clutch*rpmTrackRate*dt, 0, 1)
		e.RPM = game.Clamp32(e.RPM+throttle*throttleRPMRate*dt, e.IdleRPM, e.MaxRPM)
	} else {
		// Closed throttle tracks the wheel directly. There is no engine
		// braking, so coasting preserves momentum.
		e.RPM = targetRPM
	}

	if throttle > 0.1 && e.prevThrottle <= 0.1 {
		e.boostTimer = throttleBoostDuration
	}
	e.prevThrottle = throttle
	if e.boostTimer > 0 {
		e.boostTimer -= dt
	}

	torque := e.torqueOutput(throttle, speed)
	rear.DriveTorque = torque * e.Ratio() * e.FinalDrive * e.Clutch
}

func (e *Engine) torqueOutput(throttle, speed float32) float32 {
	if throttle <= 0 {
		return 0
	}
	torque := lerpCurve(baseTorqueCurve, e.RPM)
	torque *= speedFalloff(speed * game.MPHPerMS)
	torque *= throttleResponse(throttle)
	if e.boostTimer > 0 {
		torque *= throttleBoostMultiplier
	}
	return torque
}

// throttleResponse is deliberately super-linear at small inputs so light
// throttle still produces a strong initial push.
func throttleResponse(throttle float32) float32 {
	return math32.Max(math32.Pow(throttle, 0.3), 2*throttle)
}

// speedFalloff shapes available torque by road speed. Over-unity below 20 mph
// for the launch feel, decaying through bands to a hard wall above 140 mph.
func speedFalloff(mph float32) float32 {
	switch {
	case mph < 20:
		return 1.3
	case mph < 40:
		return 1.15
	case mph < 60:
		return 1.0
	case mph < 80:
		return 0.85
	case mph < 100:
		return 0.65
	case mph < 120:
		return 0.45
	case mph < 140:
		return 0.3
	default:
		return 0.2
	}
}

func lerpCurve(curve [][2]float32, x float32) float32 {
	if x <= curve[0][0] {
		return curve[0][1]
	}
	for i := 1; i < len(curve); i++ {
		if x <= curve[i][0] {
			span := curve[i][0] - curve[i-1][0]
			t := (x - curve[i-1][0]) / span
			return game.Lerp32(curve[i-1][1], curve[i][1], t)
		}
	}
	return curve[len(curve)-1][1]
}
