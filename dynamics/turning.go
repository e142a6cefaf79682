package dynamics

import (
	"github.com/chewxy/math32"

	"github.com/apex-arcade/ridecore/game"
)

type tapPhase uint8

const (
	tapIdle tapPhase = iota
	tapDetected
	tapSharpActive
)

// TurnState tracks the two small state machines driving turning authority:
// the progressive-lean hold tracker, gated purely by sign continuity of the
// lean input, and the tap-then-hold sharp-turn detector. It also carries the
// brake-hold boost used for trail-braking.
type TurnState struct {
	HoldTime float32
	LastDir  float32

	phase    tapPhase
	tapTimer float32
	tapDir   float32

	BrakeHoldTime float32
}

func (t *TurnState) update(dt, lean float32, braking bool) {
	t.updateProgressive(dt, lean)
	t.updateTap(dt, lean)

	if braking {
		t.BrakeHoldTime += dt
	} else {
		t.BrakeHoldTime = 0
	}
}

func (t *TurnState) updateProgressive(dt, lean float32) {
	dir := game.Sign32(lean)
	if dir == 0 {
		t.HoldTime -= turnHoldMax * turnHoldDecay * dt
		if t.HoldTime <= 0 {
			t.HoldTime = 0
			t.LastDir = 0
		}
		return
	}
	if t.LastDir != 0 && dir != t.LastDir {
		t.HoldTime = 0
	}
	t.LastDir = dir
	t.HoldTime = math32.Min(t.HoldTime+dt, turnHoldMax)
}

func (t *TurnState) updateTap(dt, lean float32) {
	held := math32.Abs(lean) > tapInputThreshold
	dir := game.Sign32(lean)

	switch t.phase {
	case tapIdle:
		if held {
			t.phase = tapDetected
			t.tapTimer = 0
			t.tapDir = dir
		}
	case tapDetected:
		if !held || dir != t.tapDir {
			t.phase = tapIdle
			return
		}
		t.tapTimer += dt
		if t.tapTimer >= tapHoldWindow {
			t.phase = tapSharpActive
		}
	case tapSharpActive:
		if !held || dir != t.tapDir {
			t.phase = tapIdle
		}
	}
}

// ProgressiveFactor maps hold time to turning commitment: an immediate jump
// to 0.4 for the sharp initial turn-in, then a sine ease to 1.0 as the turn
// stays held.
func (t *TurnState) ProgressiveFactor() float32 {
	if t.HoldTime <= 0 {
		return 0
	}
	frac := t.HoldTime / turnHoldMax
	if frac <= 0.1 {
		return 0.4
	}
	return 0.4 + 0.6*game.SineEaseOut((frac-0.1)/0.9)
}

// SharpTurnActive reports whether the tap-then-hold detector is latched.
func (t *TurnState) SharpTurnActive() bool {
	return t.phase == tapSharpActive
}

// BrakeBoost ramps up with continuous brake hold, modeling trail-braking.
func (t *TurnState) BrakeBoost() float32 {
	frac := game.Clamp32(t.BrakeHoldTime/brakeHoldMax, 0, 1)
	return math32.Pow(frac, 0.7)
}

// AuthorityMultiplier is the combined turning-authority multiplier from the
// sharp-turn and brake-hold states.
func (t *TurnState) AuthorityMultiplier() float32 {
	mult := float32(1.0)
	if t.SharpTurnActive() {
		mult *= sharpTurnFactor
	}
	mult *= 1 + (brakeTurnBoost-1)*t.BrakeBoost()
	return mult
}

// steeringTorques computes the roll and yaw torques produced by rider input
// for one tick, and advances the front steer angle.
func (s *Simulator) steeringTorques(dt float32, in tickInput) (rollTorque, yawTorque float32) {
	st := &s.state
	speed := st.Speed()

	progressive := s.turn.ProgressiveFactor()
	authority := s.turn.AuthorityMultiplier()
	// Hard acceleration is already straightening the bike, so it also costs
	// turning authority.
	throttleMod := 1 - 0.5*in.throttle

	if speed > game.CounterSteerSpeed {
		s.counterSteering = in.steer != 0
		// True counter-steering: steer torque reduces roll, the resulting
		// lean produces the yaw rate.
		rollTorque -= in.steer * counterSteerGain * authority * throttleMod * maxf(progressive, 0.4)
		yawTorque += math32.Sin(st.Orient.Roll) * math32.Sqrt(game.Gravity/(speed+0.5)) *
			leanYawGain * authority * throttleMod * yawInertia

		// Trail effect: the front end self-centers, weakened as the turn
		// commits so a long-held turn resists snapping back.
		s.front.SteerAngle += (in.steer*maxSteerAngle - s.front.SteerAngle) * game.Clamp32(6*dt, 0, 1)
		rollTorque -= s.front.SteerAngle * trailGain * (1 - 0.7*progressive)
	} else {
		s.counterSteering = false
		// Below the counter-steer threshold input maps directly.
		direct := in.steer + in.lean
		yawTorque += direct * directYawGain * maxf(progressive, 0.4) * yawInertia * game.Clamp32(speed/game.CounterSteerSpeed, 0.2, 1)
		rollTorque += in.lean * directRollGain * authority * game.Clamp32(speed/game.CounterSteerSpeed, 0, 1)
		s.front.SteerAngle += (in.steer*maxSteerAngle - s.front.SteerAngle) * game.Clamp32(8*dt, 0, 1)
	}

	// Target-lean PD control. The sharp-turn state nearly disables damping
	// to permit fast transitions.
	targetRoll := game.Clamp32(in.lean*game.MaxLeanAngle*maxf(progressive, 0.4)*authority,
		-game.MaxLeanAngle, game.MaxLeanAngle)
	speedFactor := game.Clamp32(speed/10, 0, 1)
	damping := rollDGain
	if s.turn.SharpTurnActive() {
		damping *= 0.1
	}
	rollTorque += (targetRoll-st.Orient.Roll)*rollPGain*speedFactor - st.AngVel.Roll*damping

	// Riders stand the bike up under power. Explicit, not emergent.
	if in.throttle > 0 && math32.Abs(st.Orient.Roll) > 0.05 {
		rollTorque -= game.Sign32(st.Orient.Roll) * in.throttle * math32.Abs(st.Orient.Roll) * straightenGain
	}

	// Gyroscopic coupling from wheel spin momentum.
	spin := s.front.SpinMomentum() + s.rear.SpinMomentum()
	yawTorque += spin * st.AngVel.Roll * gyroCoupling * yawInertia
	rollTorque -= spin * st.AngVel.Yaw * gyroCoupling * rollInertia
	rollTorque -= spin * st.AngVel.Roll * gyroStability

	return rollTorque, yawTorque
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
