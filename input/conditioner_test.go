package input

import (
	"testing"

	"github.com/apex-arcade/ridecore/settings"
)

const testDt = float32(1.0 / 60.0)

func newTestConditioner() *Conditioner {
	return NewConditioner(settings.DefaultSettings())
}

func TestKeyboardMedianRejectsSpike(t *testing.T) {
	c := newTestConditioner()
	for i := 0; i < 10; i++ {
		c.SetRaw(ChannelLean, 0)
		c.Update(testDt, 20)
	}

	// A single-tick full deflection must not reach the smoothed output.
	c.SetRaw(ChannelLean, 1)
	out := c.Update(testDt, 20)
	if out.Lean != 0 {
		t.Fatalf("expected spike to be filtered, got lean %v", out.Lean)
	}

	c.SetRaw(ChannelLean, 0)
	out = c.Update(testDt, 20)
	if out.Lean != 0 {
		t.Fatalf("expected lean to stay zero after spike, got %v", out.Lean)
	}
}

func TestKeyboardLeanRampsGradually(t *testing.T) {
	c := newTestConditioner()
	c.SetRaw(ChannelLean, 1)

	first := c.Update(testDt, 20).Lean
	if first >= 0.5 {
		t.Fatalf("expected gradual ramp, got %v after one tick", first)
	}

	var out Controls
	for i := 0; i < 60; i++ {
		out = c.Update(testDt, 20)
	}
	if out.Lean <= 0.5 || out.Lean > 1 {
		t.Fatalf("expected lean near full after a second of hold, got %v", out.Lean)
	}
}

func TestKeyboardReturnFasterThanAway(t *testing.T) {
	c := newTestConditioner()
	c.SetRaw(ChannelLean, 1)
	var away int
	for c.limited[ChannelLean] < 0.99 {
		away++
		if away > 600 {
			t.Fatalf("lean never ramped to full deflection")
		}
		c.Update(testDt, 20)
	}

	c.SetRaw(ChannelLean, 0)
	var back int
	for c.limited[ChannelLean] > 0.01 {
		back++
		if back > 600 {
			t.Fatalf("lean never returned toward zero")
		}
		c.Update(testDt, 20)
	}
	if back >= away {
		t.Fatalf("expected return to center to be faster: away=%d ticks, back=%d ticks", away, back)
	}
}

func TestMobileDirectSteering(t *testing.T) {
	c := newTestConditioner()
	c.ApplyTouchPayload(TouchPayload{Mobile: true, Lean: 0.6})
	out := c.Update(testDt, 20)
	if out.Lean != 0.6 {
		t.Fatalf("expected direct pass-through of 0.6, got %v", out.Lean)
	}
}

func TestMobileDeadZone(t *testing.T) {
	c := newTestConditioner()
	c.ApplyTouchPayload(TouchPayload{Mobile: true, Lean: 0.05, Steer: -0.05})
	out := c.Update(testDt, 20)
	if out.Lean != 0 || out.Steer != 0 {
		t.Fatalf("expected dead zone to zero small inputs, got lean=%v steer=%v", out.Lean, out.Steer)
	}
}

func TestTouchPayloadSwitchesProfile(t *testing.T) {
	c := newTestConditioner()
	if c.Source() != SourceKeyboard {
		t.Fatalf("expected keyboard source by default")
	}
	c.ApplyTouchPayload(TouchPayload{Mobile: true})
	if c.Source() != SourceMobile {
		t.Fatalf("expected mobile source after touch payload")
	}
	c.ApplyTouchPayload(TouchPayload{Mobile: false})
	if c.Source() != SourceKeyboard {
		t.Fatalf("expected keyboard source after keyboard payload")
	}
}

func TestBrakesRespondFasterThanThrottle(t *testing.T) {
	c := newTestConditioner()
	c.SetRaw(ChannelThrottle, 1)
	c.SetRaw(ChannelFrontBrake, 1)
	out := c.Update(testDt, 20)
	if out.FrontBrake <= out.Throttle {
		t.Fatalf("expected brakes to lead throttle, got brake=%v throttle=%v", out.FrontBrake, out.Throttle)
	}
}
