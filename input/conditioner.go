package input

import (
	"github.com/chewxy/math32"

	"github.com/apex-arcade/ridecore/game"
	"github.com/apex-arcade/ridecore/settings"
	"github.com/apex-arcade/ridecore/utils"
)

type Channel uint8

const (
	ChannelThrottle Channel = iota
	ChannelFrontBrake
	ChannelRearBrake
	ChannelLean
	ChannelSteer

	channelCount
)

// Controls is one tick of conditioned control input, every channel in [-1, 1].
type Controls struct {
	Throttle   float32
	FrontBrake float32
	RearBrake  float32
	Lean       float32
	Steer      float32
}

// Conditioner turns raw, possibly noisy control signals into smoothed,
// rate-limited control values. Keyboard input arrives as instantaneous full
// deflections and needs heavy filtering; touch input is already continuous
// and is passed through with only a dead zone applied.
type Conditioner struct {
	cfg     settings.Settings
	profile settings.InputProfile
	source  Source

	raw      [channelCount]float32
	limited  [channelCount]float32
	smoothed [channelCount]float32

	leanHist  *utils.CircularQueue[float32]
	steerHist *utils.CircularQueue[float32]
}

type Source uint8

const (
	SourceKeyboard Source = iota
	SourceMobile
)

func NewConditioner(cfg settings.Settings) *Conditioner {
	c := &Conditioner{cfg: cfg}
	c.applyProfile(SourceKeyboard)
	return c
}

// SetRaw sets the raw value for a channel, clamped to [-1, 1].
func (c *Conditioner) SetRaw(ch Channel, v float32) {
	if ch >= channelCount {
		return
	}
	c.raw[ch] = game.Clamp32(v, -1, 1)
}

// Source returns the active input source.
func (c *Conditioner) Source() Source {
	return c.source
}

// SetSource switches the active input profile. A no-op when src is already
// active, otherwise the history rings are rebuilt at the new profile's size.
func (c *Conditioner) SetSource(src Source) {
	if src != c.source {
		c.applyProfile(src)
	}
}

func (c *Conditioner) applyProfile(src Source) {
	c.source = src
	if src == SourceMobile {
		c.profile = c.cfg.Input.Mobile
	} else {
		c.profile = c.cfg.Input.Keyboard
	}
	size := c.profile.HistorySize
	if size < 1 {
		size = 1
	}
	c.leanHist = utils.NewCircularQueue[float32](size)
	c.steerHist = utils.NewCircularQueue[float32](size)
	c.leanHist.Fill(c.smoothed[ChannelLean])
	c.steerHist.Fill(c.smoothed[ChannelSteer])
}

// Update advances the conditioning by one tick and returns the smoothed
// controls. speed is the current vehicle speed in m/s.
func (c *Conditioner) Update(dt, speed float32) Controls {
	if dt <= 0 {
		return c.Controls()
	}
	mph := speed * game.MPHPerMS

	c.smoothed[ChannelThrottle] = smooth(c.smoothed[ChannelThrottle],
		deadZone(c.raw[ChannelThrottle], c.profile.DeadZoneThrottle),
		c.profile.ThrottleSmoothing*dt)
	c.smoothed[ChannelFrontBrake] = smooth(c.smoothed[ChannelFrontBrake],
		deadZone(c.raw[ChannelFrontBrake], c.profile.DeadZoneBrake),
		c.profile.BrakeSmoothing*dt)
	c.smoothed[ChannelRearBrake] = smooth(c.smoothed[ChannelRearBrake],
		deadZone(c.raw[ChannelRearBrake], c.profile.DeadZoneBrake),
		c.profile.BrakeSmoothing*dt)

	c.updateSteerChannel(ChannelLean, c.leanHist, c.profile.DeadZoneLean, c.profile.LeanSmoothing, dt, mph, true)
	c.updateSteerChannel(ChannelSteer, c.steerHist, c.profile.DeadZoneSteer, c.profile.SteerSmoothing, dt, mph, false)

	return c.Controls()
}

// Controls returns the current smoothed control values without advancing.
func (c *Conditioner) Controls() Controls {
	return Controls{
		Throttle:   c.smoothed[ChannelThrottle],
		FrontBrake: c.smoothed[ChannelFrontBrake],
		RearBrake:  c.smoothed[ChannelRearBrake],
		Lean:       c.smoothed[ChannelLean],
		Steer:      c.smoothed[ChannelSteer],
	}
}

func (c *Conditioner) updateSteerChannel(ch Channel, hist *utils.CircularQueue[float32], dz, smoothing, dt, mph float32, isLean bool) {
	target := deadZone(c.raw[ch], dz)

	if c.profile.DirectSteering {
		// Touch path: no median filter, no smoothing. Latency beats jitter.
		c.limited[ch] = target
		c.smoothed[ch] = target
		return
	}

	hist.Append(target)
	vals := make([]float32, 0, hist.Cap())
	for v := range hist.Iter() {
		vals = append(vals, v)
	}
	target = game.Median32(vals)

	prev := c.limited[ch]
	rate := c.profile.AwayRate
	if movingTowardZero(prev, target) {
		rate = c.profile.ReturnRate
	}
	if mph > 30 {
		rate *= 0.5 + 0.5*(30/mph)
	}
	maxChange := rate * dt
	c.limited[ch] = prev + game.Clamp32(target-prev, -maxChange, maxChange)

	alpha := smoothing * dt * (0.5 + 0.5*game.Clamp32(mph/100, 0, 1))
	if mph < 10 {
		scale := mph / 10
		if isLean {
			alpha *= scale
		} else {
			alpha *= 0.5 + 0.5*scale
		}
	}
	c.smoothed[ch] = smooth(c.smoothed[ch], c.limited[ch], alpha)
}

func deadZone(v, threshold float32) float32 {
	if math32.Abs(v) < threshold {
		return 0
	}
	return v
}

func movingTowardZero(prev, target float32) bool {
	if prev == 0 {
		return false
	}
	return math32.Abs(target) < math32.Abs(prev) || prev*target < 0
}

func smooth(current, target, alpha float32) float32 {
	return current + (target-current)*game.Clamp32(alpha, 0, 1)
}
