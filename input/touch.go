package input

// TouchPayload is one structured control update from the touch boundary. The
// fields mirror the raw channels; Mobile marks whether the payload came from
// a touchscreen, keyboard payloads carry it false.
type TouchPayload struct {
	Mobile     bool
	Throttle   float32
	FrontBrake float32
	RearBrake  float32
	Lean       float32
	Steer      float32
}

// ApplyTouchPayload ingests a structured control update. When the payload
// source differs from the active one, the mode-specific tuning (dead zones,
// smoothing factors, rate limits, history size) is re-derived before the raw
// values are stored.
func (c *Conditioner) ApplyTouchPayload(p TouchPayload) {
	src := SourceKeyboard
	if p.Mobile {
		src = SourceMobile
	}
	if src != c.source {
		c.applyProfile(src)
	}

	c.SetRaw(ChannelThrottle, p.Throttle)
	c.SetRaw(ChannelFrontBrake, p.FrontBrake)
	c.SetRaw(ChannelRearBrake, p.RearBrake)
	c.SetRaw(ChannelLean, p.Lean)
	c.SetRaw(ChannelSteer, p.Steer)
}
