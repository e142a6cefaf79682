package game

const (
	Gravity = float32(9.81)

	// MaxLeanAngle is the roll limit of the player bike in radians (~48 degrees).
	MaxLeanAngle = float32(0.838)
	// SpeedLimit is the hard cap on horizontal speed in m/s.
	SpeedLimit = float32(85.0)

	MPHPerMS = float32(2.23694)
	MSPerMPH = float32(0.44704)

	RadToDeg = float32(57.29577951308232)
	DegToRad = float32(0.017453292519943295)

	// CounterSteerSpeed is the speed above which steering input counter-steers
	// instead of mapping directly to yaw/roll.
	CounterSteerSpeed = float32(5.0)
	// LowSpeedLeanCutoff suppresses lean entirely below this speed.
	LowSpeedLeanCutoff = float32(2.0)

	MaxPitchAngle = float32(0.7853981633974483) // 45 degrees

	LaneWidth  = float32(3.6)
	LaneCount  = 3
	SubLanes   = 3
	RoadHalfW  = LaneWidth * LaneCount / 2
	SubLaneGap = LaneWidth / float32(SubLanes)
)
