package dynamics

const (
	// Clutch re-engagement rate after a shift cut, in engagement units per
	// second.
	clutchEngageRate = float32(2.5)
	rpmTrackRate     = float32(6.0)
	throttleRPMRate  = float32(9000.0)

	// ThrottleBoostDuration is how long the extra torque multiplier lasts
	// after a throttle rising edge.
	throttleBoostDuration   = float32(0.8)
	throttleBoostMultiplier = float32(1.25)

	burnoutSpeedLimit      = float32(10.0)
	burnoutDriveEfficiency = float32(0.1)
	burnoutSlipRatio       = float32(0.9)
	burnoutSmokeRampRate   = float32(0.8)
	smokeDecayRate         = float32(0.5)

	maxBrakeDecelG  = float32(1.2)
	frontBrakeForce = float32(3400.0)
	rearBrakeForce  = float32(1800.0)

	rollingResistance = float32(14.0)

	// turnHoldMax is the hold time at which the progressive lean factor
	// saturates at 1.0. turnHoldDecay is the inverse of the release decay
	// time: a fully committed turn unwinds within 1/turnHoldDecay seconds.
	turnHoldMax   = float32(1.5)
	turnHoldDecay = float32(4.0)

	tapHoldWindow     = float32(0.8)
	sharpTurnFactor   = float32(6.0)
	tapInputThreshold = float32(0.3)

	brakeHoldMax   = float32(1.2)
	brakeTurnBoost = float32(4.0)

	counterSteerGain = float32(9.0)
	leanYawGain      = float32(2.4)
	trailGain        = float32(4.0)
	directYawGain    = float32(1.6)
	directRollGain   = float32(5.0)
	rollPGain        = float32(26.0)
	rollDGain        = float32(7.0)
	straightenGain   = float32(11.0)
	gyroCoupling     = float32(0.0035)
	gyroStability    = float32(0.004)

	maxSteerAngle = float32(0.6)

	// Effective inertia per rotation axis. Yaw is the largest, roll the
	// smallest, so roll responds fastest to rider input.
	yawInertia   = float32(80.0)
	pitchInertia = float32(46.0)
	rollInertia  = float32(18.0)

	cornerRadiusK         = float32(1.15)
	offThrottleTightening = float32(4.5)
	camberThrustPerDegree = float32(7.5)
	velocityAlignRate     = float32(4.5)

	wheelbase = float32(1.42)
	cgHeight  = float32(0.62)

	suspPitchFactor = float32(0.22)
	pitchPGain      = float32(1400.0)
	pitchDGain      = float32(360.0)

	wheelieMinAccel    = float32(5.5)
	wheelieMaxGear     = 2
	wheelieMinThrottle = float32(0.7)
	wheelieMinSpeed    = float32(3.0)
	wheelieMaxSpeed    = float32(30.0)
)
