package traffic

import (
	"math/rand"

	"github.com/apex-arcade/ridecore/game"
)

type Archetype uint8

const (
	ArchetypeNormal Archetype = iota
	ArchetypeCautious
	ArchetypeAggressive
	ArchetypeRacer
	ArchetypeLeftLaneHog
	ArchetypeMiddleLaneCamper
	ArchetypeDistracted
	ArchetypeElderly
	ArchetypeCommuter
)

func (a Archetype) String() string {
	switch a {
	case ArchetypeNormal:
		return "normal"
	case ArchetypeCautious:
		return "cautious"
	case ArchetypeAggressive:
		return "aggressive"
	case ArchetypeRacer:
		return "racer"
	case ArchetypeLeftLaneHog:
		return "leftLaneHog"
	case ArchetypeMiddleLaneCamper:
		return "middleLaneCamper"
	case ArchetypeDistracted:
		return "distracted"
	case ArchetypeElderly:
		return "elderly"
	case ArchetypeCommuter:
		return "commuter"
	}
	return "unknown"
}

// Personality is the parameter set steering one vehicle's decisions. The base
// values come from the archetype table and are skewed per spawn lane.
type Personality struct {
	Archetype Archetype

	DesiredSpeed   float32 // m/s
	DesiredTimeGap float32 // s
	MaxAccel       float32 // m/s^2
	ComfortDecel   float32 // m/s^2
	Politeness     float32 // 0..1

	LaneChangeThreshold   float32 // m/s speed deficit triggering a pass
	PreferredLane         int     // -1 = no preference
	Stubbornness          float32
	Aggressiveness        float32
	LaneChangeFrequency   float32 // decision rolls per second
	MinLaneChangeInterval float32 // s
	MinimumGap            float32 // m, IDM s0
	AccelerationExponent  float32 // delta, fixed at 4

	Frustration    float32
	MaxFrustration float32

	IsCurrentlyPassing bool
	PassTarget         VehicleID
}

// archetypeTable is static, versioned configuration: loaded once, immutable
// for the simulation's lifetime.
var archetypeTable = []struct {
	weight int
	base   Personality
}{
	{30, Personality{Archetype: ArchetypeNormal, DesiredSpeed: 29, DesiredTimeGap: 1.5, MaxAccel: 1.5, ComfortDecel: 2.0,
		Politeness: 0.5, LaneChangeThreshold: 3.0, PreferredLane: -1, Stubbornness: 0.3, Aggressiveness: 0.3,
		LaneChangeFrequency: 0.5, MinLaneChangeInterval: 4, MinimumGap: 2.0, MaxFrustration: 10}},
	{15, Personality{Archetype: ArchetypeCautious, DesiredSpeed: 26, DesiredTimeGap: 2.2, MaxAccel: 1.0, ComfortDecel: 1.8,
		Politeness: 0.8, LaneChangeThreshold: 4.5, PreferredLane: 2, Stubbornness: 0.2, Aggressiveness: 0.1,
		LaneChangeFrequency: 0.3, MinLaneChangeInterval: 6, MinimumGap: 3.0, MaxFrustration: 15}},
	{12, Personality{Archetype: ArchetypeAggressive, DesiredSpeed: 33, DesiredTimeGap: 1.0, MaxAccel: 2.2, ComfortDecel: 2.8,
		Politeness: 0.2, LaneChangeThreshold: 1.8, PreferredLane: -1, Stubbornness: 0.5, Aggressiveness: 0.8,
		LaneChangeFrequency: 0.8, MinLaneChangeInterval: 2, MinimumGap: 1.5, MaxFrustration: 6}},
	{6, Personality{Archetype: ArchetypeRacer, DesiredSpeed: 40, DesiredTimeGap: 0.6, MaxAccel: 3.0, ComfortDecel: 3.2,
		Politeness: 0.05, LaneChangeThreshold: 1.0, PreferredLane: -1, Stubbornness: 0.6, Aggressiveness: 1.0,
		LaneChangeFrequency: 1.0, MinLaneChangeInterval: 0.5, MinimumGap: 1.2, MaxFrustration: 4}},
	{6, Personality{Archetype: ArchetypeLeftLaneHog, DesiredSpeed: 28, DesiredTimeGap: 1.6, MaxAccel: 1.4, ComfortDecel: 2.0,
		Politeness: 0.02, LaneChangeThreshold: 50, PreferredLane: 0, Stubbornness: 0.95, Aggressiveness: 0.4,
		LaneChangeFrequency: 0.05, MinLaneChangeInterval: 10, MinimumGap: 2.0, MaxFrustration: 100}},
	{8, Personality{Archetype: ArchetypeMiddleLaneCamper, DesiredSpeed: 27, DesiredTimeGap: 1.8, MaxAccel: 1.3, ComfortDecel: 2.0,
		Politeness: 0.3, LaneChangeThreshold: 40, PreferredLane: 1, Stubbornness: 0.9, Aggressiveness: 0.2,
		LaneChangeFrequency: 0.05, MinLaneChangeInterval: 10, MinimumGap: 2.2, MaxFrustration: 80}},
	{8, Personality{Archetype: ArchetypeDistracted, DesiredSpeed: 27, DesiredTimeGap: 1.9, MaxAccel: 1.2, ComfortDecel: 2.0,
		Politeness: 0.4, LaneChangeThreshold: 5.0, PreferredLane: -1, Stubbornness: 0.4, Aggressiveness: 0.2,
		LaneChangeFrequency: 0.2, MinLaneChangeInterval: 7, MinimumGap: 2.5, MaxFrustration: 20}},
	{7, Personality{Archetype: ArchetypeElderly, DesiredSpeed: 23, DesiredTimeGap: 2.5, MaxAccel: 0.8, ComfortDecel: 1.5,
		Politeness: 0.7, LaneChangeThreshold: 6.0, PreferredLane: 2, Stubbornness: 0.3, Aggressiveness: 0.05,
		LaneChangeFrequency: 0.15, MinLaneChangeInterval: 8, MinimumGap: 3.5, MaxFrustration: 25}},
	{8, Personality{Archetype: ArchetypeCommuter, DesiredSpeed: 30, DesiredTimeGap: 1.2, MaxAccel: 1.8, ComfortDecel: 2.2,
		Politeness: 0.4, LaneChangeThreshold: 2.5, PreferredLane: -1, Stubbornness: 0.35, Aggressiveness: 0.5,
		LaneChangeFrequency: 0.6, MinLaneChangeInterval: 3, MinimumGap: 1.8, MaxFrustration: 8}},
}

// drawPersonality rolls one archetype by weight and skews it for the spawn
// lane: non-stubborn drivers run 15% hotter in the left lane and 15% colder
// in the right one.
func drawPersonality(rng *rand.Rand, lane int) Personality {
	total := 0
	for _, e := range archetypeTable {
		total += e.weight
	}
	roll := rng.Intn(total)
	cumulative := 0
	p := archetypeTable[0].base
	for _, e := range archetypeTable {
		cumulative += e.weight
		if roll < cumulative {
			p = e.base
			break
		}
	}
	p.AccelerationExponent = 4

	if p.Stubbornness < 0.7 {
		switch lane {
		case 0:
			p.DesiredSpeed *= 1.15
		case 2:
			p.DesiredSpeed *= 0.85
		}
	}
	return p
}

// requiredPassGap is the look-ahead gap a driver demands in the target lane
// before committing to a pass. Racers and competitive drivers squeeze into
// far smaller gaps than the cautious default.
func (p *Personality) requiredPassGap() float32 {
	switch {
	case p.Archetype == ArchetypeRacer:
		return 5
	case p.Aggressiveness >= 0.6:
		return 8
	default:
		return 12
	}
}

// updateFrustration accumulates impatience when the driver is persistently
// held more than 10% under their desired speed.
func (p *Personality) updateFrustration(dt, speed float32) {
	if speed < 0.9*p.DesiredSpeed {
		p.Frustration += dt
	} else {
		p.Frustration = maxf(p.Frustration-2*dt, 0)
	}
}

// frustrationFactor is how far impatience has relaxed the desired time gap.
func (p *Personality) frustrationFactor() float32 {
	if p.MaxFrustration <= 0 {
		return 0
	}
	return game.Clamp32(p.Frustration/p.MaxFrustration, 0, 1)
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
