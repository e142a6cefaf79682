package traffic

import (
	"github.com/chewxy/math32"

	"github.com/apex-arcade/ridecore/game"
)

// freeRoadAccel is the Intelligent Driver Model's free-road term: full
// acceleration tapering as speed approaches the desired speed.
func freeRoadAccel(p *Personality, v float32) float32 {
	ratio := v / p.DesiredSpeed
	return p.MaxAccel * (1 - math32.Pow(ratio, p.AccelerationExponent))
}

// idmAccel computes the IDM acceleration for a vehicle with a tracked front
// vehicle. gap is the bumper-to-bumper distance, dv the closing speed
// (own - front). Frustration relaxes the desired time gap, modeling
// impatience from being held under the desired speed.
func idmAccel(p *Personality, v, gap, dv float32) float32 {
	tAdj := p.DesiredTimeGap * (1 - 0.5*p.frustrationFactor())

	dynamic := v*tAdj + v*dv/(2*math32.Sqrt(p.MaxAccel*p.ComfortDecel))
	sStar := p.MinimumGap + maxf(0, dynamic)

	ratio := sStar / maxf(gap, 0.1)
	accel := p.MaxAccel * (1 - math32.Pow(v/p.DesiredSpeed, p.AccelerationExponent) - ratio*ratio)

	return game.Clamp32(accel, -1.5*p.ComfortDecel, p.MaxAccel)
}
