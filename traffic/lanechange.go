package traffic

import (
	"github.com/chewxy/math32"

	"github.com/apex-arcade/ridecore/game"
)

const (
	fullLaneChangeMinDuration = float32(1.5)
	fullLaneChangeMaxDuration = float32(2.0)
	subLaneChangeMinDuration  = float32(0.8)
	subLaneChangeMaxDuration  = float32(1.2)

	subLaneSafetyGap     = float32(6.0)
	subLaneShiftInterval = float32(0.5)
	mergeBackLead        = float32(20.0)

	hogMatchRange    = float32(20.0)
	playerAlongsideZ = float32(6.0)
)

// considerLaneChange evaluates a pass or merge-back for a vehicle with a
// tracked front vehicle.
func (s *Sim) considerLaneChange(v *Vehicle, front *Vehicle) {
	if v.changingLanes() {
		return
	}
	p := &v.Behavior

	// Merge back right once sufficiently ahead of the overtaken vehicle,
	// politeness permitting.
	if p.IsCurrentlyPassing {
		if target, ok := s.vehicles.Get(p.PassTarget); !ok || p.PassTarget == 0 {
			p.IsCurrentlyPassing = false
			p.PassTarget = 0
		} else if v.Pos.Z()-target.Pos.Z() > mergeBackLead && p.Politeness > 0.3 &&
			v.Lane < game.LaneCount-1 && s.laneClear(v, v.Lane+1, p.requiredPassGap()) {
			s.startLaneChange(v, v.Lane+1, v.SubLane, false)
			p.IsCurrentlyPassing = false
			p.PassTarget = 0
			return
		}
	}

	slowEnough := front.Speed < p.DesiredSpeed-p.LaneChangeThreshold
	frustrated := p.Frustration > p.MaxFrustration
	if !slowEnough && !frustrated {
		return
	}

	if v.sinceLaneChange >= p.MinLaneChangeInterval {
		gap := p.requiredPassGap()
		if v.Lane > 0 && s.laneClear(v, v.Lane-1, gap) {
			s.startLaneChange(v, v.Lane-1, v.SubLane, false)
			p.IsCurrentlyPassing = true
			p.PassTarget = front.ID
			s.dbg.Notify(game.DebugModeTraffic, true, "vehicle %d (%s) passing %d to the left",
				v.ID, p.Archetype, front.ID)
			return
		}
		// The right lane is a last resort, used only once frustration is
		// well past the ceiling.
		if frustrated && p.Frustration > 1.5*p.MaxFrustration &&
			v.Lane < game.LaneCount-1 && s.laneClear(v, v.Lane+1, gap) {
			s.startLaneChange(v, v.Lane+1, v.SubLane, false)
			p.IsCurrentlyPassing = true
			p.PassTarget = front.ID
			return
		}
	}

	// A share of decision rolls also adjusts the within-lane offset. This
	// runs on its own re-attempt timer so it never displaces or delays a
	// full-lane pass.
	if v.sinceSubLaneShift >= subLaneShiftInterval && v.rng.Float32() < 0.3 {
		s.considerSubLaneShift(v)
	}
}

// considerPreferredLane drifts a vehicle toward its archetype's preferred
// lane when the road ahead is clear. Hogs and campers never drift; they hold
// whatever lane they are in.
func (s *Sim) considerPreferredLane(v *Vehicle) {
	p := &v.Behavior
	if v.changingLanes() || p.PreferredLane < 0 || v.Lane == p.PreferredLane {
		return
	}
	if p.Archetype == ArchetypeLeftLaneHog || p.Archetype == ArchetypeMiddleLaneCamper {
		return
	}
	if v.sinceLaneChange < p.MinLaneChangeInterval {
		return
	}
	step := 1
	if p.PreferredLane < v.Lane {
		step = -1
	}
	if s.laneClear(v, v.Lane+step, p.requiredPassGap()) {
		s.startLaneChange(v, v.Lane+step, v.SubLane, false)
	}
}

// considerSubLaneShift moves the within-lane lateral offset using a smaller
// safety gap than full lane changes.
func (s *Sim) considerSubLaneShift(v *Vehicle) {
	if v.changingLanes() {
		return
	}
	target := v.rng.Intn(game.SubLanes)
	if target == v.SubLane {
		return
	}
	if s.laneClear(v, v.Lane, subLaneSafetyGap) {
		s.startLaneChange(v, v.Lane, target, true)
	}
}

func (s *Sim) startLaneChange(v *Vehicle, lane, subLane int, subOnly bool) {
	v.TargetLane = clampLane(lane)
	v.TargetSubLane = clampLane(subLane)
	v.LaneChangeProgress = 0
	if subOnly {
		v.LaneChangeDuration = subLaneChangeMinDuration +
			v.rng.Float32()*(subLaneChangeMaxDuration-subLaneChangeMinDuration)
		v.sinceSubLaneShift = 0
	} else {
		v.LaneChangeDuration = fullLaneChangeMinDuration +
			v.rng.Float32()*(fullLaneChangeMaxDuration-fullLaneChangeMinDuration)
		v.sinceLaneChange = 0
	}
}

// laneClear reports whether lane has no vehicle within the look-ahead gap in
// front of v, nor uncomfortably close behind.
func (s *Sim) laneClear(v *Vehicle, lane int, gap float32) bool {
	if lane < 0 || lane >= game.LaneCount {
		return false
	}
	for el := s.vehicles.Front(); el != nil; el = el.Next() {
		other := el.Value
		if other.ID == v.ID || other.Lane != lane {
			continue
		}
		dz := other.Pos.Z() - v.Pos.Z()
		if dz >= 0 && dz < gap+other.Length {
			return false
		}
		if dz < 0 && -dz < gap*0.5+v.Length {
			return false
		}
	}
	return true
}

// updateHogBehavior makes a left-lane hog match speed with any vehicle
// immediately to its right, forming a rolling blockade.
func (s *Sim) updateHogBehavior(dt float32, v *Vehicle) {
	if v.Behavior.Archetype != ArchetypeLeftLaneHog || v.Lane >= game.LaneCount-1 {
		return
	}
	for el := s.vehicles.Front(); el != nil; el = el.Next() {
		other := el.Value
		if other.Lane != v.Lane+1 {
			continue
		}
		if math32.Abs(other.Pos.Z()-v.Pos.Z()) <= hogMatchRange {
			v.Speed += (other.Speed - v.Speed) * game.Clamp32(2*dt, 0, 1)
			return
		}
	}
}

// updatePlayerInteraction handles the per-archetype reaction to the player
// riding alongside: polite drivers nudge their sub-lane away, a hog may
// deliberately drift into the player's lateral slot.
func (s *Sim) updatePlayerInteraction(v *Vehicle) {
	if v.changingLanes() {
		return
	}
	if math32.Abs(v.Pos.Z()-s.playerPos.Z()) > playerAlongsideZ {
		return
	}
	dx := s.playerPos.X() - v.Pos.X()
	if math32.Abs(dx) > game.LaneWidth {
		return
	}

	p := &v.Behavior
	if p.Archetype == ArchetypeLeftLaneHog {
		// Drift into the player's slot.
		if dx > 0 && v.SubLane < game.SubLanes-1 {
			s.startLaneChange(v, v.Lane, v.SubLane+1, true)
		} else if dx < 0 && v.SubLane > 0 {
			s.startLaneChange(v, v.Lane, v.SubLane-1, true)
		}
		return
	}
	if p.Politeness > 0.5 {
		if dx > 0 && v.SubLane > 0 {
			s.startLaneChange(v, v.Lane, v.SubLane-1, true)
		} else if dx <= 0 && v.SubLane < game.SubLanes-1 {
			s.startLaneChange(v, v.Lane, v.SubLane+1, true)
		}
	}
}

func clampLane(lane int) int {
	if lane < 0 {
		return 0
	}
	if lane >= game.LaneCount {
		return game.LaneCount - 1
	}
	return lane
}
