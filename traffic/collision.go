package traffic

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// Footprints are shrunk slightly for collision so lane-splitting past a
	// vehicle stays forgiving.
	footprintLengthScale = float32(0.9)
	footprintWidthScale  = float32(0.85)

	cornerRadius = float32(0.35)
)

// footprintBox returns the vehicle's collision AABB in world space.
func footprintBox(v *Vehicle) cube.BBox {
	halfL := v.Length * footprintLengthScale / 2
	halfW := v.Width * footprintWidthScale / 2
	return cube.Box(
		v.Pos.X()-halfW, -1, v.Pos.Z()-halfL,
		v.Pos.X()+halfW, 2, v.Pos.Z()+halfL,
	)
}

// CheckCollision tests a probe circle against every vehicle footprint and
// returns the first hit. Near a footprint corner the test falls back to a
// circular corner radius so probes do not snag abruptly on square corners.
func (s *Sim) CheckCollision(pos mgl32.Vec3, radius float32) (VehicleID, bool) {
	probe := cube.Box(
		pos.X()-radius, -1, pos.Z()-radius,
		pos.X()+radius, 2, pos.Z()+radius,
	)
	for el := s.vehicles.Front(); el != nil; el = el.Next() {
		v := el.Value
		box := footprintBox(v)
		if !box.IntersectsWith(probe) {
			continue
		}
		if hitRoundedFootprint(v, pos, radius) {
			return v.ID, true
		}
	}
	return 0, false
}

// hitRoundedFootprint refines the AABB overlap with rounded corners: inside
// the edge region the AABB verdict stands, in a corner region the probe must
// be within cornerRadius (+probe radius) of the corner arc center.
func hitRoundedFootprint(v *Vehicle, pos mgl32.Vec3, radius float32) bool {
	halfL := v.Length * footprintLengthScale / 2
	halfW := v.Width * footprintWidthScale / 2

	qx := math32.Abs(pos.X()-v.Pos.X()) - (halfW - cornerRadius)
	qz := math32.Abs(pos.Z()-v.Pos.Z()) - (halfL - cornerRadius)
	if qx <= 0 || qz <= 0 {
		return true
	}
	limit := cornerRadius + radius
	return qx*qx+qz*qz <= limit*limit
}
