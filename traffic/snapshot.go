package traffic

import "github.com/go-gl/mathgl/mgl32"

// VehicleSnapshot is a read-only view of one traffic vehicle, safe to hand to
// rendering or networking code.
type VehicleSnapshot struct {
	ID        VehicleID
	Type      VehicleType
	Lane      int
	SubLane   int
	Pos       mgl32.Vec3
	Vel       mgl32.Vec3
	Yaw       float32
	Speed     float32
	IsBraking bool
	Length    float32
	Width     float32
}

// Snapshots returns snapshots for every live vehicle in spawn order.
func (s *Sim) Snapshots() []VehicleSnapshot {
	out := make([]VehicleSnapshot, 0, s.vehicles.Len())
	for el := s.vehicles.Front(); el != nil; el = el.Next() {
		v := el.Value
		out = append(out, VehicleSnapshot{
			ID:        v.ID,
			Type:      v.Type,
			Lane:      v.Lane,
			SubLane:   v.SubLane,
			Pos:       v.Pos,
			Vel:       v.Vel,
			Yaw:       v.Yaw,
			Speed:     v.Speed,
			IsBraking: v.IsBraking,
			Length:    v.Length,
			Width:     v.Width,
		})
	}
	return out
}
