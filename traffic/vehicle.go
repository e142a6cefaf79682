package traffic

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/apex-arcade/ridecore/game"
)

// VehicleID is a stable identifier for a traffic vehicle across its lifetime.
// Zero means "no vehicle" and is never assigned.
type VehicleID int64

type VehicleType uint8

const (
	TypeCar VehicleType = iota
	TypeSUV
	TypeTruck
	TypeVan
	TypeSports
)

func (t VehicleType) String() string {
	switch t {
	case TypeCar:
		return "car"
	case TypeSUV:
		return "suv"
	case TypeTruck:
		return "truck"
	case TypeVan:
		return "van"
	case TypeSports:
		return "sports"
	}
	return "unknown"
}

type footprint struct {
	length float32
	width  float32
}

var typeFootprints = map[VehicleType]footprint{
	TypeCar:    {length: 4.4, width: 1.8},
	TypeSUV:    {length: 4.8, width: 1.95},
	TypeTruck:  {length: 12.0, width: 2.5},
	TypeVan:    {length: 5.4, width: 2.0},
	TypeSports: {length: 4.2, width: 1.85},
}

var typeWeights = []struct {
	t VehicleType
	w int
}{
	{TypeCar, 40},
	{TypeSUV, 25},
	{TypeTruck, 12},
	{TypeVan, 13},
	{TypeSports, 10},
}

// Vehicle is one independently-driven traffic agent. It is owned exclusively
// by the Sim that spawned it; FrontVehicle is recomputed from scratch every
// tick and must never be used to extend a vehicle's lifetime.
type Vehicle struct {
	ID     VehicleID
	Type   VehicleType
	Length float32
	Width  float32

	Lane          int
	SubLane       int
	TargetLane    int
	TargetSubLane int

	LaneChangeProgress float32
	LaneChangeDuration float32

	Pos       mgl32.Vec3
	Vel       mgl32.Vec3
	Speed     float32
	BaseSpeed float32
	Yaw       float32
	IsBraking bool

	FrontVehicle VehicleID

	Behavior Personality

	Age               float32
	sinceLaneChange   float32
	sinceSubLaneShift float32
	rng               *rand.Rand
}

// ExactLateral returns the lateral (x) coordinate of a lane/sub-lane slot.
// Lane 0 is leftmost; sub-lane 1 is the lane center.
func ExactLateral(lane, subLane int) float32 {
	laneCenter := (float32(lane) - 1) * game.LaneWidth
	subOffset := (float32(subLane) - 1) * game.SubLaneGap
	return laneCenter + subOffset
}

// changingLanes reports whether a lane or sub-lane maneuver is in progress.
func (v *Vehicle) changingLanes() bool {
	return v.TargetLane != v.Lane || v.TargetSubLane != v.SubLane
}
