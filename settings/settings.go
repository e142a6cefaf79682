package settings

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
)

// Settings contains every tunable exposed by the simulation core. Values not
// present in a loaded file keep their defaults.
type Settings struct {
	Input struct {
		Keyboard InputProfile
		Mobile   InputProfile
	}
	Dynamics struct {
		Mass              float32
		FrontWheelRadius  float32
		RearWheelRadius   float32
		FrontWheelInertia float32
		RearWheelInertia  float32

		IdleRPM    float32
		MaxRPM     float32
		GearRatios []float32
		FinalDrive float32

		DragFactor      float32
		DownforceFactor float32
	}
	Traffic struct {
		MaxVehicles     int
		RemovalDistance float32
		MaxAge          float32
		MinNearby       int
		NearbyWindow    float32
		SpawnChance     float32
		AheadFraction   float32

		ReplicaBlend float32
	}
}

// InputProfile is the per-source conditioning tuning, re-derived whenever the
// input source switches between keyboard and touch.
type InputProfile struct {
	DeadZoneLean     float32
	DeadZoneSteer    float32
	DeadZoneThrottle float32
	DeadZoneBrake    float32

	HistorySize int

	// AwayRate limits how fast lean/steer may move away from center, in
	// units per second. ReturnRate applies when moving back toward zero.
	AwayRate   float32
	ReturnRate float32

	LeanSmoothing     float32
	SteerSmoothing    float32
	ThrottleSmoothing float32
	BrakeSmoothing    float32

	// DirectSteering bypasses the median filter and smoothing for lean and
	// steer. Touch input is already continuous, so it trades jitter for
	// zero added latency.
	DirectSteering bool
}

func DefaultSettings() Settings {
	s := Settings{}

	s.Input.Keyboard = InputProfile{
		DeadZoneLean:      0.05,
		DeadZoneSteer:     0.05,
		DeadZoneThrottle:  0.02,
		DeadZoneBrake:     0.02,
		HistorySize:       5,
		AwayRate:          3.0,
		ReturnRate:        6.0,
		LeanSmoothing:     8.0,
		SteerSmoothing:    10.0,
		ThrottleSmoothing: 5.0,
		BrakeSmoothing:    12.0,
		DirectSteering:    false,
	}
	s.Input.Mobile = InputProfile{
		DeadZoneLean:      0.08,
		DeadZoneSteer:     0.08,
		DeadZoneThrottle:  0.03,
		DeadZoneBrake:     0.03,
		HistorySize:       3,
		AwayRate:          5.0,
		ReturnRate:        9.0,
		LeanSmoothing:     8.0,
		SteerSmoothing:    10.0,
		ThrottleSmoothing: 5.0,
		BrakeSmoothing:    12.0,
		DirectSteering:    true,
	}

	s.Dynamics.Mass = 220
	s.Dynamics.FrontWheelRadius = 0.31
	s.Dynamics.RearWheelRadius = 0.33
	s.Dynamics.FrontWheelInertia = 0.55
	s.Dynamics.RearWheelInertia = 0.82
	s.Dynamics.IdleRPM = 1200
	s.Dynamics.MaxRPM = 13500
	s.Dynamics.GearRatios = []float32{2.9, 2.15, 1.7, 1.41, 1.22, 1.06}
	s.Dynamics.FinalDrive = 3.0
	s.Dynamics.DragFactor = 0.34
	s.Dynamics.DownforceFactor = 0.06

	s.Traffic.MaxVehicles = 30
	s.Traffic.RemovalDistance = 400
	s.Traffic.MaxAge = 120
	s.Traffic.MinNearby = 6
	s.Traffic.NearbyWindow = 150
	s.Traffic.SpawnChance = 0.03
	s.Traffic.AheadFraction = 0.7
	s.Traffic.ReplicaBlend = 0.15

	return s
}

// SaveDefault writes the default settings to path in TOML form.
func SaveDefault(path string) error {
	data, err := toml.Marshal(DefaultSettings())
	if err != nil {
		return fmt.Errorf("error encoding default settings: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing default settings: %v", err)
	}
	return nil
}

// Load reads settings from the TOML file at path, layered over the defaults.
func Load(path string) (Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Settings{}, errors.New("settings file doesn't exist")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("error reading settings: %v", err)
	}

	settings := DefaultSettings()
	if err = toml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("error decoding settings: %v", err)
	}
	return settings, nil
}
