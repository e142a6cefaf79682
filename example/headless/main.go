package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/apex-arcade/ridecore"
	"github.com/apex-arcade/ridecore/game"
	"github.com/apex-arcade/ridecore/input"
	"github.com/apex-arcade/ridecore/settings"
)

// Headless run of the simulation core: a scripted rider accelerates, weaves
// through traffic and brakes, with telemetry logged once a second. Useful
// for eyeballing tuning changes without a frontend.
func main() {
	log := logrus.New()
	log.SetLevel(logrus.DebugLevel)

	const configPath = "ridecore.toml"
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := settings.SaveDefault(configPath); err != nil {
			log.Fatalf("write default config: %v", err)
		}
	}
	cfg, err := settings.Load(configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	sim := ridecore.New(ridecore.Options{Settings: &cfg, Log: log, Seed: 1})
	sim.Debugger().SetEnabled(game.DebugModeTraffic, true)

	const dt = float32(1.0 / 60.0)
	for tick := 0; tick < 60*60; tick++ {
		t := float32(tick) * dt
		scriptInput(sim, t)
		if tick > 0 && tick%300 == 0 && sim.Gear() < 6 {
			sim.ShiftUp()
		}

		snap := sim.Step(dt)
		if id, hit := sim.CheckCollision(snap.Pos, 0.6); hit {
			log.Warnf("t=%.1fs collided with vehicle %d", t, id)
			sim.ResetBike()
		}

		if tick%60 == 0 {
			log.Infof("t=%.0fs speed=%.1fmph gear=%d rpm=%.0f lean=%.1fdeg traffic=%d",
				t, snap.Speed*game.MPHPerMS, snap.Gear, snap.RPM, snap.Lean,
				len(sim.TrafficSnapshots()))
		}
	}
}

func scriptInput(sim *ridecore.Simulation, t float32) {
	switch {
	case t < 20:
		sim.SetRawInput(input.ChannelThrottle, 1)
		sim.SetRawInput(input.ChannelLean, 0)
		sim.SetRawInput(input.ChannelFrontBrake, 0)
	case t < 40:
		// Weave between sub-lanes.
		lean := float32(1)
		if int(t/4)%2 == 0 {
			lean = -1
		}
		sim.SetRawInput(input.ChannelThrottle, 0.6)
		sim.SetRawInput(input.ChannelLean, lean)
	default:
		sim.SetRawInput(input.ChannelThrottle, 0)
		sim.SetRawInput(input.ChannelLean, 0)
		sim.SetRawInput(input.ChannelFrontBrake, 1)
	}
}
