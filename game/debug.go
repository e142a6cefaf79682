package game

import "github.com/sirupsen/logrus"

const (
	DebugModeInput = iota
	DebugModeDynamics
	DebugModeTraffic

	debugModeCount
)

// Debugger gates per-subsystem debug notifications. Formatting only happens
// when the mode is enabled, so Notify is safe to call from the tick path.
type Debugger struct {
	log     *logrus.Logger
	enabled [debugModeCount]bool
}

func NewDebugger(log *logrus.Logger) *Debugger {
	return &Debugger{log: log}
}

func (d *Debugger) SetEnabled(mode int, enabled bool) {
	if d == nil || mode < 0 || mode >= debugModeCount {
		return
	}
	d.enabled[mode] = enabled
}

func (d *Debugger) Notify(mode int, cond bool, format string, args ...interface{}) {
	if d == nil || d.log == nil || !cond {
		return
	}
	if mode < 0 || mode >= debugModeCount || !d.enabled[mode] {
		return
	}
	d.log.Debugf(format, args...)
}
