// Package metrics provides run metrics for battery/motor sizing.
package metrics

import (
	"fmt"
	"math"

	"github.com/san-kum/launchsim/internal/sim"
)

// PeakCurrent tracks the highest single-wheel current seen in a run.
type PeakCurrent struct {
	peak float64
}

func NewPeakCurrent() *PeakCurrent { return &PeakCurrent{} }

func (p *PeakCurrent) Name() string { return "peak_amps" }

func (p *PeakCurrent) Observe(s sim.Snapshot) {
	for _, w := range s.Wheels {
		p.peak = math.Max(p.peak, w.Amps)
	}
}

func (p *PeakCurrent) Value() float64 { return p.peak }
func (p *PeakCurrent) Reset()         { p.peak = 0 }

// TopSpeed tracks the highest forward speed seen in a run.
type TopSpeed struct {
	top float64
}

func NewTopSpeed() *TopSpeed { return &TopSpeed{} }

func (t *TopSpeed) Name() string { return "top_speed" }

func (t *TopSpeed) Observe(s sim.Snapshot) {
	t.top = math.Max(t.top, s.XDot)
}

func (t *TopSpeed) Value() float64 { return t.top }
func (t *TopSpeed) Reset()         { t.top = 0 }

// TimeToDistance records the time of the first snapshot at or beyond the
// target distance. Value is +Inf if the run never got there, so sweep
// objectives naturally reject configurations that fall short.
type TimeToDistance struct {
	target  float64
	reached bool
	at      float64
}

func NewTimeToDistance(target float64) *TimeToDistance {
	return &TimeToDistance{target: target}
}

func (t *TimeToDistance) Name() string { return fmt.Sprintf("time_to_%gm", t.target) }

func (t *TimeToDistance) Observe(s sim.Snapshot) {
	if !t.reached && s.X >= t.target {
		t.reached = true
		t.at = s.Time
	}
}

func (t *TimeToDistance) Value() float64 {
	if !t.reached {
		return math.Inf(1)
	}
	return t.at
}

func (t *TimeToDistance) Reset() {
	t.reached = false
	t.at = 0
}

// EnergyDrawn integrates pack electrical power over the run using the
// time deltas between snapshots.
type EnergyDrawn struct {
	voltage  float64
	lastTime float64
	seen     bool
	joules   float64
}

func NewEnergyDrawn(voltage float64) *EnergyDrawn {
	return &EnergyDrawn{voltage: voltage}
}

func (e *EnergyDrawn) Name() string { return "energy_j" }

func (e *EnergyDrawn) Observe(s sim.Snapshot) {
	if e.seen {
		e.joules += s.TotalAmps() * e.voltage * (s.Time - e.lastTime)
	}
	e.lastTime = s.Time
	e.seen = true
}

func (e *EnergyDrawn) Value() float64 { return e.joules }

func (e *EnergyDrawn) Reset() {
	e.lastTime = 0
	e.seen = false
	e.joules = 0
}
