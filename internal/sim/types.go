package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/launchsim/internal/chassis"
)

// Wheel indices in snapshot order.
const (
	RightFront = iota
	LeftFront
	LeftRear
	RightRear
)

// wheelLabels is used for output column names, same order as the indices.
var wheelLabels = [chassis.NumWheels]string{"rf", "lf", "lr", "rr"}

// launchSpeed is the initial forward speed. It is a small positive value
// rather than zero so the slip-ratio computation never divides by zero.
const launchSpeed = 1e-4

// WheelState is one wheel's state after a tick.
type WheelState struct {
	Fz    float64 // normal load
	Force float64 // longitudinal force (N)
	Slip  float64
	Omega float64 // angular velocity (rad/s)
	Amps  float64 // motor current (A)
}

// VehicleState is the longitudinal state after a tick.
type VehicleState struct {
	X     float64 // m
	XDot  float64 // m/s
	XDdot float64 // m/s^2
	Time  float64 // s
}

// Snapshot is one tick's full state. The driver appends one per tick to
// the run's output log; snapshots are never edited once appended.
type Snapshot struct {
	VehicleState
	Wheels [chassis.NumWheels]WheelState
}

// finite reports whether every field is a normal float.
func (s Snapshot) finite() bool {
	vals := []float64{s.X, s.XDot, s.XDdot, s.Time}
	for _, w := range s.Wheels {
		vals = append(vals, w.Fz, w.Force, w.Slip, w.Omega, w.Amps)
	}
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// TotalLoad is the sum of the four normal loads; conserved across ticks.
func (s Snapshot) TotalLoad() float64 {
	total := 0.0
	for _, w := range s.Wheels {
		total += w.Fz
	}
	return total
}

// TotalAmps is the whole-pack current draw.
func (s Snapshot) TotalAmps() float64 {
	total := 0.0
	for _, w := range s.Wheels {
		total += w.Amps
	}
	return total
}

// Columns names the output channels in row order.
func Columns() []string {
	cols := []string{"time_s", "x_m", "x_dot_mps", "x_ddot_mps2"}
	for _, group := range []string{"amps", "fz", "fx", "slip", "omega"} {
		for _, label := range wheelLabels {
			cols = append(cols, group+"_"+label)
		}
	}
	return cols
}

// Row flattens the snapshot in the order given by Columns.
func (s Snapshot) Row() []float64 {
	row := []float64{s.Time, s.X, s.XDot, s.XDdot}
	for _, get := range []func(WheelState) float64{
		func(w WheelState) float64 { return w.Amps },
		func(w WheelState) float64 { return w.Fz },
		func(w WheelState) float64 { return w.Force },
		func(w WheelState) float64 { return w.Slip },
		func(w WheelState) float64 { return w.Omega },
	} {
		for _, w := range s.Wheels {
			row = append(row, get(w))
		}
	}
	return row
}

// Config sets the tick size and total simulated time.
type Config struct {
	Dt      float64
	Runtime float64
}

func (c Config) validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %g", c.Dt)
	}
	if c.Runtime <= 0 {
		return fmt.Errorf("runtime must be positive, got %g", c.Runtime)
	}
	return nil
}

// Result is a completed run: the append-only snapshot log plus any
// metric values.
type Result struct {
	Snapshots []Snapshot
	Metrics   map[string]float64
	Ticks     int
}

// Metric accumulates a scalar over a run.
type Metric interface {
	Name() string
	Observe(s Snapshot)
	Value() float64
	Reset()
}

// Observer is notified after each committed tick.
type Observer interface {
	OnTick(s Snapshot)
}
