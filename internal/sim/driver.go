// Package sim owns the time-stepped simulation state and the run loop.
package sim

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/launchsim/internal/chassis"
	"github.com/san-kum/launchsim/internal/traction"
	"github.com/san-kum/launchsim/internal/vehicle"
)

// Driver orchestrates one run: each tick it allocates traction per
// wheel, integrates the longitudinal motion, commits the new state, and
// appends a snapshot to the output log. Single writer, strictly
// sequential ticks.
type Driver struct {
	veh   vehicle.Vehicle
	alloc *traction.Allocator

	metrics   []Metric
	observers []Observer
	log       *logrus.Logger
}

func NewDriver(veh vehicle.Vehicle, mot vehicle.Motor, bat vehicle.Battery, tire vehicle.Tire) *Driver {
	return &Driver{
		veh:   veh,
		alloc: traction.NewAllocator(tire, mot, bat),
		log:   logrus.StandardLogger(),
	}
}

func (d *Driver) AddMetric(m Metric)     { d.metrics = append(d.metrics, m) }
func (d *Driver) AddObserver(o Observer) { d.observers = append(d.observers, o) }

// SetLogger replaces the default logger.
func (d *Driver) SetLogger(log *logrus.Logger) { d.log = log }

func (d *Driver) initialSnapshot() Snapshot {
	snap := Snapshot{VehicleState: VehicleState{XDot: launchSpeed}}
	static := chassis.StaticLoads(d.veh)
	for i := range snap.Wheels {
		snap.Wheels[i].Fz = static[i]
	}
	return snap
}

// Run executes floor(runtime/dt) ticks and returns the snapshot log.
// On a solver or degenerate-state failure the partial result is returned
// alongside a TickError; the simulation cannot continue past a tick it
// could not make physically consistent.
func (d *Driver) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	ticks := int(cfg.Runtime / cfg.Dt)
	integ := chassis.NewIntegrator(d.veh, cfg.Dt)

	result := &Result{
		Snapshots: make([]Snapshot, 0, ticks+1),
		Metrics:   make(map[string]float64),
	}

	for _, m := range d.metrics {
		m.Reset()
	}

	snap := d.initialSnapshot()
	d.commit(result, snap)

	d.log.WithFields(logrus.Fields{
		"dt":      cfg.Dt,
		"runtime": cfg.Runtime,
		"ticks":   ticks,
	}).Debug("run start")

	limited := false
	for i := 0; i < ticks; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		var forces chassis.Loads
		var demands [chassis.NumWheels]traction.Demand
		tickLimited := false
		for w := range snap.Wheels {
			dem, err := d.alloc.Allocate(snap.XDot, snap.Wheels[w].Fz, snap.Wheels[w].Omega)
			if err != nil {
				return result, &TickError{Tick: i, Time: snap.Time, Err: err}
			}
			demands[w] = dem
			forces[w] = dem.Force
			tickLimited = tickLimited || dem.Limited
		}
		if tickLimited != limited {
			d.log.WithFields(logrus.Fields{"tick": i, "limited": tickLimited}).
				Debug("current limit transition")
			limited = tickLimited
		}

		motion := chassis.Motion{X: snap.X, XDot: snap.XDot, XDdot: snap.XDdot}
		motion, loads := integ.Step(motion, forces)

		next := Snapshot{
			VehicleState: VehicleState{X: motion.X, XDot: motion.XDot, XDdot: motion.XDdot, Time: snap.Time + cfg.Dt},
		}
		for w := range next.Wheels {
			next.Wheels[w] = WheelState{
				Fz:    loads[w],
				Force: demands[w].Force,
				Slip:  demands[w].Slip,
				Omega: demands[w].Omega,
				Amps:  demands[w].Amps,
			}
		}

		if !next.finite() {
			return result, &TickError{Tick: i, Time: snap.Time, Err: ErrDegenerateState}
		}

		snap = next
		d.commit(result, snap)
		result.Ticks++
	}

	for _, m := range d.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	d.log.WithFields(logrus.Fields{
		"ticks":     result.Ticks,
		"top_speed": snap.XDot,
		"distance":  snap.X,
	}).Debug("run done")

	return result, nil
}

func (d *Driver) commit(result *Result, snap Snapshot) {
	result.Snapshots = append(result.Snapshots, snap)
	for _, m := range d.metrics {
		m.Observe(snap)
	}
	for _, o := range d.observers {
		o.OnTick(snap)
	}
}
