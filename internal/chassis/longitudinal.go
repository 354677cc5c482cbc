// Package chassis integrates the vehicle's longitudinal motion and
// redistributes normal load between the axles.
package chassis

import "github.com/san-kum/launchsim/internal/vehicle"

const (
	// NumWheels is fixed: RF, LF, LR, RR.
	NumWheels = 4

	airDensity = 1.225 // kg/m^3
	gravity    = 9.81  // m/s^2
)

// Loads holds one value per wheel in RF, LF, LR, RR order.
type Loads [NumWheels]float64

// FrontAxle reports whether the wheel index belongs to the front pair.
func FrontAxle(i int) bool { return i <= 1 }

// Motion is the vehicle's longitudinal state.
type Motion struct {
	X     float64 // m
	XDot  float64 // m/s
	XDdot float64 // m/s^2
}

// StaticLoads splits the vehicle's load between the axles by cg position
// and each axle's share evenly across its two wheels.
func StaticLoads(v vehicle.Vehicle) Loads {
	front := v.Mass * v.B / v.Wheelbase / 2
	rear := v.Mass * v.A / v.Wheelbase / 2
	return Loads{front, front, rear, rear}
}

// Integrator combines the wheel forces with aerodynamic drag, advances
// the motion one step, and recomputes the normal loads. Loads are always
// rebuilt from the initial static split rather than the previous tick's
// loads, so the total is conserved exactly.
type Integrator struct {
	veh    vehicle.Vehicle
	dt     float64
	static Loads
}

func NewIntegrator(v vehicle.Vehicle, dt float64) *Integrator {
	return &Integrator{veh: v, dt: dt, static: StaticLoads(v)}
}

// Drag returns the aerodynamic drag force at the given forward speed.
func (g *Integrator) Drag(xDot float64) float64 {
	return g.veh.DragCoeff * airDensity * xDot * xDot * g.veh.FrontalArea / 2
}

// Step applies the four wheel forces and drag to the current motion.
// Forward Euler: the new velocity uses the new acceleration, the new
// position uses the new velocity. Weight transfer is quasi-static and
// shifts load from the front pair to the rear pair under acceleration.
func (g *Integrator) Step(m Motion, forces Loads) (Motion, Loads) {
	total := 0.0
	for _, f := range forces {
		total += f
	}

	xDdot := (total - g.Drag(m.XDot)) / g.veh.Mass
	xDot := m.XDot + xDdot*g.dt
	x := m.X + xDot*g.dt

	transfer := g.veh.CGHeight / g.veh.Wheelbase * g.veh.Mass * xDdot / gravity
	var loads Loads
	for i := range loads {
		if FrontAxle(i) {
			loads[i] = g.static[i] - transfer/2
		} else {
			loads[i] = g.static[i] + transfer/2
		}
	}

	return Motion{X: x, XDot: xDot, XDdot: xDdot}, loads
}
