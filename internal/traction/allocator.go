// Package traction determines, per wheel and per tick, the best
// achievable longitudinal force and the current it demands, with the
// battery burst current as a hard ceiling.
package traction

import (
	"fmt"
	"math"

	"github.com/san-kum/launchsim/internal/solver"
	"github.com/san-kum/launchsim/internal/vehicle"
)

// slipSamples sets the resolution of the peak-traction scan: 100 samples
// over [0,1) at 1% slip steps. The curve is not analytically invertible,
// and 1% resolution is enough for sizing work.
const slipSamples = 100

// Demand is the allocator's per-wheel result for one tick.
type Demand struct {
	Force   float64 // longitudinal force (N)
	Slip    float64
	Omega   float64 // wheel angular velocity (rad/s)
	Torque  float64 // driveline torque (N*m)
	Amps    float64 // motor current (A)
	Limited bool    // true when clamped to the battery burst current
}

type Allocator struct {
	tire    vehicle.Tire
	motor   vehicle.Motor
	battery vehicle.Battery
}

func NewAllocator(tire vehicle.Tire, motor vehicle.Motor, battery vehicle.Battery) *Allocator {
	return &Allocator{tire: tire, motor: motor, battery: battery}
}

// PeakTraction scans the friction curve and returns the slip ratio and
// force of the best sample for the given normal load. Ties go to the
// lowest slip, since the grid is scanned in increasing order.
func (a *Allocator) PeakTraction(normalForce float64) (slip, force float64) {
	for i := 0; i < slipSamples; i++ {
		s := float64(i) / slipSamples
		f := a.tire.LongitudinalFriction(s, normalForce)
		if i == 0 || f > force {
			slip, force = s, f
		}
	}
	return slip, force
}

// Allocate computes one wheel's demand for the current tick from the
// vehicle's forward speed, the wheel's normal load, and its angular
// velocity from the previous tick.
//
// The unconstrained branch works forward from the traction-optimal slip;
// the current-limited branch fixes the torque at the burst ceiling and
// solves the implicit torque balance for a consistent wheel speed.
func (a *Allocator) Allocate(xDot, normalForce, prevOmega float64) (Demand, error) {
	slip, force := a.PeakTraction(normalForce)
	omega := xDot / (a.tire.Radius * (1 - slip))
	torque := a.tire.Inertia*(omega-prevOmega) + a.tire.Radius*force
	amps := a.motor.Current(torque)

	if amps <= a.battery.Burst {
		return Demand{Force: force, Slip: slip, Omega: omega, Torque: torque, Amps: amps}, nil
	}

	amps = a.battery.Burst
	torque = a.motor.Torque(amps)
	res := a.residual(torque, xDot, normalForce, prevOmega)
	omega, err := solver.Solve(res, a.speedGuesses(res, xDot)...)
	if err != nil {
		return Demand{}, fmt.Errorf("current-limited wheel speed: %w", err)
	}
	slip = 1 - xDot/(a.tire.Radius*omega)
	force = a.tire.LongitudinalFriction(slip, normalForce)
	return Demand{Force: force, Slip: slip, Omega: omega, Torque: torque, Amps: amps, Limited: true}, nil
}

// residual is the torque balance for a candidate wheel speed w once the
// driveline torque is fixed: inertial loading plus tire reaction torque
// minus the applied torque. Speeds below free rolling mean negative slip,
// which a driven wheel cannot reach, so they are out of domain.
func (a *Allocator) residual(torque, xDot, normalForce, prevOmega float64) func(float64) float64 {
	return func(w float64) float64 {
		if a.tire.Radius*w < xDot {
			return math.NaN()
		}
		slip := 1 - xDot/(a.tire.Radius*w)
		return a.tire.Inertia*(w-prevOmega) + a.tire.Radius*a.tire.LongitudinalFriction(slip, normalForce) - torque
	}
}

// speedGuesses builds starting points for the wheel-speed solve. At low
// forward speeds the residual's root sits in a narrow band of wheel
// speeds, so a blind start can stall on the flat part of the friction
// curve. Rescanning the slip grid finds sign changes of the residual and
// seeds the solver inside each bracketing band, after the plain guess
// of 1 rad/s.
func (a *Allocator) speedGuesses(res func(float64) float64, xDot float64) []float64 {
	guesses := []float64{1}
	prevW := xDot / a.tire.Radius
	prevR := res(prevW)
	for i := 1; i < slipSamples; i++ {
		s := float64(i) / slipSamples
		w := xDot / (a.tire.Radius * (1 - s))
		r := res(w)
		if !math.IsNaN(prevR) && !math.IsNaN(r) && (prevR < 0) != (r < 0) {
			guesses = append(guesses, (prevW+w)/2)
		}
		prevW, prevR = w, r
	}
	return guesses
}
