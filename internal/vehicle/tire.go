package vehicle

import (
	"fmt"
	"math"
)

// Pacejka holds the magic-formula coefficients for the longitudinal
// friction curve: B (stiffness), C (shape), D (peak), E (curvature).
type Pacejka struct {
	Stiffness float64
	Shape     float64
	Peak      float64
	Curvature float64
}

// Tire holds the tire and wheel parameters. Immutable after construction.
type Tire struct {
	Radius  float64 // effective radius (m)
	Inertia float64 // wheel rotational inertia (kg*m^2)
	Coeff   Pacejka
}

func NewTire(radius, inertia float64, coeff Pacejka) (Tire, error) {
	if radius <= 0 {
		return Tire{}, fmt.Errorf("%w: tire radius must be positive, got %g", ErrInvalidSpec, radius)
	}
	if inertia <= 0 {
		return Tire{}, fmt.Errorf("%w: wheel inertia must be positive, got %g", ErrInvalidSpec, inertia)
	}
	return Tire{Radius: radius, Inertia: inertia, Coeff: coeff}, nil
}

// LongitudinalFriction evaluates the friction curve at the given slip
// ratio and returns the longitudinal force for the given normal load.
// The formula is defined for all real slip values and is odd in slip.
func (t Tire) LongitudinalFriction(slip, normalForce float64) float64 {
	bs := t.Coeff.Stiffness * slip
	mu := t.Coeff.Peak * math.Sin(t.Coeff.Shape*math.Atan(bs-t.Coeff.Curvature*(bs-math.Atan(bs))))
	return normalForce * mu
}
