package vehicle

import "fmt"

// Vehicle holds the chassis parameters for the straight-line model.
// A and B are the distances from the cg to the front and rear axles,
// Wheelbase is their sum. Immutable after construction.
type Vehicle struct {
	A           float64 // cg to front axle (m)
	B           float64 // cg to rear axle (m)
	Mass        float64 // kg
	CGHeight    float64 // m
	Wheelbase   float64 // m, A+B
	DragCoeff   float64
	FrontalArea float64 // m^2
}

func NewVehicle(a, b, mass, cgHeight, dragCoeff, frontalArea float64) (Vehicle, error) {
	if a <= 0 || b <= 0 {
		return Vehicle{}, fmt.Errorf("%w: axle distances must be positive, got a=%g b=%g", ErrInvalidSpec, a, b)
	}
	if mass <= 0 {
		return Vehicle{}, fmt.Errorf("%w: mass must be positive, got %g", ErrInvalidSpec, mass)
	}
	if cgHeight <= 0 {
		return Vehicle{}, fmt.Errorf("%w: cg height must be positive, got %g", ErrInvalidSpec, cgHeight)
	}
	if dragCoeff < 0 {
		return Vehicle{}, fmt.Errorf("%w: drag coefficient must be non-negative, got %g", ErrInvalidSpec, dragCoeff)
	}
	if frontalArea <= 0 {
		return Vehicle{}, fmt.Errorf("%w: frontal area must be positive, got %g", ErrInvalidSpec, frontalArea)
	}
	return Vehicle{
		A:           a,
		B:           b,
		Mass:        mass,
		CGHeight:    cgHeight,
		Wheelbase:   a + b,
		DragCoeff:   dragCoeff,
		FrontalArea: frontalArea,
	}, nil
}
