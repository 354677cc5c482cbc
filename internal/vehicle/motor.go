package vehicle

import "fmt"

// rpmPerVoltToRadPerSec converts a Kv rating in RPM/V to rad/s per volt;
// the torque constant is its reciprocal.
const rpmPerVoltToRadPerSec = 0.10472

// Motor holds the motor and driveline parameters. Kt is derived from Kv
// at construction. Immutable after construction.
type Motor struct {
	Kv         float64 // speed constant (RPM/V)
	Kt         float64 // torque constant (N*m/A), 1/(Kv*0.10472)
	Efficiency float64 // driveline efficiency, in (0,1]
}

func NewMotor(kv, efficiency float64) (Motor, error) {
	if kv <= 0 {
		return Motor{}, fmt.Errorf("%w: Kv must be positive, got %g", ErrInvalidSpec, kv)
	}
	if efficiency <= 0 || efficiency > 1 {
		return Motor{}, fmt.Errorf("%w: efficiency must be in (0,1], got %g", ErrInvalidSpec, efficiency)
	}
	return Motor{
		Kv:         kv,
		Kt:         1 / (kv * rpmPerVoltToRadPerSec),
		Efficiency: efficiency,
	}, nil
}

// Current returns the current one wheel draws to deliver the given
// driveline torque.
func (m Motor) Current(torque float64) float64 {
	return torque / m.Kt / m.Efficiency
}

// Torque is the reverse mapping, used when clamping to a current limit.
func (m Motor) Torque(current float64) float64 {
	return current * m.Kt * m.Efficiency
}
