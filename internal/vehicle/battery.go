package vehicle

import "fmt"

// burstFactor sits below the 2x fuse rating on purpose: the packs are
// fused at twice the continuous current.
const burstFactor = 1.95

// Battery holds the pack parameters. Continuous and Burst are derived at
// construction. Immutable after construction.
type Battery struct {
	CapacityAh float64 // pack capacity (Ah)
	CRate      float64 // continuous discharge multiplier (C)
	Voltage    float64 // nominal voltage (V)
	BurstTime  float64 // rated time at burst current (s)
	Continuous float64 // continuous current (A), CRate*CapacityAh
	Burst      float64 // burst current ceiling (A)
}

func NewBattery(capacityAh, cRate, voltage, burstTime float64) (Battery, error) {
	if capacityAh <= 0 {
		return Battery{}, fmt.Errorf("%w: capacity must be positive, got %g", ErrInvalidSpec, capacityAh)
	}
	if cRate <= 0 {
		return Battery{}, fmt.Errorf("%w: C rate must be positive, got %g", ErrInvalidSpec, cRate)
	}
	if voltage <= 0 {
		return Battery{}, fmt.Errorf("%w: voltage must be positive, got %g", ErrInvalidSpec, voltage)
	}
	if burstTime < 0 {
		return Battery{}, fmt.Errorf("%w: burst time must be non-negative, got %g", ErrInvalidSpec, burstTime)
	}
	continuous := cRate * capacityAh
	return Battery{
		CapacityAh: capacityAh,
		CRate:      cRate,
		Voltage:    voltage,
		BurstTime:  burstTime,
		Continuous: continuous,
		Burst:      continuous * burstFactor,
	}, nil
}
