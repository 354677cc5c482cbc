// Package optim sweeps candidate motor/battery pairings and picks the
// one that best meets a launch objective, which is the sizing question
// this model exists to answer.
package optim

import (
	"context"
	"errors"
	"math"

	"github.com/san-kum/launchsim/internal/config"
	"github.com/san-kum/launchsim/internal/metrics"
	"github.com/san-kum/launchsim/internal/sim"
)

// ErrNoFeasible indicates every grid point either failed to run or
// violated the current bound.
var ErrNoFeasible = errors.New("optim: no feasible candidate")

// Candidate is one grid point: a motor speed constant paired with a
// battery discharge rating.
type Candidate struct {
	Kv    float64
	CRate float64
}

// Outcome holds a candidate's run metrics, or the error that stopped it.
type Outcome struct {
	Candidate Candidate
	Metrics   map[string]float64
	Err       error
}

// Sweep runs the base configuration across a Kv x CRate grid.
type Sweep struct {
	Base      config.Config
	Kvs       []float64
	CRates    []float64
	Objective string  // metric name to minimize
	Distance  float64 // target distance for the time-to-distance metric
	MaxAmps   float64 // peak single-wheel current bound, 0 = unbounded
}

// Run evaluates every grid point in order and returns the feasible
// outcome with the lowest objective value, plus all outcomes for
// reporting. Grid order is deterministic, so ties go to the earlier
// point.
func (s *Sweep) Run(ctx context.Context) (*Outcome, []Outcome, error) {
	best := math.Inf(1)
	var bestOutcome *Outcome
	all := make([]Outcome, 0, len(s.Kvs)*len(s.CRates))

	for _, kv := range s.Kvs {
		for _, cRate := range s.CRates {
			outcome := s.evaluate(ctx, Candidate{Kv: kv, CRate: cRate})
			all = append(all, outcome)
			if outcome.Err != nil {
				continue
			}
			if s.MaxAmps > 0 && outcome.Metrics["peak_amps"] > s.MaxAmps {
				continue
			}
			if val := outcome.Metrics[s.Objective]; val < best {
				best = val
				copied := outcome
				bestOutcome = &copied
			}
		}
	}

	if bestOutcome == nil {
		return nil, all, ErrNoFeasible
	}
	return bestOutcome, all, nil
}

func (s *Sweep) evaluate(ctx context.Context, cand Candidate) Outcome {
	cfg := s.Base
	cfg.Motor.Kv = cand.Kv
	cfg.Battery.CRate = cand.CRate

	veh, mot, bat, tire, err := cfg.Specs()
	if err != nil {
		return Outcome{Candidate: cand, Err: err}
	}

	driver := sim.NewDriver(veh, mot, bat, tire)
	driver.AddMetric(metrics.NewPeakCurrent())
	driver.AddMetric(metrics.NewTopSpeed())
	driver.AddMetric(metrics.NewTimeToDistance(s.Distance))
	driver.AddMetric(metrics.NewEnergyDrawn(bat.Voltage))

	result, err := driver.Run(ctx, sim.Config{Dt: cfg.Dt, Runtime: cfg.Runtime})
	if err != nil {
		return Outcome{Candidate: cand, Err: err}
	}
	return Outcome{Candidate: cand, Metrics: result.Metrics}
}
