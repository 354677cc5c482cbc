// Package solver finds roots of scalar residual functions. It exists for
// the current-limited wheel-speed solve, where the tire curve makes the
// torque balance implicit in the wheel speed and no closed form exists.
package solver

import (
	"errors"
	"math"
)

// ErrNoConvergence indicates the root search exhausted every starting
// guess and the bracketing fallback without satisfying the tolerance.
var ErrNoConvergence = errors.New("solver: convergence failure")

const (
	maxIter     = 60
	residualTol = 1e-10
	derivStep   = 1e-7
)

// Fallback starting points tried after the caller's guess. The wheel
// residual is steep just above w = xDot/r and nearly flat elsewhere, so
// the guesses span several decades.
var fallbackGuesses = []float64{1, 0.1, 0.01, 1e-3, 1e-4, 10, 100, 1e4}

// Solve finds a positive root of f, trying damped Newton iteration from
// the caller's guesses in order, then a set of fallback starting points,
// then a geometric bracket scan with bisection. Returns ErrNoConvergence
// if every attempt fails. The residual may return NaN outside its valid
// domain; such regions are skipped.
func Solve(f func(float64) float64, guesses ...float64) (float64, error) {
	tried := make(map[float64]bool, len(guesses)+len(fallbackGuesses))
	for _, g := range append(guesses, fallbackGuesses...) {
		if tried[g] {
			continue
		}
		tried[g] = true
		if root, ok := newton(f, g); ok {
			return root, nil
		}
	}
	if root, ok := bracketScan(f); ok {
		return root, nil
	}
	return 0, ErrNoConvergence
}

func newton(f func(float64) float64, x float64) (float64, bool) {
	if x <= 0 {
		return 0, false
	}
	fx := f(x)
	for i := 0; i < maxIter; i++ {
		if math.IsNaN(fx) || math.IsInf(fx, 0) {
			return 0, false
		}
		if math.Abs(fx) < residualTol {
			return x, true
		}
		h := derivStep * math.Max(1, math.Abs(x))
		d := (f(x+h) - f(x-h)) / (2 * h)
		if math.Abs(d) < 1e-300 {
			return 0, false
		}
		step := fx / d
		// Damp the step until it keeps the iterate positive and
		// reduces the residual.
		next := x - step
		fNext := f(next)
		halvings := 0
		for (next <= 0 || math.IsNaN(fNext) || math.Abs(fNext) >= math.Abs(fx)) && halvings < 40 {
			step /= 2
			next = x - step
			fNext = f(next)
			halvings++
		}
		if next <= 0 || math.Abs(fNext) >= math.Abs(fx) {
			return 0, false
		}
		x, fx = next, fNext
	}
	return 0, false
}

// bracketScan walks a geometric ladder of candidate speeds looking for a
// sign change, then bisects. Deterministic, so repeated runs with the
// same residual return the same root.
func bracketScan(f func(float64) float64) (float64, bool) {
	const (
		loBound = 1e-9
		hiBound = 1e9
		ratio   = 1.5
	)
	prev := loBound
	fPrev := f(prev)
	for x := loBound * ratio; x <= hiBound; x *= ratio {
		fx := f(x)
		if !math.IsNaN(fPrev) && !math.IsNaN(fx) && fPrev*fx <= 0 {
			return bisect(f, prev, x)
		}
		prev, fPrev = x, fx
	}
	return 0, false
}

func bisect(f func(float64) float64, lo, hi float64) (float64, bool) {
	fLo := f(lo)
	for i := 0; i < 200; i++ {
		mid := (lo + hi) / 2
		fMid := f(mid)
		if math.Abs(fMid) < residualTol || hi-lo < 1e-15*math.Max(1, math.Abs(mid)) {
			return mid, true
		}
		if fLo*fMid <= 0 {
			hi = mid
		} else {
			lo, fLo = mid, fMid
		}
	}
	mid := (lo + hi) / 2
	return mid, math.Abs(f(mid)) < residualTol*1e3
}
