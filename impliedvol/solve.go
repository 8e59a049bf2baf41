// Package impliedvol inverts a pricing function for the volatility that
// reproduces an observed market price. It brackets the volatility, runs
// bisection when the bracket straddles the root, and falls back to a
// secant iteration otherwise.
package impliedvol

import (
	"errors"
	"fmt"
	"math"

	"github.com/meenmo/optlib/utils"
)

// ErrNoConvergence is returned when neither bisection nor the secant
// fallback reaches the requested tolerance within the iteration budget.
// No best-effort estimate is returned in that case: an unconverged
// volatility is worse than an explicit failure.
var ErrNoConvergence = errors.New("impliedvol: root finding did not converge")

// PriceFunc prices the instrument at a candidate volatility. Every other
// input is fixed by the caller's closure.
type PriceFunc func(sigma float64) (float64, error)

// Config holds bracketing and convergence parameters.
type Config struct {
	// Lower and Upper bound the volatility bracket.
	Lower, Upper float64
	// Tolerance is the absolute price-residual tolerance.
	Tolerance float64
	// MaxIterations caps each strategy (bisection, then secant).
	MaxIterations int
	// InitialGuess seeds the secant fallback.
	InitialGuess float64
}

// DefaultConfig provides production-ready default values.
var DefaultConfig = Config{
	Lower:         1e-9,
	Upper:         5.0,
	Tolerance:     1e-7,
	MaxIterations: 100,
	InitialGuess:  0.2,
}

// Result reports a converged implied volatility.
type Result struct {
	// Vol is the volatility reproducing the target price.
	Vol float64
	// Iterations is the number of root-finding steps taken.
	Iterations int
	// Method is "bisection" or "secant".
	Method string
}

// Solve finds sigma such that price(sigma) matches target.
//
// The bracketing residual is evaluated at cfg.Lower and cfg.Upper; if it
// changes sign, bisection runs to tolerance. Otherwise a secant iteration
// starts from cfg.InitialGuess. Exhausting both strategies returns a
// wrapped ErrNoConvergence. A target outside the model's attainable range
// surfaces that way rather than as a silently wrong number.
func Solve(price PriceFunc, target float64, cfg Config) (Result, error) {
	if !(target > 0) {
		return Result{}, fmt.Errorf("Solve: target price must be positive, got %v", target)
	}
	if price == nil {
		return Result{}, fmt.Errorf("Solve: price function is required")
	}
	if !(cfg.Upper > cfg.Lower) {
		return Result{}, fmt.Errorf("Solve: invalid bracket [%v, %v]", cfg.Lower, cfg.Upper)
	}
	if cfg.MaxIterations < 1 {
		return Result{}, fmt.Errorf("Solve: MaxIterations must be positive, got %d", cfg.MaxIterations)
	}

	residual := func(sigma float64) (float64, error) {
		p, err := price(sigma)
		if err != nil {
			return 0, err
		}
		return p - target, nil
	}

	fl, err := residual(cfg.Lower)
	if err != nil {
		return Result{}, err
	}
	fu, err := residual(cfg.Upper)
	if err != nil {
		return Result{}, err
	}

	if fl*fu <= 0 {
		return bisect(residual, cfg, fl)
	}
	return secant(residual, cfg)
}

func bisect(residual func(float64) (float64, error), cfg Config, fl float64) (Result, error) {
	low, high := cfg.Lower, cfg.Upper
	for iter := 1; iter <= cfg.MaxIterations; iter++ {
		mid := 0.5 * (low + high)
		fm, err := residual(mid)
		if err != nil {
			return Result{}, err
		}
		if math.Abs(fm) < cfg.Tolerance {
			return Result{Vol: mid, Iterations: iter, Method: "bisection"}, nil
		}
		if fl*fm < 0 {
			high = mid
		} else {
			low = mid
			fl = fm
		}
	}
	return Result{}, fmt.Errorf("Solve: %w: bisection exhausted %d iterations on [%v, %v]",
		ErrNoConvergence, cfg.MaxIterations, cfg.Lower, cfg.Upper)
}

func secant(residual func(float64) (float64, error), cfg Config) (Result, error) {
	// Iterates stay clamped to the bracket so the pricer never sees a
	// volatility outside its domain.
	x0 := utils.Clamp(cfg.InitialGuess, cfg.Lower, cfg.Upper)
	x1 := utils.Clamp(cfg.InitialGuess+0.1, cfg.Lower, cfg.Upper)
	f0, err := residual(x0)
	if err != nil {
		return Result{}, err
	}

	for iter := 1; iter <= cfg.MaxIterations; iter++ {
		f1, err := residual(x1)
		if err != nil {
			return Result{}, err
		}
		if math.Abs(f1) < cfg.Tolerance {
			return Result{Vol: x1, Iterations: iter, Method: "secant"}, nil
		}
		denom := f1 - f0
		if math.Abs(denom) < 1e-14 {
			// Flat residual: the target is likely outside the attainable range.
			break
		}
		x0, x1 = x1, utils.Clamp(x1-f1*(x1-x0)/denom, cfg.Lower, cfg.Upper)
		f0 = f1
	}
	return Result{}, fmt.Errorf("Solve: %w: secant fallback from %v failed",
		ErrNoConvergence, cfg.InitialGuess)
}
