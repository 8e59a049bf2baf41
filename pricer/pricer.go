// Package pricer exposes a single pricing engine over the library's
// techniques: closed form, finite-difference PDE, binomial lattice and
// Monte Carlo. The engine assembles the flat parameter set from the
// contract, underlying and market environment, prices it with the selected
// technique, and layers the finite-difference Greek and implied-volatility
// machinery on top.
package pricer

import (
	"fmt"

	"github.com/meenmo/optlib/greeks"
	"github.com/meenmo/optlib/impliedvol"
	"github.com/meenmo/optlib/lattice"
	"github.com/meenmo/optlib/market"
	"github.com/meenmo/optlib/montecarlo"
	"github.com/meenmo/optlib/option"
	"github.com/meenmo/optlib/pde"

	"github.com/meenmo/optlib/closedform"
)

// TechniqueKind selects the pricing technique of an Engine.
type TechniqueKind string

const (
	TechniqueClosedForm TechniqueKind = "closed-form"
	TechniquePDE        TechniqueKind = "pde"
	TechniqueLattice    TechniqueKind = "lattice"
	TechniqueMonteCarlo TechniqueKind = "monte-carlo"
)

// Config assembles an Engine.
type Config struct {
	// Technique picks the pricing backend. Empty defaults to closed-form.
	Technique TechniqueKind

	// PDE configures the finite-difference grid when Technique is pde.
	// Required for that technique: SMax depends on the contracts being
	// priced and cannot be defaulted safely.
	PDE pde.Config

	// LatticeSteps is the binomial step count when Technique is lattice.
	// Zero defaults to 512.
	LatticeSteps int

	// MonteCarloPaths is the path count when Technique is monte-carlo.
	// Zero defaults to 65536. Seed fixes the random stream.
	MonteCarloPaths int
	Seed            uint64

	// Parallel evaluates the perturbed scenarios of each Greek
	// concurrently.
	Parallel bool

	// CacheResults memoizes prices across Greek calls on this engine.
	// CacheSize bounds the cache; zero selects the package default.
	CacheResults bool
	CacheSize    int
}

// Engine prices contracts and their sensitivities with one technique.
// An Engine is safe for concurrent use.
type Engine struct {
	kind TechniqueKind
	fn   greeks.PriceFunc
	diff *greeks.Differentiator
}

// New builds an Engine from cfg.
func New(cfg Config) (*Engine, error) {
	if cfg.Technique == "" {
		cfg.Technique = TechniqueClosedForm
	}

	var fn greeks.PriceFunc
	switch cfg.Technique {
	case TechniqueClosedForm:
		fn = closedform.Price
	case TechniquePDE:
		solver, err := pde.NewSolver(cfg.PDE)
		if err != nil {
			return nil, fmt.Errorf("pricer: %w", err)
		}
		fn = solver.Price
	case TechniqueLattice:
		steps := cfg.LatticeSteps
		if steps == 0 {
			steps = 512
		}
		fn = func(p option.Params) (float64, error) {
			return lattice.Price(p, steps)
		}
	case TechniqueMonteCarlo:
		paths := cfg.MonteCarloPaths
		if paths == 0 {
			paths = 65536
		}
		seed := cfg.Seed
		fn = func(p option.Params) (float64, error) {
			res, err := montecarlo.Price(p, paths, seed)
			if err != nil {
				return 0, err
			}
			return res.Price, nil
		}
	default:
		return nil, fmt.Errorf("pricer: unknown technique %q", cfg.Technique)
	}

	cacheSize := cfg.CacheSize
	if !cfg.CacheResults {
		cacheSize = -1
	}
	return &Engine{
		kind: cfg.Technique,
		fn:   fn,
		diff: greeks.New(fn, greeks.Config{Parallel: cfg.Parallel, CacheSize: cacheSize}),
	}, nil
}

// Technique returns the engine's pricing backend kind.
func (e *Engine) Technique() TechniqueKind {
	return e.kind
}

// Params assembles the flat parameter set the techniques consume from the
// contract, underlying and market environment collaborators.
func Params(o option.Option, u market.Underlying, env market.Environment) (option.Params, error) {
	if err := o.Validate(); err != nil {
		return option.Params{}, err
	}
	if err := u.Validate(); err != nil {
		return option.Params{}, err
	}
	return option.Params{
		Spot:     u.Spot,
		Strike:   o.Strike,
		Maturity: o.Maturity,
		Rate:     env.Rate,
		Dividend: u.Dividend,
		Sigma:    u.Volatility,
		Type:     o.Type,
		Style:    o.NormalizedStyle(),
	}, nil
}

// Price values the contract.
func (e *Engine) Price(o option.Option, u market.Underlying, env market.Environment) (float64, error) {
	p, err := Params(o, u, env)
	if err != nil {
		return 0, err
	}
	return e.fn(p)
}

// PriceParams values an already-assembled parameter set.
func (e *Engine) PriceParams(p option.Params) (float64, error) {
	return e.fn(p)
}

// Delta is the sensitivity of price to spot.
func (e *Engine) Delta(o option.Option, u market.Underlying, env market.Environment) (float64, error) {
	p, err := Params(o, u, env)
	if err != nil {
		return 0, err
	}
	return e.diff.Delta(p)
}

// Gamma is the second-order sensitivity of price to spot.
func (e *Engine) Gamma(o option.Option, u market.Underlying, env market.Environment) (float64, error) {
	p, err := Params(o, u, env)
	if err != nil {
		return 0, err
	}
	return e.diff.Gamma(p)
}

// Vega is the sensitivity of price to volatility.
func (e *Engine) Vega(o option.Option, u market.Underlying, env market.Environment) (float64, error) {
	p, err := Params(o, u, env)
	if err != nil {
		return 0, err
	}
	return e.diff.Vega(p)
}

// Theta is the time decay of the price.
func (e *Engine) Theta(o option.Option, u market.Underlying, env market.Environment) (float64, error) {
	p, err := Params(o, u, env)
	if err != nil {
		return 0, err
	}
	return e.diff.Theta(p)
}

// Rho is the sensitivity of price to the risk-free rate.
func (e *Engine) Rho(o option.Option, u market.Underlying, env market.Environment) (float64, error) {
	p, err := Params(o, u, env)
	if err != nil {
		return 0, err
	}
	return e.diff.Rho(p)
}

// Differentiator exposes the engine's finite-difference layer for custom
// sensitivities (dividend, strike, non-default steps).
func (e *Engine) Differentiator() *greeks.Differentiator {
	return e.diff
}

// ImpliedVol inverts the engine's technique for the volatility that
// reproduces target, an observed market price for the contract.
func (e *Engine) ImpliedVol(o option.Option, u market.Underlying, env market.Environment, target float64) (impliedvol.Result, error) {
	p, err := Params(o, u, env)
	if err != nil {
		return impliedvol.Result{}, err
	}
	f := func(sigma float64) (float64, error) {
		scenario := p
		scenario.Sigma = sigma
		return e.fn(scenario)
	}
	return impliedvol.Solve(f, target, impliedvol.DefaultConfig)
}
