package pde

import (
	"fmt"
	"math"

	"github.com/meenmo/optlib/model"
	"github.com/meenmo/optlib/option"
)

// Config holds the grid and scheme parameters of a Solver.
type Config struct {
	// SMax is the upper bound of the spatial grid. It should exceed the
	// strike by a safety multiple (3-4x in practice) or boundary error
	// dominates the solution; choosing it is the caller's tuning
	// responsibility and only positivity is validated here.
	SMax float64

	// M is the number of spatial steps (the grid has M+1 nodes).
	M int

	// N is the number of time steps.
	N int

	// Scheme selects the time discretization. Empty defaults to
	// crank-nicolson.
	Scheme Scheme
}

// Solver prices vanilla European and American options on a finite-
// difference grid. A Solver is immutable after construction and safe for
// concurrent use: every Price call builds and discards its own grid.
type Solver struct {
	cfg      Config
	provider model.CoefficientProvider
}

// NewSolver builds a solver with the standard lognormal-diffusion
// coefficients.
func NewSolver(cfg Config) (*Solver, error) {
	return NewSolverWithProvider(cfg, model.Lognormal{})
}

// NewSolverWithProvider builds a solver with a custom coefficient provider,
// for local-volatility or other diffusions.
func NewSolverWithProvider(cfg Config, provider model.CoefficientProvider) (*Solver, error) {
	if cfg.Scheme == "" {
		cfg.Scheme = SchemeCrankNicolson
	}
	if _, err := cfg.Scheme.weight(); err != nil {
		return nil, fmt.Errorf("NewSolver: %w", err)
	}
	if !(cfg.SMax > 0) {
		return nil, fmt.Errorf("NewSolver: SMax must be positive, got %v", cfg.SMax)
	}
	if cfg.M < 3 {
		return nil, fmt.Errorf("NewSolver: M must be at least 3, got %d", cfg.M)
	}
	if cfg.N < 1 {
		return nil, fmt.Errorf("NewSolver: N must be at least 1, got %d", cfg.N)
	}
	if provider == nil {
		return nil, fmt.Errorf("NewSolver: coefficient provider is required")
	}
	return &Solver{cfg: cfg, provider: provider}, nil
}

// Config returns the solver configuration.
func (s *Solver) Config() Config {
	return s.cfg
}

// Price solves the valuation PDE backward from maturity and returns the
// interpolated value at the current spot. Contracts at or past expiry are
// priced at intrinsic value.
func (s *Solver) Price(p option.Params) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if p.Maturity <= GetNumerics().MinMaturity {
		return math.Max(p.Intrinsic(), 0), nil
	}

	g, err := s.Solve(p)
	if err != nil {
		return 0, err
	}
	return Interpolate(g.Nodes, g.Values, p.Spot), nil
}

// Solve runs the full backward sweep and returns the grid at valuation
// time. Most callers want Price; Solve exposes the whole value curve for
// diagnostics and curve-level consumers.
func (s *Solver) Solve(p option.Params) (*Grid, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	g, err := NewGrid(s.cfg.SMax, s.cfg.M, p)
	if err != nil {
		return nil, err
	}
	if p.Maturity <= GetNumerics().MinMaturity {
		// Expired: the terminal payoff is the value curve.
		return g, nil
	}

	dt := p.Maturity / float64(s.cfg.N)
	st, err := newStepper(p, s.provider, g, s.cfg.Scheme, dt)
	if err != nil {
		return nil, err
	}

	for n := 0; n < s.cfg.N; n++ {
		tau := p.Maturity - float64(n+1)*dt
		if tau < 0 {
			tau = 0
		}
		if err := st.step(tau); err != nil {
			return nil, fmt.Errorf("pde: step %d of %d: %w", n+1, s.cfg.N, err)
		}
	}

	return g, nil
}
