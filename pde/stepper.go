package pde

import (
	"fmt"
	"math"

	"github.com/meenmo/optlib/model"
	"github.com/meenmo/optlib/option"
)

// Scheme selects the time-stepping discretization. It is fixed at solver
// construction.
type Scheme string

const (
	// SchemeExplicit updates each interior node from the three neighboring
	// old-time values. Conditionally stable: dt must satisfy the CFL-type
	// bound checked at operator assembly.
	SchemeExplicit Scheme = "explicit"
	// SchemeImplicit solves one tridiagonal system per step using new-time
	// coefficients only. Unconditionally stable.
	SchemeImplicit Scheme = "implicit"
	// SchemeCrankNicolson averages the explicit and implicit operators for
	// second-order accuracy in time. One tridiagonal solve per step.
	SchemeCrankNicolson Scheme = "crank-nicolson"
)

// weight returns the implicitness weight theta of the scheme: 0 explicit,
// 1 implicit, ½ Crank-Nicolson.
func (s Scheme) weight() (float64, error) {
	switch s {
	case SchemeExplicit:
		return 0, nil
	case SchemeImplicit:
		return 1, nil
	case SchemeCrankNicolson:
		return 0.5, nil
	default:
		return 0, fmt.Errorf("pde: unknown scheme %q", s)
	}
}

// stepper advances the value grid one time step backward. It owns the
// discretized spatial operator for the duration of a sweep and reassembles
// it per step only when the coefficient provider is time-varying.
type stepper struct {
	p        option.Params
	provider model.CoefficientProvider
	grid     *Grid
	scheme   Scheme
	theta    float64
	dt       float64

	// Spatial operator stencil per interior node i=1..M-1:
	// (L·V)_i = lo[i-1]·V[i-1] + mid[i-1]·V[i] + up[i-1]·V[i+1].
	lo, mid, up []float64
	built       bool

	// Scratch buffers reused across steps.
	vOld                        []float64
	lhsLower, lhsDiag, lhsUpper []float64
	rhs                         []float64
}

func newStepper(p option.Params, provider model.CoefficientProvider, g *Grid, scheme Scheme, dt float64) (*stepper, error) {
	theta, err := scheme.weight()
	if err != nil {
		return nil, err
	}
	if !(dt > 0) {
		return nil, fmt.Errorf("pde: dt must be positive, got %v", dt)
	}

	m := g.M()
	return &stepper{
		p:        p,
		provider: provider,
		grid:     g,
		scheme:   scheme,
		theta:    theta,
		dt:       dt,
		lo:       make([]float64, m-1),
		mid:      make([]float64, m-1),
		up:       make([]float64, m-1),
		vOld:     make([]float64, m+1),
		lhsLower: make([]float64, m-2),
		lhsDiag:  make([]float64, m-1),
		lhsUpper: make([]float64, m-2),
		rhs:      make([]float64, m-1),
	}, nil
}

// buildOperator assembles the central-difference stencil from the provider
// coefficients at remaining time tau and, for the explicit scheme, verifies
// the stability bound.
func (st *stepper) buildOperator(tau float64) error {
	ds := st.grid.DS
	ds2 := ds * ds

	for i := 1; i < st.grid.M(); i++ {
		s := st.grid.Nodes[i]
		a, b, c := st.provider.Coefficients(s, tau, st.p)
		st.lo[i-1] = a/ds2 - b/(2*ds)
		st.mid[i-1] = -(2*a/ds2 + c)
		st.up[i-1] = a/ds2 + b/(2*ds)
	}

	if st.scheme == SchemeExplicit {
		limit := GetNumerics().StabilityLimit
		for i, m := range st.mid {
			if -st.dt*m > limit {
				return fmt.Errorf("%w: explicit step size dt=%.3e violates stability bound at node %d "+
					"(dt·(2A/dS²+C) = %.3f > %.2f); increase N or switch scheme",
					ErrNumericalInstability, st.dt, i+1, -st.dt*m, limit)
			}
		}
	}

	st.built = true
	return nil
}

// step advances the grid values one dt backward so they hold V at remaining
// time tau. Boundary values are applied at tau, and American contracts are
// projected onto intrinsic value at every node.
func (st *stepper) step(tau float64) error {
	if !st.built || st.provider.TimeVarying() {
		if err := st.buildOperator(tau); err != nil {
			return err
		}
	}

	m := st.grid.M()
	v := st.grid.Values
	copy(st.vOld, v)

	lowerBC, upperBC := boundaryValues(st.p, st.grid.Nodes[m], tau)

	if st.theta == 0 {
		for i := 1; i < m; i++ {
			k := i - 1
			v[i] = st.vOld[i] + st.dt*(st.lo[k]*st.vOld[i-1]+st.mid[k]*st.vOld[i]+st.up[k]*st.vOld[i+1])
		}
	} else {
		th := st.theta
		for i := 1; i < m; i++ {
			k := i - 1
			st.lhsDiag[k] = 1 - th*st.dt*st.mid[k]
			if k > 0 {
				st.lhsLower[k-1] = -th * st.dt * st.lo[k]
			}
			if k < m-2 {
				st.lhsUpper[k] = -th * st.dt * st.up[k]
			}
			explicitPart := st.lo[k]*st.vOld[i-1] + st.mid[k]*st.vOld[i] + st.up[k]*st.vOld[i+1]
			st.rhs[k] = st.vOld[i] + (1-th)*st.dt*explicitPart
		}

		// Known new-time boundary values move to the right-hand side.
		st.rhs[0] += th * st.dt * st.lo[0] * lowerBC
		st.rhs[m-2] += th * st.dt * st.up[m-2] * upperBC

		interior, err := SolveTridiagonal(st.lhsLower, st.lhsDiag, st.lhsUpper, st.rhs)
		if err != nil {
			return err
		}
		copy(v[1:m], interior)
	}

	v[0] = lowerBC
	v[m] = upperBC

	if st.p.American() {
		for i := 0; i <= m; i++ {
			v[i] = math.Max(v[i], st.p.IntrinsicAt(st.grid.Nodes[i]))
		}
	}

	return nil
}

// boundaryValues returns the analytic values pinned at S=0 and S=SMax for
// remaining time tau: a call is worthless at zero and worth S − K·e^{−rτ}
// at the far boundary; a put is worth K·e^{−rτ} at zero and worthless far
// out of the money.
func boundaryValues(p option.Params, sMax, tau float64) (lower, upper float64) {
	disc := p.Strike * math.Exp(-p.Rate*tau)
	if p.Type == option.TypeCall {
		return 0, sMax - disc
	}
	return disc, 0
}
