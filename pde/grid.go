// Package pde prices vanilla options by finite differences on the
// one-dimensional Black-Scholes valuation PDE. The grid spans [0, SMax] in
// the underlying and is stepped backward from maturity to valuation using
// an explicit, fully implicit, or Crank-Nicolson scheme, with an
// early-exercise projection for American contracts.
package pde

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/meenmo/optlib/option"
)

// Grid is the spatial discretization for one backward sweep: M+1 equally
// spaced nodes on [0, SMax] and the value array defined on them. A Grid is
// owned by a single Solve call and mutated in place each time step.
type Grid struct {
	// Nodes are the underlying levels S_0..S_M, ascending.
	Nodes []float64
	// Values holds V(S_i) at the current time level.
	Values []float64
	// DS is the node spacing SMax/M.
	DS float64
}

// NewGrid builds the node array and seeds the value array with the terminal
// payoff of the contract.
func NewGrid(sMax float64, m int, p option.Params) (*Grid, error) {
	if !(sMax > 0) {
		return nil, fmt.Errorf("pde: SMax must be positive, got %v", sMax)
	}
	if m < 3 {
		return nil, fmt.Errorf("pde: need at least 3 spatial steps, got %d", m)
	}

	nodes := floats.Span(make([]float64, m+1), 0, sMax)
	values := make([]float64, m+1)
	for i, s := range nodes {
		values[i] = p.IntrinsicAt(s)
	}

	return &Grid{
		Nodes:  nodes,
		Values: values,
		DS:     sMax / float64(m),
	}, nil
}

// M returns the number of spatial steps (len(Nodes)-1).
func (g *Grid) M() int {
	return len(g.Nodes) - 1
}
