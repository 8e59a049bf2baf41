// Package lattice prices vanilla options on a Cox-Ross-Rubinstein binomial
// tree, supporting both European and American exercise.
package lattice

import (
	"fmt"
	"math"

	"github.com/meenmo/optlib/option"
)

// Price values the contract on a recombining CRR tree with the given
// number of steps:
//
//	u = e^{σ√dt},  d = 1/u,  p = (e^{(r−q)dt} − d) / (u − d)
//
// Backward induction rolls the discounted expectation from maturity to the
// root; American contracts additionally take the exercise value at every
// node. Contracts at or past expiry are valued at intrinsic.
func Price(p option.Params, steps int) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if steps < 1 {
		return 0, fmt.Errorf("lattice: steps must be positive, got %d", steps)
	}
	if p.Maturity <= 1e-14 {
		return p.Intrinsic(), nil
	}
	if p.Sigma <= 0 {
		return 0, fmt.Errorf("lattice: sigma must be positive, got %v", p.Sigma)
	}

	dt := p.Maturity / float64(steps)
	u := math.Exp(p.Sigma * math.Sqrt(dt))
	d := 1 / u
	growth := math.Exp((p.Rate - p.Dividend) * dt)
	prob := (growth - d) / (u - d)
	if prob <= 0 || prob >= 1 {
		return 0, fmt.Errorf("lattice: risk-neutral probability %v outside (0,1); "+
			"dt too large for sigma %v", prob, p.Sigma)
	}
	discount := math.Exp(-p.Rate * dt)

	// Terminal layer: node j has j up-moves out of `steps`.
	values := make([]float64, steps+1)
	for j := 0; j <= steps; j++ {
		s := p.Spot * math.Pow(u, float64(j)) * math.Pow(d, float64(steps-j))
		values[j] = p.IntrinsicAt(s)
	}

	american := p.American()
	for t := steps - 1; t >= 0; t-- {
		for j := 0; j <= t; j++ {
			cont := discount * (prob*values[j+1] + (1-prob)*values[j])
			if american {
				s := p.Spot * math.Pow(u, float64(j)) * math.Pow(d, float64(t-j))
				cont = math.Max(cont, p.IntrinsicAt(s))
			}
			values[j] = cont
		}
	}

	return values[0], nil
}
