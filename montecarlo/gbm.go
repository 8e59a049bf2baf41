// Package montecarlo prices European options by simulating the terminal
// value of a geometric Brownian motion under the risk-neutral measure.
package montecarlo

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/meenmo/optlib/option"
)

// Result carries a Monte Carlo estimate with its sampling error.
type Result struct {
	// Price is the discounted mean payoff.
	Price float64
	// StdErr is the standard error of the estimate.
	StdErr float64
}

// Price estimates the value of a European option from `paths` terminal
// draws of
//
//	S_T = S·exp((r − q − σ²/2)T + σ√T·Z),  Z ~ N(0,1)
//
// using a PCG source seeded deterministically, so a given (params, paths,
// seed) triple is reproducible. American exercise has no terminal-value
// representation and is rejected.
func Price(p option.Params, paths int, seed uint64) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	if p.NormalizedStyle() != option.StyleEuropean {
		return Result{}, fmt.Errorf("montecarlo: %s style not supported, european only", p.NormalizedStyle())
	}
	if paths < 2 {
		return Result{}, fmt.Errorf("montecarlo: need at least 2 paths, got %d", paths)
	}
	if p.Maturity <= 1e-14 {
		return Result{Price: p.Intrinsic()}, nil
	}

	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewPCG(seed, 0)}

	drift := (p.Rate - p.Dividend - 0.5*p.Sigma*p.Sigma) * p.Maturity
	volT := p.Sigma * math.Sqrt(p.Maturity)
	discount := math.Exp(-p.Rate * p.Maturity)

	var sum, sumSq float64
	for i := 0; i < paths; i++ {
		st := p.Spot * math.Exp(drift+volT*normal.Rand())
		payoff := discount * p.IntrinsicAt(st)
		sum += payoff
		sumSq += payoff * payoff
	}

	n := float64(paths)
	mean := sum / n
	variance := (sumSq - n*mean*mean) / (n - 1)
	if variance < 0 {
		variance = 0
	}

	return Result{
		Price:  mean,
		StdErr: math.Sqrt(variance / n),
	}, nil
}
