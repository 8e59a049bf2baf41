// Package greeks estimates sensitivities of an arbitrary pricing function
// by central-difference perturbation of one scalar parameter at a time,
// with memoization of repeated evaluations and optional concurrent
// dispatch of the perturbed scenarios.
package greeks

import (
	"fmt"

	"github.com/meenmo/optlib/option"
)

// Parameter names a scalar field of option.Params that a sensitivity can
// be taken against.
type Parameter string

const (
	ParamSpot     Parameter = "spot"
	ParamSigma    Parameter = "sigma"
	ParamRate     Parameter = "rate"
	ParamDividend Parameter = "dividend"
	ParamMaturity Parameter = "maturity"
	ParamStrike   Parameter = "strike"
)

// value reads the named field from p.
func (pm Parameter) value(p option.Params) (float64, error) {
	switch pm {
	case ParamSpot:
		return p.Spot, nil
	case ParamSigma:
		return p.Sigma, nil
	case ParamRate:
		return p.Rate, nil
	case ParamDividend:
		return p.Dividend, nil
	case ParamMaturity:
		return p.Maturity, nil
	case ParamStrike:
		return p.Strike, nil
	default:
		return 0, fmt.Errorf("greeks: unknown parameter %q", pm)
	}
}

// with returns a copy of p with the named field set to v. The original is
// never mutated; each perturbed evaluation works on its own copy.
func (pm Parameter) with(p option.Params, v float64) option.Params {
	switch pm {
	case ParamSpot:
		p.Spot = v
	case ParamSigma:
		p.Sigma = v
	case ParamRate:
		p.Rate = v
	case ParamDividend:
		p.Dividend = v
	case ParamMaturity:
		p.Maturity = v
	case ParamStrike:
		p.Strike = v
	}
	return p
}
