package greeks

import (
	"math"

	"github.com/meenmo/optlib/option"
)

// Default relative/absolute step sizes for the named Greeks. Relative
// steps scale with the perturbed parameter; rate and maturity bumps are
// absolute since those parameters can sit near zero.
const (
	defaultSpotStepRel  = 1e-3
	defaultSigmaStepRel = 1e-3
	defaultRateStep     = 1e-4
	defaultMaturityStep = 1e-4

	// minMaturity mirrors the engine cutoff below which theta is reported
	// as zero rather than differencing across expiry.
	minMaturity = 1e-12
)

// Delta is the first derivative of price with respect to spot, with a step
// proportional to the spot.
func (d *Differentiator) Delta(p option.Params) (float64, error) {
	return d.Sensitivity(p, ParamSpot, defaultSpotStepRel*math.Abs(p.Spot), 1)
}

// Gamma is the second derivative of price with respect to spot.
func (d *Differentiator) Gamma(p option.Params) (float64, error) {
	return d.Sensitivity(p, ParamSpot, defaultSpotStepRel*math.Abs(p.Spot), 2)
}

// Vega is the first derivative of price with respect to volatility. A
// contract with zero volatility has no vega.
func (d *Differentiator) Vega(p option.Params) (float64, error) {
	if p.Sigma <= 0 {
		return 0, nil
	}
	return d.Sensitivity(p, ParamSigma, defaultSigmaStepRel*p.Sigma, 1)
}

// Theta is the time decay of the price: the engine measures +dV/dMaturity
// and Theta negates it, so a long vanilla position normally carries a
// negative theta. Contracts at expiry have zero theta.
func (d *Differentiator) Theta(p option.Params) (float64, error) {
	if p.Maturity <= minMaturity {
		return 0, nil
	}
	step := defaultMaturityStep
	if half := p.Maturity / 2; half < step {
		// Keep the downward bump on this side of expiry.
		step = half
	}
	v, err := d.Sensitivity(p, ParamMaturity, step, 1)
	if err != nil {
		return 0, err
	}
	return -v, nil
}

// Rho is the first derivative of price with respect to the risk-free rate.
func (d *Differentiator) Rho(p option.Params) (float64, error) {
	return d.Sensitivity(p, ParamRate, defaultRateStep, 1)
}
