// Package closedform implements the Black-Scholes-Merton analytic formulas
// for vanilla European options, including the standard Greeks.
package closedform

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/meenmo/optlib/option"
)

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// Price returns the Black-Scholes-Merton value of a European option with
// continuous dividend yield:
//
//	call = S·e^{-qT}·N(d1) − K·e^{-rT}·N(d2)
//	put  = K·e^{-rT}·N(-d2) − S·e^{-qT}·N(-d1)
//
// Contracts at or past expiry are valued at intrinsic. American style is
// rejected: there is no closed form for early exercise.
func Price(p option.Params) (float64, error) {
	if err := validate(p); err != nil {
		return 0, err
	}
	if expired(p) {
		return p.Intrinsic(), nil
	}

	d1, d2 := dValues(p)
	expQ := math.Exp(-p.Dividend * p.Maturity)
	expR := math.Exp(-p.Rate * p.Maturity)

	if p.Type == option.TypeCall {
		return p.Spot*expQ*stdNormal.CDF(d1) - p.Strike*expR*stdNormal.CDF(d2), nil
	}
	return p.Strike*expR*stdNormal.CDF(-d2) - p.Spot*expQ*stdNormal.CDF(-d1), nil
}

// Greeks holds the analytic sensitivities of a European option value.
type Greeks struct {
	Delta float64 // dV/dS
	Gamma float64 // d²V/dS²
	Vega  float64 // dV/dσ (per unit of volatility)
	Theta float64 // dV/dt, time decay as calendar time passes
	Rho   float64 // dV/dr
}

// ComputeGreeks returns the analytic Black-Scholes-Merton sensitivities.
func ComputeGreeks(p option.Params) (Greeks, error) {
	if err := validate(p); err != nil {
		return Greeks{}, err
	}
	if expired(p) {
		return Greeks{}, fmt.Errorf("closedform: greeks undefined at expiry")
	}

	d1, d2 := dValues(p)
	sqrtT := math.Sqrt(p.Maturity)
	expQ := math.Exp(-p.Dividend * p.Maturity)
	expR := math.Exp(-p.Rate * p.Maturity)
	pdfD1 := stdNormal.Prob(d1)

	var g Greeks
	g.Gamma = expQ * pdfD1 / (p.Spot * p.Sigma * sqrtT)
	g.Vega = p.Spot * expQ * pdfD1 * sqrtT

	common := -p.Spot * expQ * pdfD1 * p.Sigma / (2 * sqrtT)
	if p.Type == option.TypeCall {
		g.Delta = expQ * stdNormal.CDF(d1)
		g.Theta = common -
			p.Rate*p.Strike*expR*stdNormal.CDF(d2) +
			p.Dividend*p.Spot*expQ*stdNormal.CDF(d1)
		g.Rho = p.Strike * p.Maturity * expR * stdNormal.CDF(d2)
	} else {
		g.Delta = expQ * (stdNormal.CDF(d1) - 1)
		g.Theta = common +
			p.Rate*p.Strike*expR*stdNormal.CDF(-d2) -
			p.Dividend*p.Spot*expQ*stdNormal.CDF(-d1)
		g.Rho = -p.Strike * p.Maturity * expR * stdNormal.CDF(-d2)
	}

	return g, nil
}

func dValues(p option.Params) (d1, d2 float64) {
	sqrtT := math.Sqrt(p.Maturity)
	d1 = (math.Log(p.Spot/p.Strike) + (p.Rate-p.Dividend+0.5*p.Sigma*p.Sigma)*p.Maturity) /
		(p.Sigma * sqrtT)
	d2 = d1 - p.Sigma*sqrtT
	return d1, d2
}

func validate(p option.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.NormalizedStyle() != option.StyleEuropean {
		return fmt.Errorf("closedform: %s style not supported, european only", p.NormalizedStyle())
	}
	if p.Sigma <= 0 && !expired(p) {
		return fmt.Errorf("closedform: sigma must be positive, got %v", p.Sigma)
	}
	return nil
}

func expired(p option.Params) bool {
	return p.Maturity <= 1e-14
}
