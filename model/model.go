// Package model defines the pluggable coefficient providers that feed the
// finite-difference engine. A provider maps a grid node to the local
// coefficients of the valuation PDE
//
//	dV/dt + A(S,t)·d²V/dS² + B(S,t)·dV/dS − C(S,t)·V = 0
//
// so that diffusions other than the standard lognormal one (local
// volatility, CEV, ...) can reuse the same solver.
package model

import "github.com/meenmo/optlib/option"

// CoefficientProvider supplies the local PDE coefficients at an underlying
// level s and remaining time tau.
type CoefficientProvider interface {
	// Coefficients returns (diffusion A, drift B, discount C) at (s, tau).
	Coefficients(s, tau float64, p option.Params) (a, b, c float64)
	// TimeVarying reports whether the coefficients depend on tau. The
	// solver rebuilds its coefficient vectors each time step only when
	// this returns true.
	TimeVarying() bool
}

// Lognormal is the standard Black-Scholes-Merton diffusion:
// A = ½σ²S², B = (r−q)S, C = r, with σ, r and q taken from the parameter
// set. It is the default provider of the PDE solver.
type Lognormal struct{}

// Coefficients implements CoefficientProvider.
func (Lognormal) Coefficients(s, _ float64, p option.Params) (a, b, c float64) {
	a = 0.5 * p.Sigma * p.Sigma * s * s
	b = (p.Rate - p.Dividend) * s
	c = p.Rate
	return a, b, c
}

// TimeVarying implements CoefficientProvider. Lognormal coefficients are
// constant in time, so the solver assembles them once per sweep.
func (Lognormal) TimeVarying() bool { return false }

// LocalVol prices under a deterministic local-volatility surface σ(S, τ):
// A = ½σ(S,τ)²S², B = (r−q)S, C = r. The parameter set's Sigma field is
// ignored; the surface is authoritative.
type LocalVol struct {
	// Surface returns the local volatility at underlying level s and
	// remaining time tau. Required.
	Surface func(s, tau float64) float64
}

// Coefficients implements CoefficientProvider.
func (lv LocalVol) Coefficients(s, tau float64, p option.Params) (a, b, c float64) {
	sigma := lv.Surface(s, tau)
	a = 0.5 * sigma * sigma * s * s
	b = (p.Rate - p.Dividend) * s
	c = p.Rate
	return a, b, c
}

// TimeVarying implements CoefficientProvider. Local-vol coefficients move
// with tau, so the solver reassembles them every step.
func (LocalVol) TimeVarying() bool { return true }
