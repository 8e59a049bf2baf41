package option

import "fmt"

// Params is the flat, immutable set of scalar inputs a pricing function
// depends on. Pricers are pure functions of a Params value: perturbing a
// field for a sensitivity never touches the contract, underlying or market
// objects it was built from.
//
// Params is comparable, so a value can be used directly as a map key when
// memoizing prices.
type Params struct {
	Spot     float64
	Strike   float64
	Maturity float64 // years
	Rate     float64 // continuously compounded risk-free rate
	Dividend float64 // continuous dividend yield
	Sigma    float64 // volatility
	Type     Type
	Style    Style
}

// Validate checks the parameter set and returns the first violation found.
// Rate may be negative; sigma and dividend must be non-negative.
func (p Params) Validate() error {
	if !(p.Spot > 0) {
		return fmt.Errorf("option: spot must be positive, got %v", p.Spot)
	}
	if !(p.Strike > 0) {
		return fmt.Errorf("option: strike must be positive, got %v", p.Strike)
	}
	if p.Maturity < 0 {
		return fmt.Errorf("option: maturity must be non-negative, got %v", p.Maturity)
	}
	if p.Sigma < 0 {
		return fmt.Errorf("option: sigma must be non-negative, got %v", p.Sigma)
	}
	if p.Dividend < 0 {
		return fmt.Errorf("option: dividend must be non-negative, got %v", p.Dividend)
	}
	switch p.Type {
	case TypeCall, TypePut:
	default:
		return fmt.Errorf("option: unknown type %q", p.Type)
	}
	switch p.Style {
	case StyleEuropean, StyleAmerican, "":
	default:
		return fmt.Errorf("option: unknown style %q", p.Style)
	}
	return nil
}

// NormalizedStyle returns the exercise style, defaulting empty to european.
func (p Params) NormalizedStyle() Style {
	if p.Style == "" {
		return StyleEuropean
	}
	return p.Style
}

// American reports whether the parameter set describes an American-style
// contract.
func (p Params) American() bool {
	return p.Style == StyleAmerican
}

// Intrinsic returns the exercise value at the current spot.
func (p Params) Intrinsic() float64 {
	return Intrinsic(p.Type, p.Spot, p.Strike)
}

// IntrinsicAt returns the exercise value at an arbitrary underlying level s.
func (p Params) IntrinsicAt(s float64) float64 {
	return Intrinsic(p.Type, s, p.Strike)
}
