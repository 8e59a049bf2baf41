// Package option defines vanilla option contracts and the flat parameter
// record consumed by the pricing engines.
package option

import (
	"fmt"
	"math"
)

// Type identifies the payoff direction of a vanilla option.
type Type string

const (
	// TypeCall is a call option: payoff max(S-K, 0).
	TypeCall Type = "call"
	// TypePut is a put option: payoff max(K-S, 0).
	TypePut Type = "put"
)

// Style identifies the exercise style.
type Style string

const (
	// StyleEuropean permits exercise at maturity only.
	StyleEuropean Style = "european"
	// StyleAmerican permits exercise at any time up to maturity.
	StyleAmerican Style = "american"
)

// Option is an immutable vanilla option contract descriptor.
type Option struct {
	// Symbol identifies the underlying (e.g. "AAPL").
	Symbol string
	// Strike is the exercise price. Must be positive.
	Strike float64
	// Maturity is the time to expiry in years. Must be positive.
	Maturity float64
	// Type is call or put.
	Type Type
	// Style is european or american. Empty defaults to european.
	Style Style
}

// Validate checks the contract fields and returns the first violation found.
func (o Option) Validate() error {
	if !(o.Strike > 0) {
		return fmt.Errorf("option: strike must be positive, got %v", o.Strike)
	}
	if !(o.Maturity > 0) {
		return fmt.Errorf("option: maturity must be positive, got %v", o.Maturity)
	}
	switch o.Type {
	case TypeCall, TypePut:
	default:
		return fmt.Errorf("option: unknown type %q", o.Type)
	}
	switch o.Style {
	case StyleEuropean, StyleAmerican, "":
	default:
		return fmt.Errorf("option: unknown style %q", o.Style)
	}
	return nil
}

// NormalizedStyle returns the exercise style, defaulting empty to european.
func (o Option) NormalizedStyle() Style {
	if o.Style == "" {
		return StyleEuropean
	}
	return o.Style
}

// Intrinsic returns the exercise value of the contract at the given spot.
func (o Option) Intrinsic(spot float64) float64 {
	return Intrinsic(o.Type, spot, o.Strike)
}

// Intrinsic returns the exercise value of a vanilla option at spot s.
func Intrinsic(typ Type, s, k float64) float64 {
	if typ == TypeCall {
		return math.Max(s-k, 0)
	}
	return math.Max(k-s, 0)
}
