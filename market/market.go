// Package market holds the underlying and market-environment containers
// that pricing techniques read their inputs from.
package market

import "fmt"

// Underlying describes the asset an option is written on.
type Underlying struct {
	// Symbol identifies the asset (e.g. "AAPL").
	Symbol string
	// Spot is the current price. Must be positive.
	Spot float64
	// Volatility is the annualized lognormal volatility. Must be non-negative.
	Volatility float64
	// Dividend is the continuous dividend yield. Must be non-negative.
	Dividend float64
}

// Validate checks the underlying fields and returns the first violation found.
func (u Underlying) Validate() error {
	if !(u.Spot > 0) {
		return fmt.Errorf("market: spot must be positive, got %v", u.Spot)
	}
	if u.Volatility < 0 {
		return fmt.Errorf("market: volatility must be non-negative, got %v", u.Volatility)
	}
	if u.Dividend < 0 {
		return fmt.Errorf("market: dividend must be non-negative, got %v", u.Dividend)
	}
	return nil
}

// Environment carries market-wide inputs that are not tied to a single
// underlying. Rates may be negative.
type Environment struct {
	// Rate is the continuously compounded risk-free rate.
	Rate float64
}
