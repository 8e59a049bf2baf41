package pde

// Numerics holds solver guard thresholds.
// These were previously hardcoded magic numbers throughout the engine.
type Numerics struct {
	// PivotThreshold is the minimum pivot magnitude in the tridiagonal
	// elimination. Below this the solve reports numerical instability
	// instead of propagating NaNs.
	PivotThreshold float64

	// MinMaturity is the time to expiry below which a contract is treated
	// as expired and priced at intrinsic value.
	MinMaturity float64

	// StabilityLimit bounds dt·(2A/dS² + C) for the explicit scheme.
	// A value of 1.0 keeps the explicit update a convex combination of
	// neighboring values.
	StabilityLimit float64
}

// DefaultNumerics provides production-ready default values.
var DefaultNumerics = Numerics{
	PivotThreshold: 1e-12,
	MinMaturity:    1e-14,
	StabilityLimit: 1.0,
}

// num is the active configuration. Defaults to DefaultNumerics.
var num = DefaultNumerics

// SetNumerics replaces the active numerics configuration.
func SetNumerics(n Numerics) {
	num = n
}

// GetNumerics returns the active numerics configuration.
func GetNumerics() Numerics {
	return num
}
