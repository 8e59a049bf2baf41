package pde

import "sort"

// Interpolate returns the linearly interpolated value of the sampled curve
// (xs, ys) at x. Outside [xs[0], xs[n-1]] it clamps to the nearest boundary
// value. xs must be ascending; xs and ys must have equal length.
func Interpolate(xs, ys []float64, x float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}
	if x <= xs[0] {
		return ys[0]
	}
	if x >= xs[n-1] {
		return ys[n-1]
	}

	// First index with xs[j] >= x; x is strictly inside the domain here.
	j := sort.SearchFloat64s(xs, x)
	i := j - 1
	w := (x - xs[i]) / (xs[j] - xs[i])
	return ys[i] + w*(ys[j]-ys[i])
}
