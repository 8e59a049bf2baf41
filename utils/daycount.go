package utils

import (
	"time"
)

// YearFraction computes the year fraction between two dates using the given
// day count convention. Option maturities quoted from calendar dates use
// ACT/365F by market convention; ACT/360 is provided for money-market rates.
func YearFraction(start, end time.Time, convention string) float64 {
	days := end.Sub(start).Hours() / 24
	switch convention {
	case "ACT/360":
		return days / 360.0
	case "ACT/365F":
		return days / 365.0
	default:
		return days / 365.0
	}
}

// Clamp limits x to the closed interval [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
