package pde

import (
	"errors"
	"fmt"
	"math"
)

// ErrNumericalInstability marks failures where the discretization produced
// a system the solver cannot trust: a near-zero elimination pivot, or an
// explicit time step outside its stability region.
var ErrNumericalInstability = errors.New("pde: numerical instability")

// SolveTridiagonal solves A·x = rhs for a tridiagonal A using the Thomas
// algorithm in O(n): a forward elimination producing modified coefficients
// followed by back substitution.
//
// lower holds the sub-diagonal (len n-1), diag the main diagonal (len n),
// upper the super-diagonal (len n-1) and rhs the right-hand side (len n).
// Inputs are not modified.
//
// The elimination has no pivoting; if any pivot falls below the configured
// threshold the solve returns ErrNumericalInstability rather than
// propagating garbage.
func SolveTridiagonal(lower, diag, upper, rhs []float64) ([]float64, error) {
	n := len(diag)
	if n < 2 {
		return nil, fmt.Errorf("SolveTridiagonal: system size must be at least 2, got %d", n)
	}
	if len(lower) != n-1 || len(upper) != n-1 || len(rhs) != n {
		return nil, fmt.Errorf("SolveTridiagonal: inconsistent lengths: lower=%d diag=%d upper=%d rhs=%d",
			len(lower), n, len(upper), len(rhs))
	}

	threshold := GetNumerics().PivotThreshold
	cStar := make([]float64, n-1)
	dStar := make([]float64, n)

	piv := diag[0]
	if math.Abs(piv) < threshold {
		return nil, fmt.Errorf("SolveTridiagonal: %w: pivot %.3e at row 0", ErrNumericalInstability, piv)
	}
	cStar[0] = upper[0] / piv
	dStar[0] = rhs[0] / piv

	for i := 1; i < n; i++ {
		piv = diag[i] - lower[i-1]*cStar[i-1]
		if math.Abs(piv) < threshold {
			return nil, fmt.Errorf("SolveTridiagonal: %w: pivot %.3e at row %d", ErrNumericalInstability, piv, i)
		}
		if i < n-1 {
			cStar[i] = upper[i] / piv
		}
		dStar[i] = (rhs[i] - lower[i-1]*dStar[i-1]) / piv
	}

	x := make([]float64, n)
	x[n-1] = dStar[n-1]
	for i := n - 2; i >= 0; i-- {
		x[i] = dStar[i] - cStar[i]*x[i+1]
	}

	return x, nil
}
