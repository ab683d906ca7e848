package spline

import (
	"fmt"
	"math"
	"sort"
)

// interpolationKnots builds the FITPACK knot vector for an interpolating fit of
// degree k through abscissae x: k+1 copies of each end point and m-k-1 interior
// knots.
func interpolationKnots(x []float64, k int) []float64 {
	m := len(x)
	n := m + k + 1
	t := make([]float64, n)

	for i := 0; i <= k; i++ {
		t[i] = x[0]
		t[n-1-i] = x[m-1]
	}

	half := k / 2
	interior := m - k - 1
	if k%2 == 1 {
		for l := 0; l < interior; l++ {
			t[k+1+l] = x[half+1+l]
		}
	} else {
		for l := 0; l < interior; l++ {
			t[k+1+l] = 0.5 * (x[half+1+l] + x[half+l])
		}
	}

	return t
}

// findSpan returns l with t[l] <= x < t[l+1], restricted to [k, ncoef-1].
func findSpan(t []float64, k, ncoef int, x float64) int {
	if x >= t[ncoef] {
		return ncoef - 1
	}
	if x <= t[k] {
		return k
	}
	// first index in (k, ncoef] whose knot exceeds x, minus one
	idx := sort.Search(ncoef-k, func(i int) bool {
		return t[k+1+i] > x
	})
	return k + idx
}

// basisFuns fills n[0..k] with the non-zero B-spline basis values N_{l-k..l}(x)
// by the Cox-de Boor triangle.
func basisFuns(t []float64, k, l int, x float64, n []float64) {
	var left, right [MaxDegree + 1]float64

	n[0] = 1.0
	for j := 1; j <= k; j++ {
		left[j] = x - t[l+1-j]
		right[j] = t[l+j] - x
		saved := 0.0
		for r := 0; r < j; r++ {
			temp := n[r] / (right[r+1] + left[j-r])
			n[r] = saved + right[r+1]*temp
			saved = left[j-r] * temp
		}
		n[j] = saved
	}
}

// fitBSpline solves the collocation system for the B-spline coefficients of
// the interpolating spline. Row i of the system has its k+1 non-zeros in
// columns [start_i, start_i+k] with start_i non-decreasing, and the matrix is
// totally positive, so elimination without pivoting stays inside each row's
// band.
func fitBSpline(x, y []float64, k int) (knots, coef []float64, err error) {
	m := len(x)
	t := interpolationKnots(x, k)

	rows := make([][]float64, m)
	starts := make([]int, m)
	rhs := make([]float64, m)
	copy(rhs, y)

	for i, xi := range x {
		l := findSpan(t, k, m, xi)
		starts[i] = l - k
		if i < starts[i] || i > starts[i]+k {
			return nil, nil, fmt.Errorf("%w: row %d", errNotBracketing, i)
		}
		rows[i] = make([]float64, k+1)
		basisFuns(t, k, l, xi, rows[i])
	}

	for p := 0; p < m; p++ {
		piv := rows[p][p-starts[p]]
		if math.Abs(piv) < 1e-300 {
			return nil, nil, fmt.Errorf("%w: zero pivot at row %d", ErrSingular, p)
		}
		hi := min(starts[p]+k, m-1)
		for r := p + 1; r < m && starts[r] <= p; r++ {
			f := rows[r][p-starts[r]] / piv
			if f == 0 {
				continue
			}
			for c := p; c <= hi; c++ {
				rows[r][c-starts[r]] -= f * rows[p][c-starts[p]]
			}
			rhs[r] -= f * rhs[p]
		}
	}

	coef = make([]float64, m)
	for p := m - 1; p >= 0; p-- {
		sum := rhs[p]
		hi := min(starts[p]+k, m-1)
		for c := p + 1; c <= hi; c++ {
			sum -= rows[p][c-starts[p]] * coef[c]
		}
		coef[p] = sum / rows[p][p-starts[p]]
	}

	return t, coef, nil
}
