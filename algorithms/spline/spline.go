// Package spline implements smoothing-free interpolating splines of degree 1 to 5.
//
// The knot vector follows FITPACK's choice for an interpolating fit (s = 0):
// for odd degree k the interior knots are the data abscissae x[(k+1)/2 : m-(k+1)/2],
// for even degree they are the midpoints between neighbouring abscissae. The
// resulting curve is therefore the same one scipy's UnivariateSpline(x, y, k, s=0)
// returns. Degree 1 and degree 3 fits are delegated to gonum's interp package,
// whose PiecewiseLinear and NotAKnotCubic produce that same curve.
package spline

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

// MaxDegree is the highest supported spline degree.
const MaxDegree = 5

var (
	ErrDegree        = errors.New("spline: degree must be between 1 and 5")
	ErrKnots         = errors.New("spline: abscissae must be finite and strictly increasing")
	ErrLength        = errors.New("spline: x and y lengths differ")
	ErrTooFewPoints  = errors.New("spline: need at least degree+1 points")
	ErrSingular      = errors.New("spline: collocation system is singular")
	errNotBracketing = errors.New("spline: data sites violate Schoenberg-Whitney conditions")
)

// predictor is satisfied by the gonum interp fitters.
type predictor interface {
	Predict(x float64) float64
}

// Spline is an interpolating spline through (x, y) pairs.
type Spline struct {
	degree int
	lo, hi float64

	fast predictor

	// B-spline representation, used when fast is nil
	knots []float64
	coef  []float64
}

// New fits an interpolating spline of the given degree through (x, y).
func New(x, y []float64, degree int) (*Spline, error) {
	if degree < 1 || degree > MaxDegree {
		return nil, fmt.Errorf("%w: got %d", ErrDegree, degree)
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLength, len(x), len(y))
	}
	if len(x) < degree+1 {
		return nil, fmt.Errorf("%w: degree %d, %d points", ErrTooFewPoints, degree, len(x))
	}
	if err := checkAbscissae(x); err != nil {
		return nil, err
	}

	s := &Spline{
		degree: degree,
		lo:     x[0],
		hi:     x[len(x)-1],
	}

	switch {
	case degree == 1:
		var pl interp.PiecewiseLinear
		if err := pl.Fit(x, y); err != nil {
			return nil, fmt.Errorf("linear fit failed: %w", err)
		}
		s.fast = &pl

	case degree == 3 && len(x) >= 5:
		var nak interp.NotAKnotCubic
		if err := nak.Fit(x, y); err != nil {
			return nil, fmt.Errorf("cubic fit failed: %w", err)
		}
		s.fast = &nak

	default:
		knots, coef, err := fitBSpline(x, y, degree)
		if err != nil {
			return nil, err
		}
		s.knots = knots
		s.coef = coef
	}

	return s, nil
}

func checkAbscissae(x []float64) error {
	if floats.HasNaN(x) || math.IsInf(x[0], 0) || math.IsInf(x[len(x)-1], 0) {
		return ErrKnots
	}
	if !sort.Float64sAreSorted(x) {
		return ErrKnots
	}
	for i := 1; i < len(x); i++ {
		if x[i] == x[i-1] {
			return fmt.Errorf("%w: duplicate abscissa %g at index %d", ErrKnots, x[i], i)
		}
	}
	return nil
}

// Degree returns the spline degree
func (s *Spline) Degree() int {
	return s.degree
}

// Bounds returns the first and last data abscissae.
func (s *Spline) Bounds() (lo, hi float64) {
	return s.lo, s.hi
}

// Eval evaluates the spline at x. Outside Bounds the end polynomial pieces are
// extended for B-spline fits and the gonum fitters clamp; callers that care
// must check Bounds first.
func (s *Spline) Eval(x float64) float64 {
	if s.fast != nil {
		return s.fast.Predict(x)
	}

	k := s.degree
	ncoef := len(s.coef)
	l := findSpan(s.knots, k, ncoef, x)

	var basis [MaxDegree + 1]float64
	basisFuns(s.knots, k, l, x, basis[:k+1])

	sum := 0.0
	for r := 0; r <= k; r++ {
		sum += s.coef[l-k+r] * basis[r]
	}
	return sum
}

// EvalAll evaluates the spline at every point of xs, writing into dst when it
// is large enough.
func (s *Spline) EvalAll(xs, dst []float64) []float64 {
	if cap(dst) < len(xs) {
		dst = make([]float64, len(xs))
	}
	dst = dst[:len(xs)]
	for i, x := range xs {
		dst[i] = s.Eval(x)
	}
	return dst
}
