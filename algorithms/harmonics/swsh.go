// Package harmonics evaluates spin-weighted spherical harmonics.
//
// The sign and phase conventions are those of LAL's
// XLALSpinWeightedSphericalHarmonic, e.g.
//
//	-2Y22(theta, phi) = sqrt(5/(64 pi)) (1 + cos theta)^2 exp(2 i phi)
package harmonics

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/stat/combin"
)

// ErrInvalidMode is returned when |s| > l or |m| > l.
var ErrInvalidMode = errors.New("harmonics: invalid (s, l, m)")

// SpinWeightedY returns sY_lm(theta, phi) using Goldberg's closed sum
//
//	sYlm = (-1)^m sqrt((l+m)!(l-m)!(2l+1) / (4 pi (l+s)!(l-s)!))
//	       sum_r C(l-s, r) C(l+s, r+s-m) (-1)^(l-r-s) e^(i m phi)
//	       sin(theta/2)^(2l-2r-s+m) cos(theta/2)^(2r+s-m)
//
// written with explicit sine and cosine powers so the poles need no special
// casing.
func SpinWeightedY(theta, phi float64, s, l, m int) (complex128, error) {
	if l < 0 || absInt(s) > l || absInt(m) > l {
		return 0, fmt.Errorf("%w: s=%d l=%d m=%d", ErrInvalidMode, s, l, m)
	}

	norm := math.Sqrt(factorial(l+m) * factorial(l-m) * float64(2*l+1) /
		(4 * math.Pi * factorial(l+s) * factorial(l-s)))
	if m%2 != 0 {
		norm = -norm
	}

	sinHalf := math.Sin(theta / 2)
	cosHalf := math.Cos(theta / 2)

	// both binomials must be non-zero: max(0, m-s) <= r <= min(l-s, l+m)
	rLo := max(0, m-s)
	rHi := min(l-s, l+m)

	sum := 0.0
	for r := rLo; r <= rHi; r++ {
		term := float64(combin.Binomial(l-s, r)) * float64(combin.Binomial(l+s, r+s-m))
		if (l-r-s)%2 != 0 {
			term = -term
		}
		term *= math.Pow(sinHalf, float64(2*l-2*r-s+m)) * math.Pow(cosHalf, float64(2*r+s-m))
		sum += term
	}

	return complex(norm*sum, 0) * cmplx.Exp(complex(0, float64(m)*phi)), nil
}

func factorial(n int) float64 {
	f := 1.0
	for i := 2; i <= n; i++ {
		f *= float64(i)
	}
	return f
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
