package bbhx

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/RyanBlaney/sonido-gw/constants"
	"github.com/RyanBlaney/sonido-gw/pnutils"
)

// ErrUnsupportedMode is returned by TaylorF2 when the request lacks the (2,2) mode.
var ErrUnsupportedMode = errors.New("bbhx: TaylorF2 generates only the (2,2) mode")

// TaylorF2 is a leading-order stationary-phase inspiral generator. Channel 0
// and 1 are the plus and cross polarizations rotated by Psi, channel 2 is
// zero. Bins outside the observation window, mapped to frequency with the
// Newtonian chirp, or above the ISCO frequency are zero.
type TaylorF2 struct {
	opts AmpPhaseOptions
}

// NewTaylorF2 is a Factory for TaylorF2 generators.
func NewTaylorF2(opts AmpPhaseOptions) (Generator, error) {
	return &TaylorF2{opts: opts}, nil
}

// Band returns the frequency band [lo, hi] covered for req.
func (g *TaylorF2) Band(req *Request) (lo, hi float64) {
	const yr = constants.YrJulSI
	lo = pnutils.NewtonianFrequency(req.M1, req.M2, req.TObsStart*yr)
	hi = pnutils.ISCOFrequency(req.M1, req.M2)
	if req.TObsEnd > 0 {
		hi = math.Min(hi, pnutils.NewtonianFrequency(req.M1, req.M2, req.TObsEnd*yr))
	}
	return lo, hi
}

func (g *TaylorF2) Generate(req *Request) ([][]complex128, error) {
	if !hasQuadrupole(req.Modes) {
		return nil, ErrUnsupportedMode
	}
	if req.M1 <= 0 || req.M2 <= 0 {
		return nil, fmt.Errorf("bbhx: TaylorF2: non-positive mass (%g, %g)", req.M1, req.M2)
	}
	if req.Distance <= 0 {
		return nil, fmt.Errorf("bbhx: TaylorF2: non-positive distance %g", req.Distance)
	}

	n := len(req.Freqs)
	plus := make([]complex128, n)
	cross := make([]complex128, n)
	zero := make([]complex128, n)

	totalMass := pnutils.MassToSeconds(req.M1 + req.M2)
	chirpMass := pnutils.MassToSeconds(pnutils.ChirpMass(req.M1, req.M2))
	eta := pnutils.SymmetricMassRatio(req.M1, req.M2)

	// |h(f)| = amp0 f^(-7/6)
	amp0 := math.Sqrt(5.0/24.0) * math.Pow(math.Pi, -2.0/3.0) *
		math.Pow(chirpMass, 5.0/6.0) * constants.CSI / req.Distance

	cosi := math.Cos(req.Inclination)
	plusFactor := complex(0.5*(1+cosi*cosi), 0)
	crossFactor := complex(0, -cosi)

	sin2psi, cos2psi := math.Sincos(2 * req.Psi)
	rotC, rotS := complex(cos2psi, 0), complex(sin2psi, 0)

	lo, hi := g.Band(req)
	for i, f := range req.Freqs {
		if f <= 0 || f < lo || f > hi {
			continue
		}
		v := math.Cbrt(math.Pi * totalMass * f)
		v5 := v * v * v * v * v
		psi := 2*math.Pi*f*req.TRef - 2*req.PhiRef - math.Pi/4 + 3.0/(128.0*eta*v5)
		h := complex(amp0*math.Pow(f, -7.0/6.0), 0) * cmplx.Exp(complex(0, -psi))

		hp := plusFactor * h
		hc := crossFactor * h
		plus[i] = rotC*hp - rotS*hc
		cross[i] = rotS*hp + rotC*hc
	}

	return [][]complex128{plus, cross, zero}, nil
}

func hasQuadrupole(modes []Mode) bool {
	for _, m := range modes {
		if m.L == 2 && m.M == 2 {
			return true
		}
	}
	return false
}
