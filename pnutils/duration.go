package pnutils

import (
	"errors"
	"fmt"
	"math"

	"github.com/RyanBlaney/sonido-gw/constants"
)

// DurationMargin inflates the chirp-time estimates. The PN time to
// coalescence undershoots the full inspiral-merger-ringdown length.
const DurationMargin = 1.1

// ErrUnknownApproximant is returned by IMRDuration for approximants it has no estimate for.
var ErrUnknownApproximant = errors.New("pnutils: no duration estimate for approximant")

// PhenomBChi returns the mass-weighted aligned spin (m1 s1z + m2 s2z) / (m1 + m2).
func PhenomBChi(m1, m2, s1z, s2z float64) float64 {
	return (m1*s1z + m2*s2z) / (m1 + m2)
}

// ChirpTimeSingleSpin estimates the time in seconds from frequency fMin to
// coalescence for a binary with masses in kg and one effective aligned spin
// chi, using the 2PN TaylorT2 expansion with the 1.5PN spin-orbit term
// beta = chi (113 - 76 eta) / 12. Returns +Inf when fMin <= 0.
func ChirpTimeSingleSpin(m1SI, m2SI, chi, fMin float64) float64 {
	if fMin <= 0 {
		return math.Inf(1)
	}

	m1 := m1SI / constants.MSunSI
	m2 := m2SI / constants.MSunSI
	M := MassToSeconds(m1 + m2)
	eta := SymmetricMassRatio(m1, m2)

	v := math.Cbrt(math.Pi * M * fMin)
	v2 := v * v
	v3 := v2 * v
	v4 := v2 * v2
	v8 := v4 * v4

	beta := chi * (113.0 - 76.0*eta) / 12.0

	series := 1.0 +
		(743.0/252.0+11.0/3.0*eta)*v2 -
		8.0/5.0*(4.0*math.Pi-beta)*v3 +
		(3058673.0/508032.0+5429.0/504.0*eta+617.0/72.0*eta*eta)*v4

	return 5.0 * M / (256.0 * eta * v8) * series
}

// SEOBNRROMLengthInTime estimates the length in seconds of an aligned-spin
// waveform starting at fLower, masses in solar masses. It is the single-spin
// chirp time at PhenomBChi with DurationMargin applied; a stand-in until a
// proper reduced-order-model length is available.
func SEOBNRROMLengthInTime(m1, m2, s1z, s2z, fLower float64) float64 {
	chi := PhenomBChi(m1, m2, s1z, s2z)
	t := ChirpTimeSingleSpin(m1*constants.MSunSI, m2*constants.MSunSI, chi, fLower)
	return DurationMargin * t
}

// IMRDuration estimates the inspiral-merger-ringdown duration in seconds of
// the named approximant from fLower, masses in solar masses.
func IMRDuration(m1, m2, s1z, s2z, fLower float64, approximant string) (float64, error) {
	switch approximant {
	case "IMRPhenomD", "IMRPhenomHM", "SEOBNRv2", "SEOBNRv2_ROM_DoubleSpin", "SEOBNRv4", "SEOBNRv4_ROM":
		return SEOBNRROMLengthInTime(m1, m2, s1z, s2z, fLower), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownApproximant, approximant)
	}
}

// NewtonianFrequency returns the leading-order gravitational-wave frequency a
// time tau (seconds) before coalescence, masses in solar masses.
func NewtonianFrequency(m1, m2, tau float64) float64 {
	if tau <= 0 {
		return math.Inf(1)
	}
	M := MassToSeconds(m1 + m2)
	eta := SymmetricMassRatio(m1, m2)
	return math.Pow(5.0*M/(256.0*eta*tau), 3.0/8.0) / (math.Pi * M)
}

// ISCOFrequency returns the gravitational-wave frequency at the Schwarzschild
// innermost stable circular orbit, masses in solar masses.
func ISCOFrequency(m1, m2 float64) float64 {
	return 1.0 / (math.Pow(6, 1.5) * math.Pi * MassToSeconds(m1+m2))
}
