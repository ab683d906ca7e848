// Package pnutils holds unit conversions and post-Newtonian duration estimates
// used when sizing waveform windows.
package pnutils

import (
	"math"

	"github.com/RyanBlaney/sonido-gw/constants"
)

// MegaparsecsToMeters converts a distance in Mpc to meters
func MegaparsecsToMeters(mpc float64) float64 {
	return mpc * constants.MpcSI
}

// SecToYear converts seconds to Julian years
func SecToYear(sec float64) float64 {
	return sec / constants.YrJulSI
}

// MassToSeconds converts a mass in solar masses to its geometrized time, G M / c^3
func MassToSeconds(msun float64) float64 {
	return msun * constants.MTSunSI
}

// MassToMegaparsecs converts a mass in solar masses to its geometrized length in Mpc
func MassToMegaparsecs(msun float64) float64 {
	return msun * constants.MRSunSI / constants.MpcSI
}

// SymmetricMassRatio returns eta = m1 m2 / (m1 + m2)^2
func SymmetricMassRatio(m1, m2 float64) float64 {
	M := m1 + m2
	return m1 * m2 / (M * M)
}

// ChirpMass returns (m1 m2)^(3/5) / (m1 + m2)^(1/5) in the units of m1, m2
func ChirpMass(m1, m2 float64) float64 {
	M := m1 + m2
	eta := SymmetricMassRatio(m1, m2)
	return M * math.Pow(eta, 0.6)
}
