// Package constants holds the physical constants shared by the waveform adapters.
// Values follow the LAL definitions so results line up with LAL-based pipelines.
package constants

const (
	// CSI is the speed of light in vacuum, m s^-1.
	CSI = 299792458.0

	// MSunSI is the solar mass, kg.
	MSunSI = 1.988409902147041637325262574352366540e30

	// MTSunSI is the geometrized solar mass in time units, G MSun / c^3, s.
	MTSunSI = 4.925490947641266978197229498498379006e-6

	// MRSunSI is the geometrized solar mass in length units, G MSun / c^2, m.
	MRSunSI = 1.476625038050124729627979840144936351e3

	// PCSI is the parsec, m.
	PCSI = 3.085677581491367278913937957796471611e16

	// MpcSI is one megaparsec, m.
	MpcSI = 1e6 * PCSI

	// YrJulSI is the Julian year, s.
	YrJulSI = 31557600.0
)
