package nr

// SpinWeight is the spin weight of the harmonics strain modes are projected on.
const SpinWeight = -2

// CrossSign multiplies the cross-polarization sum
//
//	hc = CrossSign * (Re h * Im Y + Im h * Re Y)
//
// The sign has not been checked against an independent NR code; it only
// rotates the polarization phase. Inclination is taken as the polar angle and
// coa_phase as the azimuth of Y, also unverified.
const CrossSign = -1.0

// Config holds reconstructor settings
type Config struct {
	// MaxL is the largest l summed over; modes run l = 2..MaxL, m = -l..l
	MaxL int `json:"max_l" yaml:"max_l"`
}

// DefaultConfig returns the default reconstructor configuration
func DefaultConfig() *Config {
	return &Config{
		MaxL: 8,
	}
}
