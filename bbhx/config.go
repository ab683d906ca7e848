package bbhx

// ReferenceFrequency is passed as the generator's f_ref. Zero makes the
// generator pick its own reference point, which is not the LAL convention.
const ReferenceFrequency = 0.0

// DurationApproximant names the model whose duration sizes the observation window.
const DurationApproximant = "IMRPhenomD"

// Generator layout flags. They govern the generator's internal memory layout
// and are not part of the output contract.
const (
	layoutDirect       = false
	layoutFill         = true
	layoutSqueeze      = true
	layoutLength       = 1024
	layoutShiftTLimits = true // times are relative to merger
)

// ObservationEnd is the end of the observation window in years before
// merger: effectively zero, just past merger.
const ObservationEnd = 1e-9

// DominantModes is the mode set requested from the generator. Only the
// quadrupole is implemented, for either model.
var DominantModes = []Mode{{L: 2, M: 2}}

// Config holds the adapter options
type Config struct {
	// RunPhenomD selects the dominant-mode amplitude/phase model
	RunPhenomD bool `json:"run_phenomd" yaml:"run_phenomd"`

	// NyquistFreq is the exclusive upper bound of the frequency grid in Hz
	NyquistFreq float64 `json:"nyquist_freq" yaml:"nyquist_freq"`

	// ReuseGenerators caches one generator per option set instead of
	// constructing one per call
	ReuseGenerators bool `json:"reuse_generators" yaml:"reuse_generators"`
}

// DefaultConfig returns the default adapter configuration
func DefaultConfig() *Config {
	return &Config{
		RunPhenomD:      true,
		NyquistFreq:     0.1,
		ReuseGenerators: false,
	}
}
