package bbhx

import (
	"fmt"
	"math"

	"github.com/RyanBlaney/sonido-gw/algorithms/common"
	"github.com/RyanBlaney/sonido-gw/logging"
	"github.com/RyanBlaney/sonido-gw/params"
	"github.com/RyanBlaney/sonido-gw/pnutils"
	"github.com/RyanBlaney/sonido-gw/series"
)

// Channels is the number of output channels the adapter returns.
const Channels = 3

// Adapter turns template parameters into generator requests and wraps the
// generator output as frequency series.
type Adapter struct {
	factory Factory
	pool    *Pool
	config  *Config
	logger  logging.Logger
}

// Option configures an Adapter
type Option func(*Adapter)

// WithConfig replaces the default configuration
func WithConfig(cfg *Config) Option {
	return func(a *Adapter) {
		if cfg != nil {
			a.config = cfg
		}
	}
}

// WithLogger sets the logger
func WithLogger(l logging.Logger) Option {
	return func(a *Adapter) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAdapter creates an adapter over factory.
func NewAdapter(factory Factory, opts ...Option) *Adapter {
	a := &Adapter{
		factory: factory,
		config:  DefaultConfig(),
		logger: logging.WithFields(logging.Fields{
			"component": "bbhx_adapter",
		}),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.config.ReuseGenerators {
		a.pool = NewPool(factory)
	}
	return a
}

func (a *Adapter) generator(opts AmpPhaseOptions) (Generator, error) {
	if a.pool != nil {
		return a.pool.Get(opts)
	}
	if a.factory == nil {
		return nil, ErrNoFactory
	}
	g, err := a.factory(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to construct generator: %w", err)
	}
	return g, nil
}

// BuildRequest resolves overrides against the location and waveform
// defaults and fills a generator request.
func (a *Adapter) BuildRequest(overrides params.Values) (*Request, error) {
	req, _, err := a.buildRequest(overrides)
	return req, err
}

func (a *Adapter) buildRequest(overrides params.Values) (*Request, float64, error) {
	p := params.Resolve(params.DefaultLocationParams(), params.Props(overrides))

	names := []string{
		params.Mass1, params.Mass2, params.Spin1z, params.Spin2z, params.Distance,
		params.CoaPhase, params.Inclination, params.RA, params.Dec,
		params.Polarization, params.Tc, params.FLower, params.DeltaF,
	}
	v := make(map[string]float64, len(names))
	for _, name := range names {
		f, err := params.Float(p, name)
		if err != nil {
			return nil, 0, err
		}
		v[name] = f
	}

	deltaF := v[params.DeltaF]
	if deltaF <= 0 || math.IsNaN(deltaF) || a.config.NyquistFreq <= 0 {
		return nil, 0, fmt.Errorf("%w: delta_f %g, nyquist %g", ErrInvalidGrid, deltaF, a.config.NyquistFreq)
	}

	m1, m2 := v[params.Mass1], v[params.Mass2]
	a1, a2 := v[params.Spin1z], v[params.Spin2z]
	duration, err := pnutils.IMRDuration(m1, m2, a1, a2, v[params.FLower], DurationApproximant)
	if err != nil {
		return nil, 0, err
	}

	return &Request{
		M1:          m1,
		M2:          m2,
		A1:          a1,
		A2:          a2,
		Distance:    pnutils.MegaparsecsToMeters(v[params.Distance]),
		PhiRef:      v[params.CoaPhase],
		FRef:        ReferenceFrequency,
		Inclination: v[params.Inclination],
		Lambda:      v[params.RA],
		Beta:        v[params.Dec],
		Psi:         v[params.Polarization],
		TRef:        v[params.Tc],

		Freqs:        common.Arange(0, a.config.NyquistFreq, deltaF),
		Modes:        append([]Mode(nil), DominantModes...),
		Direct:       layoutDirect,
		Fill:         layoutFill,
		Squeeze:      layoutSqueeze,
		Length:       layoutLength,
		TObsStart:    pnutils.SecToYear(duration),
		TObsEnd:      ObservationEnd,
		ShiftTLimits: layoutShiftTLimits,
	}, deltaF, nil
}

// Waveform generates the three frequency-domain channels for overrides. Each
// channel has spacing delta_f and epoch tc - 1/delta_f.
func (a *Adapter) Waveform(overrides params.Values) ([]*series.FrequencySeries, error) {
	logger := a.logger.WithFields(logging.Fields{
		"function": "Waveform",
	})

	req, deltaF, err := a.buildRequest(overrides)
	if err != nil {
		return nil, err
	}

	opts := AmpPhaseOptions{RunPhenomD: a.config.RunPhenomD}
	if !opts.RunPhenomD {
		logger.Warn("Multi-mode model requested, only the (2,2) mode is generated")
	}

	gen, err := a.generator(opts)
	if err != nil {
		return nil, err
	}

	logger.Debug("Generating", logging.Fields{
		"bins":        len(req.Freqs),
		"t_obs_start": req.TObsStart,
		"run_phenomd": opts.RunPhenomD,
	})

	channels, err := gen.Generate(req)
	if err != nil {
		return nil, fmt.Errorf("waveform generation failed: %w", err)
	}
	if len(channels) < Channels {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrChannelCount, len(channels), Channels)
	}

	epoch := req.TRef - 1/deltaF

	out := make([]*series.FrequencySeries, Channels)
	for i := range out {
		out[i] = &series.FrequencySeries{
			Data:   channels[i],
			DeltaF: deltaF,
			Epoch:  epoch,
		}
	}
	return out, nil
}
