// Package nr reconstructs plus and cross polarizations from numerical-relativity
// hybrid waveforms stored as per-mode amplitude and phase splines.
package nr

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/RyanBlaney/sonido-gw/algorithms/common"
	"github.com/RyanBlaney/sonido-gw/algorithms/harmonics"
	"github.com/RyanBlaney/sonido-gw/algorithms/spline"
	"github.com/RyanBlaney/sonido-gw/logging"
	"github.com/RyanBlaney/sonido-gw/params"
	"github.com/RyanBlaney/sonido-gw/pnutils"
	"github.com/RyanBlaney/sonido-gw/series"
)

// DurationEstimator returns the expected waveform length in seconds from
// fLower to merger, masses in solar masses.
type DurationEstimator func(m1, m2, s1z, s2z, fLower float64) float64

// Reconstructor builds hp, hc from a mode dataset
type Reconstructor struct {
	open      Opener
	config    *Config
	estimator DurationEstimator
	logger    logging.Logger
}

// Option configures a Reconstructor
type Option func(*Reconstructor)

// WithConfig replaces the default configuration
func WithConfig(cfg *Config) Option {
	return func(r *Reconstructor) {
		if cfg != nil {
			r.config = cfg
		}
	}
}

// WithLogger sets the logger
func WithLogger(l logging.Logger) Option {
	return func(r *Reconstructor) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithEstimator replaces the waveform length estimate used to trim the window
func WithEstimator(e DurationEstimator) Option {
	return func(r *Reconstructor) {
		if e != nil {
			r.estimator = e
		}
	}
}

// NewReconstructor creates a reconstructor that opens dataset files with open.
// open may be nil when only HPlusHCross is used.
func NewReconstructor(open Opener, opts ...Option) *Reconstructor {
	r := &Reconstructor{
		open:      open,
		config:    DefaultConfig(),
		estimator: pnutils.SEOBNRROMLengthInTime,
		logger: logging.WithFields(logging.Fields{
			"component": "nr_reconstructor",
		}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// template holds the parameters the reconstruction reads
type template struct {
	mass1, mass2   float64
	spin1z, spin2z float64
	fLower         float64
	inclination    float64
	coaPhase       float64
	endTime        float64
	distance       float64
}

func resolveTemplate(src any) (*template, error) {
	var tp template
	fields := []struct {
		name string
		dst  *float64
	}{
		{params.Mass1, &tp.mass1},
		{params.Mass2, &tp.mass2},
		{params.Spin1z, &tp.spin1z},
		{params.Spin2z, &tp.spin2z},
		{params.FLower, &tp.fLower},
		{params.Inclination, &tp.inclination},
		{params.CoaPhase, &tp.coaPhase},
		{params.EndTime, &tp.endTime},
		{params.Distance, &tp.distance},
	}
	for _, f := range fields {
		v, err := params.Float(src, f.name)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}

	if tp.mass1+tp.mass2 <= 0 {
		return nil, fmt.Errorf("%w: total mass %g", ErrInvalidParams, tp.mass1+tp.mass2)
	}
	if tp.distance <= 0 {
		return nil, fmt.Errorf("%w: distance %g", ErrInvalidParams, tp.distance)
	}
	return &tp, nil
}

// HPlusHCrossFromFile opens the dataset at path and reconstructs hp, hc. The
// dataset is closed on every return path.
func (r *Reconstructor) HPlusHCrossFromFile(path string, src any, deltaT float64) (hp, hc *series.TimeSeries, err error) {
	if r.open == nil {
		return nil, nil, ErrNoOpener
	}

	ds, err := r.open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open NR dataset %s: %w", path, err)
	}
	defer func() {
		if cerr := ds.Close(); cerr != nil {
			r.logger.Warn("Failed to close NR dataset", logging.Fields{"path": path, "error": cerr.Error()})
			if err == nil {
				hp, hc = nil, nil
				err = fmt.Errorf("failed to close NR dataset %s: %w", path, cerr)
			}
		}
	}()

	return r.HPlusHCross(ds, src, deltaT)
}

// HPlusHCross reconstructs hp, hc sampled every deltaT seconds from an open
// dataset. Time zero of the dataset is the merger; the returned series start
// at end_time plus the (negative) start offset.
func (r *Reconstructor) HPlusHCross(ds Dataset, src any, deltaT float64) (*series.TimeSeries, *series.TimeSeries, error) {
	logger := r.logger.WithFields(logging.Fields{
		"function": "HPlusHCross",
	})

	if deltaT <= 0 || math.IsNaN(deltaT) {
		return nil, nil, fmt.Errorf("%w: delta_t %g", ErrInvalidParams, deltaT)
	}

	tp, err := resolveTemplate(src)
	if err != nil {
		return nil, nil, err
	}

	totalMass := tp.mass1 + tp.mass2
	massTime := pnutils.MassToSeconds(totalMass)

	fLowerAt1M, err := ds.Attr(FLowerAttr)
	if err != nil {
		return nil, nil, err
	}

	// the (2,2) mode must be present and sets the available time span
	ref, err := ds.Spline(AmpKey(2, 2))
	if err != nil {
		return nil, nil, fmt.Errorf("reference mode: %w", err)
	}
	if len(ref.Knots) < 2 {
		return nil, nil, fmt.Errorf("%w: reference mode has %d knots", ErrMissingEntry, len(ref.Knots))
	}

	timeStartM := ref.Knots[0]
	timeEndM := ref.Knots[len(ref.Knots)-1]
	timeStartS := timeStartM * massTime
	timeEndS := timeEndM * massTime

	logger.Debug("Hybrid span", logging.Fields{
		"time_start_M": timeStartM,
		"time_start_s": timeStartS,
		"time_end_s":   timeEndS,
	})

	// t = 0 is merger, so the estimated start is negative
	estStartS := -r.estimator(tp.mass1, tp.mass2, tp.spin1z, tp.spin2z, tp.fLower)
	switch {
	case estStartS > timeStartS:
		timeStartS = estStartS
		timeStartM = timeStartS / massTime
		logger.Debug("Trimmed start to estimated length", logging.Fields{"time_start_s": timeStartS})
	case tp.fLower < fLowerAt1M/totalMass:
		return nil, nil, fmt.Errorf("%w: requested %e Hz, dataset starts at %e Hz",
			ErrWaveformTooShort, tp.fLower, fLowerAt1M/totalMass)
	}

	times := common.Arange(timeStartS, timeEndS, deltaT)
	if len(times) == 0 {
		return nil, nil, fmt.Errorf("%w: empty time window [%g, %g)", ErrInvalidParams, timeStartS, timeEndS)
	}
	timesM := make([]float64, len(times))
	for i, t := range times {
		timesM[i] = t / massTime
	}
	// t0/M*M/M can round below the first knot
	timesM[0] = timeStartM

	hp := make([]float64, len(times))
	hc := make([]float64, len(times))
	amp := make([]float64, len(times))
	phase := make([]float64, len(times))

	for l := 2; l <= r.config.MaxL; l++ {
		for m := -l; m <= l; m++ {
			ampKey, phaseKey := AmpKey(l, m), PhaseKey(l, m)
			if !ds.Has(ampKey) || !ds.Has(phaseKey) {
				continue
			}
			logger.Debug("Using mode", logging.Fields{"l": l, "m": m})

			if amp, err = evalMode(ds, ampKey, timesM, amp); err != nil {
				return nil, nil, err
			}
			if phase, err = evalMode(ds, phaseKey, timesM, phase); err != nil {
				return nil, nil, err
			}

			ylm, err := harmonics.SpinWeightedY(tp.inclination, tp.coaPhase, SpinWeight, l, m)
			if err != nil {
				return nil, nil, err
			}
			yRe, yIm := real(ylm), imag(ylm)

			for i := range hp {
				sin, cos := math.Sincos(phase[i])
				hRe := amp[i] * cos
				hIm := amp[i] * sin
				hp[i] += hRe*yRe - hIm*yIm
				hc[i] += CrossSign * (hRe*yIm + hIm*yRe)
			}
		}
	}

	// NR data is at 1 Msun and 1 Mpc
	scale := pnutils.MassToMegaparsecs(totalMass) / tp.distance
	floats.Scale(scale, hp)
	floats.Scale(scale, hc)

	epoch := tp.endTime + timeStartS
	logger.Debug("Reconstructed polarizations", logging.Fields{
		"samples": len(hp),
		"epoch":   epoch,
	})

	return &series.TimeSeries{Data: hp, DeltaT: deltaT, Epoch: epoch},
		&series.TimeSeries{Data: hc, DeltaT: deltaT, Epoch: epoch},
		nil
}

// evalMode evaluates the spline stored under key at timesM, writing into dst.
// The knots must cover timesM on both ends.
func evalMode(ds Dataset, key string, timesM, dst []float64) ([]float64, error) {
	sd, err := ds.Spline(key)
	if err != nil {
		return nil, err
	}
	if len(sd.Knots) == 0 {
		return nil, fmt.Errorf("%w: %s has no knots", ErrMissingEntry, key)
	}

	first, last := timesM[0], timesM[len(timesM)-1]
	if sd.Knots[0] > first || sd.Knots[len(sd.Knots)-1] < last {
		return nil, fmt.Errorf("%w: %s spans [%g, %g], query spans [%g, %g]",
			ErrKnotBounds, key, sd.Knots[0], sd.Knots[len(sd.Knots)-1], first, last)
	}

	s, err := spline.New(sd.Knots, sd.Data, sd.Degree)
	if err != nil {
		return nil, fmt.Errorf("failed to build spline %s: %w", key, err)
	}
	return s.EvalAll(timesM, dst), nil
}
