// Package series provides the uniformly sampled containers the waveform
// adapters return: a real TimeSeries and a complex FrequencySeries, each
// carrying its sample spacing and the epoch of its first sample.
package series

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/RyanBlaney/sonido-gw/algorithms/common"
	"github.com/RyanBlaney/sonido-gw/algorithms/spectral"
)

var (
	ErrEmpty   = errors.New("series: no samples")
	ErrSpacing = errors.New("series: sample spacing must be positive")
)

// TimeSeries is a real-valued series sampled every DeltaT seconds starting at Epoch.
type TimeSeries struct {
	Data   []float64 `json:"data"`
	DeltaT float64   `json:"delta_t"`
	Epoch  float64   `json:"epoch"` // GPS seconds of Data[0]
}

// NewTimeSeries wraps data without copying it.
func NewTimeSeries(data []float64, deltaT, epoch float64) (*TimeSeries, error) {
	if deltaT <= 0 || math.IsNaN(deltaT) {
		return nil, fmt.Errorf("%w: delta_t=%g", ErrSpacing, deltaT)
	}
	return &TimeSeries{Data: data, DeltaT: deltaT, Epoch: epoch}, nil
}

// Len returns the number of samples
func (ts *TimeSeries) Len() int {
	return len(ts.Data)
}

// Duration returns Len()*DeltaT
func (ts *TimeSeries) Duration() float64 {
	return float64(len(ts.Data)) * ts.DeltaT
}

// EndTime returns the time one sample past the last one
func (ts *TimeSeries) EndTime() float64 {
	return ts.Epoch + ts.Duration()
}

// SampleRate returns 1/DeltaT
func (ts *TimeSeries) SampleRate() float64 {
	return 1.0 / ts.DeltaT
}

// SampleTimes returns the time stamp of every sample
func (ts *TimeSeries) SampleTimes() []float64 {
	out := make([]float64, len(ts.Data))
	for i := range out {
		out[i] = ts.Epoch + float64(i)*ts.DeltaT
	}
	return out
}

// Scale multiplies every sample by f in place
func (ts *TimeSeries) Scale(f float64) {
	floats.Scale(f, ts.Data)
}

// Copy returns a deep copy
func (ts *TimeSeries) Copy() *TimeSeries {
	data := make([]float64, len(ts.Data))
	copy(data, ts.Data)
	return &TimeSeries{Data: data, DeltaT: ts.DeltaT, Epoch: ts.Epoch}
}

// ToFrequencySeries returns the one-sided Fourier transform, scaled by DeltaT
// so it approximates the continuous transform. The epoch is carried over.
func (ts *TimeSeries) ToFrequencySeries() (*FrequencySeries, error) {
	n := len(ts.Data)
	if n == 0 {
		return nil, ErrEmpty
	}

	spec := spectral.NewFFT().ComputeOneSided(ts.Data)
	scale := complex(ts.DeltaT, 0)
	for i := range spec {
		spec[i] *= scale
	}

	return &FrequencySeries{
		Data:   spec,
		DeltaF: 1.0 / (float64(n) * ts.DeltaT),
		Epoch:  ts.Epoch,
	}, nil
}

// FrequencySeries is a complex-valued series sampled every DeltaF hertz from
// zero frequency, with the epoch of the time series it represents.
type FrequencySeries struct {
	Data   []complex128 `json:"-"`
	DeltaF float64      `json:"delta_f"`
	Epoch  float64      `json:"epoch"`
}

// NewFrequencySeries wraps data without copying it.
func NewFrequencySeries(data []complex128, deltaF, epoch float64) (*FrequencySeries, error) {
	if deltaF <= 0 || math.IsNaN(deltaF) {
		return nil, fmt.Errorf("%w: delta_f=%g", ErrSpacing, deltaF)
	}
	return &FrequencySeries{Data: data, DeltaF: deltaF, Epoch: epoch}, nil
}

// Len returns the number of frequency bins
func (fs *FrequencySeries) Len() int {
	return len(fs.Data)
}

// SampleFrequencies returns the frequency of every bin
func (fs *FrequencySeries) SampleFrequencies() []float64 {
	out := make([]float64, len(fs.Data))
	for i := range out {
		out[i] = float64(i) * fs.DeltaF
	}
	return out
}

// MaxFrequency returns the frequency of the last bin
func (fs *FrequencySeries) MaxFrequency() float64 {
	if len(fs.Data) == 0 {
		return 0
	}
	return float64(len(fs.Data)-1) * fs.DeltaF
}

// ToTimeSeries inverts a one-sided spectrum with 2*(Len()-1) output samples.
func (fs *FrequencySeries) ToTimeSeries() (*TimeSeries, error) {
	if len(fs.Data) < 2 {
		return nil, ErrEmpty
	}

	n := 2 * (len(fs.Data) - 1)
	deltaT := 1.0 / (float64(n) * fs.DeltaF)

	data := spectral.NewFFT().ComputeInverseReal(fs.Data, n)
	// undo the DeltaT applied by ToFrequencySeries
	floats.Scale(1.0/deltaT, data)

	return &TimeSeries{Data: data, DeltaT: deltaT, Epoch: fs.Epoch}, nil
}

// PadToPowerOfTwo returns a copy of ts zero-padded at the end to the next
// power-of-two length.
func (ts *TimeSeries) PadToPowerOfTwo() *TimeSeries {
	data := make([]float64, common.NextPowerOfTwo(len(ts.Data)))
	copy(data, ts.Data)
	return &TimeSeries{Data: data, DeltaT: ts.DeltaT, Epoch: ts.Epoch}
}
