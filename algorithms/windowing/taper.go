// Package windowing builds the taper windows applied to waveforms before a
// Fourier transform, so that a series starting abruptly does not ring.
package windowing

import (
	"fmt"
	"math"
)

// Taper is a precomputed window of fixed size.
type Taper struct {
	kind         string
	size         int
	coefficients []float64
}

// NewTukey creates a Tukey window: flat in the middle with cosine tapers
// covering a fraction alpha of the window, split between both ends. alpha 0
// is rectangular and alpha 1 is a Hann window.
func NewTukey(size int, alpha float64) (*Taper, error) {
	if size < 1 {
		return nil, fmt.Errorf("window size must be positive, got %d", size)
	}
	if alpha < 0 || alpha > 1 || math.IsNaN(alpha) {
		return nil, fmt.Errorf("tukey alpha must be in [0, 1], got %g", alpha)
	}

	t := &Taper{kind: "tukey", size: size, coefficients: make([]float64, size)}
	taperLength := int(alpha * float64(size) / 2.0)

	for i := 0; i < size; i++ {
		switch {
		case i < taperLength:
			t.coefficients[i] = riseCoefficient(i, taperLength)
		case i >= size-taperLength:
			t.coefficients[i] = riseCoefficient(size-1-i, taperLength)
		default:
			t.coefficients[i] = 1.0
		}
	}
	return t, nil
}

// NewStartTaper creates a window that rises over the first rise samples with
// a half Hann and is flat afterwards. The end of the series is left intact,
// which suits waveforms that stop at merger.
func NewStartTaper(size, rise int) (*Taper, error) {
	if size < 1 {
		return nil, fmt.Errorf("window size must be positive, got %d", size)
	}
	if rise < 0 || rise > size {
		return nil, fmt.Errorf("taper length %d outside [0, %d]", rise, size)
	}

	t := &Taper{kind: "start", size: size, coefficients: make([]float64, size)}
	for i := 0; i < size; i++ {
		if i < rise {
			t.coefficients[i] = riseCoefficient(i, rise)
		} else {
			t.coefficients[i] = 1.0
		}
	}
	return t, nil
}

// riseCoefficient is sample i of a half Hann rising over n samples. The
// first sample is zero and the curve reaches one at i = n.
func riseCoefficient(i, n int) float64 {
	return 0.5 * (1 - math.Cos(math.Pi*float64(i)/float64(n)))
}

// Apply returns a windowed copy of signal
func (t *Taper) Apply(signal []float64) ([]float64, error) {
	if len(signal) != t.size {
		return nil, fmt.Errorf("signal length (%d) doesn't match window size (%d)", len(signal), t.size)
	}
	windowed := make([]float64, t.size)
	for i := range windowed {
		windowed[i] = signal[i] * t.coefficients[i]
	}
	return windowed, nil
}

// ApplyInPlace applies the window to signal in place
func (t *Taper) ApplyInPlace(signal []float64) error {
	if len(signal) != t.size {
		return fmt.Errorf("signal length (%d) doesn't match window size (%d)", len(signal), t.size)
	}
	for i := range signal {
		signal[i] *= t.coefficients[i]
	}
	return nil
}

// Coefficients returns a copy of the window coefficients
func (t *Taper) Coefficients() []float64 {
	return append([]float64(nil), t.coefficients...)
}

func (t *Taper) Size() int {
	return t.size
}

func (t *Taper) Type() string {
	return t.kind
}
