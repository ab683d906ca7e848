package spectral

import (
	"github.com/mjibson/go-dsp/fft"
)

// FFT provides Fast Fourier Transform functionality for uniformly sampled series
type FFT struct{}

// NewFFT creates a new FFT calculator
func NewFFT() *FFT {
	return &FFT{}
}

// Compute computes the full complex spectrum of a real signal.
// mjibson/go-dsp handles all sizes, including non-power-of-2
func (f *FFT) Compute(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	return fft.FFTReal(x)
}

// ComputeOneSided returns bins 0..n/2 of the spectrum of a real signal of length n
func (f *FFT) ComputeOneSided(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	full := f.Compute(x)
	out := make([]complex128, len(x)/2+1)
	copy(out, full)
	return out
}

// ComputeInverseReal inverts a one-sided spectrum back to a real signal of
// length n, filling the negative frequencies by Hermitian symmetry.
func (f *FFT) ComputeInverseReal(half []complex128, n int) []float64 {
	if len(half) == 0 || n <= 0 {
		return []float64{}
	}

	full := make([]complex128, n)
	for k := 0; k < n; k++ {
		switch {
		case k < len(half) && k <= n/2:
			full[k] = half[k]
		case n-k < len(half):
			c := half[n-k]
			full[k] = complex(real(c), -imag(c))
		}
	}

	result := fft.IFFT(full)
	realResult := make([]float64, n)
	for i, val := range result {
		realResult[i] = real(val)
	}

	return realResult
}
