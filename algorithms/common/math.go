// Package common holds numeric helpers shared by the waveform adapters.
package common

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Arange returns the half-open grid start, start+step, ... < stop, the same
// points numpy.arange produces: ceil((stop-start)/step) samples, sample i
// computed as start + i*step so rounding does not accumulate.
func Arange(start, stop, step float64) []float64 {
	if step <= 0 || math.IsNaN(start) || math.IsNaN(stop) || stop <= start {
		return []float64{}
	}

	n := int(math.Ceil((stop - start) / step))
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// ArangeLen returns the number of samples Arange(start, stop, step) yields
func ArangeLen(start, stop, step float64) int {
	if step <= 0 || stop <= start {
		return 0
	}
	return int(math.Ceil((stop - start) / step))
}

// MaxAbs returns the largest absolute value in data
func MaxAbs(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return math.Max(math.Abs(floats.Max(data)), math.Abs(floats.Min(data)))
}

// RMS calculates root mean square
func RMS(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return math.Sqrt(floats.Dot(data, data) / float64(len(data)))
}

// NextPowerOfTwo finds the next power of 2 >= n
func NextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}

	power := 1
	for power < n {
		power <<= 1
	}
	return power
}
