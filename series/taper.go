package series

import (
	"fmt"
	"math"

	"github.com/RyanBlaney/sonido-gw/algorithms/windowing"
)

// TaperStart rises the first seconds of ts from zero with a half Hann
// window, in place. Samples after the taper are unchanged.
func (ts *TimeSeries) TaperStart(seconds float64) error {
	if len(ts.Data) == 0 {
		return ErrEmpty
	}
	if seconds < 0 || math.IsNaN(seconds) {
		return fmt.Errorf("series: taper length %g s", seconds)
	}

	rise := int(math.Round(seconds / ts.DeltaT))
	if rise > len(ts.Data) {
		return fmt.Errorf("series: taper of %d samples exceeds %d samples", rise, len(ts.Data))
	}

	w, err := windowing.NewStartTaper(len(ts.Data), rise)
	if err != nil {
		return err
	}
	return w.ApplyInPlace(ts.Data)
}

// TaperTukey applies a symmetric Tukey window in place, tapering a fraction
// alpha of the series split between both ends.
func (ts *TimeSeries) TaperTukey(alpha float64) error {
	if len(ts.Data) == 0 {
		return ErrEmpty
	}
	w, err := windowing.NewTukey(len(ts.Data), alpha)
	if err != nil {
		return fmt.Errorf("series: %w", err)
	}
	return w.ApplyInPlace(ts.Data)
}
