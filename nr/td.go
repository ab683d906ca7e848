package nr

import (
	"github.com/RyanBlaney/sonido-gw/params"
	"github.com/RyanBlaney/sonido-gw/series"
)

// FromTDWaveform adapts the reconstructor to time-domain waveform callers:
// delta_t and the dataset path (numrel_data) come from src, and end_time is
// fixed to zero so the series are relative to merger. src is not modified.
func (r *Reconstructor) FromTDWaveform(src any) (*series.TimeSeries, *series.TimeSeries, error) {
	deltaT, err := params.Float(src, params.DeltaT)
	if err != nil {
		return nil, nil, err
	}
	path, err := params.String(src, params.NumRelData)
	if err != nil {
		return nil, nil, err
	}

	merged := params.Overlay{
		Source: src,
		Fixed:  params.Values{params.EndTime: 0.0},
	}
	return r.HPlusHCrossFromFile(path, merged, deltaT)
}
