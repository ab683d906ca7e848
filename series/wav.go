package series

import (
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/RyanBlaney/sonido-gw/algorithms/common"
)

// WriteWAV renders ts as a mono PCM WAV file at round(1/DeltaT) Hz, peak
// normalized to full scale. Strain amplitudes are ~1e-21 so raw samples
// would quantize to silence.
func WriteWAV(w io.WriteSeeker, ts *TimeSeries, bitDepth int) error {
	if ts == nil || len(ts.Data) == 0 {
		return ErrEmpty
	}
	if bitDepth != 16 && bitDepth != 24 && bitDepth != 32 {
		return fmt.Errorf("series: unsupported bit depth %d", bitDepth)
	}

	sampleRate := int(math.Round(ts.SampleRate()))
	if sampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrSpacing, sampleRate)
	}

	peak := common.MaxAbs(ts.Data)
	fullScale := float64(int64(1)<<(bitDepth-1) - 1)

	ints := make([]int, len(ts.Data))
	if peak > 0 {
		for i, v := range ts.Data {
			ints[i] = int(math.Round(v / peak * fullScale))
		}
	}

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           ints,
		SourceBitDepth: bitDepth,
	}

	enc := wav.NewEncoder(w, sampleRate, bitDepth, 1, 1)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("failed to encode wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize wav: %w", err)
	}
	return nil
}
