package series_test

import (
	"math"
	"math/cmplx"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/sonido-gw/series"
)

func TestTimeSeries_Metadata(t *testing.T) {
	ts, err := series.NewTimeSeries([]float64{1, 2, 3, 4}, 0.25, -1.0)
	require.NoError(t, err)

	assert.Equal(t, 4, ts.Len())
	assert.Equal(t, 1.0, ts.Duration())
	assert.Equal(t, 0.0, ts.EndTime())
	assert.Equal(t, 4.0, ts.SampleRate())
	assert.Equal(t, []float64{-1, -0.75, -0.5, -0.25}, ts.SampleTimes())

	c := ts.Copy()
	c.Scale(2)
	assert.Equal(t, []float64{2, 4, 6, 8}, c.Data)
	assert.Equal(t, []float64{1, 2, 3, 4}, ts.Data)

	_, err = series.NewTimeSeries(nil, 0, 0)
	assert.ErrorIs(t, err, series.ErrSpacing)
	_, err = series.NewFrequencySeries(nil, -1, 0)
	assert.ErrorIs(t, err, series.ErrSpacing)
}

func TestTimeSeries_FFTRoundTrip(t *testing.T) {
	const n = 64
	dt := 1.0 / 128
	data := make([]float64, n)
	for i := range data {
		tt := float64(i) * dt
		data[i] = math.Sin(2*math.Pi*8*tt) + 0.3*math.Cos(2*math.Pi*20*tt)
	}
	ts, err := series.NewTimeSeries(data, dt, 5)
	require.NoError(t, err)

	fs, err := ts.ToFrequencySeries()
	require.NoError(t, err)
	assert.Equal(t, n/2+1, fs.Len())
	assert.InDelta(t, 2.0, fs.DeltaF, 1e-12)
	assert.Equal(t, 5.0, fs.Epoch)
	assert.InDelta(t, 64.0, fs.MaxFrequency(), 1e-12)

	// 8 Hz lands in bin 4
	peak := 0
	for i := range fs.Data {
		if cmplx.Abs(fs.Data[i]) > cmplx.Abs(fs.Data[peak]) {
			peak = i
		}
	}
	assert.Equal(t, 4, peak)
	assert.InDelta(t, 8.0, fs.SampleFrequencies()[peak], 1e-12)

	back, err := fs.ToTimeSeries()
	require.NoError(t, err)
	require.Equal(t, n, back.Len())
	assert.InDelta(t, dt, back.DeltaT, 1e-15)
	for i := range data {
		assert.InDelta(t, data[i], back.Data[i], 1e-12)
	}
}

func TestToFrequencySeries_Empty(t *testing.T) {
	ts := &series.TimeSeries{DeltaT: 1}
	_, err := ts.ToFrequencySeries()
	assert.ErrorIs(t, err, series.ErrEmpty)

	fs := &series.FrequencySeries{Data: []complex128{1}, DeltaF: 1}
	_, err = fs.ToTimeSeries()
	assert.ErrorIs(t, err, series.ErrEmpty)
}

func TestWriteWAV(t *testing.T) {
	data := make([]float64, 4096)
	for i := range data {
		data[i] = 1e-21 * math.Sin(2*math.Pi*float64(i)/64)
	}
	ts, err := series.NewTimeSeries(data, 1.0/4096, 0)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "hp.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, series.WriteWAV(f, ts, 16))
	require.NoError(t, f.Close())

	in, err := os.Open(path)
	require.NoError(t, err)
	defer in.Close()

	dec := wav.NewDecoder(in)
	require.True(t, dec.IsValidFile())
	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)

	assert.Equal(t, uint32(4096), dec.SampleRate)
	assert.Equal(t, uint16(1), dec.NumChans)
	assert.Len(t, buf.Data, len(data))

	maxSample := 0
	for _, v := range buf.Data {
		if v > maxSample {
			maxSample = v
		}
	}
	assert.Equal(t, 32767, maxSample, "peak normalized to full scale")
}

func TestWriteWAV_Errors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ErrorIs(t, series.WriteWAV(f, &series.TimeSeries{DeltaT: 1}, 16), series.ErrEmpty)
	assert.Error(t, series.WriteWAV(f, &series.TimeSeries{Data: []float64{1}, DeltaT: 1}, 12))
}

func TestTimeSeries_TaperStart(t *testing.T) {
	data := make([]float64, 64)
	for i := range data {
		data[i] = 3
	}
	ts, err := series.NewTimeSeries(data, 0.125, 0)
	require.NoError(t, err)

	require.NoError(t, ts.TaperStart(1.0))
	assert.Equal(t, 0.0, ts.Data[0])
	assert.Less(t, ts.Data[4], 3.0)
	for i := 8; i < len(ts.Data); i++ {
		assert.Equal(t, 3.0, ts.Data[i])
	}

	assert.Error(t, ts.TaperStart(100))
	assert.Error(t, ts.TaperStart(-1))
	assert.ErrorIs(t, (&series.TimeSeries{DeltaT: 1}).TaperStart(1), series.ErrEmpty)
}

func TestTimeSeries_TaperTukey(t *testing.T) {
	data := make([]float64, 33)
	for i := range data {
		data[i] = 2
	}
	ts, err := series.NewTimeSeries(data, 0.5, 0)
	require.NoError(t, err)

	require.NoError(t, ts.TaperTukey(0.5))
	assert.Equal(t, 0.0, ts.Data[0])
	assert.Equal(t, 0.0, ts.Data[32])
	assert.Equal(t, 2.0, ts.Data[16])
	assert.InDelta(t, ts.Data[3], ts.Data[29], 1e-15)
	assert.Less(t, ts.Data[3], 2.0)

	assert.Error(t, ts.TaperTukey(1.5))
	assert.ErrorIs(t, (&series.TimeSeries{DeltaT: 1}).TaperTukey(0.1), series.ErrEmpty)
}

func TestTimeSeries_PadToPowerOfTwo(t *testing.T) {
	ts, err := series.NewTimeSeries([]float64{1, 2, 3, 4, 5}, 0.5, 2)
	require.NoError(t, err)

	padded := ts.PadToPowerOfTwo()
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 0, 0, 0}, padded.Data)
	assert.Equal(t, 0.5, padded.DeltaT)
	assert.Equal(t, 2.0, padded.Epoch)
	assert.Len(t, ts.Data, 5)

	fs, err := padded.ToFrequencySeries()
	require.NoError(t, err)
	assert.Equal(t, 5, fs.Len())
	assert.Equal(t, 0.25, fs.DeltaF)
}
