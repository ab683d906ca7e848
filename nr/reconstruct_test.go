package nr_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/RyanBlaney/sonido-gw/algorithms/common"
	"github.com/RyanBlaney/sonido-gw/algorithms/harmonics"
	"github.com/RyanBlaney/sonido-gw/algorithms/spline"
	"github.com/RyanBlaney/sonido-gw/logging"
	"github.com/RyanBlaney/sonido-gw/nr"
	"github.com/RyanBlaney/sonido-gw/params"
	"github.com/RyanBlaney/sonido-gw/pnutils"
)

const deltaT = 1.0 / 4096

// splineOver samples f on n evenly spaced knots over [lo, hi].
// swsh evaluates a mode that must be valid.
func swsh(t *testing.T, theta, phi float64, s, l, m int) complex128 {
	t.Helper()
	y, err := harmonics.SpinWeightedY(theta, phi, s, l, m)
	require.NoError(t, err)
	return y
}

func splineOver(lo, hi float64, n, deg int, f func(float64) float64) *nr.SplineData {
	knots := make([]float64, n)
	floats.Span(knots, lo, hi)
	data := make([]float64, n)
	for i, k := range knots {
		data[i] = f(k)
	}
	return &nr.SplineData{Degree: deg, Knots: knots, Data: data}
}

func constant(v float64) func(float64) float64 {
	return func(float64) float64 { return v }
}

// unitDataset holds only (2,2) with unit amplitude and zero phase over [-1000, 0] M.
func unitDataset(fLowerAt1M float64) *nr.MemoryDataset {
	ds := nr.NewMemoryDataset(fLowerAt1M)
	ds.SetMode(2, 2,
		splineOver(-1000, 0, 11, 3, constant(1)),
		splineOver(-1000, 0, 11, 3, constant(0)),
	)
	return ds
}

func baseParams() params.Values {
	return params.Values{
		params.Mass1:       30.0,
		params.Mass2:       30.0,
		params.Spin1z:      0.0,
		params.Spin2z:      0.0,
		params.FLower:      20.0,
		params.Inclination: 0.0,
		params.CoaPhase:    0.0,
		params.Distance:    100.0,
		params.EndTime:     0.0,
	}
}

func newReconstructor(opts ...nr.Option) *nr.Reconstructor {
	opts = append([]nr.Option{nr.WithLogger(&logging.NoOpLogger{})}, opts...)
	return nr.NewReconstructor(nil, opts...)
}

func fixedEstimate(seconds float64) nr.Option {
	return nr.WithEstimator(func(m1, m2, s1z, s2z, fLower float64) float64 { return seconds })
}

func TestHPlusHCross_EndToEndUnitQuadrupole(t *testing.T) {
	r := newReconstructor()
	hp, hc, err := r.HPlusHCross(unitDataset(600), baseParams(), deltaT)
	require.NoError(t, err)

	startS := -1000 * pnutils.MassToSeconds(60)
	wantLen := int(math.Ceil((0 - startS) / deltaT))
	require.Equal(t, wantLen, hp.Len())
	require.Equal(t, wantLen, hc.Len())

	assert.Equal(t, deltaT, hp.DeltaT)
	assert.Equal(t, startS, hp.Epoch)
	assert.Equal(t, startS, hc.Epoch)

	y22 := math.Sqrt(5 / (4 * math.Pi))
	want := y22 * pnutils.MassToMegaparsecs(60) / 100
	for i := range hp.Data {
		assert.InEpsilon(t, want, hp.Data[i], 1e-12)
		assert.InDelta(t, 0.0, hc.Data[i], 1e-40)
	}
}

func TestHPlusHCross_LengthMatchesGrid(t *testing.T) {
	r := newReconstructor()
	startS := -1000 * pnutils.MassToSeconds(60)

	for _, dt := range []float64{1.0 / 1024, 1.0 / 4096, 1.0 / 16384, 0.0003} {
		hp, hc, err := r.HPlusHCross(unitDataset(600), baseParams(), dt)
		require.NoError(t, err)
		want := common.ArangeLen(startS, 0, dt)
		assert.Equal(t, want, hp.Len(), "dt=%g", dt)
		assert.Equal(t, want, hc.Len(), "dt=%g", dt)
	}
}

func TestHPlusHCross_EpochOffsetsEndTime(t *testing.T) {
	p := baseParams()
	p[params.EndTime] = 1126259462.4

	hp, hc, err := newReconstructor().HPlusHCross(unitDataset(600), p, deltaT)
	require.NoError(t, err)

	startS := -1000 * pnutils.MassToSeconds(60)
	assert.Equal(t, 1126259462.4+startS, hp.Epoch)
	assert.Equal(t, hp.Epoch, hc.Epoch)
	assert.Less(t, hp.Epoch, 1126259462.4)
}

func TestHPlusHCross_TemplateStructSource(t *testing.T) {
	tmpl := &params.Template{
		Mass1: 30, Mass2: 30, FLower: 20, Distance: 100,
		EndTimeSeconds: 1000, EndTimeNanoseconds: 250000000,
	}
	hp, _, err := newReconstructor().HPlusHCross(unitDataset(600), tmpl, deltaT)
	require.NoError(t, err)
	assert.InDelta(t, 1000.25-1000*pnutils.MassToSeconds(60), hp.Epoch, 1e-9)
}

func TestHPlusHCross_StartSelection(t *testing.T) {
	knotStart := -1000 * pnutils.MassToSeconds(60)

	t.Run("estimate shorter than data trims the start", func(t *testing.T) {
		r := newReconstructor(fixedEstimate(0.1))
		hp, _, err := r.HPlusHCross(unitDataset(600), baseParams(), deltaT)
		require.NoError(t, err)
		assert.Equal(t, -0.1, hp.Epoch)
		assert.Equal(t, common.ArangeLen(-0.1, 0, deltaT), hp.Len())
	})

	t.Run("estimate longer than data keeps the knot start", func(t *testing.T) {
		r := newReconstructor(fixedEstimate(5))
		hp, _, err := r.HPlusHCross(unitDataset(600), baseParams(), deltaT)
		require.NoError(t, err)
		assert.Equal(t, knotStart, hp.Epoch)
	})

	t.Run("estimate longer than data and f_lower unreachable fails", func(t *testing.T) {
		// 3000 Hz at 1 Msun is 50 Hz at 60 Msun, above the requested 20 Hz
		r := newReconstructor(fixedEstimate(5))
		hp, hc, err := r.HPlusHCross(unitDataset(3000), baseParams(), deltaT)
		require.ErrorIs(t, err, nr.ErrWaveformTooShort)
		assert.Contains(t, err.Error(), "2.000000e+01")
		assert.Contains(t, err.Error(), "5.000000e+01")
		assert.Nil(t, hp)
		assert.Nil(t, hc)
	})

	t.Run("default estimator keeps the knot start for 30+30 at 20 Hz", func(t *testing.T) {
		hp, _, err := newReconstructor().HPlusHCross(unitDataset(600), baseParams(), deltaT)
		require.NoError(t, err)
		assert.Equal(t, knotStart, hp.Epoch)
	})
}

func TestHPlusHCross_KnotBounds(t *testing.T) {
	t.Run("phase starts late", func(t *testing.T) {
		ds := nr.NewMemoryDataset(600)
		ds.SetMode(2, 2,
			splineOver(-1000, 0, 11, 3, constant(1)),
			splineOver(-500, 0, 11, 3, constant(0)),
		)
		_, _, err := newReconstructor().HPlusHCross(ds, baseParams(), deltaT)
		assert.ErrorIs(t, err, nr.ErrKnotBounds)
	})

	t.Run("higher mode ends early", func(t *testing.T) {
		ds := unitDataset(600)
		ds.SetMode(3, 3,
			splineOver(-1000, -100, 11, 3, constant(0.1)),
			splineOver(-1000, -100, 11, 3, constant(0)),
		)
		_, _, err := newReconstructor().HPlusHCross(ds, baseParams(), deltaT)
		assert.ErrorIs(t, err, nr.ErrKnotBounds)
	})

	t.Run("trimmed start still inside knots", func(t *testing.T) {
		ds := nr.NewMemoryDataset(600)
		ds.SetMode(2, 2,
			splineOver(-1000, 0, 11, 3, constant(1)),
			splineOver(-400, 0, 11, 3, constant(0)),
		)
		// 0.1 s is about 338 M at 60 Msun
		_, _, err := newReconstructor(fixedEstimate(0.1)).HPlusHCross(ds, baseParams(), deltaT)
		assert.NoError(t, err)
	})
}

func TestHPlusHCross_SingleModeMatchesHarmonicProjection(t *testing.T) {
	ampF := func(x float64) float64 { return 1 + x/2000 }
	phaseF := func(x float64) float64 { return 0.05*x + 1e-5*x*x }
	amp := splineOver(-1000, 0, 41, 3, ampF)
	phase := splineOver(-1000, 0, 41, 3, phaseF)

	ds := nr.NewMemoryDataset(600)
	ds.SetMode(2, 2, amp, phase)
	// an amplitude without a phase is not a usable mode
	ds.Entries[nr.AmpKey(3, 3)] = splineOver(-1000, 0, 11, 3, constant(5))

	p := baseParams()
	p[params.Inclination] = 0.7
	p[params.CoaPhase] = 0.3

	hp, hc, err := newReconstructor().HPlusHCross(ds, p, deltaT)
	require.NoError(t, err)

	massTime := pnutils.MassToSeconds(60)
	scale := pnutils.MassToMegaparsecs(60) / 100
	y := swsh(t, 0.7, 0.3, -2, 2, 2)
	ampS, err := spline.New(amp.Knots, amp.Data, amp.Degree)
	require.NoError(t, err)
	phaseS, err := spline.New(phase.Knots, phase.Data, phase.Degree)
	require.NoError(t, err)

	for _, i := range []int{0, 1, 100, hp.Len() / 2, hp.Len() - 1} {
		tM := (hp.Epoch + float64(i)*deltaT) / massTime
		a, ph := ampS.Eval(tM), phaseS.Eval(tM)
		wantP := scale * (a*math.Cos(ph)*real(y) - a*math.Sin(ph)*imag(y))
		wantC := scale * -(a*math.Cos(ph)*imag(y) + a*math.Sin(ph)*real(y))
		assert.InDelta(t, wantP, hp.Data[i], 1e-9*scale, "hp[%d]", i)
		assert.InDelta(t, wantC, hc.Data[i], 1e-9*scale, "hc[%d]", i)
	}
}

func TestHPlusHCross_HigherModesContribute(t *testing.T) {
	p := baseParams()
	p[params.Inclination] = 1.0

	single, _, err := newReconstructor().HPlusHCross(unitDataset(600), p, deltaT)
	require.NoError(t, err)

	ds := unitDataset(600)
	ds.SetMode(3, 3,
		splineOver(-1000, 0, 11, 3, constant(0.2)),
		splineOver(-1000, 0, 11, 3, constant(0)),
	)
	multi, _, err := newReconstructor().HPlusHCross(ds, p, deltaT)
	require.NoError(t, err)

	y33 := swsh(t, 1.0, 0, -2, 3, 3)
	extra := 0.2 * real(y33) * pnutils.MassToMegaparsecs(60) / 100
	assert.InDelta(t, single.Data[10]+extra, multi.Data[10], 1e-12*math.Abs(extra))

	// modes above MaxL are ignored
	capped, _, err := newReconstructor(nr.WithConfig(&nr.Config{MaxL: 2})).HPlusHCross(ds, p, deltaT)
	require.NoError(t, err)
	assert.Equal(t, single.Data, capped.Data)
}

func TestHPlusHCross_DistanceScaling(t *testing.T) {
	p := baseParams()
	p[params.Inclination] = 0.4

	near, nearC, err := newReconstructor().HPlusHCross(unitDataset(600), p, deltaT)
	require.NoError(t, err)

	p[params.Distance] = 200.0
	far, farC, err := newReconstructor().HPlusHCross(unitDataset(600), p, deltaT)
	require.NoError(t, err)

	require.Equal(t, near.Len(), far.Len())
	for i := range near.Data {
		assert.Equal(t, near.Data[i]/2, far.Data[i])
		assert.Equal(t, nearC.Data[i]/2, farC.Data[i])
	}
}

func TestHPlusHCross_InvalidInput(t *testing.T) {
	r := newReconstructor()

	p := baseParams()
	p[params.Distance] = 0.0
	_, _, err := r.HPlusHCross(unitDataset(600), p, deltaT)
	assert.ErrorIs(t, err, nr.ErrInvalidParams)

	_, _, err = r.HPlusHCross(unitDataset(600), baseParams(), 0)
	assert.ErrorIs(t, err, nr.ErrInvalidParams)

	p = baseParams()
	delete(p, params.Mass2)
	_, _, err = r.HPlusHCross(unitDataset(600), p, deltaT)
	assert.ErrorIs(t, err, params.ErrMissingParam)

	// no (2,2) mode
	ds := nr.NewMemoryDataset(600)
	ds.SetMode(3, 3, splineOver(-1000, 0, 11, 3, constant(1)), splineOver(-1000, 0, 11, 3, constant(0)))
	_, _, err = r.HPlusHCross(ds, baseParams(), deltaT)
	assert.ErrorIs(t, err, nr.ErrMissingEntry)

	// no f_lower attribute
	ds = unitDataset(600)
	delete(ds.Attrs, nr.FLowerAttr)
	_, _, err = r.HPlusHCross(ds, baseParams(), deltaT)
	assert.ErrorIs(t, err, nr.ErrMissingEntry)
}

func TestHPlusHCrossFromFile_ClosesOnEveryPath(t *testing.T) {
	var opened []*nr.MemoryDataset
	open := func(fLowerAt1M float64) nr.Opener {
		return func(path string) (nr.Dataset, error) {
			ds := unitDataset(fLowerAt1M)
			opened = append(opened, ds)
			return ds, nil
		}
	}

	_, _, err := nr.NewReconstructor(open(600), nr.WithLogger(&logging.NoOpLogger{})).
		HPlusHCrossFromFile("ok.h5", baseParams(), deltaT)
	require.NoError(t, err)

	_, _, err = nr.NewReconstructor(open(3000), nr.WithLogger(&logging.NoOpLogger{}), fixedEstimate(5)).
		HPlusHCrossFromFile("short.h5", baseParams(), deltaT)
	require.ErrorIs(t, err, nr.ErrWaveformTooShort)

	require.Len(t, opened, 2)
	for _, ds := range opened {
		assert.True(t, ds.Closed())
	}
}

func TestHPlusHCrossFromFile_OpenErrors(t *testing.T) {
	_, _, err := newReconstructor().HPlusHCrossFromFile("x.h5", baseParams(), deltaT)
	assert.ErrorIs(t, err, nr.ErrNoOpener)

	boom := errors.New("no such file")
	r := nr.NewReconstructor(func(string) (nr.Dataset, error) { return nil, boom },
		nr.WithLogger(&logging.NoOpLogger{}))
	_, _, err = r.HPlusHCrossFromFile("x.h5", baseParams(), deltaT)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "x.h5")
}

type failingClose struct{ *nr.MemoryDataset }

func (f failingClose) Close() error { return errors.New("close failed") }

func TestHPlusHCrossFromFile_CloseErrorSurfaces(t *testing.T) {
	r := nr.NewReconstructor(func(string) (nr.Dataset, error) {
		return failingClose{unitDataset(600)}, nil
	}, nr.WithLogger(&logging.NoOpLogger{}))

	hp, hc, err := r.HPlusHCrossFromFile("x.h5", baseParams(), deltaT)
	assert.ErrorContains(t, err, "close failed")
	assert.Nil(t, hp)
	assert.Nil(t, hc)
}

func TestFromTDWaveform(t *testing.T) {
	var gotPath string
	r := nr.NewReconstructor(func(path string) (nr.Dataset, error) {
		gotPath = path
		return unitDataset(600), nil
	}, nr.WithLogger(&logging.NoOpLogger{}))

	p := baseParams()
	p[params.EndTime] = 12345.0
	p[params.DeltaT] = deltaT
	p[params.NumRelData] = "/data/hybrid.h5"

	hp, hc, err := r.FromTDWaveform(p)
	require.NoError(t, err)

	assert.Equal(t, "/data/hybrid.h5", gotPath)
	startS := -1000 * pnutils.MassToSeconds(60)
	assert.Equal(t, startS, hp.Epoch, "end_time is fixed to zero")
	assert.Equal(t, startS, hc.Epoch)
	assert.Equal(t, 12345.0, p[params.EndTime], "caller parameters are not modified")

	delete(p, params.NumRelData)
	_, _, err = r.FromTDWaveform(p)
	assert.ErrorIs(t, err, params.ErrMissingParam)
}

func TestModes(t *testing.T) {
	ds := unitDataset(600)
	ds.SetMode(3, -3, splineOver(-1, 0, 4, 3, constant(0)), splineOver(-1, 0, 4, 3, constant(0)))
	ds.Entries[nr.AmpKey(4, 4)] = splineOver(-1, 0, 4, 3, constant(0))

	modes := nr.Modes(ds, 8)
	assert.Equal(t, []nr.Mode{{L: 2, M: 2}, {L: 3, M: -3}}, modes)
	assert.Equal(t, "(2,2)", modes[0].String())
	assert.Equal(t, []string{"amp_l2_m2", "amp_l3_m-3", "amp_l4_m4", "phase_l2_m2", "phase_l3_m-3"}, ds.Keys())
}
