package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-gw/algorithms/common"
	"github.com/RyanBlaney/sonido-gw/logging"
	"github.com/RyanBlaney/sonido-gw/nr"
	"github.com/RyanBlaney/sonido-gw/nr/h5dataset"
	"github.com/RyanBlaney/sonido-gw/params"
	"github.com/RyanBlaney/sonido-gw/series"
)

type nrOptions struct {
	data      string
	out       string
	wav       string
	bitDepth  int
	listModes bool
	spectrum  bool
	padPow2   bool
	taper     float64
	tukey     float64

	tmpl   params.Template
	endT   float64
	deltaT float64
}

func newNRCmd(a *app) *cobra.Command {
	o := &nrOptions{}

	cmd := &cobra.Command{
		Use:   "nr",
		Short: "Reconstruct hp and hc from an NR hybrid mode dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNR(cmd, a, o)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.data, "data", "", "mode dataset file (HDF5)")
	f.StringVar(&o.out, "out", "", "text output file (default stdout)")
	f.StringVar(&o.wav, "wav", "", "also render hp as a WAV file")
	f.IntVar(&o.bitDepth, "bit-depth", 16, "WAV bit depth (16, 24 or 32)")
	f.BoolVar(&o.listModes, "list-modes", false, "list the modes present in the dataset and exit")
	f.BoolVar(&o.spectrum, "spectrum", false, "write the one-sided spectrum of hp and hc instead of the time series")
	f.BoolVar(&o.padPow2, "pad-pow2", false, "zero-pad to a power-of-two length before the spectrum")
	f.Float64Var(&o.taper, "taper", 0, "taper the first seconds of hp and hc with a half Hann window")
	f.Float64Var(&o.tukey, "tukey", 0, "apply a Tukey window of this alpha to hp and hc before the spectrum")

	addTemplateFlags(f, &o.tmpl)
	f.Float64Var(&o.endT, "end-time", 0, "merger time (s)")
	f.Float64Var(&o.deltaT, "delta-t", 1.0/4096, "sample spacing (s)")

	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func runNR(cmd *cobra.Command, a *app, o *nrOptions) error {
	logger := a.logger.WithFields(logging.Fields{
		"function": "runNR",
		"data":     o.data,
	})

	if o.listModes {
		ds, err := h5dataset.Open(o.data)
		if err != nil {
			return err
		}
		defer ds.Close()
		for _, m := range nr.Modes(ds, a.cfg.NR.MaxL) {
			fmt.Fprintln(cmd.OutOrStdout(), m)
		}
		return nil
	}

	p := o.tmpl.Values()
	p[params.EndTime] = o.endT

	r := nr.NewReconstructor(h5dataset.Open,
		nr.WithConfig(&a.cfg.NR),
		nr.WithLogger(logger),
	)
	hp, hc, err := r.HPlusHCrossFromFile(o.data, p, o.deltaT)
	if err != nil {
		return err
	}
	logger.Info("Reconstructed waveform", logging.Fields{
		"samples":  hp.Len(),
		"epoch":    hp.Epoch,
		"duration": hp.Duration(),
		"peak_hp":  common.MaxAbs(hp.Data),
		"rms_hp":   common.RMS(hp.Data),
	})

	if o.taper > 0 {
		if err := hp.TaperStart(o.taper); err != nil {
			return err
		}
		if err := hc.TaperStart(o.taper); err != nil {
			return err
		}
	}

	w, done, err := openOutput(cmd, o.out)
	if err != nil {
		return err
	}
	if o.spectrum {
		err = writeSpectra(w, hp, hc, o.padPow2, o.tukey)
	} else {
		err = writeTimeSeries(w, hp, hc)
	}
	if derr := done(); err == nil {
		err = derr
	}
	if err != nil {
		return err
	}

	if o.wav != "" {
		return writeWAVFile(o.wav, hp, o.bitDepth)
	}
	return nil
}

func writeSpectra(w *outputWriter, hp, hc *series.TimeSeries, pad bool, alpha float64) error {
	if alpha > 0 {
		if err := hp.TaperTukey(alpha); err != nil {
			return err
		}
		if err := hc.TaperTukey(alpha); err != nil {
			return err
		}
	}
	if pad {
		hp, hc = hp.PadToPowerOfTwo(), hc.PadToPowerOfTwo()
	}
	fp, err := hp.ToFrequencySeries()
	if err != nil {
		return err
	}
	fc, err := hc.ToFrequencySeries()
	if err != nil {
		return err
	}
	return writeFrequencySeries(w, []*series.FrequencySeries{fp, fc})
}

func writeWAVFile(path string, ts *series.TimeSeries, bitDepth int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return series.WriteWAV(f, ts, bitDepth)
}
