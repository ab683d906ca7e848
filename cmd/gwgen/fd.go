package main

import (
	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-gw/bbhx"
	"github.com/RyanBlaney/sonido-gw/logging"
	"github.com/RyanBlaney/sonido-gw/params"
	"github.com/RyanBlaney/sonido-gw/series"
)

type fdOptions struct {
	out        string
	timeDomain bool
	nyquist    float64
	runPhenomD bool

	tmpl params.Template
}

func newFDCmd(a *app) *cobra.Command {
	o := &fdOptions{}

	cmd := &cobra.Command{
		Use:   "fd",
		Short: "Generate frequency-domain channels with the TaylorF2 generator",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFD(cmd, a, o)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.out, "out", "", "text output file (default stdout)")
	f.BoolVar(&o.timeDomain, "time-domain", false, "inverse transform the first two channels and write them as time series")
	f.Float64Var(&o.nyquist, "nyquist", 0, "upper frequency bound (Hz), overrides fd.nyquist_freq")
	f.BoolVar(&o.runPhenomD, "run-phenomd", true, "restrict to the dominant-mode model")

	addTemplateFlags(f, &o.tmpl)
	f.Float64Var(&o.tmpl.RA, "ra", 0, "right ascension (rad)")
	f.Float64Var(&o.tmpl.Dec, "dec", 0, "declination (rad)")
	f.Float64Var(&o.tmpl.Polarization, "polarization", 0, "polarization angle (rad)")
	f.Float64Var(&o.tmpl.Tc, "tc", 0, "coalescence time (s)")
	f.Float64Var(&o.tmpl.DeltaF, "delta-f", 0.25, "frequency spacing (Hz)")

	return cmd
}

func runFD(cmd *cobra.Command, a *app, o *fdOptions) error {
	logger := a.logger.WithFields(logging.Fields{
		"function": "runFD",
	})

	cfg := a.cfg.FD
	if cmd.Flags().Changed("nyquist") {
		cfg.NyquistFreq = o.nyquist
	}
	if cmd.Flags().Changed("run-phenomd") {
		cfg.RunPhenomD = o.runPhenomD
	}

	adapter := bbhx.NewAdapter(bbhx.NewTaylorF2,
		bbhx.WithConfig(&cfg),
		bbhx.WithLogger(logger),
	)

	channels, err := adapter.Waveform(o.tmpl.Values())
	if err != nil {
		return err
	}
	logger.Info("Generated channels", logging.Fields{
		"bins":    channels[0].Len(),
		"delta_f": channels[0].DeltaF,
	})

	w, done, err := openOutput(cmd, o.out)
	if err != nil {
		return err
	}
	if o.timeDomain {
		err = writeInverse(w, channels[0], channels[1])
	} else {
		err = writeFrequencySeries(w, channels)
	}
	if derr := done(); err == nil {
		err = derr
	}
	return err
}

func writeInverse(w *outputWriter, plus, cross *series.FrequencySeries) error {
	hp, err := plus.ToTimeSeries()
	if err != nil {
		return err
	}
	hc, err := cross.ToTimeSeries()
	if err != nil {
		return err
	}
	return writeTimeSeries(w, hp, hc)
}
