package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/RyanBlaney/sonido-gw/logging"
	"github.com/RyanBlaney/sonido-gw/nr"
	"github.com/RyanBlaney/sonido-gw/nr/h5dataset"
)

type synthOptions struct {
	out        string
	fLowerAt1M float64
	start      float64
	knots      int
	degree     int
	omega      float64
}

// newSynthCmd writes a single-mode dataset with constant amplitude and
// linear phase, for exercising the reconstructor without real NR data.
func newSynthCmd(a *app) *cobra.Command {
	o := &synthOptions{}

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Write a synthetic (2,2) mode dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.knots < 2 || o.knots <= o.degree {
				return fmt.Errorf("need more than %d knots for degree %d, got %d", o.degree, o.degree, o.knots)
			}
			knots := make([]float64, o.knots)
			floats.Span(knots, o.start, 0)

			amp := make([]float64, len(knots))
			phase := make([]float64, len(knots))
			for i, t := range knots {
				amp[i] = 1
				phase[i] = o.omega * t
			}

			ds := nr.NewMemoryDataset(o.fLowerAt1M)
			ds.SetMode(2, 2,
				&nr.SplineData{Degree: o.degree, Knots: knots, Data: amp},
				&nr.SplineData{Degree: o.degree, Knots: append([]float64(nil), knots...), Data: phase},
			)
			if err := h5dataset.Write(o.out, ds); err != nil {
				return err
			}
			a.logger.Info("Wrote synthetic dataset", logging.Fields{"path": o.out, "knots": o.knots})
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.out, "out", "", "output HDF5 file")
	f.Float64Var(&o.fLowerAt1M, "f-lower-at-1msun", 600, "f_lower_at_1MSUN attribute (Hz)")
	f.Float64Var(&o.start, "start", -1000, "first knot (units of M, negative)")
	f.IntVar(&o.knots, "knots", 101, "number of knots")
	f.IntVar(&o.degree, "degree", 3, "spline degree")
	f.Float64Var(&o.omega, "omega", 0.1, "phase slope (rad per M)")

	_ = cmd.MarkFlagRequired("out")
	return cmd
}
